package period

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMonthRange(t *testing.T) {
	ref := time.Date(2025, time.February, 14, 13, 45, 0, 0, time.UTC)
	start, end := MonthRange(ref)

	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.February, end.Month())
	assert.Equal(t, 28, end.Day())
	assert.True(t, end.Before(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDayRange(t *testing.T) {
	ref := time.Date(2025, time.June, 30, 23, 59, 59, 0, time.UTC)
	start, end := DayRange(ref)

	assert.Equal(t, 30, start.Day())
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 30, end.Day())
	assert.True(t, InRange(ref, start, end))
}

func TestPreviousMonthWrapsJanuary(t *testing.T) {
	y, m := PreviousMonth(2025, time.January)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.December, m)

	y, m = PreviousMonth(2025, time.July)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.June, m)
}

func TestInRangeInclusiveBounds(t *testing.T) {
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC)

	assert.True(t, InRange(start, start, end))
	assert.True(t, InRange(end, start, end))
	assert.False(t, InRange(start.Add(-time.Second), start, end))
	assert.False(t, InRange(end.Add(time.Second), start, end))
}

func TestFormatPEN(t *testing.T) {
	assert.Equal(t, "S/ 1,250.00", FormatPEN(decimal.NewFromInt(1250)))
	assert.Equal(t, "S/ 980.50", FormatPEN(decimal.NewFromFloat(980.5)))
	assert.Equal(t, "S/ 1,234,567.89", FormatPEN(decimal.NewFromFloat(1234567.89)))
	assert.Equal(t, "S/ -130.00", FormatPEN(decimal.NewFromInt(-130)))
	assert.Equal(t, "S/ 0.00", FormatPEN(decimal.Zero))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, time.May, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "hace un momento", RelativeTime(now.Add(-30*time.Second), now))
	assert.Equal(t, "hace 1 minuto", RelativeTime(now.Add(-90*time.Second), now))
	assert.Equal(t, "hace 45 minutos", RelativeTime(now.Add(-45*time.Minute), now))
	assert.Equal(t, "hace 3 horas", RelativeTime(now.Add(-3*time.Hour), now))
	assert.Equal(t, "hace 2 días", RelativeTime(now.Add(-49*time.Hour), now))
}
