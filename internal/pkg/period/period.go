package period

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MonthRange returns the first instant of the first day and the last instant
// of the last day of t's calendar month, in t's location.
func MonthRange(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// DayRange returns the first and last instant of t's calendar day.
func DayRange(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}

// PreviousMonth returns the year and month preceding the given one,
// wrapping January back into December of the prior year.
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// InRange reports whether t falls within [start, end] inclusive.
func InRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// FormatPEN renders an amount as Peruvian soles with thousands separators,
// e.g. "S/ 1,250.00".
func FormatPEN(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("S/ %s%s.%s", sign, b.String(), parts[1])
}

// RelativeTime renders how long ago t happened relative to now, for the
// dashboard activity feed.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "hace un momento"
	case d < time.Hour:
		m := int(d.Minutes())
		if m == 1 {
			return "hace 1 minuto"
		}
		return fmt.Sprintf("hace %d minutos", m)
	case d < 24*time.Hour:
		h := int(d.Hours())
		if h == 1 {
			return "hace 1 hora"
		}
		return fmt.Sprintf("hace %d horas", h)
	default:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "hace 1 día"
		}
		return fmt.Sprintf("hace %d días", days)
	}
}
