package discount

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var (
	rangeFrom = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	rangeTo   = time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC)
	nowMid    = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
)

func testDiscount(employeeID string, amount int64, start time.Time) Discount {
	return Discount{
		ID:         "d-" + employeeID + start.Format("20060102"),
		EmployeeID: employeeID,
		Amount:     decimal.NewFromInt(amount),
		Type:       TypeTardiness,
		StartDate:  start,
		IsActive:   true,
	}
}

func TestActiveAmountSumsMatchingDiscounts(t *testing.T) {
	discounts := []Discount{
		testDiscount("e1", 100, rangeFrom.AddDate(0, 0, 5)),
		testDiscount("e1", 50, rangeFrom.AddDate(0, 0, 10)),
		testDiscount("e2", 999, rangeFrom.AddDate(0, 0, 5)), // other employee
	}

	total := ActiveAmount(discounts, "e1", rangeFrom, rangeTo, nowMid)
	assert.True(t, total.Equal(decimal.NewFromInt(150)))
}

func TestActiveAmountIgnoresInactive(t *testing.T) {
	d := testDiscount("e1", 100, rangeFrom.AddDate(0, 0, 5))
	d.IsActive = false

	total := ActiveAmount([]Discount{d}, "e1", rangeFrom, rangeTo, nowMid)
	assert.True(t, total.IsZero())
}

func TestActiveAmountRespectsEndDateEvenWhenActive(t *testing.T) {
	// Both expiry signals gate applicability: a discount past its end date is
	// excluded even while the isActive flag is still set.
	d := testDiscount("e1", 100, rangeFrom.AddDate(0, 0, 2))
	end := nowMid.AddDate(0, 0, -1)
	d.EndDate = &end

	total := ActiveAmount([]Discount{d}, "e1", rangeFrom, rangeTo, nowMid)
	assert.True(t, total.IsZero())

	// With the end date still ahead it counts.
	future := nowMid.AddDate(0, 0, 5)
	d.EndDate = &future
	total = ActiveAmount([]Discount{d}, "e1", rangeFrom, rangeTo, nowMid)
	assert.True(t, total.Equal(decimal.NewFromInt(100)))
}

func TestActiveAmountOpenEndedNeverExpires(t *testing.T) {
	d := testDiscount("e1", 75, rangeFrom.AddDate(0, 0, 1))
	d.IsRecurring = true
	d.EndDate = nil

	farFuture := nowMid.AddDate(10, 0, 0)
	total := ActiveAmount([]Discount{d}, "e1", rangeFrom, rangeTo, farFuture)
	assert.True(t, total.Equal(decimal.NewFromInt(75)))
}

func TestActiveAmountExcludesOutOfRangeStartDates(t *testing.T) {
	discounts := []Discount{
		testDiscount("e1", 100, rangeFrom.AddDate(0, 0, -1)), // before range
		testDiscount("e1", 50, rangeTo.AddDate(0, 0, 1)),     // after range
		testDiscount("e1", 25, rangeFrom),                    // on boundary
	}

	total := ActiveAmount(discounts, "e1", rangeFrom, rangeTo, nowMid)
	assert.True(t, total.Equal(decimal.NewFromInt(25)))
}

func TestParseTypeFallsBackToOther(t *testing.T) {
	assert.Equal(t, TypeTardiness, ParseType("TARDINESS"))
	assert.Equal(t, TypeInsurance, ParseType("INSURANCE"))
	assert.Equal(t, TypeOther, ParseType("OTHER"))
	assert.Equal(t, TypeOther, ParseType("PARKING"))
	assert.Equal(t, TypeOther, ParseType(""))
}
