package advance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var (
	rangeFrom = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	rangeTo   = time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC)
)

func testAdvance(employeeID string, amount int64, requested time.Time, status Status) Advance {
	return Advance{
		ID:          "a-" + employeeID + requested.Format("20060102"),
		EmployeeID:  employeeID,
		Amount:      decimal.NewFromInt(amount),
		RequestDate: requested,
		Status:      status,
	}
}

func TestActiveAmountUsesRequestDate(t *testing.T) {
	advances := []Advance{
		testAdvance("e1", 200, rangeFrom.AddDate(0, 0, 3), StatusApproved),
		testAdvance("e1", 100, rangeFrom.AddDate(0, 0, -3), StatusApproved), // before range
		testAdvance("e2", 500, rangeFrom.AddDate(0, 0, 3), StatusApproved), // other employee
	}

	total := ActiveAmount(advances, "e1", rangeFrom, rangeTo)
	assert.True(t, total.Equal(decimal.NewFromInt(200)))
}

func TestActiveAmountExcludesRejectedAndCancelled(t *testing.T) {
	advances := []Advance{
		testAdvance("e1", 200, rangeFrom.AddDate(0, 0, 1), StatusRejected),
		testAdvance("e1", 100, rangeFrom.AddDate(0, 0, 2), StatusCancelled),
		testAdvance("e1", 50, rangeFrom.AddDate(0, 0, 3), StatusPending),
	}

	total := ActiveAmount(advances, "e1", rangeFrom, rangeTo)
	assert.True(t, total.Equal(decimal.NewFromInt(50)))
}

func TestOutstanding(t *testing.T) {
	a := testAdvance("e1", 300, rangeFrom, StatusPaid)
	a.RemainingAmount = decimal.NewFromInt(120)
	assert.True(t, a.Outstanding())

	a.IsFullyDeducted = true
	assert.False(t, a.Outstanding())

	b := testAdvance("e1", 300, rangeFrom, StatusApproved)
	b.RemainingAmount = decimal.NewFromInt(300)
	assert.False(t, b.Outstanding())
}

func TestNextDeductionCappedByInstallment(t *testing.T) {
	a := testAdvance("e1", 300, rangeFrom, StatusPaid)
	a.RemainingAmount = decimal.NewFromInt(300)
	a.DeductionSchedule = &DeductionSchedule{
		TotalInstallments:     3,
		InstallmentAmount:     decimal.NewFromInt(100),
		RemainingInstallments: 3,
	}
	assert.True(t, a.NextDeduction().Equal(decimal.NewFromInt(100)))

	a.DeductionSchedule = nil
	assert.True(t, a.NextDeduction().Equal(decimal.NewFromInt(300)))

	// The last installment may be smaller than the scheduled amount.
	b := testAdvance("e1", 300, rangeFrom, StatusPaid)
	b.RemainingAmount = decimal.NewFromInt(40)
	b.DeductionSchedule = &DeductionSchedule{
		TotalInstallments:     3,
		InstallmentAmount:     decimal.NewFromInt(100),
		RemainingInstallments: 1,
	}
	assert.True(t, b.NextDeduction().Equal(decimal.NewFromInt(40)))
}

func TestDeductConsumesOneInstallment(t *testing.T) {
	a := testAdvance("e1", 300, rangeFrom, StatusPaid)
	a.RemainingAmount = decimal.NewFromInt(300)
	a.DeductionSchedule = &DeductionSchedule{
		TotalInstallments:     3,
		InstallmentAmount:     decimal.NewFromInt(100),
		RemainingInstallments: 3,
	}

	first := a.Deduct(a.NextDeduction())
	assert.True(t, first.RemainingAmount.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, 2, first.DeductionSchedule.RemainingInstallments)
	assert.False(t, first.IsFullyDeducted)

	second := first.Deduct(first.NextDeduction())
	assert.True(t, second.RemainingAmount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 1, second.DeductionSchedule.RemainingInstallments)

	third := second.Deduct(second.NextDeduction())
	assert.True(t, third.RemainingAmount.IsZero())
	assert.Equal(t, 0, third.DeductionSchedule.RemainingInstallments)
	assert.True(t, third.IsFullyDeducted)

	// Original value stays untouched.
	assert.Equal(t, 3, a.DeductionSchedule.RemainingInstallments)
}

func TestDeductFloorsAtZero(t *testing.T) {
	a := testAdvance("e1", 100, rangeFrom, StatusPaid)
	a.RemainingAmount = decimal.NewFromInt(100)
	a.DeductionSchedule = &DeductionSchedule{
		TotalInstallments:     1,
		InstallmentAmount:     decimal.NewFromInt(100),
		RemainingInstallments: 0,
	}

	out := a.Deduct(decimal.NewFromInt(150))
	assert.True(t, out.RemainingAmount.IsZero())
	assert.True(t, out.IsFullyDeducted)
	assert.Equal(t, 0, out.DeductionSchedule.RemainingInstallments)
}

func TestDeductWithoutSchedule(t *testing.T) {
	a := testAdvance("e1", 250, rangeFrom, StatusPaid)
	a.RemainingAmount = decimal.NewFromInt(250)

	out := a.Deduct(a.NextDeduction())
	assert.True(t, out.RemainingAmount.IsZero())
	assert.True(t, out.IsFullyDeducted)
	assert.Nil(t, out.DeductionSchedule)
}

func TestParseStatusFallsBackToPending(t *testing.T) {
	assert.Equal(t, StatusPaid, ParseStatus("PAID"))
	assert.Equal(t, StatusApproved, ParseStatus("APPROVED"))
	assert.Equal(t, StatusPending, ParseStatus("PENDING"))
	assert.Equal(t, StatusPending, ParseStatus("WAITING"))
	assert.Equal(t, StatusPending, ParseStatus(""))
}
