package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusPaid      Status = "PAID"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus decodes a stored advance status, falling back to PENDING for
// unknown values instead of failing the read.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusApproved, StatusPaid, StatusRejected, StatusCancelled:
		return Status(s)
	default:
		return StatusPending
	}
}

// DeductionSchedule spreads the repayment of an advance over installments.
type DeductionSchedule struct {
	TotalInstallments     int             `json:"total_installments"`
	InstallmentAmount     decimal.Decimal `json:"installment_amount"`
	RemainingInstallments int             `json:"remaining_installments"`
	StartDeductionDate    time.Time       `json:"start_deduction_date"`
}

type Advance struct {
	ID                string
	EmployeeID        string
	EmployeeName      string
	Amount            decimal.Decimal
	RequestDate       time.Time
	ApprovedDate      *time.Time
	PaidDate          *time.Time
	Reason            string
	Notes             *string
	Status            Status
	PaymentMethod     string
	DeductionSchedule *DeductionSchedule
	RemainingAmount   decimal.Decimal
	IsFullyDeducted   bool
	CreatedAt         time.Time
	ApprovedBy        *string
	CreatedBy         string
}

// Outstanding reports whether the advance still holds money to deduct.
func (a Advance) Outstanding() bool {
	return a.Status == StatusPaid && !a.IsFullyDeducted && a.RemainingAmount.IsPositive()
}

// NextDeduction is the amount the next payment takes from the advance. An
// installment schedule caps it at the installment amount; without one the
// whole remaining balance is taken.
func (a Advance) NextDeduction() decimal.Decimal {
	if a.DeductionSchedule != nil && a.DeductionSchedule.InstallmentAmount.LessThan(a.RemainingAmount) {
		return a.DeductionSchedule.InstallmentAmount
	}
	return a.RemainingAmount
}

// Deduct consumes part of the remaining balance, flooring at zero, and uses
// up one installment when a schedule exists.
func (a Advance) Deduct(amount decimal.Decimal) Advance {
	a.RemainingAmount = a.RemainingAmount.Sub(amount)
	if !a.RemainingAmount.IsPositive() {
		a.RemainingAmount = decimal.Zero
		a.IsFullyDeducted = true
	}
	if a.DeductionSchedule != nil {
		schedule := *a.DeductionSchedule
		if schedule.RemainingInstallments > 0 {
			schedule.RemainingInstallments--
		}
		a.DeductionSchedule = &schedule
	}
	return a
}

// ActiveAmount sums advances of one employee whose request date falls within
// [from, to], excluding rejected and cancelled ones.
func ActiveAmount(advances []Advance, employeeID string, from, to time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, a := range advances {
		if a.EmployeeID != employeeID {
			continue
		}
		if a.Status == StatusRejected || a.Status == StatusCancelled {
			continue
		}
		if a.RequestDate.Before(from) || a.RequestDate.After(to) {
			continue
		}
		total = total.Add(a.Amount)
	}
	return total
}
