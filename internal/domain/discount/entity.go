package discount

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeTardiness        Type = "TARDINESS"
	TypeAbsence          Type = "ABSENCE"
	TypeLoanPayment      Type = "LOAN_PAYMENT"
	TypeAdvanceDeduction Type = "ADVANCE_DEDUCTION"
	TypeUniform          Type = "UNIFORM"
	TypeEquipment        Type = "EQUIPMENT"
	TypeInsurance        Type = "INSURANCE"
	TypeOther            Type = "OTHER"
)

// ParseType decodes a stored discount type, falling back to OTHER for
// unknown values instead of failing the read.
func ParseType(s string) Type {
	switch Type(s) {
	case TypeTardiness, TypeAbsence, TypeLoanPayment, TypeAdvanceDeduction,
		TypeUniform, TypeEquipment, TypeInsurance:
		return Type(s)
	default:
		return TypeOther
	}
}

type Discount struct {
	ID                 string
	EmployeeID         string
	EmployeeName       string
	Amount             decimal.Decimal
	Type               Type
	Reason             string
	Description        *string
	IsRecurring        bool
	StartDate          time.Time
	EndDate            *time.Time // nil means open-ended
	IsActive           bool
	AppliedInPaymentID *string
	CreatedAt          time.Time
	CreatedBy          string
}

// ApplicableAt reports whether the discount applies at the given instant.
// Both expiry signals gate applicability: the isActive flag AND, when an end
// date is set, now not being past it.
func (d Discount) ApplicableAt(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.EndDate != nil && now.After(*d.EndDate) {
		return false
	}
	return true
}

// ActiveAmount sums the applicable discounts of one employee whose start date
// falls within [from, to].
func ActiveAmount(discounts []Discount, employeeID string, from, to, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, d := range discounts {
		if d.EmployeeID != employeeID {
			continue
		}
		if !d.ApplicableAt(now) {
			continue
		}
		if d.StartDate.Before(from) || d.StartDate.After(to) {
			continue
		}
		total = total.Add(d.Amount)
	}
	return total
}
