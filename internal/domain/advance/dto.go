package advance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iepin-personal/planilla-backend-go/internal/pkg/validator"
)

type CreateAdvanceRequest struct {
	EmployeeID        string          `json:"employee_id"`
	Amount            decimal.Decimal `json:"amount"`
	Reason            string          `json:"reason"`
	Notes             *string         `json:"notes,omitempty"`
	PaymentMethod     string          `json:"payment_method"`
	TotalInstallments *int            `json:"total_installments,omitempty"`
}

func (r *CreateAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than zero"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}
	if r.TotalInstallments != nil && *r.TotalInstallments < 1 {
		errs = append(errs, validator.ValidationError{Field: "total_installments", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdvanceResponse struct {
	ID                string             `json:"id"`
	EmployeeID        string             `json:"employee_id"`
	EmployeeName      string             `json:"employee_name"`
	Amount            decimal.Decimal    `json:"amount"`
	RequestDate       time.Time          `json:"request_date"`
	ApprovedDate      *time.Time         `json:"approved_date,omitempty"`
	PaidDate          *time.Time         `json:"paid_date,omitempty"`
	Reason            string             `json:"reason"`
	Notes             *string            `json:"notes,omitempty"`
	Status            string             `json:"status"`
	PaymentMethod     string             `json:"payment_method"`
	DeductionSchedule *DeductionSchedule `json:"deduction_schedule,omitempty"`
	RemainingAmount   decimal.Decimal    `json:"remaining_amount"`
	IsFullyDeducted   bool               `json:"is_fully_deducted"`
	CreatedAt         time.Time          `json:"created_at"`
	ApprovedBy        *string            `json:"approved_by,omitempty"`
	CreatedBy         string             `json:"created_by"`
}

func ToResponse(a Advance) AdvanceResponse {
	return AdvanceResponse{
		ID:                a.ID,
		EmployeeID:        a.EmployeeID,
		EmployeeName:      a.EmployeeName,
		Amount:            a.Amount,
		RequestDate:       a.RequestDate,
		ApprovedDate:      a.ApprovedDate,
		PaidDate:          a.PaidDate,
		Reason:            a.Reason,
		Notes:             a.Notes,
		Status:            string(a.Status),
		PaymentMethod:     a.PaymentMethod,
		DeductionSchedule: a.DeductionSchedule,
		RemainingAmount:   a.RemainingAmount,
		IsFullyDeducted:   a.IsFullyDeducted,
		CreatedAt:         a.CreatedAt,
		ApprovedBy:        a.ApprovedBy,
		CreatedBy:         a.CreatedBy,
	}
}
