package discount

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iepin-personal/planilla-backend-go/internal/pkg/validator"
)

type CreateDiscountRequest struct {
	EmployeeID  string          `json:"employee_id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Reason      string          `json:"reason"`
	Description *string         `json:"description,omitempty"`
	IsRecurring bool            `json:"is_recurring"`
	StartDate   string          `json:"start_date"`         // YYYY-MM-DD
	EndDate     *string         `json:"end_date,omitempty"` // YYYY-MM-DD
}

func (r *CreateDiscountRequest) Validate() error {
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

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	if r.EndDate != nil {
		if r.IsRecurring {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "not allowed for recurring discounts"})
		} else if end, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		} else if okStart && end.Before(start) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateDiscountRequest struct {
	ID          string           `json:"-"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Reason      *string          `json:"reason,omitempty"`
	Description *string          `json:"description,omitempty"`
	EndDate     *string          `json:"end_date,omitempty"`
}

func (r *UpdateDiscountRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Amount != nil && !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than zero"})
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DiscountResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       string          `json:"employee_name"`
	Amount             decimal.Decimal `json:"amount"`
	Type               string          `json:"type"`
	Reason             string          `json:"reason"`
	Description        *string         `json:"description,omitempty"`
	IsRecurring        bool            `json:"is_recurring"`
	StartDate          string          `json:"start_date"`
	EndDate            *string         `json:"end_date,omitempty"`
	IsActive           bool            `json:"is_active"`
	AppliedInPaymentID *string         `json:"applied_in_payment_id,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	CreatedBy          string          `json:"created_by"`
}

func ToResponse(d Discount) DiscountResponse {
	resp := DiscountResponse{
		ID:                 d.ID,
		EmployeeID:         d.EmployeeID,
		EmployeeName:       d.EmployeeName,
		Amount:             d.Amount,
		Type:               string(d.Type),
		Reason:             d.Reason,
		Description:        d.Description,
		IsRecurring:        d.IsRecurring,
		StartDate:          d.StartDate.Format("2006-01-02"),
		IsActive:           d.IsActive,
		AppliedInPaymentID: d.AppliedInPaymentID,
		CreatedAt:          d.CreatedAt,
		CreatedBy:          d.CreatedBy,
	}
	if d.EndDate != nil {
		s := d.EndDate.Format("2006-01-02")
		resp.EndDate = &s
	}
	return resp
}
