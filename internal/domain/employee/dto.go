package employee

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iepin-personal/planilla-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	DNI              string            `json:"dni"`
	Name             string            `json:"name"`
	LastName         string            `json:"last_name"`
	Position         string            `json:"position"`
	BaseSalary       decimal.Decimal   `json:"base_salary"`
	Phone            *string           `json:"phone,omitempty"`
	Address          *string           `json:"address,omitempty"`
	Email            *string           `json:"email,omitempty"`
	BankAccount      *string           `json:"bank_account,omitempty"`
	StartDate        string            `json:"start_date"` // YYYY-MM-DD
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
	Notes            *string           `json:"notes,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidDNI(r.DNI) {
		errs = append(errs, validator.ValidationError{Field: "dni", Message: "must be exactly 8 digits"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "is required"})
	}
	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{Field: "position", Message: "is required"})
	}
	if !r.BaseSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be greater than zero"})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "must be a valid mobile number"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	if r.EmergencyContact != nil {
		if validator.IsEmpty(r.EmergencyContact.Name) {
			errs = append(errs, validator.ValidationError{Field: "emergency_contact.name", Message: "is required"})
		}
		if !validator.IsValidPhoneNumber(r.EmergencyContact.Phone) {
			errs = append(errs, validator.ValidationError{Field: "emergency_contact.phone", Message: "must be a valid mobile number"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID               string            `json:"-"`
	Name             *string           `json:"name,omitempty"`
	LastName         *string           `json:"last_name,omitempty"`
	Position         *string           `json:"position,omitempty"`
	BaseSalary       *decimal.Decimal  `json:"base_salary,omitempty"`
	Phone            *string           `json:"phone,omitempty"`
	Address          *string           `json:"address,omitempty"`
	Email            *string           `json:"email,omitempty"`
	BankAccount      *string           `json:"bank_account,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
	Notes            *string           `json:"notes,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BaseSalary != nil && !r.BaseSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be greater than zero"})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "must be a valid mobile number"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID               string            `json:"id"`
	DNI              string            `json:"dni"`
	Name             string            `json:"name"`
	LastName         string            `json:"last_name"`
	Position         string            `json:"position"`
	BaseSalary       decimal.Decimal   `json:"base_salary"`
	Phone            *string           `json:"phone,omitempty"`
	Address          *string           `json:"address,omitempty"`
	Email            *string           `json:"email,omitempty"`
	BankAccount      *string           `json:"bank_account,omitempty"`
	IsActive         bool              `json:"is_active"`
	StartDate        string            `json:"start_date"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
	Notes            *string           `json:"notes,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// DeductionsSummaryResponse totals what a payroll payment in the given range
// would withhold from the employee.
type DeductionsSummaryResponse struct {
	EmployeeID      string          `json:"employee_id"`
	From            string          `json:"from"` // YYYY-MM-DD
	To              string          `json:"to"`
	ActiveDiscounts decimal.Decimal `json:"active_discounts"`
	PendingAdvances decimal.Decimal `json:"pending_advances"`
	Total           decimal.Decimal `json:"total"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               e.ID,
		DNI:              e.DNI,
		Name:             e.Name,
		LastName:         e.LastName,
		Position:         e.Position,
		BaseSalary:       e.BaseSalary,
		Phone:            e.Phone,
		Address:          e.Address,
		Email:            e.Email,
		BankAccount:      e.BankAccount,
		IsActive:         e.IsActive,
		StartDate:        e.StartDate.Format("2006-01-02"),
		EmergencyContact: e.EmergencyContact,
		Notes:            e.Notes,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}
