package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iepin-personal/planilla-backend-go/internal/pkg/validator"
)

type CreatePaymentRequest struct {
	EmployeeID           string                `json:"employee_id"`
	Amount               decimal.Decimal       `json:"amount"`
	PaymentDate          *string               `json:"payment_date,omitempty"` // RFC3339, defaults to now
	Period               Period                `json:"payment_period"`
	Method               string                `json:"payment_method"`
	BankDetails          *BankDetails          `json:"bank_details,omitempty"`
	DigitalWalletDetails *DigitalWalletDetails `json:"digital_wallet_details,omitempty"`
	ApplyDiscountIDs     []string              `json:"apply_discount_ids,omitempty"`
	ApplyAdvanceIDs      []string              `json:"apply_advance_ids,omitempty"`
	Notes                *string               `json:"notes,omitempty"`
}

func (r *CreatePaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than zero"})
	}
	if r.PaymentDate != nil {
		if _, ok := validator.IsValidDateTime(*r.PaymentDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "payment_date", Message: "must be an ISO8601 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Filter narrows payment listings. Nil fields are ignored.
type Filter struct {
	EmployeeID *string
	Status     *Status
	From       *time.Time
	To         *time.Time
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

type PaymentResponse struct {
	ID                   string                `json:"id"`
	EmployeeID           string                `json:"employee_id"`
	EmployeeName         string                `json:"employee_name"`
	Amount               decimal.Decimal       `json:"amount"`
	TotalDiscounts       decimal.Decimal       `json:"total_discounts"`
	TotalAdvances        decimal.Decimal       `json:"total_advances"`
	NetAmount            decimal.Decimal       `json:"net_amount"`
	PaymentDate          time.Time             `json:"payment_date"`
	Period               Period                `json:"payment_period"`
	Method               string                `json:"payment_method"`
	BankDetails          *BankDetails          `json:"bank_details,omitempty"`
	DigitalWalletDetails *DigitalWalletDetails `json:"digital_wallet_details,omitempty"`
	Discounts            []DiscountSnapshot    `json:"discounts,omitempty"`
	Advances             []AdvanceSnapshot     `json:"advances,omitempty"`
	Notes                *string               `json:"notes,omitempty"`
	Status               string                `json:"status"`
	CreatedAt            time.Time             `json:"created_at"`
	CreatedBy            string                `json:"created_by"`
}

func ToResponse(p Payment) PaymentResponse {
	return PaymentResponse{
		ID:                   p.ID,
		EmployeeID:           p.EmployeeID,
		EmployeeName:         p.EmployeeName,
		Amount:               p.Amount,
		TotalDiscounts:       p.TotalDiscounts(),
		TotalAdvances:        p.TotalAdvances(),
		NetAmount:            p.NetAmount(),
		PaymentDate:          p.PaymentDate,
		Period:               p.Period,
		Method:               string(p.Method),
		BankDetails:          p.BankDetails,
		DigitalWalletDetails: p.DigitalWalletDetails,
		Discounts:            p.Discounts,
		Advances:             p.Advances,
		Notes:                p.Notes,
		Status:               string(p.Status),
		CreatedAt:            p.CreatedAt,
		CreatedBy:            p.CreatedBy,
	}
}
