package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iepin-personal/planilla-backend-go/internal/pkg/validator"
)

type Method string

const (
	MethodCash         Method = "CASH"
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodYape         Method = "YAPE"
	MethodPlin         Method = "PLIN"
	MethodOtherDigital Method = "OTHER_DIGITAL"
)

// ParseMethod decodes a stored payment method, falling back to CASH for
// unknown values instead of failing the read.
func ParseMethod(s string) Method {
	switch Method(s) {
	case MethodBankTransfer, MethodYape, MethodPlin, MethodOtherDigital:
		return Method(s)
	default:
		return MethodCash
	}
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusFailed    Status = "FAILED"
)

// ParseStatus decodes a stored payment status, falling back to COMPLETED for
// unknown values instead of failing the read.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusPending, StatusCancelled, StatusFailed:
		return Status(s)
	default:
		return StatusCompleted
	}
}

type Period struct {
	Month       int    `json:"month"`
	Year        int    `json:"year"`
	Description string `json:"description"`
}

type BankDetails struct {
	BankName        string `json:"bank_name"`
	AccountNumber   string `json:"account_number,omitempty"`
	OperationNumber string `json:"operation_number"`
}

type DigitalWalletDetails struct {
	PhoneNumber     string `json:"phone_number"`
	OperationNumber string `json:"operation_number"`
}

// DiscountSnapshot is the frozen copy of a discount at the moment it was
// applied to a payment. Later edits to the discount do not rewrite history.
type DiscountSnapshot struct {
	DiscountID string          `json:"discount_id"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason"`
}

// AdvanceSnapshot is the frozen copy of an advance deducted in a payment.
type AdvanceSnapshot struct {
	AdvanceID string          `json:"advance_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
}

type Payment struct {
	ID                   string
	EmployeeID           string
	EmployeeName         string
	Amount               decimal.Decimal // gross
	PaymentDate          time.Time
	Period               Period
	Method               Method
	BankDetails          *BankDetails
	DigitalWalletDetails *DigitalWalletDetails
	Discounts            []DiscountSnapshot
	Advances             []AdvanceSnapshot
	Notes                *string
	Status               Status
	CreatedAt            time.Time
	CreatedBy            string
}

// TotalDiscounts sums the discount snapshots attached to the payment.
func (p Payment) TotalDiscounts() decimal.Decimal {
	total := decimal.Zero
	for _, d := range p.Discounts {
		total = total.Add(d.Amount)
	}
	return total
}

// TotalAdvances sums the advance snapshots attached to the payment.
func (p Payment) TotalAdvances() decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Advances {
		total = total.Add(a.Amount)
	}
	return total
}

// NetAmount is gross minus discounts minus advances. Negative results are
// returned as-is, never clamped to zero.
func (p Payment) NetAmount() decimal.Decimal {
	return p.Amount.Sub(p.TotalDiscounts()).Sub(p.TotalAdvances())
}

// validateMethodDetails enforces that exactly one of BankDetails and
// DigitalWalletDetails is set, determined by the payment method.
func validateMethodDetails(method Method, bank *BankDetails, wallet *DigitalWalletDetails) validator.ValidationErrors {
	var errs validator.ValidationErrors

	switch method {
	case MethodBankTransfer:
		if bank == nil {
			errs = append(errs, validator.ValidationError{Field: "bank_details", Message: "required for bank transfers"})
		} else {
			if validator.IsEmpty(bank.BankName) {
				errs = append(errs, validator.ValidationError{Field: "bank_details.bank_name", Message: "is required"})
			}
			if !validator.IsValidOperationNumber(bank.OperationNumber) {
				errs = append(errs, validator.ValidationError{Field: "bank_details.operation_number", Message: "is required"})
			}
		}
		if wallet != nil {
			errs = append(errs, validator.ValidationError{Field: "digital_wallet_details", Message: "not allowed for bank transfers"})
		}
	case MethodYape, MethodPlin:
		if wallet == nil {
			errs = append(errs, validator.ValidationError{Field: "digital_wallet_details", Message: "required for digital wallet payments"})
		} else {
			if !validator.IsValidPhoneNumber(wallet.PhoneNumber) {
				errs = append(errs, validator.ValidationError{Field: "digital_wallet_details.phone_number", Message: "must be a valid mobile number"})
			}
			if !validator.IsValidOperationNumber(wallet.OperationNumber) {
				errs = append(errs, validator.ValidationError{Field: "digital_wallet_details.operation_number", Message: "is required"})
			}
		}
		if bank != nil {
			errs = append(errs, validator.ValidationError{Field: "bank_details", Message: "not allowed for digital wallet payments"})
		}
	default: // CASH, OTHER_DIGITAL
		if bank != nil {
			errs = append(errs, validator.ValidationError{Field: "bank_details", Message: "not allowed for this payment method"})
		}
		if wallet != nil {
			errs = append(errs, validator.ValidationError{Field: "digital_wallet_details", Message: "not allowed for this payment method"})
		}
	}

	return errs
}

// NewPayment builds a validated payment. The method/details invariant is
// enforced here so a Payment that exists is always well-formed.
func NewPayment(id, employeeID, employeeName string, amount decimal.Decimal, paymentDate time.Time, period Period, method Method, bank *BankDetails, wallet *DigitalWalletDetails, discounts []DiscountSnapshot, advances []AdvanceSnapshot, notes *string, createdBy string) (Payment, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than zero"})
	}
	if period.Month < 1 || period.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "payment_period.month", Message: "must be between 1 and 12"})
	}
	if period.Year < 2000 {
		errs = append(errs, validator.ValidationError{Field: "payment_period.year", Message: "must be 2000 or later"})
	}
	errs = append(errs, validateMethodDetails(method, bank, wallet)...)

	if len(errs) > 0 {
		return Payment{}, errs
	}

	return Payment{
		ID:                   id,
		EmployeeID:           employeeID,
		EmployeeName:         employeeName,
		Amount:               amount,
		PaymentDate:          paymentDate,
		Period:               period,
		Method:               method,
		BankDetails:          bank,
		DigitalWalletDetails: wallet,
		Discounts:            discounts,
		Advances:             advances,
		Notes:                notes,
		Status:               StatusPending,
		CreatedBy:            createdBy,
	}, nil
}
