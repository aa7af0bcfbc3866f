package payment

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iepin-personal/planilla-backend-go/internal/pkg/validator"
)

func TestNetAmount(t *testing.T) {
	p := Payment{
		Amount: decimal.NewFromInt(1000),
		Discounts: []DiscountSnapshot{
			{Amount: decimal.NewFromInt(100)},
			{Amount: decimal.NewFromInt(50)},
		},
		Advances: []AdvanceSnapshot{
			{Amount: decimal.NewFromInt(200)},
		},
	}

	assert.True(t, p.TotalDiscounts().Equal(decimal.NewFromInt(150)))
	assert.True(t, p.TotalAdvances().Equal(decimal.NewFromInt(200)))
	assert.True(t, p.NetAmount().Equal(decimal.NewFromInt(650)))
	assert.True(t, p.NetAmount().Equal(p.Amount.Sub(p.TotalDiscounts()).Sub(p.TotalAdvances())))
}

func TestNetAmountCanGoNegative(t *testing.T) {
	// Deductions larger than the gross amount surface as a negative net,
	// never clamped to zero.
	p := Payment{
		Amount:    decimal.NewFromInt(100),
		Discounts: []DiscountSnapshot{{Amount: decimal.NewFromInt(80)}},
		Advances:  []AdvanceSnapshot{{Amount: decimal.NewFromInt(50)}},
	}

	assert.True(t, p.NetAmount().Equal(decimal.NewFromInt(-30)))
}

func TestNetAmountNoDeductions(t *testing.T) {
	p := Payment{Amount: decimal.NewFromInt(750)}

	assert.True(t, p.TotalDiscounts().IsZero())
	assert.True(t, p.TotalAdvances().IsZero())
	assert.True(t, p.NetAmount().Equal(p.Amount))
}

func newTestPayment(method Method, bank *BankDetails, wallet *DigitalWalletDetails) (Payment, error) {
	return NewPayment(
		"pay-1", "emp-1", "Maria Quispe",
		decimal.NewFromInt(1200),
		time.Date(2025, time.April, 30, 18, 0, 0, 0, time.UTC),
		Period{Month: 4, Year: 2025, Description: "Abril 2025"},
		method, bank, wallet, nil, nil, nil, "user-1",
	)
}

func TestNewPaymentBankTransferRequiresBankDetails(t *testing.T) {
	_, err := newTestPayment(MethodBankTransfer, nil, nil)
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "bank_details")

	p, err := newTestPayment(MethodBankTransfer, &BankDetails{BankName: "BCP", OperationNumber: "OP-993311"}, nil)
	require.NoError(t, err)
	assert.NotNil(t, p.BankDetails)
	assert.Nil(t, p.DigitalWalletDetails)
	assert.Equal(t, StatusPending, p.Status)
}

func TestNewPaymentWalletMethodsRequireWalletDetails(t *testing.T) {
	for _, method := range []Method{MethodYape, MethodPlin} {
		_, err := newTestPayment(method, nil, nil)
		require.Error(t, err, "method %s", method)

		p, err := newTestPayment(method, nil, &DigitalWalletDetails{PhoneNumber: "987654321", OperationNumber: "778899"})
		require.NoError(t, err, "method %s", method)
		assert.Nil(t, p.BankDetails)
		assert.NotNil(t, p.DigitalWalletDetails)
	}
}

func TestNewPaymentCashRejectsDetails(t *testing.T) {
	_, err := newTestPayment(MethodCash, &BankDetails{BankName: "BCP", OperationNumber: "123456"}, nil)
	assert.Error(t, err)

	_, err = newTestPayment(MethodCash, nil, &DigitalWalletDetails{PhoneNumber: "987654321", OperationNumber: "123456"})
	assert.Error(t, err)

	p, err := newTestPayment(MethodCash, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, p.BankDetails)
	assert.Nil(t, p.DigitalWalletDetails)
}

func TestNewPaymentRejectsNonPositiveAmount(t *testing.T) {
	_, err := NewPayment(
		"pay-1", "emp-1", "Maria Quispe",
		decimal.Zero,
		time.Now(),
		Period{Month: 4, Year: 2025},
		MethodCash, nil, nil, nil, nil, nil, "user-1",
	)
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "amount")
}

func TestParseMethodFallsBackToCash(t *testing.T) {
	assert.Equal(t, MethodYape, ParseMethod("YAPE"))
	assert.Equal(t, MethodBankTransfer, ParseMethod("BANK_TRANSFER"))
	assert.Equal(t, MethodCash, ParseMethod("CASH"))
	assert.Equal(t, MethodCash, ParseMethod("BITCOIN"))
	assert.Equal(t, MethodCash, ParseMethod(""))
}

func TestParseStatusFallsBackToCompleted(t *testing.T) {
	assert.Equal(t, StatusPending, ParseStatus("PENDING"))
	assert.Equal(t, StatusFailed, ParseStatus("FAILED"))
	assert.Equal(t, StatusCompleted, ParseStatus("COMPLETED"))
	assert.Equal(t, StatusCompleted, ParseStatus("ARCHIVED"))
	assert.Equal(t, StatusCompleted, ParseStatus(""))
}
