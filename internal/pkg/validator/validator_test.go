package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidDNI(t *testing.T) {
	assert.True(t, IsValidDNI("45678123"))
	assert.False(t, IsValidDNI("4567812"))
	assert.False(t, IsValidDNI("456781234"))
	assert.False(t, IsValidDNI("4567812a"))
	assert.False(t, IsValidDNI(""))
}

func TestIsValidPhoneNumber(t *testing.T) {
	assert.True(t, IsValidPhoneNumber("987654321"))
	assert.True(t, IsValidPhoneNumber("+51 987 654 321"))
	assert.True(t, IsValidPhoneNumber("51987654321"))
	assert.False(t, IsValidPhoneNumber("887654321"))
	assert.False(t, IsValidPhoneNumber("98765432"))
	assert.False(t, IsValidPhoneNumber("abc"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("maria.perez@example.com"))
	assert.False(t, IsValidEmail("maria.perez@"))
	assert.False(t, IsValidEmail("no-at-sign"))
}

func TestIsValidOperationNumber(t *testing.T) {
	assert.True(t, IsValidOperationNumber("OP-20250114-0042"))
	assert.True(t, IsValidOperationNumber("99887766"))
	assert.False(t, IsValidOperationNumber("ab"))
	assert.False(t, IsValidOperationNumber("has spaces"))
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "amount", Message: "must be greater than zero"},
		{Field: "dni", Message: "must be exactly 8 digits"},
	}

	m := errs.ToMap()
	assert.Len(t, m, 2)
	assert.Equal(t, "must be greater than zero", m["amount"])
	assert.Contains(t, errs.Error(), "dni: must be exactly 8 digits")
}
