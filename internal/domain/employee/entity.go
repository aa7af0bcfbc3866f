package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	DNI              string
	Name             string
	LastName         string
	Position         string
	BaseSalary       decimal.Decimal
	Phone            *string
	Address          *string
	Email            *string
	BankAccount      *string
	IsActive         bool
	StartDate        time.Time
	EmergencyContact *EmergencyContact
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// FullName returns "Name LastName" for denormalized employee_name fields on
// payments, discounts and advances.
func (e Employee) FullName() string {
	return e.Name + " " + e.LastName
}
