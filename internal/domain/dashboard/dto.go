package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statistics is the derived dashboard snapshot. It is recomputed from the
// employee and payment collections and never treated as a source of truth.
type Statistics struct {
	TotalPendingAmount   decimal.Decimal      `json:"total_pending_amount"`
	CurrentMonthPayments decimal.Decimal      `json:"current_month_payments"`
	TotalEmployees       int64                `json:"total_employees"`
	TodayPayments        int64                `json:"today_payments"`
	RecentActivity       []ActivityItem       `json:"recent_activity"`
	MonthlyComparison    MonthlyComparison    `json:"monthly_comparison"`
	MethodDistribution   []MethodDistribution `json:"payment_method_distribution"`
	Partial              bool                 `json:"partial"`
	ComputedAt           time.Time            `json:"computed_at"`
}

// ActivityItem is one entry of the most-recent-first activity feed.
type ActivityItem struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Timestamp    time.Time       `json:"timestamp"`
	RelativeTime string          `json:"relative_time"`
}

type MonthlyComparison struct {
	CurrentMonth     decimal.Decimal `json:"current_month"`
	PreviousMonth    decimal.Decimal `json:"previous_month"`
	PercentageChange float64         `json:"percentage_change"`
}

// MethodDistribution is one slice of the payment-method breakdown for the
// current month. Methods without payments this month are omitted.
type MethodDistribution struct {
	Method      string          `json:"method"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Percentage  float64         `json:"percentage"`
}

// EmployeeStatistics is the per-employee derived aggregate.
type EmployeeStatistics struct {
	EmployeeID      string                `json:"employee_id"`
	EmployeeName    string                `json:"employee_name"`
	TotalPayments   decimal.Decimal       `json:"total_payments"`
	TotalDiscounts  decimal.Decimal       `json:"total_discounts"`
	TotalAdvances   decimal.Decimal       `json:"total_advances"`
	LastPaymentDate *time.Time            `json:"last_payment_date,omitempty"`
	PendingAmount   decimal.Decimal       `json:"pending_amount"`
	PaymentHistory  []PaymentHistoryEntry `json:"payment_history"`
}

// PaymentHistoryEntry derives month/year from the raw payment date, which may
// differ from the logical pay period.
type PaymentHistoryEntry struct {
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Status      string          `json:"status"`
}
