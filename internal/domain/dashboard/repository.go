package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MethodBucket is a raw per-method aggregate row for one month.
type MethodBucket struct {
	Method      string
	Count       int64
	TotalAmount decimal.Decimal
}

// RecentPayment is the raw material of one activity-feed entry.
type RecentPayment struct {
	EmployeeName string
	Amount       decimal.Decimal
	PaymentDate  time.Time
}

// Repository holds the one-shot SQL aggregation path. Each method is one
// query so the service can fan them out concurrently and merge.
type Repository interface {
	// PendingBaseSalaryTotal sums base salaries of active employees with no
	// COMPLETED payment dated within [monthStart, monthEnd].
	PendingBaseSalaryTotal(ctx context.Context, monthStart, monthEnd time.Time) (decimal.Decimal, error)

	// CompletedTotalInRange sums COMPLETED payment amounts dated within the range.
	CompletedTotalInRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	// MethodDistributionInRange groups COMPLETED payments in the range by method.
	MethodDistributionInRange(ctx context.Context, from, to time.Time) ([]MethodBucket, error)

	// RecentPayments returns the latest payments by payment date descending.
	RecentPayments(ctx context.Context, limit int) ([]RecentPayment, error)

	// SaveSnapshot upserts the pre-warmed dashboard cache copy.
	SaveSnapshot(ctx context.Context, stats Statistics) error

	// GetSnapshot reads the cached copy, if any.
	GetSnapshot(ctx context.Context) (Statistics, error)
}
