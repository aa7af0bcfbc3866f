package discount

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/auth"
)

type Service interface {
	List(ctx context.Context, includeInactive bool) ([]DiscountResponse, error)
	ListByEmployee(ctx context.Context, employeeID string, activeOnly bool) ([]DiscountResponse, error)
	Get(ctx context.Context, id string) (DiscountResponse, error)
	Create(ctx context.Context, session auth.Session, req CreateDiscountRequest) (DiscountResponse, error)
	Update(ctx context.Context, req UpdateDiscountRequest) (DiscountResponse, error)
	Deactivate(ctx context.Context, id string) error

	// ActiveAmountFor sums applicable discounts of an employee whose start
	// date falls within [from, to].
	ActiveAmountFor(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error)

	Subscribe(ctx context.Context) (<-chan []DiscountResponse, func(), error)
}
