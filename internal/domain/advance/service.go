package advance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/auth"
)

type Service interface {
	List(ctx context.Context) ([]AdvanceResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]AdvanceResponse, error)
	Get(ctx context.Context, id string) (AdvanceResponse, error)
	Create(ctx context.Context, session auth.Session, req CreateAdvanceRequest) (AdvanceResponse, error)
	Approve(ctx context.Context, session auth.Session, id string) (AdvanceResponse, error)
	Reject(ctx context.Context, session auth.Session, id string) (AdvanceResponse, error)
	MarkPaid(ctx context.Context, session auth.Session, id string) (AdvanceResponse, error)
	Cancel(ctx context.Context, id string) error

	// ActiveAmountFor sums advances of an employee requested within [from, to],
	// excluding rejected and cancelled ones.
	ActiveAmountFor(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error)

	Subscribe(ctx context.Context) (<-chan []AdvanceResponse, func(), error)
}
