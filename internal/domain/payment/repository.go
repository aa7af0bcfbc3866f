package payment

import (
	"context"
	"time"
)

type Repository interface {
	List(ctx context.Context, filter Filter) ([]Payment, error)
	GetByID(ctx context.Context, id string) (Payment, error)
	Create(ctx context.Context, p Payment) (Payment, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	CountInRange(ctx context.Context, from, to time.Time) (int64, error)
}
