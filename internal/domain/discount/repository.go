package discount

import "context"

type Repository interface {
	List(ctx context.Context, includeInactive bool) ([]Discount, error)
	ListByEmployee(ctx context.Context, employeeID string, activeOnly bool) ([]Discount, error)
	GetByID(ctx context.Context, id string) (Discount, error)
	GetByIDs(ctx context.Context, ids []string) ([]Discount, error)
	Create(ctx context.Context, d Discount) (Discount, error)
	Update(ctx context.Context, req UpdateDiscountRequest) error
	SetActive(ctx context.Context, id string, active bool) error
	MarkApplied(ctx context.Context, ids []string, paymentID string) error
}
