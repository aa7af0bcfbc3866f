package advance

import "context"

type Repository interface {
	List(ctx context.Context) ([]Advance, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Advance, error)
	GetByID(ctx context.Context, id string) (Advance, error)
	GetByIDs(ctx context.Context, ids []string) ([]Advance, error)
	Create(ctx context.Context, a Advance) (Advance, error)
	UpdateStatus(ctx context.Context, id string, status Status, actorID string) error
	// ApplyDeduction persists the deduction state of an advance that went
	// through Deduct: remaining amount, fully-deducted flag, and schedule.
	ApplyDeduction(ctx context.Context, a Advance) error
}
