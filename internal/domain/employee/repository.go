package employee

import "context"

type Repository interface {
	List(ctx context.Context, includeInactive bool) ([]Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByDNI(ctx context.Context, dni string) (Employee, error)
	Create(ctx context.Context, e Employee) (Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	SetActive(ctx context.Context, id string, active bool) error
	CountActive(ctx context.Context) (int64, error)
}
