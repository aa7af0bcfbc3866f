package employee

import "context"

type Service interface {
	List(ctx context.Context, includeInactive bool) ([]EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, id string) error
	Reactivate(ctx context.Context, id string) error

	// Subscribe returns a stream of full employee-list snapshots: the current
	// list immediately, then a fresh snapshot after every change. The cleanup
	// function tears down this subscriber only.
	Subscribe(ctx context.Context) (<-chan []EmployeeResponse, func(), error)
}
