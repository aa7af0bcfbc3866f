package employee

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/employee"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/sse"
)

type fakeEmployeeRepo struct {
	employees   map[string]employee.Employee
	createCalls int
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (f *fakeEmployeeRepo) List(ctx context.Context, includeInactive bool) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if includeInactive || e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByDNI(ctx context.Context, dni string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.DNI == dni {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	f.createCalls++
	for _, existing := range f.employees {
		if existing.DNI == e.DNI {
			return employee.Employee{}, employee.ErrDNIExists
		}
	}
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	e, ok := f.employees[req.ID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	if req.Position != nil {
		e.Position = *req.Position
	}
	if req.BaseSalary != nil {
		e.BaseSalary = *req.BaseSalary
	}
	f.employees[req.ID] = e
	return nil
}

func (f *fakeEmployeeRepo) SetActive(ctx context.Context, id string, active bool) error {
	e, ok := f.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.IsActive = active
	f.employees[id] = e
	return nil
}

func (f *fakeEmployeeRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	for _, e := range f.employees {
		if e.IsActive {
			n++
		}
	}
	return n, nil
}

func validCreateRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		DNI:        "45678912",
		Name:       "Rosa",
		LastName:   "Quispe",
		Position:   "Docente",
		BaseSalary: decimal.NewFromInt(2500),
		StartDate:  "2024-03-01",
	}
}

func TestCreateEmployee(t *testing.T) {
	svc := NewService(newFakeEmployeeRepo(), sse.NewHub())

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)
	assert.Equal(t, "45678912", created.DNI)
	assert.Equal(t, "2024-03-01", created.StartDate)
}

func TestCreateEmployeeRejectsBadDNI(t *testing.T) {
	svc := NewService(newFakeEmployeeRepo(), sse.NewHub())

	req := validCreateRequest()
	req.DNI = "123"
	_, err := svc.Create(context.Background(), req)
	assert.Error(t, err)
}

func TestCreateEmployeeDuplicateDNI(t *testing.T) {
	svc := NewService(newFakeEmployeeRepo(), sse.NewHub())

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, employee.ErrDNIExists)
}

func TestCreateEmployeeDuplicateDNIRejectedBeforeInsert(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewService(repo, sse.NewHub())

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, employee.ErrDNIExists)
	assert.Equal(t, 1, repo.createCalls)
}

func TestDeactivateTwiceFails(t *testing.T) {
	svc := NewService(newFakeEmployeeRepo(), sse.NewHub())

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), created.ID))
	assert.ErrorIs(t, svc.Deactivate(context.Background(), created.ID), employee.ErrEmployeeAlreadyInactive)
}

func TestReactivate(t *testing.T) {
	svc := NewService(newFakeEmployeeRepo(), sse.NewHub())

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Reactivate(context.Background(), created.ID), employee.ErrEmployeeAlreadyActive)

	require.NoError(t, svc.Deactivate(context.Background(), created.ID))
	require.NoError(t, svc.Reactivate(context.Background(), created.ID))

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestDeactivatedEmployeeHiddenFromDefaultList(t *testing.T) {
	svc := NewService(newFakeEmployeeRepo(), sse.NewHub())

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(context.Background(), created.ID))

	visible, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSubscribeEmitsCurrentListThenFreshSnapshots(t *testing.T) {
	svc := NewService(newFakeEmployeeRepo(), sse.NewHub())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots, cleanup, err := svc.Subscribe(ctx)
	require.NoError(t, err)
	defer cleanup()

	first := <-snapshots
	assert.Empty(t, first)

	_, err = svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	select {
	case second := <-snapshots:
		assert.Len(t, second, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a fresh snapshot after a change")
	}
}
