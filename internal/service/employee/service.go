package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/employee"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/sse"
)

type service struct {
	employeeRepo employee.Repository
	hub          *sse.Hub
}

func NewService(employeeRepo employee.Repository, hub *sse.Hub) employee.Service {
	return &service{
		employeeRepo: employeeRepo,
		hub:          hub,
	}
}

func (s *service) List(ctx context.Context, includeInactive bool) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToResponse(e))
	}

	return responses, nil
}

func (s *service) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(e), nil
}

func (s *service) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}

	// Early lookup keeps the friendly error. The unique constraint on the
	// insert still backstops concurrent creates.
	if _, err := s.employeeRepo.GetByDNI(ctx, req.DNI); err == nil {
		return employee.EmployeeResponse{}, employee.ErrDNIExists
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.EmployeeResponse{}, err
	}

	e := employee.Employee{
		ID:               uuid.NewString(),
		DNI:              req.DNI,
		Name:             req.Name,
		LastName:         req.LastName,
		Position:         req.Position,
		BaseSalary:       req.BaseSalary,
		Phone:            req.Phone,
		Address:          req.Address,
		Email:            req.Email,
		BankAccount:      req.BankAccount,
		IsActive:         true,
		StartDate:        startDate,
		EmergencyContact: req.EmergencyContact,
		Notes:            req.Notes,
	}

	created, err := s.employeeRepo.Create(ctx, e)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee created", "employee_id", created.ID)
	s.publishChanged("employee_created")

	return employee.ToResponse(created), nil
}

func (s *service) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.Update(ctx, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.publishChanged("employee_updated")

	return employee.ToResponse(updated), nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !e.IsActive {
		return employee.ErrEmployeeAlreadyInactive
	}

	if err := s.employeeRepo.SetActive(ctx, id, false); err != nil {
		return err
	}

	slog.Info("employee deactivated", "employee_id", id)
	s.publishChanged("employee_deactivated")

	return nil
}

func (s *service) Reactivate(ctx context.Context, id string) error {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e.IsActive {
		return employee.ErrEmployeeAlreadyActive
	}

	if err := s.employeeRepo.SetActive(ctx, id, true); err != nil {
		return err
	}

	slog.Info("employee reactivated", "employee_id", id)
	s.publishChanged("employee_reactivated")

	return nil
}

func (s *service) Subscribe(ctx context.Context) (<-chan []employee.EmployeeResponse, func(), error) {
	current, err := s.List(ctx, true)
	if err != nil {
		return nil, nil, err
	}

	events, cleanup := s.hub.Subscribe(sse.TopicEmployees)
	out := make(chan []employee.EmployeeResponse, 1)
	out <- current

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				snapshot, err := s.List(ctx, true)
				if err != nil {
					slog.Error("failed to refresh employee snapshot", "error", err)
					continue
				}
				select {
				case out <- snapshot:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, cleanup, nil
}

func (s *service) publishChanged(event string) {
	s.hub.Publish(sse.Event{Topic: sse.TopicEmployees, Event: event})
	s.hub.Publish(sse.Event{Topic: sse.TopicDashboard, Event: event})
}
