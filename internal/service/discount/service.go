package discount

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/auth"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/discount"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/employee"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/sse"
)

type service struct {
	discountRepo discount.Repository
	employeeRepo employee.Repository
	hub          *sse.Hub
}

func NewService(discountRepo discount.Repository, employeeRepo employee.Repository, hub *sse.Hub) discount.Service {
	return &service{
		discountRepo: discountRepo,
		employeeRepo: employeeRepo,
		hub:          hub,
	}
}

func (s *service) List(ctx context.Context, includeInactive bool) ([]discount.DiscountResponse, error) {
	discounts, err := s.discountRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}

	return toResponses(discounts), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string, activeOnly bool) ([]discount.DiscountResponse, error) {
	discounts, err := s.discountRepo.ListByEmployee(ctx, employeeID, activeOnly)
	if err != nil {
		return nil, err
	}

	return toResponses(discounts), nil
}

func (s *service) Get(ctx context.Context, id string) (discount.DiscountResponse, error) {
	d, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return discount.DiscountResponse{}, err
	}

	return discount.ToResponse(d), nil
}

func (s *service) Create(ctx context.Context, session auth.Session, req discount.CreateDiscountRequest) (discount.DiscountResponse, error) {
	if err := req.Validate(); err != nil {
		return discount.DiscountResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return discount.DiscountResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)

	d := discount.Discount{
		ID:           uuid.NewString(),
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName(),
		Amount:       req.Amount,
		Type:         discount.ParseType(req.Type),
		Reason:       req.Reason,
		Description:  req.Description,
		IsRecurring:  req.IsRecurring,
		StartDate:    startDate,
		IsActive:     true,
		CreatedBy:    session.UserID,
	}
	if req.EndDate != nil {
		end, _ := time.Parse("2006-01-02", *req.EndDate)
		d.EndDate = &end
	}

	created, err := s.discountRepo.Create(ctx, d)
	if err != nil {
		return discount.DiscountResponse{}, err
	}

	slog.Info("discount created", "discount_id", created.ID, "employee_id", created.EmployeeID)
	s.publishChanged("discount_created")

	return discount.ToResponse(created), nil
}

func (s *service) Update(ctx context.Context, req discount.UpdateDiscountRequest) (discount.DiscountResponse, error) {
	if err := req.Validate(); err != nil {
		return discount.DiscountResponse{}, err
	}

	if err := s.discountRepo.Update(ctx, req); err != nil {
		return discount.DiscountResponse{}, err
	}

	updated, err := s.discountRepo.GetByID(ctx, req.ID)
	if err != nil {
		return discount.DiscountResponse{}, err
	}

	s.publishChanged("discount_updated")

	return discount.ToResponse(updated), nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	d, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !d.IsActive {
		return discount.ErrDiscountAlreadyInactive
	}

	if err := s.discountRepo.SetActive(ctx, id, false); err != nil {
		return err
	}

	slog.Info("discount deactivated", "discount_id", id)
	s.publishChanged("discount_deactivated")

	return nil
}

func (s *service) ActiveAmountFor(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	discounts, err := s.discountRepo.ListByEmployee(ctx, employeeID, false)
	if err != nil {
		return decimal.Zero, err
	}

	return discount.ActiveAmount(discounts, employeeID, from, to, time.Now()), nil
}

func (s *service) Subscribe(ctx context.Context) (<-chan []discount.DiscountResponse, func(), error) {
	current, err := s.List(ctx, true)
	if err != nil {
		return nil, nil, err
	}

	events, cleanup := s.hub.Subscribe(sse.TopicDiscounts)
	out := make(chan []discount.DiscountResponse, 1)
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
					slog.Error("failed to refresh discount snapshot", "error", err)
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
	s.hub.Publish(sse.Event{Topic: sse.TopicDiscounts, Event: event})
	s.hub.Publish(sse.Event{Topic: sse.TopicDashboard, Event: event})
}

func toResponses(discounts []discount.Discount) []discount.DiscountResponse {
	responses := make([]discount.DiscountResponse, 0, len(discounts))
	for _, d := range discounts {
		responses = append(responses, discount.ToResponse(d))
	}
	return responses
}
