package advance

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/advance"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/auth"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/employee"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/user"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/sse"
)

type service struct {
	advanceRepo  advance.Repository
	employeeRepo employee.Repository
	hub          *sse.Hub
}

func NewService(advanceRepo advance.Repository, employeeRepo employee.Repository, hub *sse.Hub) advance.Service {
	return &service{
		advanceRepo:  advanceRepo,
		employeeRepo: employeeRepo,
		hub:          hub,
	}
}

func (s *service) List(ctx context.Context) ([]advance.AdvanceResponse, error) {
	advances, err := s.advanceRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return toResponses(advances), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]advance.AdvanceResponse, error) {
	advances, err := s.advanceRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	return toResponses(advances), nil
}

func (s *service) Get(ctx context.Context, id string) (advance.AdvanceResponse, error) {
	a, err := s.advanceRepo.GetByID(ctx, id)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	return advance.ToResponse(a), nil
}

func (s *service) Create(ctx context.Context, session auth.Session, req advance.CreateAdvanceRequest) (advance.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.AdvanceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	now := time.Now()

	a := advance.Advance{
		ID:              uuid.NewString(),
		EmployeeID:      emp.ID,
		EmployeeName:    emp.FullName(),
		Amount:          req.Amount,
		RequestDate:     now,
		Reason:          req.Reason,
		Notes:           req.Notes,
		Status:          advance.StatusPending,
		PaymentMethod:   req.PaymentMethod,
		RemainingAmount: req.Amount,
		CreatedBy:       session.UserID,
	}
	if req.TotalInstallments != nil {
		installments := *req.TotalInstallments
		a.DeductionSchedule = &advance.DeductionSchedule{
			TotalInstallments:     installments,
			InstallmentAmount:     req.Amount.DivRound(decimal.NewFromInt(int64(installments)), 2),
			RemainingInstallments: installments,
			StartDeductionDate:    now,
		}
	}

	created, err := s.advanceRepo.Create(ctx, a)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	slog.Info("advance requested", "advance_id", created.ID, "employee_id", created.EmployeeID)
	s.publishChanged("advance_created")

	return advance.ToResponse(created), nil
}

func (s *service) Approve(ctx context.Context, session auth.Session, id string) (advance.AdvanceResponse, error) {
	if session.Role != string(user.RoleAdmin) {
		return advance.AdvanceResponse{}, user.ErrAdminPrivilegeRequired
	}

	return s.transition(ctx, session, id, advance.StatusPending, advance.StatusApproved, "advance_approved")
}

func (s *service) Reject(ctx context.Context, session auth.Session, id string) (advance.AdvanceResponse, error) {
	if session.Role != string(user.RoleAdmin) {
		return advance.AdvanceResponse{}, user.ErrAdminPrivilegeRequired
	}

	return s.transition(ctx, session, id, advance.StatusPending, advance.StatusRejected, "advance_rejected")
}

func (s *service) MarkPaid(ctx context.Context, session auth.Session, id string) (advance.AdvanceResponse, error) {
	return s.transition(ctx, session, id, advance.StatusApproved, advance.StatusPaid, "advance_paid")
}

func (s *service) Cancel(ctx context.Context, id string) error {
	a, err := s.advanceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Only requests that have not been paid out can be withdrawn.
	switch a.Status {
	case advance.StatusPending, advance.StatusApproved:
	default:
		return advance.ErrAdvanceAlreadyFinal
	}

	if err := s.advanceRepo.UpdateStatus(ctx, id, advance.StatusCancelled, ""); err != nil {
		return err
	}

	slog.Info("advance cancelled", "advance_id", id)
	s.publishChanged("advance_cancelled")

	return nil
}

func (s *service) transition(ctx context.Context, session auth.Session, id string, from, to advance.Status, event string) (advance.AdvanceResponse, error) {
	a, err := s.advanceRepo.GetByID(ctx, id)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	if a.Status != from {
		switch from {
		case advance.StatusPending:
			return advance.AdvanceResponse{}, advance.ErrAdvanceNotPending
		default:
			return advance.AdvanceResponse{}, advance.ErrAdvanceNotApproved
		}
	}

	if err := s.advanceRepo.UpdateStatus(ctx, id, to, session.UserID); err != nil {
		return advance.AdvanceResponse{}, err
	}

	updated, err := s.advanceRepo.GetByID(ctx, id)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	slog.Info("advance status changed", "advance_id", id, "status", string(to))
	s.publishChanged(event)

	return advance.ToResponse(updated), nil
}

func (s *service) ActiveAmountFor(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	advances, err := s.advanceRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return decimal.Zero, err
	}

	return advance.ActiveAmount(advances, employeeID, from, to), nil
}

func (s *service) Subscribe(ctx context.Context) (<-chan []advance.AdvanceResponse, func(), error) {
	current, err := s.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	events, cleanup := s.hub.Subscribe(sse.TopicAdvances)
	out := make(chan []advance.AdvanceResponse, 1)
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
				snapshot, err := s.List(ctx)
				if err != nil {
					slog.Error("failed to refresh advance snapshot", "error", err)
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
	s.hub.Publish(sse.Event{Topic: sse.TopicAdvances, Event: event})
	s.hub.Publish(sse.Event{Topic: sse.TopicDashboard, Event: event})
}

func toResponses(advances []advance.Advance) []advance.AdvanceResponse {
	responses := make([]advance.AdvanceResponse, 0, len(advances))
	for _, a := range advances {
		responses = append(responses, advance.ToResponse(a))
	}
	return responses
}
