package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/advance"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/auth"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/discount"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/employee"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/payment"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/database"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/sse"
	"github.com/iepin-personal/planilla-backend-go/internal/repository/postgresql"
)

type service struct {
	db           *database.DB
	paymentRepo  payment.Repository
	employeeRepo employee.Repository
	discountRepo discount.Repository
	advanceRepo  advance.Repository
	hub          *sse.Hub
}

func NewService(
	db *database.DB,
	paymentRepo payment.Repository,
	employeeRepo employee.Repository,
	discountRepo discount.Repository,
	advanceRepo advance.Repository,
	hub *sse.Hub,
) payment.Service {
	return &service{
		db:           db,
		paymentRepo:  paymentRepo,
		employeeRepo: employeeRepo,
		discountRepo: discountRepo,
		advanceRepo:  advanceRepo,
		hub:          hub,
	}
}

func (s *service) List(ctx context.Context, filter payment.Filter) ([]payment.PaymentResponse, error) {
	payments, err := s.paymentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]payment.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, payment.ToResponse(p))
	}

	return responses, nil
}

func (s *service) Get(ctx context.Context, id string) (payment.PaymentResponse, error) {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	return payment.ToResponse(p), nil
}

func (s *service) Create(ctx context.Context, session auth.Session, req payment.CreatePaymentRequest) (payment.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payment.PaymentResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate, err = time.Parse(time.RFC3339, *req.PaymentDate)
		if err != nil {
			return payment.PaymentResponse{}, fmt.Errorf("failed to parse payment date: %w", err)
		}
	}

	discountSnapshots, err := s.buildDiscountSnapshots(ctx, emp.ID, req.ApplyDiscountIDs)
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	advanceSnapshots, deductedAdvances, err := s.buildAdvanceSnapshots(ctx, emp.ID, req.ApplyAdvanceIDs)
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	p, err := payment.NewPayment(
		uuid.NewString(), emp.ID, emp.FullName(), req.Amount, paymentDate,
		req.Period, payment.ParseMethod(req.Method), req.BankDetails,
		req.DigitalWalletDetails, discountSnapshots, advanceSnapshots,
		req.Notes, session.UserID,
	)
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	// The payment row and the applied-state of its deductions commit together
	// or not at all.
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err := s.paymentRepo.Create(txCtx, p)
		if err != nil {
			return err
		}
		p = created

		if len(req.ApplyDiscountIDs) > 0 {
			if err := s.discountRepo.MarkApplied(txCtx, req.ApplyDiscountIDs, p.ID); err != nil {
				return err
			}
		}
		for _, a := range deductedAdvances {
			if err := s.advanceRepo.ApplyDeduction(txCtx, a); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	slog.Info("payment created",
		"payment_id", p.ID,
		"employee_id", p.EmployeeID,
		"net_amount", p.NetAmount().String(),
	)
	s.publishChanged("payment_created")

	return payment.ToResponse(p), nil
}

func (s *service) buildDiscountSnapshots(ctx context.Context, employeeID string, ids []string) ([]payment.DiscountSnapshot, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	discounts, err := s.discountRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(discounts) != len(ids) {
		return nil, discount.ErrDiscountNotFound
	}

	now := time.Now()
	snapshots := make([]payment.DiscountSnapshot, 0, len(discounts))
	for _, d := range discounts {
		if d.EmployeeID != employeeID {
			return nil, discount.ErrDiscountNotFound
		}
		if d.AppliedInPaymentID != nil {
			return nil, discount.ErrDiscountAlreadyApplied
		}
		if !d.ApplicableAt(now) {
			return nil, discount.ErrDiscountAlreadyInactive
		}
		snapshots = append(snapshots, payment.DiscountSnapshot{
			DiscountID: d.ID,
			Type:       string(d.Type),
			Amount:     d.Amount,
			Reason:     d.Reason,
		})
	}

	return snapshots, nil
}

// buildAdvanceSnapshots returns both the frozen snapshots for the payment row
// and the advances with the deduction already applied, ready to persist.
func (s *service) buildAdvanceSnapshots(ctx context.Context, employeeID string, ids []string) ([]payment.AdvanceSnapshot, []advance.Advance, error) {
	if len(ids) == 0 {
		return nil, nil, nil
	}

	advances, err := s.advanceRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	if len(advances) != len(ids) {
		return nil, nil, advance.ErrAdvanceNotFound
	}

	snapshots := make([]payment.AdvanceSnapshot, 0, len(advances))
	deducted := make([]advance.Advance, 0, len(advances))
	for _, a := range advances {
		if a.EmployeeID != employeeID {
			return nil, nil, advance.ErrAdvanceNotFound
		}
		if !a.Outstanding() {
			return nil, nil, advance.ErrAdvanceNotApproved
		}

		amount := a.NextDeduction()
		snapshots = append(snapshots, payment.AdvanceSnapshot{
			AdvanceID: a.ID,
			Amount:    amount,
			Reason:    a.Reason,
		})
		deducted = append(deducted, a.Deduct(amount))
	}

	return snapshots, deducted, nil
}

func (s *service) Complete(ctx context.Context, id string) (payment.PaymentResponse, error) {
	return s.transition(ctx, id, payment.StatusCompleted, "payment_completed")
}

func (s *service) Fail(ctx context.Context, id string) (payment.PaymentResponse, error) {
	return s.transition(ctx, id, payment.StatusFailed, "payment_failed")
}

func (s *service) Cancel(ctx context.Context, id string) (payment.PaymentResponse, error) {
	return s.transition(ctx, id, payment.StatusCancelled, "payment_cancelled")
}

func (s *service) transition(ctx context.Context, id string, target payment.Status, event string) (payment.PaymentResponse, error) {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	switch {
	case p.Status == payment.StatusCancelled && target == payment.StatusCancelled:
		return payment.PaymentResponse{}, payment.ErrPaymentAlreadyCancelled
	case p.Status != payment.StatusPending:
		return payment.PaymentResponse{}, payment.ErrPaymentNotPending
	}

	if err := s.paymentRepo.UpdateStatus(ctx, id, target); err != nil {
		return payment.PaymentResponse{}, err
	}
	p.Status = target

	slog.Info("payment status changed", "payment_id", id, "status", string(target))
	s.publishChanged(event)

	return payment.ToResponse(p), nil
}

func (s *service) Subscribe(ctx context.Context) (<-chan []payment.PaymentResponse, func(), error) {
	current, err := s.List(ctx, payment.Filter{})
	if err != nil {
		return nil, nil, err
	}

	events, cleanup := s.hub.Subscribe(sse.TopicPayments)
	out := make(chan []payment.PaymentResponse, 1)
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
				snapshot, err := s.List(ctx, payment.Filter{})
				if err != nil {
					slog.Error("failed to refresh payment snapshot", "error", err)
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
	s.hub.Publish(sse.Event{Topic: sse.TopicPayments, Event: event})
	s.hub.Publish(sse.Event{Topic: sse.TopicDashboard, Event: event})
}
