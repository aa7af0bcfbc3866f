package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/dashboard"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/payment"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/period"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/sse"
)

// Subscribe is the live path. It emits a fast partial snapshot built from two
// cheap counts, then the first full snapshot, then a recomputed snapshot after
// every change on any collection feeding the dashboard.
func (s *service) Subscribe(ctx context.Context) (<-chan dashboard.Statistics, func(), error) {
	partial, err := s.partialSnapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	events, cleanup := s.hub.Subscribe(sse.TopicDashboard)
	out := make(chan dashboard.Statistics, 2)
	out <- partial

	go func() {
		defer close(out)

		full, err := s.computeFromCollections(ctx)
		if err != nil {
			slog.Error("failed to compute dashboard snapshot", "error", err)
		} else {
			select {
			case out <- full:
			case <-ctx.Done():
				return
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				snapshot, err := s.computeFromCollections(ctx)
				if err != nil {
					slog.Error("failed to recompute dashboard snapshot", "error", err)
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

func (s *service) partialSnapshot(ctx context.Context) (dashboard.Statistics, error) {
	now := time.Now()
	dayStart, dayEnd := period.DayRange(now)

	totalEmployees, err := s.employeeRepo.CountActive(ctx)
	if err != nil {
		return dashboard.Statistics{}, err
	}

	todayCount, err := s.paymentRepo.CountInRange(ctx, dayStart, dayEnd)
	if err != nil {
		return dashboard.Statistics{}, err
	}

	return PartialStatistics(totalEmployees, todayCount, now), nil
}

// computeFromCollections pulls both collections and derives the snapshot in
// memory, so the live path never repeats the one-shot query fan-out per event.
func (s *service) computeFromCollections(ctx context.Context) (dashboard.Statistics, error) {
	employees, err := s.employeeRepo.List(ctx, true)
	if err != nil {
		return dashboard.Statistics{}, err
	}

	payments, err := s.paymentRepo.List(ctx, payment.Filter{})
	if err != nil {
		return dashboard.Statistics{}, err
	}

	return ComputeStatistics(employees, payments, time.Now()), nil
}
