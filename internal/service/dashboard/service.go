package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/dashboard"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/employee"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/payment"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/period"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/sse"
)

type service struct {
	dashboardRepo dashboard.Repository
	employeeRepo  employee.Repository
	paymentRepo   payment.Repository
	hub           *sse.Hub
}

func NewService(
	dashboardRepo dashboard.Repository,
	employeeRepo employee.Repository,
	paymentRepo payment.Repository,
	hub *sse.Hub,
) dashboard.Service {
	return &service{
		dashboardRepo: dashboardRepo,
		employeeRepo:  employeeRepo,
		paymentRepo:   paymentRepo,
		hub:           hub,
	}
}

// GetStatistics runs the one-shot pull. Every aggregate is an independent
// query, so they all fan out concurrently and merge at the end.
func (s *service) GetStatistics(ctx context.Context) (dashboard.Statistics, error) {
	now := time.Now()
	monthStart, monthEnd := period.MonthRange(now)
	dayStart, dayEnd := period.DayRange(now)
	prevYear, prevMonth := period.PreviousMonth(now.Year(), now.Month())
	prevStart, prevEnd := period.MonthRange(time.Date(prevYear, prevMonth, 1, 0, 0, 0, 0, now.Location()))

	var (
		pendingTotal   decimal.Decimal
		currentTotal   decimal.Decimal
		previousTotal  decimal.Decimal
		totalEmployees int64
		todayCount     int64
		buckets        []dashboard.MethodBucket
		recents        []dashboard.RecentPayment
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		pendingTotal, err = s.dashboardRepo.PendingBaseSalaryTotal(gCtx, monthStart, monthEnd)
		return err
	})
	g.Go(func() (err error) {
		currentTotal, err = s.dashboardRepo.CompletedTotalInRange(gCtx, monthStart, monthEnd)
		return err
	})
	g.Go(func() (err error) {
		previousTotal, err = s.dashboardRepo.CompletedTotalInRange(gCtx, prevStart, prevEnd)
		return err
	})
	g.Go(func() (err error) {
		totalEmployees, err = s.employeeRepo.CountActive(gCtx)
		return err
	})
	g.Go(func() (err error) {
		todayCount, err = s.paymentRepo.CountInRange(gCtx, dayStart, dayEnd)
		return err
	})
	g.Go(func() (err error) {
		buckets, err = s.dashboardRepo.MethodDistributionInRange(gCtx, monthStart, monthEnd)
		return err
	})
	g.Go(func() (err error) {
		recents, err = s.dashboardRepo.RecentPayments(gCtx, recentActivityLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.Statistics{}, fmt.Errorf("failed to aggregate dashboard statistics: %w", err)
	}

	dist := make([]dashboard.MethodDistribution, 0, len(buckets))
	for _, b := range buckets {
		d := dashboard.MethodDistribution{
			Method:      string(payment.ParseMethod(b.Method)),
			Count:       b.Count,
			TotalAmount: b.TotalAmount,
		}
		if !currentTotal.IsZero() {
			d.Percentage = b.TotalAmount.Div(currentTotal).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		dist = append(dist, d)
	}

	activity := make([]dashboard.ActivityItem, 0, len(recents))
	for _, rp := range recents {
		activity = append(activity, dashboard.ActivityItem{
			Title:        "Pago realizado",
			Description:  fmt.Sprintf("Pago a %s por %s", rp.EmployeeName, period.FormatPEN(rp.Amount)),
			Amount:       rp.Amount,
			Timestamp:    rp.PaymentDate,
			RelativeTime: period.RelativeTime(rp.PaymentDate, now),
		})
	}

	return dashboard.Statistics{
		TotalPendingAmount:   pendingTotal,
		CurrentMonthPayments: currentTotal,
		TotalEmployees:       totalEmployees,
		TodayPayments:        todayCount,
		RecentActivity:       activity,
		MonthlyComparison:    compareMonths(currentTotal, previousTotal),
		MethodDistribution:   dist,
		ComputedAt:           now,
	}, nil
}

func (s *service) GetCachedStatistics(ctx context.Context) (dashboard.Statistics, error) {
	return s.dashboardRepo.GetSnapshot(ctx)
}

func (s *service) RefreshCache(ctx context.Context) error {
	stats, err := s.GetStatistics(ctx)
	if err != nil {
		return err
	}

	if err := s.dashboardRepo.SaveSnapshot(ctx, stats); err != nil {
		return err
	}

	slog.Debug("dashboard cache refreshed", "computed_at", stats.ComputedAt)
	return nil
}

func (s *service) GetEmployeeStatistics(ctx context.Context, employeeID string) (dashboard.EmployeeStatistics, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return dashboard.EmployeeStatistics{}, err
	}

	payments, err := s.paymentRepo.List(ctx, payment.Filter{EmployeeID: &employeeID})
	if err != nil {
		return dashboard.EmployeeStatistics{}, err
	}

	return ComputeEmployeeStatistics(emp, payments, time.Now()), nil
}
