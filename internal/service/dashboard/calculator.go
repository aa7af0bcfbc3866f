package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/dashboard"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/employee"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/payment"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/period"
)

const recentActivityLimit = 3

// ComputeStatistics derives a full dashboard snapshot from in-memory employee
// and payment collections as of "now". Inputs are never mutated; calling it
// twice with the same inputs yields identical output.
func ComputeStatistics(employees []employee.Employee, payments []payment.Payment, now time.Time) dashboard.Statistics {
	monthStart, monthEnd := period.MonthRange(now)
	dayStart, dayEnd := period.DayRange(now)

	var totalEmployees int64
	var active []employee.Employee
	for _, e := range employees {
		if e.IsActive {
			active = append(active, e)
			totalEmployees++
		}
	}

	// Completed payments dated in the current month.
	var monthly []payment.Payment
	currentMonthTotal := decimal.Zero
	for _, p := range payments {
		if p.Status == payment.StatusCompleted && period.InRange(p.PaymentDate, monthStart, monthEnd) {
			monthly = append(monthly, p)
			currentMonthTotal = currentMonthTotal.Add(p.Amount)
		}
	}

	// An active employee is pending for the whole month unless at least one
	// completed payment exists for them this month, regardless of amount.
	paidThisMonth := make(map[string]bool, len(monthly))
	for _, p := range monthly {
		paidThisMonth[p.EmployeeID] = true
	}
	pendingTotal := decimal.Zero
	for _, e := range active {
		if !paidThisMonth[e.ID] {
			pendingTotal = pendingTotal.Add(e.BaseSalary)
		}
	}

	// Today's activity counts payments of every status.
	var todayCount int64
	for _, p := range payments {
		if period.InRange(p.PaymentDate, dayStart, dayEnd) {
			todayCount++
		}
	}

	prevYear, prevMonth := period.PreviousMonth(now.Year(), now.Month())
	prevStart, prevEnd := period.MonthRange(time.Date(prevYear, prevMonth, 1, 0, 0, 0, 0, now.Location()))
	previousTotal := decimal.Zero
	for _, p := range payments {
		if p.Status == payment.StatusCompleted && period.InRange(p.PaymentDate, prevStart, prevEnd) {
			previousTotal = previousTotal.Add(p.Amount)
		}
	}

	return dashboard.Statistics{
		TotalPendingAmount:   pendingTotal,
		CurrentMonthPayments: currentMonthTotal,
		TotalEmployees:       totalEmployees,
		TodayPayments:        todayCount,
		RecentActivity:       recentActivity(payments, now),
		MonthlyComparison:    compareMonths(currentMonthTotal, previousTotal),
		MethodDistribution:   methodDistribution(monthly, currentMonthTotal),
		ComputedAt:           now,
	}
}

// PartialStatistics is the fast snapshot the live path emits before the first
// full computation finishes: employee count and today's count only.
func PartialStatistics(totalEmployees, todayPayments int64, now time.Time) dashboard.Statistics {
	return dashboard.Statistics{
		TotalPendingAmount:   decimal.Zero,
		CurrentMonthPayments: decimal.Zero,
		TotalEmployees:       totalEmployees,
		TodayPayments:        todayPayments,
		MonthlyComparison:    dashboard.MonthlyComparison{CurrentMonth: decimal.Zero, PreviousMonth: decimal.Zero},
		Partial:              true,
		ComputedAt:           now,
	}
}

func compareMonths(current, previous decimal.Decimal) dashboard.MonthlyComparison {
	var change float64
	switch {
	case previous.IsZero() && current.IsZero():
		change = 0
	case previous.IsZero():
		change = 100
	default:
		change = current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}
	return dashboard.MonthlyComparison{
		CurrentMonth:     current,
		PreviousMonth:    previous,
		PercentageChange: change,
	}
}

// methodDistribution groups the month's completed payments by method.
// Methods without payments are omitted rather than emitted with zeros.
func methodDistribution(monthly []payment.Payment, monthTotal decimal.Decimal) []dashboard.MethodDistribution {
	buckets := make(map[payment.Method]*dashboard.MethodDistribution)
	for _, p := range monthly {
		b, ok := buckets[p.Method]
		if !ok {
			b = &dashboard.MethodDistribution{Method: string(p.Method), TotalAmount: decimal.Zero}
			buckets[p.Method] = b
		}
		b.Count++
		b.TotalAmount = b.TotalAmount.Add(p.Amount)
	}

	dist := make([]dashboard.MethodDistribution, 0, len(buckets))
	for _, b := range buckets {
		if !monthTotal.IsZero() {
			b.Percentage = b.TotalAmount.Div(monthTotal).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		dist = append(dist, *b)
	}
	sort.Slice(dist, func(i, j int) bool { return dist[i].Method < dist[j].Method })
	return dist
}

// recentActivity renders the latest payments, every status included, as
// generic activity entries, most recent first.
func recentActivity(payments []payment.Payment, now time.Time) []dashboard.ActivityItem {
	sorted := make([]payment.Payment, len(payments))
	copy(sorted, payments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PaymentDate.After(sorted[j].PaymentDate)
	})

	limit := recentActivityLimit
	if len(sorted) < limit {
		limit = len(sorted)
	}

	items := make([]dashboard.ActivityItem, 0, limit)
	for _, p := range sorted[:limit] {
		items = append(items, dashboard.ActivityItem{
			Title:        "Pago realizado",
			Description:  fmt.Sprintf("Pago a %s por %s", p.EmployeeName, period.FormatPEN(p.Amount)),
			Amount:       p.Amount,
			Timestamp:    p.PaymentDate,
			RelativeTime: period.RelativeTime(p.PaymentDate, now),
		})
	}
	return items
}

// ComputeEmployeeStatistics derives the per-employee lifetime aggregate from
// the employee record and all of their payments.
//
// TotalPayments counts completed payments only, while discount and advance
// totals accumulate across every status; the source system behaves this way
// and downstream reports depend on it.
func ComputeEmployeeStatistics(emp employee.Employee, payments []payment.Payment, now time.Time) dashboard.EmployeeStatistics {
	stats := dashboard.EmployeeStatistics{
		EmployeeID:     emp.ID,
		EmployeeName:   emp.FullName(),
		TotalPayments:  decimal.Zero,
		TotalDiscounts: decimal.Zero,
		TotalAdvances:  decimal.Zero,
	}

	var last *time.Time
	paidThisMonth := false
	for _, p := range payments {
		if p.Status == payment.StatusCompleted {
			stats.TotalPayments = stats.TotalPayments.Add(p.Amount)
		}
		stats.TotalDiscounts = stats.TotalDiscounts.Add(p.TotalDiscounts())
		stats.TotalAdvances = stats.TotalAdvances.Add(p.TotalAdvances())

		if last == nil || p.PaymentDate.After(*last) {
			d := p.PaymentDate
			last = &d
		}
		if period.SameMonth(p.PaymentDate, now) {
			paidThisMonth = true
		}
	}
	stats.LastPaymentDate = last

	if paidThisMonth {
		stats.PendingAmount = decimal.Zero
	} else {
		stats.PendingAmount = emp.BaseSalary
	}

	history := make([]dashboard.PaymentHistoryEntry, 0, len(payments))
	for _, p := range payments {
		history = append(history, dashboard.PaymentHistoryEntry{
			Month:       int(p.PaymentDate.Month()),
			Year:        p.PaymentDate.Year(),
			Amount:      p.Amount,
			PaymentDate: p.PaymentDate,
			Status:      string(p.Status),
		})
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].PaymentDate.After(history[j].PaymentDate)
	})
	stats.PaymentHistory = history

	return stats
}
