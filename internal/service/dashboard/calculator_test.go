package dashboard

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/employee"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/payment"
)

var testNow = time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

func activeEmployee(id string, baseSalary int64) employee.Employee {
	return employee.Employee{
		ID:         id,
		Name:       "Empleado",
		LastName:   id,
		BaseSalary: decimal.NewFromInt(baseSalary),
		IsActive:   true,
	}
}

func completedPayment(employeeID string, amount int64, date time.Time) payment.Payment {
	return payment.Payment{
		ID:           "pay-" + employeeID + date.Format("20060102"),
		EmployeeID:   employeeID,
		EmployeeName: "Empleado " + employeeID,
		Amount:       decimal.NewFromInt(amount),
		PaymentDate:  date,
		Method:       payment.MethodCash,
		Status:       payment.StatusCompleted,
	}
}

func TestComputeStatistics_PaidEmployeeNotPending(t *testing.T) {
	employees := []employee.Employee{activeEmployee("e1", 1000)}
	payments := []payment.Payment{completedPayment("e1", 1000, testNow.AddDate(0, 0, -3))}

	stats := ComputeStatistics(employees, payments, testNow)

	assert.True(t, stats.TotalPendingAmount.IsZero(), "pending should be zero, got %s", stats.TotalPendingAmount)
	assert.True(t, stats.CurrentMonthPayments.Equal(decimal.NewFromInt(1000)))
	assert.EqualValues(t, 1, stats.TotalEmployees)
}

func TestComputeStatistics_UnpaidEmployeePending(t *testing.T) {
	employees := []employee.Employee{activeEmployee("e1", 1000)}

	stats := ComputeStatistics(employees, nil, testNow)

	assert.True(t, stats.TotalPendingAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, stats.CurrentMonthPayments.IsZero())
}

func TestComputeStatistics_PartialPaymentStillNotPending(t *testing.T) {
	// Any completed payment this month removes the employee from the pending
	// total, even when it is below the base salary.
	employees := []employee.Employee{activeEmployee("e1", 2000)}
	payments := []payment.Payment{completedPayment("e1", 50, testNow)}

	stats := ComputeStatistics(employees, payments, testNow)

	assert.True(t, stats.TotalPendingAmount.IsZero())
}

func TestComputeStatistics_InactiveEmployeesExcluded(t *testing.T) {
	inactive := activeEmployee("e2", 3000)
	inactive.IsActive = false
	employees := []employee.Employee{activeEmployee("e1", 1000), inactive}

	stats := ComputeStatistics(employees, nil, testNow)

	assert.EqualValues(t, 1, stats.TotalEmployees)
	assert.True(t, stats.TotalPendingAmount.Equal(decimal.NewFromInt(1000)))
}

func TestComputeStatistics_PendingAndCancelledDontCountAsMonthly(t *testing.T) {
	employees := []employee.Employee{activeEmployee("e1", 1000)}
	pending := completedPayment("e1", 500, testNow)
	pending.Status = payment.StatusPending
	cancelled := completedPayment("e1", 500, testNow.AddDate(0, 0, -1))
	cancelled.Status = payment.StatusCancelled

	stats := ComputeStatistics(employees, []payment.Payment{pending, cancelled}, testNow)

	assert.True(t, stats.CurrentMonthPayments.IsZero())
	assert.True(t, stats.TotalPendingAmount.Equal(decimal.NewFromInt(1000)))
	// But both still count toward today's activity.
	assert.EqualValues(t, 1, stats.TodayPayments)
}

func TestComputeStatistics_TodayCountsAllStatuses(t *testing.T) {
	failed := completedPayment("e1", 100, testNow)
	failed.Status = payment.StatusFailed
	completed := completedPayment("e2", 200, testNow)
	yesterday := completedPayment("e3", 300, testNow.AddDate(0, 0, -1))

	stats := ComputeStatistics(nil, []payment.Payment{failed, completed, yesterday}, testNow)

	assert.EqualValues(t, 2, stats.TodayPayments)
}

func TestComputeStatistics_PercentageChangeEdgeCases(t *testing.T) {
	prevMonth := testNow.AddDate(0, -1, 0)

	cases := []struct {
		name     string
		previous int64
		current  int64
		want     float64
	}{
		{"both zero", 0, 0, 0},
		{"previous zero", 0, 50, 100},
		{"growth", 100, 150, 50},
		{"decline", 100, 50, -50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var payments []payment.Payment
			if tc.previous > 0 {
				payments = append(payments, completedPayment("e1", tc.previous, prevMonth))
			}
			if tc.current > 0 {
				payments = append(payments, completedPayment("e1", tc.current, testNow))
			}

			stats := ComputeStatistics(nil, payments, testNow)
			assert.InDelta(t, tc.want, stats.MonthlyComparison.PercentageChange, 1e-9)
		})
	}
}

func TestComputeStatistics_PreviousMonthWrapsYear(t *testing.T) {
	january := time.Date(2025, time.January, 10, 12, 0, 0, 0, time.UTC)
	december := time.Date(2024, time.December, 20, 12, 0, 0, 0, time.UTC)

	payments := []payment.Payment{
		completedPayment("e1", 200, january),
		completedPayment("e1", 100, december),
	}

	stats := ComputeStatistics(nil, payments, january)

	assert.True(t, stats.MonthlyComparison.PreviousMonth.Equal(decimal.NewFromInt(100)))
	assert.InDelta(t, 100, stats.MonthlyComparison.PercentageChange, 1e-9)
}

func TestComputeStatistics_MethodDistribution(t *testing.T) {
	cash := completedPayment("e1", 600, testNow)
	yape := completedPayment("e2", 400, testNow)
	yape.Method = payment.MethodYape

	stats := ComputeStatistics(nil, []payment.Payment{cash, yape}, testNow)

	require.Len(t, stats.MethodDistribution, 2)

	sumPct := 0.0
	sumAmount := decimal.Zero
	for _, d := range stats.MethodDistribution {
		sumPct += d.Percentage
		sumAmount = sumAmount.Add(d.TotalAmount)
	}
	assert.InDelta(t, 100, sumPct, 1e-9)
	assert.True(t, sumAmount.Equal(stats.CurrentMonthPayments))

	// Unused methods are omitted, not emitted with zeros.
	for _, d := range stats.MethodDistribution {
		assert.NotZero(t, d.Count)
	}
}

func TestComputeStatistics_DistributionZeroGuard(t *testing.T) {
	// No completed payments this month means no distribution and no division
	// by zero.
	old := completedPayment("e1", 100, testNow.AddDate(0, -2, 0))

	stats := ComputeStatistics(nil, []payment.Payment{old}, testNow)

	assert.Empty(t, stats.MethodDistribution)
}

func TestComputeStatistics_RecentActivity(t *testing.T) {
	p1 := completedPayment("e1", 100, testNow.AddDate(0, 0, -1))
	p2 := completedPayment("e2", 200, testNow.AddDate(0, 0, -2))
	p3 := completedPayment("e3", 300, testNow.AddDate(0, 0, -3))
	p4 := completedPayment("e4", 400, testNow.AddDate(0, 0, -4))

	stats := ComputeStatistics(nil, []payment.Payment{p3, p1, p4, p2}, testNow)

	require.Len(t, stats.RecentActivity, 3)
	assert.Equal(t, p1.PaymentDate, stats.RecentActivity[0].Timestamp)
	assert.Equal(t, p2.PaymentDate, stats.RecentActivity[1].Timestamp)
	assert.Equal(t, p3.PaymentDate, stats.RecentActivity[2].Timestamp)
	assert.Contains(t, stats.RecentActivity[0].Description, p1.EmployeeName)
}

func TestComputeStatistics_Idempotent(t *testing.T) {
	employees := []employee.Employee{activeEmployee("e1", 1000), activeEmployee("e2", 1500)}
	payments := []payment.Payment{
		completedPayment("e1", 1000, testNow),
		completedPayment("e2", 750, testNow.AddDate(0, -1, 0)),
	}

	first := ComputeStatistics(employees, payments, testNow)
	second := ComputeStatistics(employees, payments, testNow)

	assert.Equal(t, first, second)
}

func TestComputeStatistics_DoesNotMutateInputs(t *testing.T) {
	p1 := completedPayment("e1", 100, testNow.AddDate(0, 0, -5))
	p2 := completedPayment("e2", 200, testNow)
	payments := []payment.Payment{p1, p2}

	ComputeStatistics(nil, payments, testNow)

	assert.Equal(t, p1.ID, payments[0].ID)
	assert.Equal(t, p2.ID, payments[1].ID)
}

func TestPartialStatistics(t *testing.T) {
	stats := PartialStatistics(7, 2, testNow)

	assert.True(t, stats.Partial)
	assert.EqualValues(t, 7, stats.TotalEmployees)
	assert.EqualValues(t, 2, stats.TodayPayments)
	assert.True(t, stats.TotalPendingAmount.IsZero())
	assert.True(t, stats.CurrentMonthPayments.IsZero())
	assert.Empty(t, stats.RecentActivity)
	assert.Empty(t, stats.MethodDistribution)
}

func TestComputeEmployeeStatistics(t *testing.T) {
	emp := activeEmployee("e1", 1200)

	completed := completedPayment("e1", 1000, testNow.AddDate(0, -1, 0))
	completed.Discounts = []payment.DiscountSnapshot{{DiscountID: "d1", Amount: decimal.NewFromInt(100)}}

	failed := completedPayment("e1", 500, testNow.AddDate(0, -2, 0))
	failed.Status = payment.StatusFailed
	failed.Advances = []payment.AdvanceSnapshot{{AdvanceID: "a1", Amount: decimal.NewFromInt(50)}}

	stats := ComputeEmployeeStatistics(emp, []payment.Payment{completed, failed}, testNow)

	// Completed-only for payment totals, all statuses for discount/advance
	// totals.
	assert.True(t, stats.TotalPayments.Equal(decimal.NewFromInt(1000)))
	assert.True(t, stats.TotalDiscounts.Equal(decimal.NewFromInt(100)))
	assert.True(t, stats.TotalAdvances.Equal(decimal.NewFromInt(50)))

	require.NotNil(t, stats.LastPaymentDate)
	assert.Equal(t, completed.PaymentDate, *stats.LastPaymentDate)

	// No payment this month, so the full base salary is pending.
	assert.True(t, stats.PendingAmount.Equal(decimal.NewFromInt(1200)))

	require.Len(t, stats.PaymentHistory, 2)
	assert.Equal(t, int(completed.PaymentDate.Month()), stats.PaymentHistory[0].Month)
	assert.Equal(t, completed.PaymentDate.Year(), stats.PaymentHistory[0].Year)
	assert.Equal(t, string(payment.StatusFailed), stats.PaymentHistory[1].Status)
}

func TestComputeEmployeeStatistics_NeverPaid(t *testing.T) {
	emp := activeEmployee("e1", 900)

	stats := ComputeEmployeeStatistics(emp, nil, testNow)

	assert.True(t, stats.PendingAmount.Equal(decimal.NewFromInt(900)))
	assert.Nil(t, stats.LastPaymentDate)
	assert.True(t, stats.TotalPayments.IsZero())
	assert.Empty(t, stats.PaymentHistory)
}

func TestComputeEmployeeStatistics_AnyPaymentThisMonthClearsPending(t *testing.T) {
	emp := activeEmployee("e1", 900)
	p := completedPayment("e1", 300, testNow)
	p.Status = payment.StatusPending

	stats := ComputeEmployeeStatistics(emp, []payment.Payment{p}, testNow)

	assert.True(t, stats.PendingAmount.IsZero())
}
