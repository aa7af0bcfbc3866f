package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/dashboard"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/payment"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.Repository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) PendingBaseSalaryTotal(ctx context.Context, monthStart, monthEnd time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(e.base_salary), 0)
		FROM employees e
		WHERE e.is_active = true
		  AND NOT EXISTS (
			SELECT 1 FROM payments p
			WHERE p.employee_id = e.id
			  AND p.status = $1
			  AND p.payment_date BETWEEN $2 AND $3
		  )
	`

	var total decimal.Decimal
	err := q.QueryRow(ctx, query, string(payment.StatusCompleted), monthStart, monthEnd).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum pending salaries: %w", err)
	}

	return total, nil
}

func (r *dashboardRepository) CompletedTotalInRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE status = $1 AND payment_date BETWEEN $2 AND $3
	`

	var total decimal.Decimal
	err := q.QueryRow(ctx, query, string(payment.StatusCompleted), from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum completed payments: %w", err)
	}

	return total, nil
}

func (r *dashboardRepository) MethodDistributionInRange(ctx context.Context, from, to time.Time) ([]dashboard.MethodBucket, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT payment_method, COUNT(*), COALESCE(SUM(amount), 0)
		FROM payments
		WHERE status = $1 AND payment_date BETWEEN $2 AND $3
		GROUP BY payment_method
		ORDER BY payment_method
	`

	rows, err := q.Query(ctx, query, string(payment.StatusCompleted), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to group payments by method: %w", err)
	}
	defer rows.Close()

	var buckets []dashboard.MethodBucket
	for rows.Next() {
		var b dashboard.MethodBucket
		if err := rows.Scan(&b.Method, &b.Count, &b.TotalAmount); err != nil {
			return nil, fmt.Errorf("failed to read method bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read method buckets: %w", err)
	}

	return buckets, nil
}

func (r *dashboardRepository) RecentPayments(ctx context.Context, limit int) ([]dashboard.RecentPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_name, amount, payment_date
		FROM payments
		ORDER BY payment_date DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent payments: %w", err)
	}
	defer rows.Close()

	var recents []dashboard.RecentPayment
	for rows.Next() {
		var rp dashboard.RecentPayment
		if err := rows.Scan(&rp.EmployeeName, &rp.Amount, &rp.PaymentDate); err != nil {
			return nil, fmt.Errorf("failed to read recent payment: %w", err)
		}
		recents = append(recents, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recent payments: %w", err)
	}

	return recents, nil
}

// The cache is a single-row table keyed by a fixed id so the upsert stays a
// one-liner.
func (r *dashboardRepository) SaveSnapshot(ctx context.Context, stats dashboard.Statistics) error {
	q := GetQuerier(ctx, r.db)

	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode dashboard snapshot: %w", err)
	}

	query := `
		INSERT INTO dashboard_cache (id, snapshot, computed_at)
		VALUES ('current', $1, $2)
		ON CONFLICT (id) DO UPDATE SET snapshot = $1, computed_at = $2
	`

	if _, err := q.Exec(ctx, query, raw, stats.ComputedAt); err != nil {
		return fmt.Errorf("failed to save dashboard snapshot: %w", err)
	}

	return nil
}

func (r *dashboardRepository) GetSnapshot(ctx context.Context) (dashboard.Statistics, error) {
	q := GetQuerier(ctx, r.db)

	var raw []byte
	err := q.QueryRow(ctx, `SELECT snapshot FROM dashboard_cache WHERE id = 'current'`).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return dashboard.Statistics{}, dashboard.ErrSnapshotNotFound
		}
		return dashboard.Statistics{}, fmt.Errorf("failed to get dashboard snapshot: %w", err)
	}

	var stats dashboard.Statistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		return dashboard.Statistics{}, fmt.Errorf("failed to decode dashboard snapshot: %w", err)
	}

	return stats, nil
}
