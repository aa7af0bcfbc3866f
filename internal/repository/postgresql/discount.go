package postgresql

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/discount"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/database"
)

type discountRepository struct {
	db *database.DB
}

func NewDiscountRepository(db *database.DB) discount.Repository {
	return &discountRepository{db: db}
}

const discountColumns = `
	id, employee_id, employee_name, amount, discount_type, reason,
	description, is_recurring, start_date, end_date, is_active,
	applied_in_payment_id, created_at, created_by
`

func scanDiscount(row pgx.Row) (discount.Discount, error) {
	var d discount.Discount
	var typ string

	err := row.Scan(
		&d.ID, &d.EmployeeID, &d.EmployeeName, &d.Amount, &typ, &d.Reason,
		&d.Description, &d.IsRecurring, &d.StartDate, &d.EndDate, &d.IsActive,
		&d.AppliedInPaymentID, &d.CreatedAt, &d.CreatedBy,
	)
	if err != nil {
		return discount.Discount{}, err
	}

	d.Type = discount.ParseType(typ)

	return d, nil
}

func (r *discountRepository) collect(ctx context.Context, query string, args ...interface{}) ([]discount.Discount, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}
	defer rows.Close()

	var discounts []discount.Discount
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			slog.Warn("skipping malformed discount row", "error", err)
			continue
		}
		discounts = append(discounts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read discounts: %w", err)
	}

	return discounts, nil
}

func (r *discountRepository) List(ctx context.Context, includeInactive bool) ([]discount.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts`
	if !includeInactive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY created_at DESC`

	return r.collect(ctx, query)
}

func (r *discountRepository) ListByEmployee(ctx context.Context, employeeID string, activeOnly bool) ([]discount.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts WHERE employee_id = $1`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY created_at DESC`

	return r.collect(ctx, query, employeeID)
}

func (r *discountRepository) GetByID(ctx context.Context, id string) (discount.Discount, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + discountColumns + ` FROM discounts WHERE id = $1`

	d, err := scanDiscount(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return discount.Discount{}, discount.ErrDiscountNotFound
		}
		return discount.Discount{}, fmt.Errorf("failed to get discount: %w", err)
	}

	return d, nil
}

func (r *discountRepository) GetByIDs(ctx context.Context, ids []string) ([]discount.Discount, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + discountColumns + ` FROM discounts WHERE id = ANY($1)`

	return r.collect(ctx, query, ids)
}

func (r *discountRepository) Create(ctx context.Context, d discount.Discount) (discount.Discount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO discounts (
			id, employee_id, employee_name, amount, discount_type, reason,
			description, is_recurring, start_date, end_date, is_active, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		d.ID, d.EmployeeID, d.EmployeeName, d.Amount, string(d.Type), d.Reason,
		d.Description, d.IsRecurring, d.StartDate, d.EndDate, d.IsActive, d.CreatedBy,
	).Scan(&d.CreatedAt)
	if err != nil {
		return discount.Discount{}, fmt.Errorf("failed to create discount: %w", err)
	}

	return d, nil
}

func (r *discountRepository) Update(ctx context.Context, req discount.UpdateDiscountRequest) error {
	q := GetQuerier(ctx, r.db)

	var sets []string
	var args []interface{}
	argIdx := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.Amount != nil {
		addSet("amount", *req.Amount)
	}
	if req.Reason != nil {
		addSet("reason", *req.Reason)
	}
	if req.Description != nil {
		addSet("description", *req.Description)
	}
	if req.EndDate != nil {
		end, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return fmt.Errorf("failed to parse end date: %w", err)
		}
		addSet("end_date", end)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, req.ID)
	query := fmt.Sprintf(
		`UPDATE discounts SET %s WHERE id = $%d RETURNING id`,
		strings.Join(sets, ", "), argIdx,
	)

	var id string
	if err := q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if err == pgx.ErrNoRows {
			return discount.ErrDiscountNotFound
		}
		return fmt.Errorf("failed to update discount: %w", err)
	}

	return nil
}

func (r *discountRepository) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	var updatedID string
	err := q.QueryRow(ctx,
		`UPDATE discounts SET is_active = $2 WHERE id = $1 RETURNING id`,
		id, active,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return discount.ErrDiscountNotFound
		}
		return fmt.Errorf("failed to update discount: %w", err)
	}

	return nil
}

func (r *discountRepository) MarkApplied(ctx context.Context, ids []string, paymentID string) error {
	if len(ids) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE discounts SET is_active = false, applied_in_payment_id = $2 WHERE id = ANY($1)`,
		ids, paymentID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark discounts applied: %w", err)
	}

	return nil
}
