package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/advance"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/database"
)

type advanceRepository struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.Repository {
	return &advanceRepository{db: db}
}

const advanceColumns = `
	id, employee_id, employee_name, amount, request_date, approved_date,
	paid_date, reason, notes, status, payment_method, deduction_schedule,
	remaining_amount, is_fully_deducted, created_at, approved_by, created_by
`

func scanAdvance(row pgx.Row) (advance.Advance, error) {
	var a advance.Advance
	var status string
	var scheduleRaw []byte

	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.EmployeeName, &a.Amount, &a.RequestDate, &a.ApprovedDate,
		&a.PaidDate, &a.Reason, &a.Notes, &status, &a.PaymentMethod, &scheduleRaw,
		&a.RemainingAmount, &a.IsFullyDeducted, &a.CreatedAt, &a.ApprovedBy, &a.CreatedBy,
	)
	if err != nil {
		return advance.Advance{}, err
	}

	a.Status = advance.ParseStatus(status)

	if len(scheduleRaw) > 0 {
		var schedule advance.DeductionSchedule
		if err := json.Unmarshal(scheduleRaw, &schedule); err == nil {
			a.DeductionSchedule = &schedule
		}
	}

	return a, nil
}

func (r *advanceRepository) collect(ctx context.Context, query string, args ...interface{}) ([]advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	var advances []advance.Advance
	for rows.Next() {
		a, err := scanAdvance(rows)
		if err != nil {
			slog.Warn("skipping malformed advance row", "error", err)
			continue
		}
		advances = append(advances, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read advances: %w", err)
	}

	return advances, nil
}

func (r *advanceRepository) List(ctx context.Context) ([]advance.Advance, error) {
	query := `SELECT ` + advanceColumns + ` FROM advances ORDER BY request_date DESC`

	return r.collect(ctx, query)
}

func (r *advanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]advance.Advance, error) {
	query := `SELECT ` + advanceColumns + ` FROM advances WHERE employee_id = $1 ORDER BY request_date DESC`

	return r.collect(ctx, query, employeeID)
}

func (r *advanceRepository) GetByID(ctx context.Context, id string) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + advanceColumns + ` FROM advances WHERE id = $1`

	a, err := scanAdvance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return advance.Advance{}, advance.ErrAdvanceNotFound
		}
		return advance.Advance{}, fmt.Errorf("failed to get advance: %w", err)
	}

	return a, nil
}

func (r *advanceRepository) GetByIDs(ctx context.Context, ids []string) ([]advance.Advance, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + advanceColumns + ` FROM advances WHERE id = ANY($1)`

	return r.collect(ctx, query, ids)
}

func (r *advanceRepository) Create(ctx context.Context, a advance.Advance) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	var scheduleRaw []byte
	if a.DeductionSchedule != nil {
		var err error
		scheduleRaw, err = json.Marshal(a.DeductionSchedule)
		if err != nil {
			return advance.Advance{}, fmt.Errorf("failed to encode deduction schedule: %w", err)
		}
	}

	query := `
		INSERT INTO advances (
			id, employee_id, employee_name, amount, request_date, reason, notes,
			status, payment_method, deduction_schedule, remaining_amount, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		a.ID, a.EmployeeID, a.EmployeeName, a.Amount, a.RequestDate, a.Reason, a.Notes,
		string(a.Status), a.PaymentMethod, scheduleRaw, a.RemainingAmount, a.CreatedBy,
	).Scan(&a.CreatedAt)
	if err != nil {
		return advance.Advance{}, fmt.Errorf("failed to create advance: %w", err)
	}

	return a, nil
}

func (r *advanceRepository) UpdateStatus(ctx context.Context, id string, status advance.Status, actorID string) error {
	q := GetQuerier(ctx, r.db)

	now := time.Now()

	query := `UPDATE advances SET status = $2`
	args := []interface{}{id, string(status)}

	switch status {
	case advance.StatusApproved:
		query += `, approved_date = $3, approved_by = $4`
		args = append(args, now, actorID)
	case advance.StatusPaid:
		query += `, paid_date = $3`
		args = append(args, now)
	}

	query += ` WHERE id = $1 RETURNING id`

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return advance.ErrAdvanceNotFound
		}
		return fmt.Errorf("failed to update advance status: %w", err)
	}

	return nil
}

func (r *advanceRepository) ApplyDeduction(ctx context.Context, a advance.Advance) error {
	q := GetQuerier(ctx, r.db)

	var scheduleRaw []byte
	if a.DeductionSchedule != nil {
		var err error
		scheduleRaw, err = json.Marshal(a.DeductionSchedule)
		if err != nil {
			return fmt.Errorf("failed to encode deduction schedule: %w", err)
		}
	}

	query := `
		UPDATE advances
		SET remaining_amount = $2, is_fully_deducted = $3, deduction_schedule = $4
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, a.ID, a.RemainingAmount, a.IsFullyDeducted, scheduleRaw).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return advance.ErrAdvanceNotFound
		}
		return fmt.Errorf("failed to apply advance deduction: %w", err)
	}

	return nil
}
