package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/payment"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/database"
)

type paymentRepository struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) payment.Repository {
	return &paymentRepository{db: db}
}

const paymentColumns = `
	id, employee_id, employee_name, amount, payment_date,
	period_month, period_year, period_description, payment_method,
	bank_details, wallet_details, discounts, advances, notes, status,
	created_at, created_by
`

func scanPayment(row pgx.Row) (payment.Payment, error) {
	var p payment.Payment
	var method, status string
	var bankRaw, walletRaw, discountsRaw, advancesRaw []byte

	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.EmployeeName, &p.Amount, &p.PaymentDate,
		&p.Period.Month, &p.Period.Year, &p.Period.Description, &method,
		&bankRaw, &walletRaw, &discountsRaw, &advancesRaw, &p.Notes, &status,
		&p.CreatedAt, &p.CreatedBy,
	)
	if err != nil {
		return payment.Payment{}, err
	}

	// Unknown persisted enum values decode to their documented defaults.
	p.Method = payment.ParseMethod(method)
	p.Status = payment.ParseStatus(status)

	if len(bankRaw) > 0 {
		var bank payment.BankDetails
		if err := json.Unmarshal(bankRaw, &bank); err == nil {
			p.BankDetails = &bank
		}
	}
	if len(walletRaw) > 0 {
		var wallet payment.DigitalWalletDetails
		if err := json.Unmarshal(walletRaw, &wallet); err == nil {
			p.DigitalWalletDetails = &wallet
		}
	}
	if len(discountsRaw) > 0 {
		if err := json.Unmarshal(discountsRaw, &p.Discounts); err != nil {
			return payment.Payment{}, fmt.Errorf("bad discount snapshots: %w", err)
		}
	}
	if len(advancesRaw) > 0 {
		if err := json.Unmarshal(advancesRaw, &p.Advances); err != nil {
			return payment.Payment{}, fmt.Errorf("bad advance snapshots: %w", err)
		}
	}

	return p, nil
}

func (r *paymentRepository) List(ctx context.Context, filter payment.Filter) ([]payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + paymentColumns + ` FROM payments`
	var conds []string
	var args []interface{}
	argIdx := 1

	addCond := func(cond string, value interface{}) {
		conds = append(conds, fmt.Sprintf(cond, argIdx))
		args = append(args, value)
		argIdx++
	}

	if filter.EmployeeID != nil {
		addCond("employee_id = $%d", *filter.EmployeeID)
	}
	if filter.Status != nil {
		addCond("status = $%d", string(*filter.Status))
	}
	if filter.From != nil {
		addCond("payment_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		addCond("payment_date <= $%d", *filter.To)
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY payment_date DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return collectPayments(rows)
}

func collectPayments(rows pgx.Rows) ([]payment.Payment, error) {
	defer rows.Close()

	var payments []payment.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			// Malformed rows are dropped, not fatal for the whole read.
			slog.Warn("skipping malformed payment row", "error", err)
			continue
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payments: %w", err)
	}

	return payments, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	p, err := scanPayment(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payment.Payment{}, payment.ErrPaymentNotFound
		}
		return payment.Payment{}, fmt.Errorf("failed to get payment: %w", err)
	}

	return p, nil
}

func (r *paymentRepository) Create(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	var bankRaw, walletRaw []byte
	var err error
	if p.BankDetails != nil {
		if bankRaw, err = json.Marshal(p.BankDetails); err != nil {
			return payment.Payment{}, fmt.Errorf("failed to encode bank details: %w", err)
		}
	}
	if p.DigitalWalletDetails != nil {
		if walletRaw, err = json.Marshal(p.DigitalWalletDetails); err != nil {
			return payment.Payment{}, fmt.Errorf("failed to encode wallet details: %w", err)
		}
	}
	discountsRaw, err := json.Marshal(p.Discounts)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("failed to encode discount snapshots: %w", err)
	}
	advancesRaw, err := json.Marshal(p.Advances)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("failed to encode advance snapshots: %w", err)
	}

	query := `
		INSERT INTO payments (
			id, employee_id, employee_name, amount, payment_date,
			period_month, period_year, period_description, payment_method,
			bank_details, wallet_details, discounts, advances, notes, status, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at
	`

	err = q.QueryRow(ctx, query,
		p.ID, p.EmployeeID, p.EmployeeName, p.Amount, p.PaymentDate,
		p.Period.Month, p.Period.Year, p.Period.Description, string(p.Method),
		bankRaw, walletRaw, discountsRaw, advancesRaw, p.Notes, string(p.Status), p.CreatedBy,
	).Scan(&p.CreatedAt)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("failed to create payment: %w", err)
	}

	return p, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, id string, status payment.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payments
		SET status = $2
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, string(status)).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payment.ErrPaymentNotFound
		}
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	return nil
}

func (r *paymentRepository) CountInRange(ctx context.Context, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM payments WHERE payment_date BETWEEN $1 AND $2`,
		from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}

	return count, nil
}
