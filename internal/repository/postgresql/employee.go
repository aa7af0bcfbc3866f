package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/employee"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, dni, name, last_name, position, base_salary, phone, address, email,
	bank_account, is_active, start_date, emergency_contact, notes,
	created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	var contactRaw []byte
	err := row.Scan(
		&e.ID, &e.DNI, &e.Name, &e.LastName, &e.Position, &e.BaseSalary,
		&e.Phone, &e.Address, &e.Email, &e.BankAccount, &e.IsActive,
		&e.StartDate, &contactRaw, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	if len(contactRaw) > 0 {
		var contact employee.EmergencyContact
		if err := json.Unmarshal(contactRaw, &contact); err == nil {
			e.EmergencyContact = &contact
		}
	}

	return e, nil
}

func (r *employeeRepository) List(ctx context.Context, includeInactive bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if !includeInactive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY last_name, name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			// Malformed rows are dropped, not fatal for the whole read.
			slog.Warn("skipping malformed employee row", "error", err)
			continue
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}

	return employees, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetByDNI(ctx context.Context, dni string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE dni = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, dni))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by dni: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	var contactRaw []byte
	if e.EmergencyContact != nil {
		var err error
		contactRaw, err = json.Marshal(e.EmergencyContact)
		if err != nil {
			return employee.Employee{}, fmt.Errorf("failed to encode emergency contact: %w", err)
		}
	}

	query := `
		INSERT INTO employees (
			id, dni, name, last_name, position, base_salary, phone, address,
			email, bank_account, is_active, start_date, emergency_contact, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.ID, e.DNI, e.Name, e.LastName, e.Position, e.BaseSalary, e.Phone,
		e.Address, e.Email, e.BankAccount, e.IsActive, e.StartDate, contactRaw, e.Notes,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "uk_employees_dni") {
			return employee.Employee{}, employee.ErrDNIExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID}
	argIdx := 2

	addSet := func(column string, value interface{}) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.Name != nil {
		addSet("name", *req.Name)
	}
	if req.LastName != nil {
		addSet("last_name", *req.LastName)
	}
	if req.Position != nil {
		addSet("position", *req.Position)
	}
	if req.BaseSalary != nil {
		addSet("base_salary", *req.BaseSalary)
	}
	if req.Phone != nil {
		addSet("phone", *req.Phone)
	}
	if req.Address != nil {
		addSet("address", *req.Address)
	}
	if req.Email != nil {
		addSet("email", *req.Email)
	}
	if req.BankAccount != nil {
		addSet("bank_account", *req.BankAccount)
	}
	if req.EmergencyContact != nil {
		contactRaw, err := json.Marshal(req.EmergencyContact)
		if err != nil {
			return fmt.Errorf("failed to encode emergency contact: %w", err)
		}
		addSet("emergency_contact", contactRaw)
	}
	if req.Notes != nil {
		addSet("notes", *req.Notes)
	}

	query := fmt.Sprintf(`
		UPDATE employees
		SET %s
		WHERE id = $1
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

func (r *employeeRepository) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, active).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to set employee active flag: %w", err)
	}

	return nil
}

func (r *employeeRepository) CountActive(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE is_active = true`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}

	return count, nil
}
