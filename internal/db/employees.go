package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Employee Methods
// -----------------------------------------------------------------------------

// CreateEmployee inserts a new employee record and returns its ID.
func (db *DB) CreateEmployee(ctx context.Context, name, email, role string, joiningDate *time.Time) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO employees (name, email, role, joining_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		name, email, role, joiningDate,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return id, nil
}

// GetEmployee retrieves an employee by ID, or nil when absent.
func (db *DB) GetEmployee(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var e Employee
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, role, joining_date, created_at, updated_at
		 FROM employees WHERE id = $1`, id,
	).Scan(&e.ID, &e.Name, &e.Email, &e.Role, &e.JoiningDate, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return &e, nil
}

// ListEmployees returns all employees ordered by name.
func (db *DB) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, email, role, joining_date, created_at, updated_at
		 FROM employees ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Role, &e.JoiningDate, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// UpdateEmployee edits an employee record.
func (db *DB) UpdateEmployee(ctx context.Context, e *Employee) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE employees SET name = $1, email = $2, role = $3, joining_date = $4, updated_at = NOW()
		 WHERE id = $5`,
		e.Name, e.Email, e.Role, e.JoiningDate, e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee not found: %s", e.ID)
	}
	return nil
}

// DeleteEmployee removes an employee; generated-letter rows cascade with the
// parent, which is the only way letter records are ever removed.
func (db *DB) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee not found: %s", id)
	}
	return nil
}

// AppendGeneratedLetter appends one letter record to an employee's history.
// There is deliberately no update or single-row delete counterpart.
func (db *DB) AppendGeneratedLetter(ctx context.Context, employeeID uuid.UUID, name, letterType, fileURL string) (*GeneratedLetter, error) {
	var l GeneratedLetter
	err := db.pool.QueryRow(ctx,
		`INSERT INTO generated_letters (employee_id, name, type, file_url)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, employee_id, name, type, file_url, created_at`,
		employeeID, name, letterType, fileURL,
	).Scan(&l.ID, &l.EmployeeID, &l.Name, &l.Type, &l.FileURL, &l.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to append generated letter: %w", err)
	}
	return &l, nil
}

// ListGeneratedLetters returns an employee's letter history, newest first.
func (db *DB) ListGeneratedLetters(ctx context.Context, employeeID uuid.UUID) ([]GeneratedLetter, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, employee_id, name, type, file_url, created_at
		 FROM generated_letters WHERE employee_id = $1 ORDER BY created_at DESC`,
		employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list generated letters: %w", err)
	}
	defer rows.Close()

	var letters []GeneratedLetter
	for rows.Next() {
		var l GeneratedLetter
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.Name, &l.Type, &l.FileURL, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generated letter: %w", err)
		}
		letters = append(letters, l)
	}
	return letters, rows.Err()
}
