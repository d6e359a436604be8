package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/hrmslite/hrms-backend/pkg/database"
	"github.com/hrmslite/hrms-backend/pkg/errors"
	"github.com/jmoiron/sqlx"
)

// Employee is a row of the employees table. EmployeeID is the externally
// assigned identifier; ID is the surrogate key.
type Employee struct {
	ID         int64     `db:"id" json:"id"`
	EmployeeID string    `db:"employee_id" json:"employee_id"`
	FullName   string    `db:"full_name" json:"full_name"`
	Email      string    `db:"email" json:"email"`
	Department string    `db:"department" json:"department"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

const employeeColumns = `id, employee_id, full_name, email, department, created_at`

// EmployeeRepository handles employee persistence
type EmployeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *database.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// List returns every employee, newest first
func (r *EmployeeRepository) List(ctx context.Context) ([]*Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY created_at DESC, id DESC`

	employees := make([]*Employee, 0)
	if err := r.db.SelectContext(ctx, &employees, query); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

// GetByEmployeeID gets an employee by its external identifier
func (r *EmployeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1`

	var emp Employee
	err := r.db.GetContext(ctx, &emp, query, employeeID)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("Employee")
	}
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &emp, nil
}

// Exists reports whether an employee with employeeID exists
func (r *EmployeeRepository) Exists(ctx context.Context, employeeID string) (bool, error) {
	return employeeExists(ctx, r.db, employeeID)
}

// Create inserts emp after checking that neither its identifier nor its
// email is taken. ID and CreatedAt are filled from the database.
func (r *EmployeeRepository) Create(ctx context.Context, emp *Employee) error {
	err := r.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		taken, err := employeeExists(ctx, tx, emp.EmployeeID)
		if err != nil {
			return err
		}
		if taken {
			return errors.Conflict("employee_id", fmt.Sprintf("An employee with ID %q already exists", emp.EmployeeID))
		}

		var emailTaken bool
		if err := tx.GetContext(ctx, &emailTaken,
			`SELECT EXISTS(SELECT 1 FROM employees WHERE email = $1)`, emp.Email); err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if emailTaken {
			return errors.Conflict("email", "An employee with this email already exists")
		}

		query := `
			INSERT INTO employees (employee_id, full_name, email, department)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`
		return tx.QueryRowxContext(ctx, query,
			emp.EmployeeID, emp.FullName, emp.Email, emp.Department,
		).Scan(&emp.ID, &emp.CreatedAt)
	})
	if err == nil {
		return nil
	}

	// A concurrent create can still win between the checks and the insert.
	if appErr := database.MapPQError(err); appErr != nil {
		return appErr
	}
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return fmt.Errorf("create employee: %w", err)
}

// Delete removes the employee and, through the foreign key cascade, all of
// its attendance records.
func (r *EmployeeRepository) Delete(ctx context.Context, employeeID string) error {
	err := r.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		var id int64
		err := tx.GetContext(ctx, &id, `SELECT id FROM employees WHERE employee_id = $1 FOR UPDATE`, employeeID)
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NotFound("Employee")
		}
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
		return err
	})

	var appErr *errors.AppError
	if err != nil && !errors.As(err, &appErr) {
		return fmt.Errorf("delete employee: %w", err)
	}
	return err
}

func employeeExists(ctx context.Context, q sqlx.QueryerContext, employeeID string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, q, &exists, `SELECT EXISTS(SELECT 1 FROM employees WHERE employee_id = $1)`, employeeID)
	if err != nil {
		return false, fmt.Errorf("check employee: %w", err)
	}
	return exists, nil
}
