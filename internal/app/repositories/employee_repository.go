package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirkaya/staffdesk/internal/app/models"
	"github.com/emirkaya/staffdesk/internal/pkg/apperrors"
	"github.com/emirkaya/staffdesk/internal/pkg/dberrors"
)

// Constraint names from migrations/001_init.sql. The constraints, not
// application-level checks, are the final arbiter for uniqueness.
const (
	emailConstraint   = "employees_email_key"
	localIDConstraint = "employees_local_id_key"
)

// localIDRetries bounds retries when concurrent creates collide on the
// same computed local_id.
const localIDRetries = 3

// IEmployeeRepository is the employee store surface.
type IEmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetAll(ctx context.Context, search string) ([]*models.Employee, error)
	GetByLocalID(ctx context.Context, localID int64) (*models.Employee, error)
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, localID int64) error
}

// EmployeeRepository handles database operations for employees
type EmployeeRepository struct {
	db *pgxpool.Pool
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{
		db: db,
	}
}

// Create inserts a new employee. local_id is computed as MAX+1 inside
// the insert statement itself; a duplicate local_id under concurrent
// creates trips the unique constraint and the insert is retried.
func (r *EmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	query := `
		INSERT INTO employees (local_id, name, email, mobile, designation, gender, courses, image_path)
		SELECT COALESCE(MAX(local_id), 0) + 1, $1, $2, $3, $4, $5, $6, $7
		FROM employees
		RETURNING id, local_id, created_at, updated_at
	`

	var lastErr error
	for attempt := 0; attempt < localIDRetries; attempt++ {
		err := r.db.QueryRow(ctx, query,
			employee.Name,
			employee.Email,
			employee.Mobile,
			employee.Designation,
			employee.Gender,
			employee.Courses,
			employee.ImagePath,
		).Scan(&employee.ID, &employee.LocalID, &employee.CreatedAt, &employee.UpdatedAt)

		if err == nil {
			return nil
		}
		if dberrors.IsDuplicateConstraintError(err, emailConstraint) {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, localIDConstraint) {
			lastErr = err
			continue
		}
		return fmt.Errorf("error creating employee: %w", err)
	}

	return fmt.Errorf("local id contention after %d attempts: %w", localIDRetries, lastErr)
}

// GetAll retrieves employees, optionally filtered by a case-insensitive
// name substring. Ordering follows store iteration order.
func (r *EmployeeRepository) GetAll(ctx context.Context, search string) ([]*models.Employee, error) {
	query := `
		SELECT id, local_id, name, email, mobile, designation, gender, courses, image_path, created_at, updated_at
		FROM employees
	`
	var args []interface{}
	if search != "" {
		query += ` WHERE name ILIKE '%' || $1 || '%'`
		args = append(args, search)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving employees: %w", err)
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// GetByLocalID retrieves an employee by its local identifier.
func (r *EmployeeRepository) GetByLocalID(ctx context.Context, localID int64) (*models.Employee, error) {
	query := `
		SELECT id, local_id, name, email, mobile, designation, gender, courses, image_path, created_at, updated_at
		FROM employees
		WHERE local_id = $1
	`

	row := r.db.QueryRow(ctx, query, localID)
	employee, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("error retrieving employee: %w", err)
	}

	return employee, nil
}

// Update replaces all mutable fields of an employee. local_id never
// changes. A single-row update cannot collide with its own email, so
// the unique constraint only fires against other employees.
func (r *EmployeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	query := `
		UPDATE employees
		SET name = $1, email = $2, mobile = $3, designation = $4, gender = $5, courses = $6, image_path = $7, updated_at = NOW()
		WHERE local_id = $8
	`

	cmdTag, err := r.db.Exec(ctx, query,
		employee.Name,
		employee.Email,
		employee.Mobile,
		employee.Designation,
		employee.Gender,
		employee.Courses,
		employee.ImagePath,
		employee.LocalID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, emailConstraint) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating employee: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEmployeeNotFound
	}

	return nil
}

// Delete removes an employee by local identifier.
func (r *EmployeeRepository) Delete(ctx context.Context, localID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE local_id = $1`, localID)
	if err != nil {
		return fmt.Errorf("error deleting employee: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEmployeeNotFound
	}

	return nil
}

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	var employee models.Employee
	err := row.Scan(
		&employee.ID,
		&employee.LocalID,
		&employee.Name,
		&employee.Email,
		&employee.Mobile,
		&employee.Designation,
		&employee.Gender,
		&employee.Courses,
		&employee.ImagePath,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &employee, nil
}
