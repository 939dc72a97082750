package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paylinear/payroll_backend/internal/apperrors"
	"github.com/paylinear/payroll_backend/internal/core/domain"
	portsrepo "github.com/paylinear/payroll_backend/internal/core/ports/repositories"
)

type PgxEmployeeRepository struct {
	pool *pgxpool.Pool
}

// NewPgxEmployeeRepository creates a new repository for employee data.
func NewPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{pool: pool}
}

const employeeColumns = `employee_id, name, email, department, country, salary, currency_code, beneficiary_id, status, created_at, created_by, last_updated_at, last_updated_by`

func scanEmployee(row pgx.CollectableRow) (domain.Employee, error) {
	var emp domain.Employee
	err := row.Scan(
		&emp.EmployeeID,
		&emp.Name,
		&emp.Email,
		&emp.Department,
		&emp.Country,
		&emp.Salary,
		&emp.CurrencyCode,
		&emp.BeneficiaryID,
		&emp.Status,
		&emp.CreatedAt,
		&emp.CreatedBy,
		&emp.LastUpdatedAt,
		&emp.LastUpdatedBy,
	)
	return emp, err
}

// SaveEmployee persists a new employee. A duplicate email maps to ErrDuplicate.
func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		employee.EmployeeID,
		employee.Name,
		employee.Email,
		employee.Department,
		employee.Country,
		employee.Salary,
		employee.CurrencyCode,
		employee.BeneficiaryID,
		employee.Status,
		employee.CreatedAt,
		employee.CreatedBy,
		employee.LastUpdatedAt,
		employee.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("employee %s: %w", employee.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save employee %s: %w", employee.EmployeeID, err)
	}
	return nil
}

// UpdateEmployee updates an existing employee row.
func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	query := `
		UPDATE employees
		SET name = $2, email = $3, department = $4, country = $5, salary = $6,
			currency_code = $7, beneficiary_id = $8, status = $9,
			last_updated_at = $10, last_updated_by = $11
		WHERE employee_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		employee.EmployeeID,
		employee.Name,
		employee.Email,
		employee.Department,
		employee.Country,
		employee.Salary,
		employee.CurrencyCode,
		employee.BeneficiaryID,
		employee.Status,
		employee.LastUpdatedAt,
		employee.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee %s: %w", employee.EmployeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee %s: %w", employee.EmployeeID, apperrors.ErrNotFound)
	}
	return nil
}

// FindEmployeeByID retrieves an employee by id.
func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1;`
	rows, err := r.pool.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee %s: %w", employeeID, err)
	}
	emp, err := pgx.CollectOneRow(rows, scanEmployee)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("employee %s: %w", employeeID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find employee %s: %w", employeeID, err)
	}
	return &emp, nil
}

// FindEmployeesByIDs retrieves the given employees keyed by id. Missing ids
// are simply absent from the map; callers decide whether that is an error.
func (r *PgxEmployeeRepository) FindEmployeesByIDs(ctx context.Context, employeeIDs []string) (map[string]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = ANY($1);`
	rows, err := r.pool.Query(ctx, query, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees by ids: %w", err)
	}
	defer rows.Close()

	employees, err := pgx.CollectRows(rows, scanEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to scan employees: %w", err)
	}

	byID := make(map[string]domain.Employee, len(employees))
	for _, emp := range employees {
		byID[emp.EmployeeID] = emp
	}
	return byID, nil
}

// ListEmployees retrieves employees ordered by name with limit/offset pagination.
func (r *PgxEmployeeRepository) ListEmployees(ctx context.Context, limit, offset int) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY name LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees, err := pgx.CollectRows(rows, scanEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to scan employees: %w", err)
	}
	return employees, nil
}
