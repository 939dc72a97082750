package services

import (
	"context"

	"github.com/paylinear/payroll_backend/internal/core/domain"
	"github.com/paylinear/payroll_backend/internal/dto"
)

// EmployeeReaderSvc defines read operations for employee data
type EmployeeReaderSvc interface {
	// GetEmployeeByID retrieves a specific employee by id.
	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// ListEmployees retrieves employees with limit/offset pagination.
	ListEmployees(ctx context.Context, limit, offset int) ([]domain.Employee, error)
}

// EmployeeWriterSvc defines write operations for employee data
type EmployeeWriterSvc interface {
	// CreateEmployee persists a new employee.
	CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, creatorUserID string) (*domain.Employee, error)

	// UpdateEmployee applies a partial update to an employee.
	UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, updaterUserID string) (*domain.Employee, error)

	// DeactivateEmployee marks an employee inactive.
	DeactivateEmployee(ctx context.Context, employeeID string, updaterUserID string) error
}

// EmployeeSvcFacade combines all employee-related service interfaces
type EmployeeSvcFacade interface {
	EmployeeReaderSvc
	EmployeeWriterSvc
}
