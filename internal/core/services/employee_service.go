package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paylinear/payroll_backend/internal/apperrors"
	"github.com/paylinear/payroll_backend/internal/core/domain"
	portsrepo "github.com/paylinear/payroll_backend/internal/core/ports/repositories"
	"github.com/paylinear/payroll_backend/internal/dto"
	"github.com/shopspring/decimal"
)

const defaultListLimit = 50

type employeeService struct {
	employeeRepo portsrepo.EmployeeRepositoryFacade
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(employeeRepo portsrepo.EmployeeRepositoryFacade) *employeeService {
	return &employeeService{employeeRepo: employeeRepo}
}

func (s *employeeService) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, creatorUserID string) (*domain.Employee, error) {
	if req.Salary.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: salary must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	employee := domain.Employee{
		EmployeeID:    uuid.NewString(),
		Name:          req.Name,
		Email:         req.Email,
		Department:    req.Department,
		Country:       req.Country,
		Salary:        req.Salary,
		CurrencyCode:  req.CurrencyCode,
		BeneficiaryID: req.BeneficiaryID,
		Status:        domain.EmployeeActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to create employee in service: %w", err)
	}

	return &employee, nil
}

func (s *employeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee in service: %w", err)
	}
	return employee, nil
}

func (s *employeeService) ListEmployees(ctx context.Context, limit, offset int) ([]domain.Employee, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	employees, err := s.employeeRepo.ListEmployees(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees in service: %w", err)
	}
	if employees == nil {
		return []domain.Employee{}, nil
	}
	return employees, nil
}

func (s *employeeService) UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, updaterUserID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find employee for update: %w", err)
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Department != nil {
		employee.Department = *req.Department
	}
	if req.Country != nil {
		employee.Country = *req.Country
	}
	if req.Salary != nil {
		if req.Salary.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: salary must be positive", apperrors.ErrValidation)
		}
		employee.Salary = *req.Salary
	}
	if req.CurrencyCode != nil {
		employee.CurrencyCode = *req.CurrencyCode
	}
	if req.BeneficiaryID != nil {
		employee.BeneficiaryID = *req.BeneficiaryID
	}
	employee.LastUpdatedAt = time.Now()
	employee.LastUpdatedBy = updaterUserID

	if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
		return nil, fmt.Errorf("failed to update employee in service: %w", err)
	}

	return employee, nil
}

func (s *employeeService) DeactivateEmployee(ctx context.Context, employeeID string, updaterUserID string) error {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to find employee for deactivation: %w", err)
	}

	employee.Status = domain.EmployeeInactive
	employee.LastUpdatedAt = time.Now()
	employee.LastUpdatedBy = updaterUserID

	if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
		return fmt.Errorf("failed to deactivate employee in service: %w", err)
	}
	return nil
}
