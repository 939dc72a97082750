package dto

import (
	"time"

	"github.com/paylinear/payroll_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest defines the data needed to create a new employee.
type CreateEmployeeRequest struct {
	Name          string          `json:"name" binding:"required"`
	Email         string          `json:"email" binding:"required,email"`
	Department    string          `json:"department" binding:"required"`
	Country       string          `json:"country" binding:"required"`
	Salary        decimal.Decimal `json:"salary" binding:"required"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,currencycode"`
	BeneficiaryID string          `json:"beneficiaryID"`
}

// UpdateEmployeeRequest defines the partial update payload for an employee.
// Nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	Name          *string          `json:"name,omitempty"`
	Email         *string          `json:"email,omitempty" binding:"omitempty,email"`
	Department    *string          `json:"department,omitempty"`
	Country       *string          `json:"country,omitempty"`
	Salary        *decimal.Decimal `json:"salary,omitempty"`
	CurrencyCode  *string          `json:"currencyCode,omitempty" binding:"omitempty,currencycode"`
	BeneficiaryID *string          `json:"beneficiaryID,omitempty"`
}

// EmployeeResponse defines the data returned for an employee.
type EmployeeResponse struct {
	EmployeeID    string          `json:"employeeID"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Department    string          `json:"department"`
	Country       string          `json:"country"`
	Salary        decimal.Decimal `json:"salary"`
	CurrencyCode  string          `json:"currencyCode"`
	BeneficiaryID string          `json:"beneficiaryID"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToEmployeeResponse converts a domain.Employee to EmployeeResponse DTO
func ToEmployeeResponse(emp *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:    emp.EmployeeID,
		Name:          emp.Name,
		Email:         emp.Email,
		Department:    emp.Department,
		Country:       emp.Country,
		Salary:        emp.Salary,
		CurrencyCode:  emp.CurrencyCode,
		BeneficiaryID: emp.BeneficiaryID,
		Status:        string(emp.Status),
		CreatedAt:     emp.CreatedAt,
		LastUpdatedAt: emp.LastUpdatedAt,
	}
}

// ToListEmployeeResponse converts a slice of domain.Employee to response DTOs
func ToListEmployeeResponse(employees []domain.Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i := range employees {
		res[i] = ToEmployeeResponse(&employees[i])
	}
	return res
}
