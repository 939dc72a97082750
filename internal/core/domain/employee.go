package domain

import "github.com/shopspring/decimal"

// EmployeeStatus enumerates the lifecycle states of an employee record.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "ACTIVE"
	EmployeeInactive EmployeeStatus = "INACTIVE"
)

// Employee represents a member of staff whose salary feeds payroll runs.
// Salary is the gross amount in the employee's local currency.
type Employee struct {
	EmployeeID    string          `json:"employeeID"` // Primary Key (UUID)
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Department    string          `json:"department"`
	Country       string          `json:"country"`
	Salary        decimal.Decimal `json:"salary"`
	CurrencyCode  string          `json:"currencyCode"`
	BeneficiaryID string          `json:"beneficiaryID"` // payout destination reference, opaque to costing
	Status        EmployeeStatus  `json:"status"`
	AuditFields
}
