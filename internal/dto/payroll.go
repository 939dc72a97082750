package dto

import (
	"time"

	"github.com/paylinear/payroll_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PayrollItemRequest selects one employee for a run. Amount and currency
// default to the employee record and may be adjusted per run; BeneficiaryID
// defaults to the employee's configured payout destination.
type PayrollItemRequest struct {
	EmployeeID    string           `json:"employeeID" binding:"required"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	CurrencyCode  *string          `json:"currencyCode,omitempty" binding:"omitempty,currencycode"`
	BeneficiaryID *string          `json:"beneficiaryID,omitempty"`
}

// CreatePayrollRunRequest defines the data needed to create a draft run.
type CreatePayrollRunRequest struct {
	Name    string               `json:"name" binding:"required"`
	PayDate time.Time            `json:"payDate" binding:"required"`
	Items   []PayrollItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CheckoutRequest chooses the payment rail for a run or batch checkout.
type CheckoutRequest struct {
	PaymentCurrency string `json:"paymentCurrency" binding:"required,currencycode"`
}

// PayrollItemResponse is one compensation entry within a run.
type PayrollItemResponse struct {
	ItemID        string          `json:"itemID"`
	EmployeeID    string          `json:"employeeID"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	BeneficiaryID string          `json:"beneficiaryID"`
}

// PayrollRunResponse defines the data returned for a payroll run.
type PayrollRunResponse struct {
	PayrollRunID    string                `json:"payrollRunID"`
	Name            string                `json:"name"`
	PayDate         time.Time             `json:"payDate"`
	Status          string                `json:"status"`
	PaymentCurrency string                `json:"paymentCurrency,omitempty"`
	TotalAmount     decimal.Decimal       `json:"totalAmount"`
	TotalFee        decimal.Decimal       `json:"totalFee"`
	ItemCount       int                   `json:"itemCount"`
	Items           []PayrollItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	LastUpdatedAt   time.Time             `json:"lastUpdatedAt"`
}

// ToPayrollRunResponse converts a domain.PayrollRun to its DTO.
func ToPayrollRunResponse(run *domain.PayrollRun) PayrollRunResponse {
	items := make([]PayrollItemResponse, len(run.Items))
	for i, it := range run.Items {
		items[i] = PayrollItemResponse{
			ItemID:        it.ItemID,
			EmployeeID:    it.EmployeeID,
			Amount:        it.Amount,
			CurrencyCode:  it.CurrencyCode,
			BeneficiaryID: it.BeneficiaryID,
		}
	}
	return PayrollRunResponse{
		PayrollRunID:    run.PayrollRunID,
		Name:            run.Name,
		PayDate:         run.PayDate,
		Status:          string(run.Status),
		PaymentCurrency: run.PaymentCurrency,
		TotalAmount:     run.TotalAmount,
		TotalFee:        run.TotalFee,
		ItemCount:       run.ItemCount,
		Items:           items,
		CreatedAt:       run.CreatedAt,
		LastUpdatedAt:   run.LastUpdatedAt,
	}
}

// ToListPayrollRunResponse converts a slice of runs to response DTOs.
func ToListPayrollRunResponse(runs []domain.PayrollRun) []PayrollRunResponse {
	res := make([]PayrollRunResponse, len(runs))
	for i := range runs {
		res[i] = ToPayrollRunResponse(&runs[i])
	}
	return res
}
