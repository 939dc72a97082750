package dto

import (
	"time"

	"github.com/paylinear/payroll_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExpenseItemRequest is one receipt submitted with a new batch.
type ExpenseItemRequest struct {
	EmployeeID   string          `json:"employeeID" binding:"required"`
	Description  string          `json:"description" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,currencycode"`
}

// CreateExpenseBatchRequest defines the data needed to create a draft batch.
type CreateExpenseBatchRequest struct {
	Name  string               `json:"name" binding:"required"`
	Items []ExpenseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ExpenseItemResponse is one receipt within a batch.
type ExpenseItemResponse struct {
	ItemID       string          `json:"itemID"`
	EmployeeID   string          `json:"employeeID"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// ExpenseBatchResponse defines the data returned for an expense batch.
type ExpenseBatchResponse struct {
	ExpenseBatchID  string                `json:"expenseBatchID"`
	Name            string                `json:"name"`
	Status          string                `json:"status"`
	PaymentCurrency string                `json:"paymentCurrency,omitempty"`
	TotalAmount     decimal.Decimal       `json:"totalAmount"`
	TotalFee        decimal.Decimal       `json:"totalFee"`
	ItemCount       int                   `json:"itemCount"`
	Items           []ExpenseItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	LastUpdatedAt   time.Time             `json:"lastUpdatedAt"`
}

// ToExpenseBatchResponse converts a domain.ExpenseBatch to its DTO.
func ToExpenseBatchResponse(batch *domain.ExpenseBatch) ExpenseBatchResponse {
	items := make([]ExpenseItemResponse, len(batch.Items))
	for i, it := range batch.Items {
		items[i] = ExpenseItemResponse{
			ItemID:       it.ItemID,
			EmployeeID:   it.EmployeeID,
			Description:  it.Description,
			Amount:       it.Amount,
			CurrencyCode: it.CurrencyCode,
		}
	}
	return ExpenseBatchResponse{
		ExpenseBatchID:  batch.ExpenseBatchID,
		Name:            batch.Name,
		Status:          string(batch.Status),
		PaymentCurrency: batch.PaymentCurrency,
		TotalAmount:     batch.TotalAmount,
		TotalFee:        batch.TotalFee,
		ItemCount:       batch.ItemCount,
		Items:           items,
		CreatedAt:       batch.CreatedAt,
		LastUpdatedAt:   batch.LastUpdatedAt,
	}
}

// ToListExpenseBatchResponse converts a slice of batches to response DTOs.
func ToListExpenseBatchResponse(batches []domain.ExpenseBatch) []ExpenseBatchResponse {
	res := make([]ExpenseBatchResponse, len(batches))
	for i := range batches {
		res[i] = ToExpenseBatchResponse(&batches[i])
	}
	return res
}
