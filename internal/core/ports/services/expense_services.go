package services

import (
	"context"

	"github.com/paylinear/payroll_backend/internal/core/domain"
	"github.com/paylinear/payroll_backend/internal/dto"
)

// ExpenseReaderSvc defines read operations for expense batches
type ExpenseReaderSvc interface {
	// GetExpenseBatchByID retrieves a batch with its items.
	GetExpenseBatchByID(ctx context.Context, batchID string) (*domain.ExpenseBatch, error)

	// ListExpenseBatches retrieves batches, newest first.
	ListExpenseBatches(ctx context.Context, limit, offset int) ([]domain.ExpenseBatch, error)

	// SummarizeExpenseBatch recomputes the batch's cost summary from the
	// current rate table. Per-item conversion failures are returned keyed by
	// expense item id; the summary covers the remaining valid items.
	SummarizeExpenseBatch(ctx context.Context, batchID string) (*domain.CostSummary, map[string]error, error)
}

// ExpenseWriterSvc defines write operations for expense batches
type ExpenseWriterSvc interface {
	// CreateExpenseBatch creates a draft batch of expense receipts.
	CreateExpenseBatch(ctx context.Context, req dto.CreateExpenseBatchRequest, creatorUserID string) (*domain.ExpenseBatch, error)

	// AdvanceExpenseBatch moves the batch to the next workflow stage.
	AdvanceExpenseBatch(ctx context.Context, batchID string, updaterUserID string) (*domain.ExpenseBatch, error)

	// CheckoutExpenseBatch quotes the batch in the chosen payment currency
	// and, on success, marks it paid with its final totals.
	CheckoutExpenseBatch(ctx context.Context, batchID string, paymentCurrency string, updaterUserID string) (*domain.CheckoutQuote, error)

	// CancelExpenseBatch cancels a batch that has not been paid.
	CancelExpenseBatch(ctx context.Context, batchID string, updaterUserID string) (*domain.ExpenseBatch, error)
}

// ExpenseSvcFacade combines all expense-batch-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
