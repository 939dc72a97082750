package repositories

import (
	"context"

	"github.com/paylinear/payroll_backend/internal/core/domain"
)

// ExpenseBatchReader defines read operations for expense batch data
type ExpenseBatchReader interface {
	// FindExpenseBatchByID retrieves a batch with its items.
	FindExpenseBatchByID(ctx context.Context, batchID string) (*domain.ExpenseBatch, error)

	// ListExpenseBatches retrieves batches without items, newest first.
	ListExpenseBatches(ctx context.Context, limit, offset int) ([]domain.ExpenseBatch, error)
}

// ExpenseBatchWriter defines write operations for expense batch data
type ExpenseBatchWriter interface {
	// SaveExpenseBatch persists a batch and its items.
	SaveExpenseBatch(ctx context.Context, batch domain.ExpenseBatch) error

	// UpdateExpenseBatch updates a batch's mutable fields (status, totals, payment currency).
	UpdateExpenseBatch(ctx context.Context, batch domain.ExpenseBatch) error
}

// ExpenseBatchRepositoryFacade combines all expense batch repository interfaces
type ExpenseBatchRepositoryFacade interface {
	ExpenseBatchReader
	ExpenseBatchWriter
}
