package repositories

import (
	"context"

	"github.com/paylinear/payroll_backend/internal/core/domain"
)

// PayrollRunReader defines read operations for payroll run data
type PayrollRunReader interface {
	// FindPayrollRunByID retrieves a run with its items.
	FindPayrollRunByID(ctx context.Context, runID string) (*domain.PayrollRun, error)

	// ListPayrollRuns retrieves runs without items, newest first.
	ListPayrollRuns(ctx context.Context, limit, offset int) ([]domain.PayrollRun, error)
}

// PayrollRunWriter defines write operations for payroll run data
type PayrollRunWriter interface {
	// SavePayrollRun persists a run and its items.
	SavePayrollRun(ctx context.Context, run domain.PayrollRun) error

	// UpdatePayrollRun updates a run's mutable fields (status, totals, payment currency).
	UpdatePayrollRun(ctx context.Context, run domain.PayrollRun) error
}

// PayrollRunRepositoryFacade combines all payroll run repository interfaces
type PayrollRunRepositoryFacade interface {
	PayrollRunReader
	PayrollRunWriter
}
