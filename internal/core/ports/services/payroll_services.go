package services

import (
	"context"

	"github.com/paylinear/payroll_backend/internal/core/domain"
	"github.com/paylinear/payroll_backend/internal/dto"
)

// PayrollReaderSvc defines read operations for payroll runs
type PayrollReaderSvc interface {
	// GetPayrollRunByID retrieves a run with its items.
	GetPayrollRunByID(ctx context.Context, runID string) (*domain.PayrollRun, error)

	// ListPayrollRuns retrieves runs, newest first.
	ListPayrollRuns(ctx context.Context, limit, offset int) ([]domain.PayrollRun, error)

	// SummarizePayrollRun recomputes the run's cost summary from the current
	// rate table. Per-item conversion failures are returned keyed by employee
	// id; the summary covers the remaining valid items.
	SummarizePayrollRun(ctx context.Context, runID string) (*domain.CostSummary, map[string]error, error)
}

// PayrollWriterSvc defines write operations for payroll runs
type PayrollWriterSvc interface {
	// CreatePayrollRun creates a draft run from selected employees with
	// optional per-employee amount/currency adjustments.
	CreatePayrollRun(ctx context.Context, req dto.CreatePayrollRunRequest, creatorUserID string) (*domain.PayrollRun, error)

	// AdvancePayrollRun moves the run to the next workflow stage.
	AdvancePayrollRun(ctx context.Context, runID string, updaterUserID string) (*domain.PayrollRun, error)

	// CheckoutPayrollRun quotes the run in the chosen payment currency and,
	// on success, marks it paid with its final totals.
	CheckoutPayrollRun(ctx context.Context, runID string, paymentCurrency string, updaterUserID string) (*domain.CheckoutQuote, error)

	// CancelPayrollRun cancels a run that has not been paid.
	CancelPayrollRun(ctx context.Context, runID string, updaterUserID string) (*domain.PayrollRun, error)
}

// PayrollSvcFacade combines all payroll-run-related service interfaces
type PayrollSvcFacade interface {
	PayrollReaderSvc
	PayrollWriterSvc
}
