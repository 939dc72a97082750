package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paylinear/payroll_backend/internal/apperrors"
	"github.com/paylinear/payroll_backend/internal/core/costing"
	"github.com/paylinear/payroll_backend/internal/core/domain"
	portsrepo "github.com/paylinear/payroll_backend/internal/core/ports/repositories"
	portssvc "github.com/paylinear/payroll_backend/internal/core/ports/services"
	"github.com/paylinear/payroll_backend/internal/dto"
	"github.com/shopspring/decimal"
)

type payrollService struct {
	payrollRepo  portsrepo.PayrollRunRepositoryFacade
	employeeRepo portsrepo.EmployeeRepositoryFacade
	rates        portssvc.RateTableProviderSvc
}

// NewPayrollService creates a new payroll run service.
func NewPayrollService(payrollRepo portsrepo.PayrollRunRepositoryFacade, employeeRepo portsrepo.EmployeeRepositoryFacade, rates portssvc.RateTableProviderSvc) *payrollService {
	return &payrollService{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		rates:        rates,
	}
}

// CreatePayrollRun builds a draft run from the selected employees. Each
// item starts from the employee's salary, currency and beneficiary and may be
// adjusted per run. Totals are computed immediately so the draft already
// carries a breakdown; items whose currency is unknown are kept in the run
// (they surface as per-item failures at every summarize until corrected or
// removed, and block checkout).
func (s *payrollService) CreatePayrollRun(ctx context.Context, req dto.CreatePayrollRunRequest, creatorUserID string) (*domain.PayrollRun, error) {
	// One item per employee: summaries report failures per employee id, so a
	// duplicate would make those reports ambiguous.
	seen := make(map[string]struct{}, len(req.Items))
	employeeIDs := make([]string, len(req.Items))
	for i, item := range req.Items {
		if _, dup := seen[item.EmployeeID]; dup {
			return nil, fmt.Errorf("%w: employee %s appears more than once in the run", apperrors.ErrValidation, item.EmployeeID)
		}
		seen[item.EmployeeID] = struct{}{}
		employeeIDs[i] = item.EmployeeID
	}

	employees, err := s.employeeRepo.FindEmployeesByIDs(ctx, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees for payroll run: %w", err)
	}

	runID := uuid.NewString()
	items := make([]domain.PayrollItem, 0, len(req.Items))
	for _, reqItem := range req.Items {
		emp, ok := employees[reqItem.EmployeeID]
		if !ok {
			return nil, fmt.Errorf("%w: employee %s not found", apperrors.ErrValidation, reqItem.EmployeeID)
		}
		if emp.Status != domain.EmployeeActive {
			return nil, fmt.Errorf("%w: employee %s is not active", apperrors.ErrValidation, reqItem.EmployeeID)
		}

		item := domain.PayrollItem{
			ItemID:        uuid.NewString(),
			PayrollRunID:  runID,
			EmployeeID:    emp.EmployeeID,
			Amount:        emp.Salary,
			CurrencyCode:  emp.CurrencyCode,
			BeneficiaryID: emp.BeneficiaryID,
		}
		if reqItem.Amount != nil {
			item.Amount = *reqItem.Amount
		}
		if reqItem.CurrencyCode != nil {
			item.CurrencyCode = *reqItem.CurrencyCode
		}
		if reqItem.BeneficiaryID != nil {
			item.BeneficiaryID = *reqItem.BeneficiaryID
		}
		if item.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: employee %s has non-positive amount %s", apperrors.ErrInvalidAmount, emp.EmployeeID, item.Amount)
		}
		items = append(items, item)
	}

	now := time.Now()
	run := domain.PayrollRun{
		PayrollRunID: runID,
		Name:         req.Name,
		PayDate:      req.PayDate,
		Status:       domain.StatusDraft,
		ItemCount:    len(items),
		Items:        items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if summary, _, err := s.summarize(ctx, &run); err == nil {
		run.TotalAmount = summary.TotalSettlementValue
		run.TotalFee = summary.TotalFee
	} else {
		return nil, err
	}

	if err := s.payrollRepo.SavePayrollRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create payroll run in service: %w", err)
	}

	return &run, nil
}

func (s *payrollService) GetPayrollRunByID(ctx context.Context, runID string) (*domain.PayrollRun, error) {
	run, err := s.payrollRepo.FindPayrollRunByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payroll run in service: %w", err)
	}
	return run, nil
}

func (s *payrollService) ListPayrollRuns(ctx context.Context, limit, offset int) ([]domain.PayrollRun, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	runs, err := s.payrollRepo.ListPayrollRuns(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs in service: %w", err)
	}
	if runs == nil {
		return []domain.PayrollRun{}, nil
	}
	return runs, nil
}

func (s *payrollService) SummarizePayrollRun(ctx context.Context, runID string) (*domain.CostSummary, map[string]error, error) {
	run, err := s.payrollRepo.FindPayrollRunByID(ctx, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find payroll run for summary: %w", err)
	}
	return s.summarize(ctx, run)
}

// summarize recomputes the run's breakdown from the current rate table.
// Per-item conversion failures do not abort the pass; the summary covers the
// remaining valid items.
func (s *payrollService) summarize(ctx context.Context, run *domain.PayrollRun) (*domain.CostSummary, map[string]error, error) {
	table, err := s.rates.RateTable(ctx)
	if err != nil {
		return nil, nil, err
	}
	converted, failed := costing.ConvertAll(run.LineItems(), table)
	summary := costing.Aggregate(converted)
	return &summary, failed, nil
}

// AdvancePayrollRun moves the run one stage forward and refreshes its stored
// totals. The final CHECKOUT -> PAID transition happens only through
// CheckoutPayrollRun, where the payment rail is fixed.
func (s *payrollService) AdvancePayrollRun(ctx context.Context, runID string, updaterUserID string) (*domain.PayrollRun, error) {
	run, err := s.payrollRepo.FindPayrollRunByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payroll run for advance: %w", err)
	}

	next, ok := run.Status.NextStatus()
	if !ok {
		return nil, fmt.Errorf("%w: payroll run %s in status %s cannot advance", apperrors.ErrValidation, runID, run.Status)
	}
	if next == domain.StatusPaid {
		return nil, fmt.Errorf("%w: payroll run %s must be paid through checkout", apperrors.ErrValidation, runID)
	}

	summary, _, err := s.summarize(ctx, run)
	if err != nil {
		return nil, err
	}

	run.Status = next
	run.TotalAmount = summary.TotalSettlementValue
	run.TotalFee = summary.TotalFee
	run.LastUpdatedAt = time.Now()
	run.LastUpdatedBy = updaterUserID

	if err := s.payrollRepo.UpdatePayrollRun(ctx, *run); err != nil {
		return nil, fmt.Errorf("failed to advance payroll run in service: %w", err)
	}
	return run, nil
}

// CheckoutPayrollRun quotes the run in the chosen payment currency and marks
// it paid. Every item must convert cleanly: a run with failing items cannot
// be paid out.
func (s *payrollService) CheckoutPayrollRun(ctx context.Context, runID string, paymentCurrency string, updaterUserID string) (*domain.CheckoutQuote, error) {
	run, err := s.payrollRepo.FindPayrollRunByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payroll run for checkout: %w", err)
	}
	if run.Status != domain.StatusCheckout {
		return nil, fmt.Errorf("%w: payroll run %s is in status %s, expected %s", apperrors.ErrValidation, runID, run.Status, domain.StatusCheckout)
	}

	summary, failed, err := s.summarize(ctx, run)
	if err != nil {
		return nil, err
	}
	if len(failed) > 0 {
		return nil, fmt.Errorf("%w: payroll run %s has unconvertible items: %s", apperrors.ErrValidation, runID, failedIDs(failed))
	}

	table, err := s.rates.RateTable(ctx)
	if err != nil {
		return nil, err
	}
	quote, err := costing.QuoteSummary(*summary, paymentCurrency, table)
	if err != nil {
		return nil, err
	}

	run.Status = domain.StatusPaid
	run.PaymentCurrency = paymentCurrency
	run.TotalAmount = summary.TotalSettlementValue
	run.TotalFee = summary.TotalFee
	run.LastUpdatedAt = time.Now()
	run.LastUpdatedBy = updaterUserID

	if err := s.payrollRepo.UpdatePayrollRun(ctx, *run); err != nil {
		return nil, fmt.Errorf("failed to mark payroll run paid in service: %w", err)
	}
	return &quote, nil
}

func (s *payrollService) CancelPayrollRun(ctx context.Context, runID string, updaterUserID string) (*domain.PayrollRun, error) {
	run, err := s.payrollRepo.FindPayrollRunByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payroll run for cancellation: %w", err)
	}
	if run.Status == domain.StatusPaid {
		return nil, fmt.Errorf("%w: payroll run %s is already paid", apperrors.ErrValidation, runID)
	}

	run.Status = domain.StatusCancelled
	run.LastUpdatedAt = time.Now()
	run.LastUpdatedBy = updaterUserID

	if err := s.payrollRepo.UpdatePayrollRun(ctx, *run); err != nil {
		return nil, fmt.Errorf("failed to cancel payroll run in service: %w", err)
	}
	return run, nil
}

// failedIDs renders the keys of a per-item failure map for error messages.
func failedIDs(failed map[string]error) string {
	ids := make([]string, 0, len(failed))
	for id := range failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return strings.Join(ids, ", ")
}
