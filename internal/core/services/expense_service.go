package services

import (
	"context"
	"fmt"
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

type expenseService struct {
	expenseRepo  portsrepo.ExpenseBatchRepositoryFacade
	employeeRepo portsrepo.EmployeeRepositoryFacade
	rates        portssvc.RateTableProviderSvc
}

// NewExpenseService creates a new expense batch service.
func NewExpenseService(expenseRepo portsrepo.ExpenseBatchRepositoryFacade, employeeRepo portsrepo.EmployeeRepositoryFacade, rates portssvc.RateTableProviderSvc) *expenseService {
	return &expenseService{
		expenseRepo:  expenseRepo,
		employeeRepo: employeeRepo,
		rates:        rates,
	}
}

// CreateExpenseBatch builds a draft batch of receipts. Receipt amounts are
// entered directly (unlike payroll items, there is no employee default), so
// non-positive amounts are rejected up front.
func (s *expenseService) CreateExpenseBatch(ctx context.Context, req dto.CreateExpenseBatchRequest, creatorUserID string) (*domain.ExpenseBatch, error) {
	employeeIDs := make([]string, len(req.Items))
	for i, item := range req.Items {
		employeeIDs[i] = item.EmployeeID
	}
	employees, err := s.employeeRepo.FindEmployeesByIDs(ctx, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees for expense batch: %w", err)
	}

	batchID := uuid.NewString()
	items := make([]domain.ExpenseItem, 0, len(req.Items))
	for _, reqItem := range req.Items {
		if _, ok := employees[reqItem.EmployeeID]; !ok {
			return nil, fmt.Errorf("%w: employee %s not found", apperrors.ErrValidation, reqItem.EmployeeID)
		}
		if reqItem.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: expense for employee %s has non-positive amount %s", apperrors.ErrInvalidAmount, reqItem.EmployeeID, reqItem.Amount)
		}
		items = append(items, domain.ExpenseItem{
			ItemID:         uuid.NewString(),
			ExpenseBatchID: batchID,
			EmployeeID:     reqItem.EmployeeID,
			Description:    reqItem.Description,
			Amount:         reqItem.Amount,
			CurrencyCode:   reqItem.CurrencyCode,
		})
	}

	now := time.Now()
	batch := domain.ExpenseBatch{
		ExpenseBatchID: batchID,
		Name:           req.Name,
		Status:         domain.StatusDraft,
		ItemCount:      len(items),
		Items:          items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	summary, _, err := s.summarize(ctx, &batch)
	if err != nil {
		return nil, err
	}
	batch.TotalAmount = summary.TotalSettlementValue
	batch.TotalFee = summary.TotalFee

	if err := s.expenseRepo.SaveExpenseBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to create expense batch in service: %w", err)
	}

	return &batch, nil
}

func (s *expenseService) GetExpenseBatchByID(ctx context.Context, batchID string) (*domain.ExpenseBatch, error) {
	batch, err := s.expenseRepo.FindExpenseBatchByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense batch in service: %w", err)
	}
	return batch, nil
}

func (s *expenseService) ListExpenseBatches(ctx context.Context, limit, offset int) ([]domain.ExpenseBatch, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	batches, err := s.expenseRepo.ListExpenseBatches(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense batches in service: %w", err)
	}
	if batches == nil {
		return []domain.ExpenseBatch{}, nil
	}
	return batches, nil
}

func (s *expenseService) SummarizeExpenseBatch(ctx context.Context, batchID string) (*domain.CostSummary, map[string]error, error) {
	batch, err := s.expenseRepo.FindExpenseBatchByID(ctx, batchID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find expense batch for summary: %w", err)
	}
	return s.summarize(ctx, batch)
}

func (s *expenseService) summarize(ctx context.Context, batch *domain.ExpenseBatch) (*domain.CostSummary, map[string]error, error) {
	table, err := s.rates.RateTable(ctx)
	if err != nil {
		return nil, nil, err
	}
	converted, failed := costing.ConvertAll(batch.LineItems(), table)
	summary := costing.Aggregate(converted)
	return &summary, failed, nil
}

func (s *expenseService) AdvanceExpenseBatch(ctx context.Context, batchID string, updaterUserID string) (*domain.ExpenseBatch, error) {
	batch, err := s.expenseRepo.FindExpenseBatchByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense batch for advance: %w", err)
	}

	next, ok := batch.Status.NextStatus()
	if !ok {
		return nil, fmt.Errorf("%w: expense batch %s in status %s cannot advance", apperrors.ErrValidation, batchID, batch.Status)
	}
	if next == domain.StatusPaid {
		return nil, fmt.Errorf("%w: expense batch %s must be paid through checkout", apperrors.ErrValidation, batchID)
	}

	summary, _, err := s.summarize(ctx, batch)
	if err != nil {
		return nil, err
	}

	batch.Status = next
	batch.TotalAmount = summary.TotalSettlementValue
	batch.TotalFee = summary.TotalFee
	batch.LastUpdatedAt = time.Now()
	batch.LastUpdatedBy = updaterUserID

	if err := s.expenseRepo.UpdateExpenseBatch(ctx, *batch); err != nil {
		return nil, fmt.Errorf("failed to advance expense batch in service: %w", err)
	}
	return batch, nil
}

func (s *expenseService) CheckoutExpenseBatch(ctx context.Context, batchID string, paymentCurrency string, updaterUserID string) (*domain.CheckoutQuote, error) {
	batch, err := s.expenseRepo.FindExpenseBatchByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense batch for checkout: %w", err)
	}
	if batch.Status != domain.StatusCheckout {
		return nil, fmt.Errorf("%w: expense batch %s is in status %s, expected %s", apperrors.ErrValidation, batchID, batch.Status, domain.StatusCheckout)
	}

	summary, failed, err := s.summarize(ctx, batch)
	if err != nil {
		return nil, err
	}
	if len(failed) > 0 {
		return nil, fmt.Errorf("%w: expense batch %s has unconvertible items: %s", apperrors.ErrValidation, batchID, failedIDs(failed))
	}

	table, err := s.rates.RateTable(ctx)
	if err != nil {
		return nil, err
	}
	quote, err := costing.QuoteSummary(*summary, paymentCurrency, table)
	if err != nil {
		return nil, err
	}

	batch.Status = domain.StatusPaid
	batch.PaymentCurrency = paymentCurrency
	batch.TotalAmount = summary.TotalSettlementValue
	batch.TotalFee = summary.TotalFee
	batch.LastUpdatedAt = time.Now()
	batch.LastUpdatedBy = updaterUserID

	if err := s.expenseRepo.UpdateExpenseBatch(ctx, *batch); err != nil {
		return nil, fmt.Errorf("failed to mark expense batch paid in service: %w", err)
	}
	return &quote, nil
}

func (s *expenseService) CancelExpenseBatch(ctx context.Context, batchID string, updaterUserID string) (*domain.ExpenseBatch, error) {
	batch, err := s.expenseRepo.FindExpenseBatchByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense batch for cancellation: %w", err)
	}
	if batch.Status == domain.StatusPaid {
		return nil, fmt.Errorf("%w: expense batch %s is already paid", apperrors.ErrValidation, batchID)
	}

	batch.Status = domain.StatusCancelled
	batch.LastUpdatedAt = time.Now()
	batch.LastUpdatedBy = updaterUserID

	if err := s.expenseRepo.UpdateExpenseBatch(ctx, *batch); err != nil {
		return nil, fmt.Errorf("failed to cancel expense batch in service: %w", err)
	}
	return batch, nil
}
