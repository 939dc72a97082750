package services

import (
	"context"

	"github.com/paylinear/payroll_backend/internal/core/costing"
	"github.com/paylinear/payroll_backend/internal/core/domain"
	portssvc "github.com/paylinear/payroll_backend/internal/core/ports/services"
)

// costingService exposes the pure engine for calculations not tied to a
// persisted run or batch. It holds no state of its own; every call fetches
// the current rate table snapshot and computes from scratch.
type costingService struct {
	rates portssvc.RateTableProviderSvc
}

// NewCostingService creates a new stateless costing facade.
func NewCostingService(rates portssvc.RateTableProviderSvc) *costingService {
	return &costingService{rates: rates}
}

func (s *costingService) Summarize(ctx context.Context, items []domain.LineItem) (*domain.CostSummary, map[string]error, error) {
	table, err := s.rates.RateTable(ctx)
	if err != nil {
		return nil, nil, err
	}
	converted, failed := costing.ConvertAll(items, table)
	summary := costing.Aggregate(converted)
	return &summary, failed, nil
}

func (s *costingService) QuoteTotals(ctx context.Context, summary domain.CostSummary, paymentCurrency string) (*domain.CheckoutQuote, error) {
	table, err := s.rates.RateTable(ctx)
	if err != nil {
		return nil, err
	}
	quote, err := costing.QuoteSummary(summary, paymentCurrency, table)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}
