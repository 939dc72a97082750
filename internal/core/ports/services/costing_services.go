package services

import (
	"context"

	"github.com/paylinear/payroll_backend/internal/core/domain"
)

// CostingSvcFacade exposes the pure engine for ad-hoc calculations that are
// not tied to a persisted run or batch (the UI's live what-if summaries).
type CostingSvcFacade interface {
	// Summarize converts and aggregates the given line items against the
	// current rate table. Per-item failures are keyed by source id.
	Summarize(ctx context.Context, items []domain.LineItem) (*domain.CostSummary, map[string]error, error)

	// QuoteTotals computes a checkout quote for already-aggregated totals.
	QuoteTotals(ctx context.Context, summary domain.CostSummary, paymentCurrency string) (*domain.CheckoutQuote, error)
}
