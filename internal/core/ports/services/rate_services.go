package services

import (
	"context"

	"github.com/paylinear/payroll_backend/internal/core/costing"
	"github.com/paylinear/payroll_backend/internal/core/domain"
	"github.com/paylinear/payroll_backend/internal/dto"
)

// RateReaderSvc defines read operations for exchange rate data
type RateReaderSvc interface {
	// GetRateByCurrency retrieves the latest effective rate for a currency.
	GetRateByCurrency(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error)

	// ListLatestRates retrieves the latest effective rate per currency.
	ListLatestRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// RateWriterSvc defines write operations for exchange rate data
type RateWriterSvc interface {
	// CreateExchangeRate persists a new exchange rate.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)
}

// RateTableProviderSvc supplies immutable rate table snapshots to the costing
// engine. Snapshots are swapped atomically: an in-flight aggregation keeps
// its table and never observes a torn mix of old and new rates.
type RateTableProviderSvc interface {
	// RateTable returns the current snapshot, building one on first use.
	RateTable(ctx context.Context) (*costing.RateTable, error)

	// RefreshRateTable rebuilds the snapshot from the rate source and
	// installs it as the new current table.
	RefreshRateTable(ctx context.Context) (*costing.RateTable, error)
}

// RateSvcFacade combines all exchange-rate-related service interfaces
type RateSvcFacade interface {
	RateReaderSvc
	RateWriterSvc
	RateTableProviderSvc
}
