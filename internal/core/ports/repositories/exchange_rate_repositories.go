package repositories

import (
	"context"

	"github.com/paylinear/payroll_backend/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data.
// This port is the "rate source" collaborator: a live FX feed can replace the
// database implementation without touching the costing engine.
type ExchangeRateReader interface {
	// FindRateByCurrency retrieves the latest effective rate for a currency.
	FindRateByCurrency(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error)

	// ListLatestRates retrieves the latest effective rate for every currency.
	ListLatestRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a new exchange rate.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
