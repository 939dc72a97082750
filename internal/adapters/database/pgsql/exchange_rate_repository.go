package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paylinear/payroll_backend/internal/apperrors"
	"github.com/paylinear/payroll_backend/internal/core/domain"
	portsrepo "github.com/paylinear/payroll_backend/internal/core/ports/repositories"
)

type PgxExchangeRateRepository struct {
	pool *pgxpool.Pool
}

// NewPgxExchangeRateRepository creates a new repository for exchange rate data.
func NewPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{pool: pool}
}

// SaveExchangeRate persists a new exchange rate row. History is append-only;
// the latest effective row per currency wins at read time.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (exchange_rate_id, currency_code, rate_to_usd, date_effective, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		rate.ExchangeRateID,
		rate.CurrencyCode,
		rate.RateToUSD,
		rate.DateEffective,
		rate.CreatedAt,
		rate.CreatedBy,
		rate.LastUpdatedAt,
		rate.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("exchange rate for %s effective %s: %w", rate.CurrencyCode, rate.DateEffective, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save exchange rate for %s: %w", rate.CurrencyCode, err)
	}
	return nil
}

// FindRateByCurrency retrieves the latest effective rate for a currency.
func (r *PgxExchangeRateRepository) FindRateByCurrency(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, currency_code, rate_to_usd, date_effective, created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		WHERE currency_code = $1
		ORDER BY date_effective DESC
		LIMIT 1;
	`
	var rate domain.ExchangeRate
	err := r.pool.QueryRow(ctx, query, currencyCode).Scan(
		&rate.ExchangeRateID,
		&rate.CurrencyCode,
		&rate.RateToUSD,
		&rate.DateEffective,
		&rate.CreatedAt,
		&rate.CreatedBy,
		&rate.LastUpdatedAt,
		&rate.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("rate for %s: %w", currencyCode, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find rate for %s: %w", currencyCode, err)
	}
	return &rate, nil
}

// ListLatestRates retrieves the latest effective rate for every currency.
func (r *PgxExchangeRateRepository) ListLatestRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	query := `
		SELECT DISTINCT ON (currency_code)
			exchange_rate_id, currency_code, rate_to_usd, date_effective, created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		ORDER BY currency_code, date_effective DESC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	rates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ExchangeRate, error) {
		var rate domain.ExchangeRate
		err := row.Scan(
			&rate.ExchangeRateID,
			&rate.CurrencyCode,
			&rate.RateToUSD,
			&rate.DateEffective,
			&rate.CreatedAt,
			&rate.CreatedBy,
			&rate.LastUpdatedAt,
			&rate.LastUpdatedBy,
		)
		return rate, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan exchange rates: %w", err)
	}

	return rates, nil
}
