package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/paylinear/payroll_backend/internal/apperrors"
	"github.com/paylinear/payroll_backend/internal/core/costing"
	"github.com/paylinear/payroll_backend/internal/core/domain"
	portsrepo "github.com/paylinear/payroll_backend/internal/core/ports/repositories"
	"github.com/paylinear/payroll_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// rateService manages exchange rates and serves immutable RateTable snapshots
// to the costing engine. The current snapshot sits behind an atomic pointer:
// writes install a whole new table, so an in-flight calculation holding the
// old one never reads a torn mix of old and new rates.
type rateService struct {
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
	settlement   string
	configCrypto []string
	table        atomic.Pointer[costing.RateTable]
}

// NewRateService creates a new rate service anchored on the given settlement
// currency. configCrypto lists currency codes treated as crypto rails in
// addition to those flagged in the currency store.
func NewRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade, settlementCurrency string, configCrypto []string) *rateService {
	return &rateService{
		rateRepo:     rateRepo,
		currencyRepo: currencyRepo,
		settlement:   settlementCurrency,
		configCrypto: configCrypto,
	}
}

func (s *rateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	if req.RateToUSD.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if req.CurrencyCode == s.settlement && !req.RateToUSD.Equal(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: settlement currency %s must keep rate 1", apperrors.ErrValidation, s.settlement)
	}

	// The currency must be configured before a rate can be quoted for it.
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		return nil, fmt.Errorf("failed to validate currency %s: %w", req.CurrencyCode, err)
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		CurrencyCode:   req.CurrencyCode,
		RateToUSD:      req.RateToUSD,
		DateEffective:  req.DateEffective,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}

	// Drop the snapshot so the next table request sees the new rate. Readers
	// holding the previous table keep using it untouched.
	s.table.Store(nil)

	return &rate, nil
}

func (s *rateService) GetRateByCurrency(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindRateByCurrency(ctx, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}

func (s *rateService) ListLatestRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListLatestRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}

// RateTable returns the current snapshot, building one from the rate source
// on first use or after an invalidating write.
func (s *rateService) RateTable(ctx context.Context) (*costing.RateTable, error) {
	if table := s.table.Load(); table != nil {
		return table, nil
	}
	return s.RefreshRateTable(ctx)
}

// RefreshRateTable rebuilds the snapshot from the latest stored rates and
// installs it atomically as the new current table.
func (s *rateService) RefreshRateTable(ctx context.Context) (*costing.RateTable, error) {
	stored, err := s.rateRepo.ListLatestRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rates for table snapshot: %w", err)
	}

	rates := make(map[string]decimal.Decimal, len(stored)+1)
	for _, r := range stored {
		rates[r.CurrencyCode] = r.RateToUSD
	}
	// The settlement currency is worth exactly one of itself, whether or not
	// the rate source lists it.
	rates[s.settlement] = decimal.NewFromInt(1)

	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load currencies for table snapshot: %w", err)
	}
	cryptoSet := make(map[string]struct{}, len(s.configCrypto))
	for _, code := range s.configCrypto {
		cryptoSet[code] = struct{}{}
	}
	for _, c := range currencies {
		if c.IsCrypto {
			cryptoSet[c.CurrencyCode] = struct{}{}
		}
	}
	crypto := make([]string, 0, len(cryptoSet))
	for code := range cryptoSet {
		crypto = append(crypto, code)
	}

	table, err := costing.NewRateTable(s.settlement, rates, crypto)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate table snapshot: %w", err)
	}

	s.table.Store(table)
	return table, nil
}
