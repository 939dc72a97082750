package dto

import (
	"time"

	"github.com/paylinear/payroll_backend/internal/core/costing"
	"github.com/paylinear/payroll_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for creating a new exchange rate.
// RateToUSD is the settlement-currency value of one unit of the currency.
type CreateExchangeRateRequest struct {
	CurrencyCode  string          `json:"currencyCode" binding:"required,currencycode"`
	RateToUSD     decimal.Decimal `json:"rateToUSD" binding:"required"`
	DateEffective time.Time       `json:"dateEffective" binding:"required"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	CurrencyCode   string          `json:"currencyCode"`
	RateToUSD      decimal.Decimal `json:"rateToUSD"`
	DateEffective  time.Time       `json:"dateEffective"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy  string          `json:"lastUpdatedBy"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		CurrencyCode:   rate.CurrencyCode,
		RateToUSD:      rate.RateToUSD,
		DateEffective:  rate.DateEffective,
		CreatedAt:      rate.CreatedAt,
		CreatedBy:      rate.CreatedBy,
		LastUpdatedAt:  rate.LastUpdatedAt,
		LastUpdatedBy:  rate.LastUpdatedBy,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to response DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}

// RateTableResponse is the snapshot the costing engine currently uses.
type RateTableResponse struct {
	SettlementCurrency string                     `json:"settlementCurrency"`
	Rates              map[string]decimal.Decimal `json:"rates"`
	CryptoCurrencies   []string                   `json:"cryptoCurrencies"`
}

// ToRateTableResponse flattens a rate table snapshot for presentation.
func ToRateTableResponse(table *costing.RateTable) RateTableResponse {
	rates := make(map[string]decimal.Decimal)
	crypto := make([]string, 0)
	for _, code := range table.Currencies() {
		rate, err := table.Rate(code)
		if err != nil {
			continue // unreachable: Currencies only returns configured codes
		}
		rates[code] = rate
		if table.IsCrypto(code) {
			crypto = append(crypto, code)
		}
	}
	return RateTableResponse{
		SettlementCurrency: table.Settlement(),
		Rates:              rates,
		CryptoCurrencies:   crypto,
	}
}
