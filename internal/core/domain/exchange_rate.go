package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores how many settlement-currency (USD) units one unit of a
// currency is worth, effective from a given date. The settlement currency
// itself always carries a rate of exactly 1.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Primary Key (UUID)
	CurrencyCode   string          `json:"currencyCode"`   // FK -> Currency.currencyCode
	RateToUSD      decimal.Decimal `json:"rateToUSD"`
	DateEffective  time.Time       `json:"dateEffective"`
	AuditFields
}
