package domain

// Currency represents a supported currency in the domain.
// Crypto rails (e.g. USDT, BTC, ETH) are flagged explicitly; the set of
// payment rails is configured, never inferred from the code itself.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD", "USDT")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	IsCrypto     bool   `json:"isCrypto"`
	AuditFields
}
