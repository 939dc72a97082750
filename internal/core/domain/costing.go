package domain

import "github.com/shopspring/decimal"

// LineItemCategory distinguishes payroll compensation from reimbursable
// expenses. The fee policy is currently identical for both; the category is
// retained for reporting grouping.
type LineItemCategory string

const (
	Compensation LineItemCategory = "COMPENSATION"
	Expense      LineItemCategory = "EXPENSE"
)

// LineItem is the unit of cost fed into the costing engine: one employee's
// compensation for a run, or one expense receipt, in its own local currency.
// BeneficiaryID does not affect any monetary calculation and round-trips
// unchanged.
type LineItem struct {
	SourceID      string           `json:"sourceID"` // employee or expense-item id
	Category      LineItemCategory `json:"category"`
	Amount        decimal.Decimal  `json:"amount"`
	CurrencyCode  string           `json:"currencyCode"`
	BeneficiaryID string           `json:"beneficiaryID,omitempty"`
}

// ConvertedItem is a LineItem priced in the settlement currency. The derived
// fields are a pure function of (amount, currency, rate table) and are never
// cached across rate-table changes.
type ConvertedItem struct {
	LineItem
	Rate            decimal.Decimal `json:"rate"`
	SettlementValue decimal.Decimal `json:"settlementValue"`
	Fee             decimal.Decimal `json:"fee"`
}

// BreakdownGroup aggregates all converted items sharing one source currency.
type BreakdownGroup struct {
	Count           int             `json:"count"`
	SettlementValue decimal.Decimal `json:"settlementValue"`
	Fee             decimal.Decimal `json:"fee"`
}

// CostSummary is the result of aggregating a batch of converted items:
// per-currency groups plus grand totals. Groups exist only for currencies
// with at least one contributing item.
type CostSummary struct {
	Groups               map[string]BreakdownGroup `json:"groups"`
	TotalSettlementValue decimal.Decimal           `json:"totalSettlementValue"`
	TotalFee             decimal.Decimal           `json:"totalFee"`
}

// GrandTotal returns subtotal plus fees in the settlement currency.
func (s CostSummary) GrandTotal() decimal.Decimal {
	return s.TotalSettlementValue.Add(s.TotalFee)
}

// CheckoutQuote is the final payable presented at checkout. It is a view,
// recomputed on every input change, never persisted.
type CheckoutQuote struct {
	BaseTotal       decimal.Decimal `json:"baseTotal"` // subtotal + fees, settlement currency
	PaymentCurrency string          `json:"paymentCurrency"`
	CryptoSurcharge decimal.Decimal `json:"cryptoSurcharge"` // zero for fiat rails
	Payable         decimal.Decimal `json:"payable"`         // settlement currency
	ConvertedAmount decimal.Decimal `json:"convertedAmount"` // payable expressed in the payment currency
}
