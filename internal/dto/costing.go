package dto

import (
	"github.com/paylinear/payroll_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one cost entry submitted for ad-hoc summarization.
type LineItemRequest struct {
	SourceID      string          `json:"sourceID" binding:"required"`
	Category      string          `json:"category" binding:"required,oneof=COMPENSATION EXPENSE"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,currencycode"`
	BeneficiaryID string          `json:"beneficiaryID"`
}

// CostSummaryRequest asks for a what-if breakdown of arbitrary line items.
type CostSummaryRequest struct {
	Items []LineItemRequest `json:"items" binding:"required,dive"`
}

// ToLineItems converts the request entries into domain line items.
func (r CostSummaryRequest) ToLineItems() []domain.LineItem {
	items := make([]domain.LineItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = domain.LineItem{
			SourceID:      it.SourceID,
			Category:      domain.LineItemCategory(it.Category),
			Amount:        it.Amount,
			CurrencyCode:  it.CurrencyCode,
			BeneficiaryID: it.BeneficiaryID,
		}
	}
	return items
}

// BreakdownGroupResponse is the per-currency slice of a cost summary.
type BreakdownGroupResponse struct {
	Count           int             `json:"count"`
	SettlementValue decimal.Decimal `json:"settlementValue"`
	Fee             decimal.Decimal `json:"fee"`
	Total           decimal.Decimal `json:"total"`
}

// CostSummaryResponse carries full-precision totals; display rounding is the
// presentation layer's concern.
type CostSummaryResponse struct {
	Groups               map[string]BreakdownGroupResponse `json:"groups"`
	TotalSettlementValue decimal.Decimal                   `json:"totalSettlementValue"`
	TotalFee             decimal.Decimal                   `json:"totalFee"`
	GrandTotal           decimal.Decimal                   `json:"grandTotal"`
	FailedItems          map[string]string                 `json:"failedItems,omitempty"`
}

// ToCostSummaryResponse converts an engine summary plus per-item failures.
func ToCostSummaryResponse(summary *domain.CostSummary, failed map[string]error) CostSummaryResponse {
	groups := make(map[string]BreakdownGroupResponse, len(summary.Groups))
	for code, g := range summary.Groups {
		groups[code] = BreakdownGroupResponse{
			Count:           g.Count,
			SettlementValue: g.SettlementValue,
			Fee:             g.Fee,
			Total:           g.SettlementValue.Add(g.Fee),
		}
	}
	res := CostSummaryResponse{
		Groups:               groups,
		TotalSettlementValue: summary.TotalSettlementValue,
		TotalFee:             summary.TotalFee,
		GrandTotal:           summary.GrandTotal(),
	}
	if len(failed) > 0 {
		res.FailedItems = make(map[string]string, len(failed))
		for id, err := range failed {
			res.FailedItems[id] = err.Error()
		}
	}
	return res
}

// QuoteRequest asks for a checkout quote on already-aggregated totals.
type QuoteRequest struct {
	Subtotal        decimal.Decimal `json:"subtotal" binding:"required"`
	FeeTotal        decimal.Decimal `json:"feeTotal"`
	PaymentCurrency string          `json:"paymentCurrency" binding:"required,currencycode"`
}

// CheckoutQuoteResponse is the final payable presented at checkout.
type CheckoutQuoteResponse struct {
	BaseTotal       decimal.Decimal `json:"baseTotal"`
	PaymentCurrency string          `json:"paymentCurrency"`
	CryptoSurcharge decimal.Decimal `json:"cryptoSurcharge"`
	Payable         decimal.Decimal `json:"payable"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
}

// ToCheckoutQuoteResponse converts a domain.CheckoutQuote to its DTO.
func ToCheckoutQuoteResponse(q *domain.CheckoutQuote) CheckoutQuoteResponse {
	return CheckoutQuoteResponse{
		BaseTotal:       q.BaseTotal,
		PaymentCurrency: q.PaymentCurrency,
		CryptoSurcharge: q.CryptoSurcharge,
		Payable:         q.Payable,
		ConvertedAmount: q.ConvertedAmount,
	}
}
