package costing

import (
	"github.com/paylinear/payroll_backend/internal/core/domain"
)

// Aggregate folds a batch of converted items into per-source-currency
// breakdown groups plus grand totals, in a single pass. Iteration order does
// not affect the result. An empty batch yields zero totals and an empty group
// map; aggregation cannot fail, since invalid items are rejected at Convert.
func Aggregate(items []domain.ConvertedItem) domain.CostSummary {
	summary := domain.CostSummary{
		Groups: make(map[string]domain.BreakdownGroup, len(items)),
	}

	for _, item := range items {
		group := summary.Groups[item.CurrencyCode]
		group.Count++
		group.SettlementValue = group.SettlementValue.Add(item.SettlementValue)
		group.Fee = group.Fee.Add(item.Fee)
		summary.Groups[item.CurrencyCode] = group

		summary.TotalSettlementValue = summary.TotalSettlementValue.Add(item.SettlementValue)
		summary.TotalFee = summary.TotalFee.Add(item.Fee)
	}

	return summary
}
