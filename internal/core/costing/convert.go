package costing

import (
	"fmt"

	"github.com/paylinear/payroll_backend/internal/apperrors"
	"github.com/paylinear/payroll_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Fee policy. Domestic (settlement-currency) transfers cost a flat fee; any
// cross-currency transfer costs a base fee plus a spread proportional to the
// converted value. The policy is identical for compensation and expense
// items; category only drives reporting.
var (
	domesticFee  = decimal.RequireFromString("10.00")
	crossFeeBase = decimal.RequireFromString("20.00")
	crossFeePct  = decimal.RequireFromString("0.005") // 0.5% of settlement value
)

// Convert prices one line item in the settlement currency and computes its
// processing fee. The settlement value is amount * rate at full precision;
// rounding happens only at presentation time, never before aggregation.
// A zero or negative amount fails with ErrInvalidAmount; an unconfigured
// currency fails with ErrUnknownCurrency. Both errors carry the offending
// item's id so callers can reject the single item and keep the batch.
func Convert(item domain.LineItem, rates *RateTable) (domain.ConvertedItem, error) {
	if !item.Amount.IsPositive() {
		return domain.ConvertedItem{}, fmt.Errorf("%w: item %s has amount %s", apperrors.ErrInvalidAmount, item.SourceID, item.Amount)
	}

	rate, err := rates.Rate(item.CurrencyCode)
	if err != nil {
		return domain.ConvertedItem{}, fmt.Errorf("item %s: %w", item.SourceID, err)
	}

	settlementValue := item.Amount.Mul(rate)

	fee := domesticFee
	if item.CurrencyCode != rates.Settlement() {
		fee = crossFeeBase.Add(settlementValue.Mul(crossFeePct))
	}

	return domain.ConvertedItem{
		LineItem:        item,
		Rate:            rate,
		SettlementValue: settlementValue,
		Fee:             fee,
	}, nil
}

// ConvertAll converts a batch of line items, collecting per-item failures
// keyed by source id instead of aborting the batch. The returned slice holds
// only the successfully converted items, in input order.
func ConvertAll(items []domain.LineItem, rates *RateTable) ([]domain.ConvertedItem, map[string]error) {
	converted := make([]domain.ConvertedItem, 0, len(items))
	var failed map[string]error
	for _, item := range items {
		ci, err := Convert(item, rates)
		if err != nil {
			if failed == nil {
				failed = make(map[string]error)
			}
			failed[item.SourceID] = err
			continue
		}
		converted = append(converted, ci)
	}
	return converted, failed
}
