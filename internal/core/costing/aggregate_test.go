package costing_test

import (
	"testing"

	"github.com/paylinear/payroll_backend/internal/core/costing"
	"github.com/paylinear/payroll_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func convertBatch(t *testing.T, table *costing.RateTable, items []domain.LineItem) []domain.ConvertedItem {
	t.Helper()
	converted, failed := costing.ConvertAll(items, table)
	require.Empty(t, failed)
	return converted
}

func TestAggregate_Empty(t *testing.T) {
	summary := costing.Aggregate(nil)

	assert.True(t, summary.TotalSettlementValue.IsZero())
	assert.True(t, summary.TotalFee.IsZero())
	assert.Empty(t, summary.Groups)
	assert.NotNil(t, summary.Groups)
}

func TestAggregate_GroupsByCurrency(t *testing.T) {
	table := testRates(t)
	converted := convertBatch(t, table, []domain.LineItem{
		{SourceID: "e1", Amount: d("100"), CurrencyCode: "EUR"},
		{SourceID: "e2", Amount: d("200"), CurrencyCode: "EUR"},
		{SourceID: "e3", Amount: d("500"), CurrencyCode: "USD"},
	})

	summary := costing.Aggregate(converted)

	require.Len(t, summary.Groups, 2, "no groups for currencies without items")

	eur := summary.Groups["EUR"]
	assert.Equal(t, 2, eur.Count)
	assert.True(t, eur.SettlementValue.Equal(d("300").Mul(d("1.08"))))

	usd := summary.Groups["USD"]
	assert.Equal(t, 1, usd.Count)
	assert.True(t, usd.SettlementValue.Equal(d("500")))
	assert.True(t, usd.Fee.Equal(d("10.00")))

	// Group totals must sum to the grand totals.
	assert.True(t, eur.SettlementValue.Add(usd.SettlementValue).Equal(summary.TotalSettlementValue))
	assert.True(t, eur.Fee.Add(usd.Fee).Equal(summary.TotalFee))
}

func TestAggregate_Additivity(t *testing.T) {
	table := testRates(t)
	batch := convertBatch(t, table, []domain.LineItem{
		{SourceID: "e1", Amount: d("8500"), CurrencyCode: "SGD"},
		{SourceID: "e2", Amount: d("6200"), CurrencyCode: "EUR"},
		{SourceID: "e3", Amount: d("300000"), CurrencyCode: "JPY"},
		{SourceID: "e4", Amount: d("4200"), CurrencyCode: "USD"},
		{SourceID: "e5", Amount: d("9100.55"), CurrencyCode: "EUR"},
	})

	whole := costing.Aggregate(batch)
	first := costing.Aggregate(batch[:2])
	second := costing.Aggregate(batch[2:])

	assert.True(t, whole.TotalSettlementValue.Equal(first.TotalSettlementValue.Add(second.TotalSettlementValue)))
	assert.True(t, whole.TotalFee.Equal(first.TotalFee.Add(second.TotalFee)))
}

func TestAggregate_OrderIndependent(t *testing.T) {
	table := testRates(t)
	batch := convertBatch(t, table, []domain.LineItem{
		{SourceID: "e1", Amount: d("8500"), CurrencyCode: "SGD"},
		{SourceID: "e2", Amount: d("6200"), CurrencyCode: "EUR"},
		{SourceID: "e3", Amount: d("4200"), CurrencyCode: "USD"},
	})

	reversed := make([]domain.ConvertedItem, len(batch))
	for i, item := range batch {
		reversed[len(batch)-1-i] = item
	}

	forward := costing.Aggregate(batch)
	backward := costing.Aggregate(reversed)

	assert.True(t, forward.TotalSettlementValue.Equal(backward.TotalSettlementValue))
	assert.True(t, forward.TotalFee.Equal(backward.TotalFee))
	assert.Equal(t, forward.Groups, backward.Groups)
}
