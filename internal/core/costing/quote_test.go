package costing_test

import (
	"testing"

	"github.com/paylinear/payroll_backend/internal/apperrors"
	"github.com/paylinear/payroll_backend/internal/core/costing"
	"github.com/paylinear/payroll_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote_FiatHasNoSurcharge(t *testing.T) {
	table := testRates(t)

	quote, err := costing.Quote(d("12986.0"), d("104.93"), "USD", table)
	require.NoError(t, err)

	assert.True(t, quote.CryptoSurcharge.IsZero())
	assert.True(t, quote.Payable.Equal(d("13090.93")))
	assert.True(t, quote.ConvertedAmount.Equal(d("13090.93")))
}

func TestQuote_CryptoSurcharge(t *testing.T) {
	table := testRates(t)

	quote, err := costing.Quote(d("1000"), d("0"), "USDT", table)
	require.NoError(t, err)

	assert.True(t, quote.CryptoSurcharge.Equal(d("5")), "0.5%% of the base total")
	assert.True(t, quote.Payable.Equal(d("1005")))
	assert.True(t, quote.Payable.Equal(d("1000").Mul(d("1.005"))))
}

func TestQuote_ConvertsByDivision(t *testing.T) {
	table := testRates(t)

	quote, err := costing.Quote(d("65000"), d("0"), "BTC", table)
	require.NoError(t, err)

	// payable = 65000 * 1.005 = 65325 USD; at 65000 USD/BTC that is 1.005 BTC.
	assert.True(t, quote.Payable.Equal(d("65325")))
	assert.True(t, quote.ConvertedAmount.Equal(d("1.005")))
}

func TestQuote_Idempotent(t *testing.T) {
	table := testRates(t)

	first, err := costing.Quote(d("12986.0"), d("104.93"), "USDT", table)
	require.NoError(t, err)
	second, err := costing.Quote(d("12986.0"), d("104.93"), "USDT", table)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestQuote_UnknownPaymentCurrency(t *testing.T) {
	table := testRates(t)

	_, err := costing.Quote(d("100"), d("10"), "DOGE", table)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownCurrency)
	assert.Contains(t, err.Error(), "DOGE")
}

func TestQuote_ZeroRateRejected(t *testing.T) {
	table, err := costing.NewRateTable("USD", map[string]decimal.Decimal{
		"USD": d("1.0"),
		"ZWL": d("0"),
	}, nil)
	require.NoError(t, err)

	_, err = costing.Quote(d("100"), d("10"), "ZWL", table)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrZeroRate)
	assert.Contains(t, err.Error(), "ZWL")
}

// End-to-end scenario: two cross-currency salaries aggregated and paid out in
// USDT, matching the reference figures to a cent.
func TestEndToEndPayrollCosting(t *testing.T) {
	table, err := costing.NewRateTable("USD", map[string]decimal.Decimal{
		"USD": d("1.0"),
		"SGD": d("0.74"),
		"EUR": d("1.08"),
	}, []string{"USDT", "BTC", "ETH"})
	require.NoError(t, err)

	converted, failed := costing.ConvertAll([]domain.LineItem{
		{SourceID: "emp-sg", Category: domain.Compensation, Amount: d("8500"), CurrencyCode: "SGD"},
		{SourceID: "emp-eu", Category: domain.Compensation, Amount: d("6200"), CurrencyCode: "EUR"},
	}, table)
	require.Empty(t, failed)
	require.Len(t, converted, 2)

	assert.InDelta(t, 6290.0, converted[0].SettlementValue.InexactFloat64(), 0.01)
	assert.InDelta(t, 6696.0, converted[1].SettlementValue.InexactFloat64(), 0.01)
	assert.InDelta(t, 51.45, converted[0].Fee.InexactFloat64(), 0.01)
	assert.InDelta(t, 53.48, converted[1].Fee.InexactFloat64(), 0.01)

	summary := costing.Aggregate(converted)
	assert.InDelta(t, 12986.0, summary.TotalSettlementValue.InexactFloat64(), 0.01)
	assert.InDelta(t, 104.93, summary.TotalFee.InexactFloat64(), 0.01)
	assert.InDelta(t, 13090.93, summary.GrandTotal().InexactFloat64(), 0.01)

	// Crypto checkout: USDT at rate 1.0 adds the 0.5% rail surcharge.
	tableWithUSDT, err := costing.NewRateTable("USD", map[string]decimal.Decimal{
		"USD":  d("1.0"),
		"SGD":  d("0.74"),
		"EUR":  d("1.08"),
		"USDT": d("1.0"),
	}, []string{"USDT", "BTC", "ETH"})
	require.NoError(t, err)

	quote, err := costing.QuoteSummary(summary, "USDT", tableWithUSDT)
	require.NoError(t, err)
	assert.InDelta(t, 65.45, quote.CryptoSurcharge.InexactFloat64(), 0.01)
	assert.InDelta(t, 13156.38, quote.Payable.InexactFloat64(), 0.01)
	assert.InDelta(t, 13156.38, quote.ConvertedAmount.InexactFloat64(), 0.01)
}
