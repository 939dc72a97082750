package costing

import (
	"fmt"

	"github.com/paylinear/payroll_backend/internal/apperrors"
	"github.com/paylinear/payroll_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// cryptoSurchargePct is the extra processing fee applied when the payment
// rail is a crypto asset.
var cryptoSurchargePct = decimal.RequireFromString("0.005") // 0.5%

// Quote computes the final payable for a settled batch: base = subtotal +
// fees, plus the crypto surcharge when paymentCurrency is a configured crypto
// rail, converted into the payment currency by division through its rate
// (the rate expresses payment-currency-to-settlement value, so the inverse
// direction divides). A missing payment currency fails with
// ErrUnknownCurrency; a configured rate of exactly zero fails with
// ErrZeroRate rather than producing Inf or NaN.
// Quote is deterministic and side-effect-free: identical inputs yield
// identical output.
func Quote(subtotal, feeTotal decimal.Decimal, paymentCurrency string, rates *RateTable) (domain.CheckoutQuote, error) {
	rate, err := rates.Rate(paymentCurrency)
	if err != nil {
		return domain.CheckoutQuote{}, err
	}
	if rate.IsZero() {
		return domain.CheckoutQuote{}, fmt.Errorf("%w: %s", apperrors.ErrZeroRate, paymentCurrency)
	}

	base := subtotal.Add(feeTotal)

	surcharge := decimal.Zero
	if rates.IsCrypto(paymentCurrency) {
		surcharge = base.Mul(cryptoSurchargePct)
	}

	payable := base.Add(surcharge)

	return domain.CheckoutQuote{
		BaseTotal:       base,
		PaymentCurrency: paymentCurrency,
		CryptoSurcharge: surcharge,
		Payable:         payable,
		ConvertedAmount: payable.Div(rate),
	}, nil
}

// QuoteSummary is a convenience over Quote for callers holding a CostSummary.
func QuoteSummary(summary domain.CostSummary, paymentCurrency string, rates *RateTable) (domain.CheckoutQuote, error) {
	return Quote(summary.TotalSettlementValue, summary.TotalFee, paymentCurrency, rates)
}
