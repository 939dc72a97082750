// Package costing implements the multi-currency cost engine: conversion of
// local-currency line items into the settlement currency, fee application,
// per-currency aggregation and checkout quoting. Every function is pure; the
// engine owns no state beyond the immutable rate table snapshot it is handed.
package costing

import (
	"fmt"

	"github.com/paylinear/payroll_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// RateTable is an immutable snapshot of exchange rates, each expressed as the
// settlement-currency value of one unit of the keyed currency. Rates never
// change within a single aggregation pass; a refresh is a fresh table, not a
// mutation of this one.
type RateTable struct {
	settlement string
	rates      map[string]decimal.Decimal
	crypto     map[string]bool
}

// NewRateTable builds a snapshot from the given rates. The settlement
// currency must map to exactly 1 and no rate may be negative; crypto lists
// the payment rails that attract the crypto surcharge at checkout.
func NewRateTable(settlement string, rates map[string]decimal.Decimal, crypto []string) (*RateTable, error) {
	one := decimal.NewFromInt(1)
	settlementRate, ok := rates[settlement]
	if !ok || !settlementRate.Equal(one) {
		return nil, fmt.Errorf("%w: settlement currency %s must have rate 1", apperrors.ErrValidation, settlement)
	}
	copied := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		if rate.IsNegative() {
			return nil, fmt.Errorf("%w: rate for %s is negative", apperrors.ErrValidation, code)
		}
		copied[code] = rate
	}
	cryptoSet := make(map[string]bool, len(crypto))
	for _, code := range crypto {
		cryptoSet[code] = true
	}
	return &RateTable{settlement: settlement, rates: copied, crypto: cryptoSet}, nil
}

// Settlement returns the settlement currency code of this table.
func (t *RateTable) Settlement() string {
	return t.settlement
}

// Rate returns the settlement-currency value of one unit of currencyCode.
// A code outside the configured set is a hard ErrUnknownCurrency; it is never
// silently defaulted to 1, since that would misstate cost.
func (t *RateTable) Rate(currencyCode string) (decimal.Decimal, error) {
	rate, ok := t.rates[currencyCode]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrency, currencyCode)
	}
	return rate, nil
}

// IsCrypto reports whether currencyCode is a configured crypto payment rail.
func (t *RateTable) IsCrypto(currencyCode string) bool {
	return t.crypto[currencyCode]
}

// Currencies returns the codes present in the table.
func (t *RateTable) Currencies() []string {
	codes := make([]string, 0, len(t.rates))
	for code := range t.rates {
		codes = append(codes, code)
	}
	return codes
}
