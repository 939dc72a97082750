package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnknownCurrency indicates that a currency code is not present in the
// configured rate table. Lookups never fall back to a default rate; a missing
// code is always surfaced to the caller.
var ErrUnknownCurrency = errors.New("unknown currency")

// ErrInvalidAmount indicates that a line item carried a zero or negative amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrZeroRate indicates that a configured exchange rate of exactly zero was
// about to be used as a divisor during an inverse conversion. This is a
// configuration defect; it must never be masked by returning Inf or NaN.
var ErrZeroRate = errors.New("exchange rate is zero")
