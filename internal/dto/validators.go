package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// currencyCodePattern covers fiat ISO codes and the crypto rail tickers the
// dashboard supports (USDT is four letters, so a plain len=3 check is wrong).
var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3,5}$`)

func validCurrencyCode(fl validator.FieldLevel) bool {
	return currencyCodePattern.MatchString(fl.Field().String())
}

// RegisterCustomValidations wires the package's custom binding validators
// into gin's validator engine. Call once at startup.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("currencycode", validCurrencyCode)
}
