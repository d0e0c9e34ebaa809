package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// BaseCurrencyCode is the currency every budget and rendering total is kept in.
// Cost-center consumption and fund reconciliation normalize to this before summing.
const BaseCurrencyCode = "PEN"

// BaseCurrencyPrecision is the decimal precision of the base currency, used
// when rendering base-currency totals for display.
const BaseCurrencyPrecision = 2

// ErrMissingExchangeRate is returned when a non-base-currency amount has no
// recorded exchange rate. Normalization never silently treats it as zero.
var ErrMissingExchangeRate = errors.New("missing exchange rate for non-base currency")

// Currency represents a supported currency.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "PEN")
	Symbol       string `json:"symbol"`       // e.g., "S/"
	Name         string `json:"name"`         // e.g., "Sol Peruano"
	Precision    int    `json:"precision"`    // Decimal places, e.g., 2
	AuditFields
}

// NormalizeToBase converts an amount in the given currency to the base
// currency using the recorded exchange rate. The rate is the one captured on
// the expense itself, not a live rate.
func NormalizeToBase(amount decimal.Decimal, currencyCode string, exchangeRate *decimal.Decimal) (decimal.Decimal, error) {
	if currencyCode == BaseCurrencyCode {
		return amount, nil
	}
	if exchangeRate == nil || exchangeRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: currency %s", ErrMissingExchangeRate, currencyCode)
	}
	return amount.Mul(*exchangeRate), nil
}
