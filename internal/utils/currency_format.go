package utils

import (
	"github.com/shopspring/decimal"
)

// FormatWithPrecision renders an amount with a fixed number of decimal
// places, e.g. 12.3456 at precision 2 -> "12.35".
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
