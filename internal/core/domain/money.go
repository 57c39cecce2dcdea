package domain

import "github.com/shopspring/decimal"

// All monetary amounts are fixed-point with exactly 2 fractional digits.
// Balance arithmetic never touches floats.

// ValidAmount reports whether d is a positive amount with at most 2 decimals.
func ValidAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Round(2))
}

// MustMoney parses a decimal literal. Panics on malformed input; test helper
// and bootstrap use only.
func MustMoney(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
