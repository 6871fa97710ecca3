package transaction

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const minorUnitDigits = 2

var ErrInvalidAmount = errors.New("amount must be a positive number with at most two decimals")

var maxAmount = decimal.New(1, 16)

// ParseAmount converts a decimal string ("12.34" or "12,34") to minor units.
// Values with more than two decimals are rounded half-up.
func ParseAmount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	d = d.Round(minorUnitDigits)
	if !d.IsPositive() || d.GreaterThanOrEqual(maxAmount) {
		return 0, ErrInvalidAmount
	}

	return d.Shift(minorUnitDigits).IntPart(), nil
}

// FormatAmount renders minor units as a decimal string with two places.
func FormatAmount(minor int64) string {
	return decimal.New(minor, -minorUnitDigits).StringFixed(minorUnitDigits)
}
