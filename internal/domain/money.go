package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatAmount renders minor units as a decimal string with two fraction
// digits, e.g. 5000 becomes "50.00".
func FormatAmount(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}

// ParseAmount converts a decimal string like "50.00" into minor units.
// At most two fraction digits are accepted.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	minor := d.Shift(2)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("%w: more than two fraction digits in %q", ErrInvalidAmount, s)
	}
	if minor.IsNegative() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if minor.GreaterThan(decimal.NewFromInt(MaxTransactionAmount)) {
		return 0, fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, FormatAmount(MaxTransactionAmount))
	}

	return minor.IntPart(), nil
}
