package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// minorExp is the number of decimal places of every supported currency (USD cents, NGN kobo).
const minorExp = 2

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// ToMinor converts a major-unit amount to minor units, rounding half away from zero.
// Amounts that do not fit in an int64 return ErrAmountOutOfRange.
func ToMinor(amount decimal.Decimal) (int64, error) {
	minor := amount.Round(minorExp).Shift(minorExp)
	if minor.Cmp(maxMinor) > 0 || minor.Cmp(minMinor) < 0 {
		return 0, fmt.Errorf("%w: %s", ErrAmountOutOfRange, amount.String())
	}
	return minor.IntPart(), nil
}

// FromMinor converts minor units back to a 2dp major-unit decimal.
func FromMinor(minor int64) decimal.Decimal {
	return decimal.New(minor, -minorExp)
}

// FormatMinor renders minor units for display, e.g. 5490 -> "54.90".
func FormatMinor(minor int64) string {
	return FromMinor(minor).StringFixed(minorExp)
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(minorExp)
}

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
