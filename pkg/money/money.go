package money

import "github.com/shopspring/decimal"

// Money amounts are stored as integer cents and computed as decimals. The
// helpers here keep the two representations from drifting apart and guard
// every ratio against a zero denominator.

var hundred = decimal.NewFromInt(100)

// FromCents converts an integer cents amount into a decimal currency value.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Shift(-2)
}

// Cents converts a decimal currency value into integer cents, rounding
// half-up at the second decimal place.
func Cents(value decimal.Decimal) int64 {
	return value.Round(2).Shift(2).IntPart()
}

// Percent returns value × (percent / 100).
func Percent(value, percent decimal.Decimal) decimal.Decimal {
	return value.Mul(percent).Div(hundred)
}

// RatioPercent returns part / whole × 100, or zero when whole is zero.
func RatioPercent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// PercentFromFloat converts a float percentage (e.g. config policy values)
// into a decimal.
func PercentFromFloat(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value)
}

// ClampNonNegative returns the value, or zero when the value is negative.
func ClampNonNegative(value decimal.Decimal) decimal.Decimal {
	if value.IsNegative() {
		return decimal.Zero
	}
	return value
}
