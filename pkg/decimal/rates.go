package decimal

import "github.com/shopspring/decimal"

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// GrowthFactor returns (1 + ratePercent/100)^years. Negative years are
// clamped to 0, so the factor is never a discount.
func GrowthFactor(ratePercent decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return one
	}
	return one.Add(ratePercent.Div(hundred)).Pow(decimal.NewFromInt(int64(years)))
}

// FutureValue compounds principal annually at ratePercent for years.
func FutureValue(principal, ratePercent decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return principal
	}
	return principal.Mul(GrowthFactor(ratePercent, years))
}

// PercentOf returns pct percent of amount.
func PercentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

// Ratio returns numerator/denominator, or zero when the denominator is zero.
func Ratio(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator)
}

// MaxZero floors d at zero.
func MaxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
