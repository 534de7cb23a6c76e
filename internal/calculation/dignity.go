package calculation

import (
	"github.com/rpgo/dignity-planner/internal/domain"
	rates "github.com/rpgo/dignity-planner/pkg/decimal"
	"github.com/shopspring/decimal"
)

var (
	dignifiedRatio    = decimal.NewFromInt(1)
	moderateRiskRatio = decimal.NewFromFloat(0.7)
)

// CurrentYield is today's passive income from liquid holdings. Negative
// yield rates contribute nothing.
func CurrentYield(assets []domain.LiquidAsset) decimal.Decimal {
	total := decimal.Zero
	for _, a := range domain.LiquidOnly(assets) {
		if a.YieldRate.IsPositive() {
			total = total.Add(rates.PercentOf(a.Value, a.YieldRate))
		}
	}
	return total
}

// EvaluateDignity compares today's yield with the base-year total need.
func EvaluateDignity(assets []domain.LiquidAsset, need domain.BaselineNeed) domain.DignityGauge {
	g := domain.DignityGauge{
		AnnualYield: CurrentYield(assets),
		AnnualNeed:  need.TotalNeed.Abs(),
	}
	g.Ratio = rates.Ratio(g.AnnualYield, g.AnnualNeed)
	switch {
	case g.Ratio.GreaterThanOrEqual(dignifiedRatio):
		g.Band = domain.DignityDignified
	case g.Ratio.GreaterThanOrEqual(moderateRiskRatio):
		g.Band = domain.DignityModerateRisk
	default:
		g.Band = domain.DignityHighDeficit
	}
	return g
}
