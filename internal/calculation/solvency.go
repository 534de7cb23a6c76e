package calculation

import (
	"github.com/rpgo/dignity-planner/internal/domain"
	rates "github.com/rpgo/dignity-planner/pkg/decimal"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// SolvencyInput is what the pooled lifetime walk reads.
type SolvencyInput struct {
	CurrentAge           int
	LifeExpectancy       int
	BaseInflationPercent decimal.Decimal
	LiquidAssets         []domain.LiquidAsset
	BaseLifestyle        decimal.Decimal
	AnnualProvision      decimal.Decimal
}

// BlendedRates returns the value-weighted mean growth and yield rates of the
// liquid holdings. Both are zero when the liquid corpus is zero.
func BlendedRates(assets []domain.LiquidAsset) (growth, yield decimal.Decimal) {
	liquid := domain.LiquidOnly(assets)
	values := make([]float64, len(liquid))
	growths := make([]float64, len(liquid))
	yields := make([]float64, len(liquid))
	total := 0.0
	for i, a := range liquid {
		values[i] = a.Value.InexactFloat64()
		growths[i] = a.GrowthRate.InexactFloat64()
		yields[i] = a.YieldRate.InexactFloat64()
		total += values[i]
	}
	if total == 0 {
		return decimal.Zero, decimal.Zero
	}
	growth = decimal.NewFromFloat(stat.Mean(growths, values)).Round(8)
	yield = decimal.NewFromFloat(stat.Mean(yields, values)).Round(8)
	return growth, yield
}

// SolvencyTracker walks the pooled corpus year by year until life expectancy.
// It is deliberately simpler than MasterCashFlowEngine and need not agree with it.
type SolvencyTracker struct{}

// Track finds the first age at which the pooled corpus is exhausted.
func (SolvencyTracker) Track(in SolvencyInput) domain.SolvencyResult {
	growth, yield := BlendedRates(in.LiquidAssets)
	result := domain.SolvencyResult{
		BlendedGrowthRate: growth,
		BlendedYieldRate:  yield,
	}

	corpus := decimal.Zero
	for _, a := range domain.LiquidOnly(in.LiquidAssets) {
		corpus = corpus.Add(a.Value)
	}
	if corpus.IsZero() {
		return result
	}

	for age := in.CurrentAge; age <= in.LifeExpectancy; age++ {
		expenses := rates.FutureValue(in.BaseLifestyle, in.BaseInflationPercent, age-in.CurrentAge).Add(in.AnnualProvision)
		shortfall := rates.MaxZero(expenses.Sub(rates.PercentOf(corpus, yield)))
		corpus = corpus.Add(rates.PercentOf(corpus, growth)).Sub(shortfall)

		if !corpus.IsPositive() && result.ZeroDignityAge == nil {
			zeroAge := age
			result.ZeroDignityAge = &zeroAge
		}
		result.Points = append(result.Points, domain.SolvencyPoint{
			Age:      age,
			Corpus:   rates.MaxZero(corpus),
			Expenses: expenses,
		})
	}
	return result
}
