package calculation

import (
	"github.com/rpgo/dignity-planner/internal/domain"
	rates "github.com/rpgo/dignity-planner/pkg/decimal"
	"github.com/shopspring/decimal"
)

// trackedAsset is a liquid holding frozen at its initial state.
type trackedAsset struct {
	name       string
	category   string
	initial    decimal.Decimal
	growthRate decimal.Decimal
	yieldRate  decimal.Decimal
}

func trackAssets(assets []domain.LiquidAsset) []trackedAsset {
	tracked := make([]trackedAsset, 0, len(assets))
	for _, a := range domain.LiquidOnly(assets) {
		tracked = append(tracked, trackedAsset{
			name:       a.Name,
			category:   a.Category,
			initial:    a.Value,
			growthRate: a.GrowthRate,
			yieldRate:  a.YieldRate,
		})
	}
	return tracked
}

func totalInitial(assets []trackedAsset) decimal.Decimal {
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(a.initial)
	}
	return total
}

// yearFigures is what a mode contributes to a row before outgo is applied.
type yearFigures struct {
	opening   decimal.Decimal
	yield     decimal.Decimal
	breakdown []domain.AssetYieldBreakdown
}

// projectionMode is one state of the engine's phase machine.
type projectionMode interface {
	phase() domain.Phase
	open(yearIndex int) yearFigures
	// settle records the year's closing figure and returns the value carried forward.
	settle(closing decimal.Decimal) decimal.Decimal
}

// accumulationMode compounds every asset from its own initial value; nothing is withdrawn.
type accumulationMode struct {
	assets []trackedAsset
}

func (accumulationMode) phase() domain.Phase { return domain.PhaseAccumulation }

func (m accumulationMode) open(yearIndex int) yearFigures {
	fig := yearFigures{
		opening:   decimal.Zero,
		yield:     decimal.Zero,
		breakdown: make([]domain.AssetYieldBreakdown, 0, len(m.assets)),
	}
	for _, a := range m.assets {
		value := rates.FutureValue(a.initial, a.growthRate, yearIndex)
		yield := rates.PercentOf(value, a.yieldRate)
		fig.opening = fig.opening.Add(value)
		fig.yield = fig.yield.Add(yield)
		fig.breakdown = append(fig.breakdown, domain.AssetYieldBreakdown{
			AssetName:    a.name,
			Category:     a.category,
			AssetValue:   value,
			YieldPercent: a.yieldRate,
			YieldAmount:  yield,
		})
	}
	return fig
}

func (accumulationMode) settle(closing decimal.Decimal) decimal.Decimal {
	return rates.MaxZero(closing)
}

// distributionMode draws down a single pool frozen at the retirement transition.
// The per-asset breakdown is pro-rated by initial-value weights, not by each
// asset's own trajectory.
type distributionMode struct {
	assets  []trackedAsset
	weights []decimal.Decimal
	pool    decimal.Decimal
}

func newDistributionMode(assets []trackedAsset, yearsToRetirement int) *distributionMode {
	m := &distributionMode{
		assets:  assets,
		weights: make([]decimal.Decimal, len(assets)),
		pool:    decimal.Zero,
	}
	total := totalInitial(assets)
	for i, a := range assets {
		m.pool = m.pool.Add(rates.FutureValue(a.initial, a.growthRate, yearsToRetirement))
		m.weights[i] = rates.Ratio(a.initial, total)
	}
	return m
}

func (*distributionMode) phase() domain.Phase { return domain.PhaseDistribution }

func (m *distributionMode) open(int) yearFigures {
	fig := yearFigures{
		opening:   m.pool,
		yield:     decimal.Zero,
		breakdown: make([]domain.AssetYieldBreakdown, 0, len(m.assets)),
	}
	for i, a := range m.assets {
		value := m.pool.Mul(m.weights[i])
		yield := rates.PercentOf(value, a.yieldRate)
		fig.yield = fig.yield.Add(yield)
		fig.breakdown = append(fig.breakdown, domain.AssetYieldBreakdown{
			AssetName:    a.name,
			Category:     a.category,
			AssetValue:   value,
			YieldPercent: a.yieldRate,
			YieldAmount:  yield,
		})
	}
	return fig
}

func (m *distributionMode) settle(closing decimal.Decimal) decimal.Decimal {
	m.pool = rates.MaxZero(closing)
	return m.pool
}
