package calculation

import (
	"github.com/rpgo/dignity-planner/internal/domain"
	rates "github.com/rpgo/dignity-planner/pkg/decimal"
	"github.com/shopspring/decimal"
)

// MaxRunwayYears caps the drawdown simulation.
const MaxRunwayYears = 30

// CalculateRunway counts how many years a static liquid corpus covers the gap
// between an inflating annual burn and its fixed yield. Each row carries the
// corpus at the start of its year, before that year's deficit is drawn.
func CalculateRunway(assets []domain.LiquidAsset, annualBurn, inflationPercent decimal.Decimal) domain.Runway {
	liquid := domain.LiquidOnly(assets)
	corpus := decimal.Zero
	yield := decimal.Zero
	for _, a := range liquid {
		corpus = corpus.Add(a.Value)
		yield = yield.Add(rates.PercentOf(a.Value, a.YieldRate))
	}

	var rw domain.Runway
	if !corpus.IsPositive() || !annualBurn.IsPositive() {
		return rw
	}

	burn := annualBurn
	for corpus.IsPositive() && rw.Years < MaxRunwayYears {
		rw.Rows = append(rw.Rows, domain.RunwayYear{
			Year:            len(rw.Rows) + 1,
			Expenses:        burn,
			Yield:           yield,
			CorpusRemaining: corpus,
		})
		corpus = corpus.Sub(rates.MaxZero(burn.Sub(yield)))
		if corpus.IsPositive() {
			rw.Years++
		}
		burn = rates.FutureValue(burn, inflationPercent, 1)
	}
	return rw
}
