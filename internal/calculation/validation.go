package calculation

import (
	"fmt"

	"github.com/rpgo/dignity-planner/internal/domain"
	rates "github.com/rpgo/dignity-planner/pkg/decimal"
	"github.com/shopspring/decimal"
)

// DefaultReconciliationYear is the accumulation year recomputed independently.
const DefaultReconciliationYear = 5

// ReconciliationTolerance is the largest acceptable absolute difference.
var ReconciliationTolerance = decimal.NewFromInt(1)

// reconcile recomputes the corpus at yearIndex straight from each asset's
// future value and compares it with the engine's opening corpus for that year.
func reconcile(assets []domain.LiquidAsset, rows []domain.YearProjection, yearIndex int, tolerance decimal.Decimal) domain.Reconciliation {
	r := domain.Reconciliation{
		YearIndex:  yearIndex,
		Expected:   decimal.Zero,
		Actual:     decimal.Zero,
		Difference: decimal.Zero,
		Tolerance:  tolerance,
	}
	if yearIndex >= len(rows) {
		r.Reason = fmt.Sprintf("projection has no year %d", yearIndex)
		return r
	}
	row := rows[yearIndex]
	if row.Phase != domain.PhaseAccumulation {
		r.Reason = fmt.Sprintf("year %d is already in distribution", yearIndex)
		return r
	}

	for _, a := range domain.LiquidOnly(assets) {
		r.Expected = r.Expected.Add(rates.FutureValue(a.Value, a.GrowthRate, yearIndex))
	}
	r.Checked = true
	r.Actual = row.OpeningCorpus
	r.Difference = r.Expected.Sub(r.Actual).Abs()
	return r
}
