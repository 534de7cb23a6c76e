package output

import (
	"github.com/rpgo/dignity-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// Highlights are the headline facts pulled out of a plan for summaries.
type Highlights struct {
	RetirementYear   int
	RetirementAge    int
	RetirementCorpus decimal.Decimal
	FinalCorpus      decimal.Decimal
	// DepletionAge is the first distribution age whose closing corpus is not positive (0 if none).
	DepletionAge int
	PeakCorpus   decimal.Decimal
	PeakAge      int
}

// AnalyzePlan extracts the headline facts of a projection.
// Extracted from the console formatter for testability.
func AnalyzePlan(report *domain.PlanReport) Highlights {
	var h Highlights
	if report == nil {
		return h
	}
	if ry, ok := report.RetirementYear(); ok {
		h.RetirementYear = ry.Year
		h.RetirementAge = ry.Age
		h.RetirementCorpus = ry.OpeningCorpus
	}
	if fy, ok := report.FinalYear(); ok {
		h.FinalCorpus = fy.ClosingCorpus
	}
	for _, p := range report.Projections {
		if p.ClosingCorpus.GreaterThan(h.PeakCorpus) {
			h.PeakCorpus = p.ClosingCorpus
			h.PeakAge = p.Age
		}
		if h.DepletionAge == 0 && p.IsRetired() && p.IsDepleted() {
			h.DepletionAge = p.Age
		}
	}
	return h
}
