package domain

import (
	"github.com/shopspring/decimal"
)

// Phase names the engine mode a projection year was computed in.
type Phase string

const (
	PhaseAccumulation Phase = "accumulation"
	PhaseDistribution Phase = "distribution"
)

// AssetYieldBreakdown is one asset's contribution to a projection year.
type AssetYieldBreakdown struct {
	AssetName    string          `json:"asset_name"`
	Category     string          `json:"category"`
	AssetValue   decimal.Decimal `json:"asset_value"`
	YieldPercent decimal.Decimal `json:"yield_percent"`
	YieldAmount  decimal.Decimal `json:"yield_amount"`
}

// YearProjection represents the corpus movement for a single projected year.
// ClosingCorpus is the instantaneous result; CarriedCorpus is what the next
// distribution year opens with (floored at zero).
type YearProjection struct {
	YearIndex            int                   `json:"year_index"`
	Year                 int                   `json:"year"`
	Age                  int                   `json:"age"`
	Phase                Phase                 `json:"phase"`
	OpeningCorpus        decimal.Decimal       `json:"opening_corpus"`
	ProjectedYield       decimal.Decimal       `json:"projected_yield"`
	ProjectedAnnualOutgo decimal.Decimal       `json:"projected_annual_outgo"`
	ClosingCorpus        decimal.Decimal       `json:"closing_corpus"`
	CarriedCorpus        decimal.Decimal       `json:"carried_corpus"`
	AssetBreakdown       []AssetYieldBreakdown `json:"asset_breakdown"`
}

// IsRetired reports whether the year belongs to the distribution phase.
func (yp *YearProjection) IsRetired() bool {
	return yp.Phase == PhaseDistribution
}

// IsDepleted returns true if the corpus closed the year at or below zero.
func (yp *YearProjection) IsDepleted() bool {
	return yp.ClosingCorpus.LessThanOrEqual(decimal.Zero)
}

// ReplacementEvent is a single future replacement inside the provisioning horizon.
type ReplacementEvent struct {
	AssetName  string          `json:"asset_name"`
	Age        int             `json:"age"`
	FutureCost decimal.Decimal `json:"future_cost"`
}

// Provision is the smoothed annual liability for replacing depreciating goods.
type Provision struct {
	AnnualProvision decimal.Decimal    `json:"annual_provision"`
	TotalLiability  decimal.Decimal    `json:"total_liability"`
	Replacements    []ReplacementEvent `json:"replacements,omitempty"`
}

// BaselineNeed is the current (uninflated) annual requirement.
type BaselineNeed struct {
	LifestyleExpenses decimal.Decimal `json:"lifestyle_expenses"`
	SinkingFund       decimal.Decimal `json:"sinking_fund"`
	TotalNeed         decimal.Decimal `json:"total_need"`
}

// Reconciliation is the outcome of the year-5 self-consistency check.
type Reconciliation struct {
	Checked    bool            `json:"checked"`
	YearIndex  int             `json:"year_index"`
	Expected   decimal.Decimal `json:"expected"`
	Actual     decimal.Decimal `json:"actual"`
	Difference decimal.Decimal `json:"difference"`
	Tolerance  decimal.Decimal `json:"tolerance"`
	Reason     string          `json:"reason,omitempty"`
}

// Mismatch reports a failed check. Unchecked reconciliations never mismatch.
func (r Reconciliation) Mismatch() bool {
	return r.Checked && r.Difference.GreaterThan(r.Tolerance)
}
