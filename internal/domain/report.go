package domain

import "github.com/shopspring/decimal"

// FundingStatus is the qualitative band of aggregate milestone coverage.
type FundingStatus string

const (
	FundingSurplus FundingStatus = "surplus"
	FundingOnTrack FundingStatus = "on_track"
	FundingCaution FundingStatus = "caution"
	FundingGap     FundingStatus = "gap"
	FundingNoGoals FundingStatus = "no_goals"
)

// LinkFunding is one earmarked asset's projected contribution to a milestone.
type LinkFunding struct {
	AssetID           string          `json:"asset_id"`
	AssetName         string          `json:"asset_name"`
	AllocationPercent decimal.Decimal `json:"allocation_percent"`
	ProjectedValue    decimal.Decimal `json:"projected_value"`
	FundingPercent    decimal.Decimal `json:"funding_percent"`
}

// MilestoneFunding is the evaluated state of one milestone.
type MilestoneFunding struct {
	MilestoneID        string          `json:"milestone_id"`
	Name               string          `json:"name"`
	Category           string          `json:"category"`
	YearsToTarget      int             `json:"years_to_target"`
	FutureCost         decimal.Decimal `json:"future_cost"`
	Historical         bool            `json:"historical"`
	CoreResponsibility bool            `json:"core_responsibility"`
	Links              []LinkFunding   `json:"links"`
	ProjectedEarmarked decimal.Decimal `json:"projected_earmarked"`
	FundingPercent     decimal.Decimal `json:"funding_percent"`
	AmountStillNeeded  decimal.Decimal `json:"amount_still_needed"`
}

// Underfunded reports an active goal whose earmarks cover less than its cost.
func (m MilestoneFunding) Underfunded() bool {
	return !m.Historical && m.FundingPercent.LessThan(decimal.NewFromInt(100))
}

// MilestoneReport aggregates milestone funding against the projected corpus.
type MilestoneReport struct {
	Milestones               []MilestoneFunding `json:"milestones"`
	TotalProjectedAssets     decimal.Decimal    `json:"total_projected_assets"`
	BaselineCorpus           decimal.Decimal    `json:"baseline_corpus"`
	TotalAvailable           decimal.Decimal    `json:"total_available"`
	TotalFutureCost          decimal.Decimal    `json:"total_future_cost"`
	TotalStillNeeded         decimal.Decimal    `json:"total_still_needed"`
	CoveragePercent          decimal.Decimal    `json:"coverage_percent"`
	Status                   FundingStatus      `json:"status"`
	UnderfundedCoreMilestone []string           `json:"underfunded_core_milestones,omitempty"`
}

// SolvencyPoint is one age of the pooled lifetime simulation.
type SolvencyPoint struct {
	Age      int             `json:"age"`
	Corpus   decimal.Decimal `json:"corpus"`
	Expenses decimal.Decimal `json:"expenses"`
}

// SolvencyResult is the outcome of the lifetime solvency walk.
type SolvencyResult struct {
	BlendedGrowthRate decimal.Decimal `json:"blended_growth_rate"` // percent
	BlendedYieldRate  decimal.Decimal `json:"blended_yield_rate"`  // percent
	Points            []SolvencyPoint `json:"points"`
	ZeroDignityAge    *int            `json:"zero_dignity_age"`
}

// Solvent reports whether the corpus outlived the simulated horizon.
func (s SolvencyResult) Solvent() bool {
	return len(s.Points) > 0 && s.ZeroDignityAge == nil
}

// DignityBand is the qualitative reading of the dignity gauge.
type DignityBand string

const (
	DignityDignified    DignityBand = "dignified"
	DignityModerateRisk DignityBand = "moderate_risk"
	DignityHighDeficit  DignityBand = "high_deficit"
)

// DignityGauge compares today's passive yield with today's annual need.
type DignityGauge struct {
	AnnualYield decimal.Decimal `json:"annual_yield"`
	AnnualNeed  decimal.Decimal `json:"annual_need"`
	Ratio       decimal.Decimal `json:"ratio"`
	Band        DignityBand     `json:"band"`
}

// RunwayYear is one year of the static-corpus drawdown.
type RunwayYear struct {
	Year            int             `json:"year"`
	Expenses        decimal.Decimal `json:"expenses"`
	Yield           decimal.Decimal `json:"yield"`
	// CorpusRemaining is the corpus entering the year.
	CorpusRemaining decimal.Decimal `json:"corpus_remaining"`
}

// Runway counts how many years the liquid corpus covers the yield shortfall.
type Runway struct {
	Years int          `json:"years"`
	Rows  []RunwayYear `json:"rows"`
}

// PlanReport bundles every figure computed from one snapshot.
type PlanReport struct {
	Profile           Profile          `json:"profile"`
	Projections       []YearProjection `json:"projections"`
	YearsToRetirement int              `json:"years_to_retirement"`
	Baseline          BaselineNeed     `json:"baseline"`
	Provision         Provision        `json:"provision"`
	Reconciliation    Reconciliation   `json:"reconciliation"`
	Solvency          SolvencyResult   `json:"solvency"`
	Dignity           DignityGauge     `json:"dignity"`
	Milestones        MilestoneReport  `json:"milestones"`
	Runway            Runway           `json:"runway"`
}

// RetirementYear returns the first distribution-phase projection, if any.
func (r *PlanReport) RetirementYear() (YearProjection, bool) {
	for _, p := range r.Projections {
		if p.IsRetired() {
			return p, true
		}
	}
	return YearProjection{}, false
}

// FinalYear returns the last projected year, if any.
func (r *PlanReport) FinalYear() (YearProjection, bool) {
	if len(r.Projections) == 0 {
		return YearProjection{}, false
	}
	return r.Projections[len(r.Projections)-1], true
}
