package domain

import (
	"strings"

	rates "github.com/rpgo/dignity-planner/pkg/decimal"
	"github.com/shopspring/decimal"
)

// UsageType partitions vault assets into corpus-bearing and excluded holdings.
type UsageType string

const (
	UsageLiquid  UsageType = "liquid"
	UsageSelfUse UsageType = "self_use"
)

// Frequency of a recurring expense.
type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyAnnual  Frequency = "annual"
)

// HealthCategoryName identifies the expense category inflated at the health rate.
const HealthCategoryName = "Health"

// Profile holds the demographic and inflation assumptions for one projection run.
type Profile struct {
	Name            string          `yaml:"name" json:"name"`
	CurrentAge      int             `yaml:"current_age" json:"current_age"`
	RetirementAge   int             `yaml:"target_retirement_age" json:"target_retirement_age"`
	LifeExpectancy  int             `yaml:"life_expectancy" json:"life_expectancy"`
	BaseInflation   decimal.Decimal `yaml:"base_inflation" json:"base_inflation"`     // percent
	HealthInflation decimal.Decimal `yaml:"health_inflation" json:"health_inflation"` // percent

	// Dependents maps a dependent key (e.g. "child_1") to that dependent's current age.
	Dependents map[string]int `yaml:"dependents,omitempty" json:"dependents,omitempty"`
}

// YearsToRetirement returns the whole years between now and retirement.
func (p Profile) YearsToRetirement() int {
	return p.RetirementAge - p.CurrentAge
}

// DependentAge returns the known age of a dependent.
func (p Profile) DependentAge(key string) (int, bool) {
	if key == "" || p.Dependents == nil {
		return 0, false
	}
	age, ok := p.Dependents[key]
	return age, ok
}

// LiquidAsset is a vault holding. Only UsageLiquid holdings feed the corpus.
type LiquidAsset struct {
	ID         string          `yaml:"id,omitempty" json:"id,omitempty"`
	Name       string          `yaml:"name" json:"name"`
	Category   string          `yaml:"category" json:"category"`
	Value      decimal.Decimal `yaml:"value" json:"value"`
	GrowthRate decimal.Decimal `yaml:"expected_growth_rate" json:"expected_growth_rate"`           // percent
	YieldRate  decimal.Decimal `yaml:"annual_yield_percent,omitempty" json:"annual_yield_percent"` // percent
	Usage      UsageType       `yaml:"usage_type,omitempty" json:"usage_type,omitempty"`
}

// IsSelfUse reports whether the asset is excluded from all projection math.
func (a LiquidAsset) IsSelfUse() bool {
	return a.Usage == UsageSelfUse
}

// LiquidOnly drops self-use holdings.
func LiquidOnly(assets []LiquidAsset) []LiquidAsset {
	out := make([]LiquidAsset, 0, len(assets))
	for _, a := range assets {
		if !a.IsSelfUse() {
			out = append(out, a)
		}
	}
	return out
}

// ExpenseCategory groups expense items; the one named Health uses health inflation.
type ExpenseCategory struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// ExpenseItem is a recurring cost.
type ExpenseItem struct {
	ID         string          `yaml:"id,omitempty" json:"id,omitempty"`
	Name       string          `yaml:"name" json:"name"`
	Amount     decimal.Decimal `yaml:"amount" json:"amount"`
	Frequency  Frequency       `yaml:"frequency" json:"frequency"`
	CategoryID string          `yaml:"category_id" json:"category_id"`
}

// AnnualAmount annualizes the item (monthly ×12).
func (e ExpenseItem) AnnualAmount() decimal.Decimal {
	if e.Frequency == FrequencyMonthly {
		return rates.NewMoneyFromDecimal(e.Amount).Annual().Decimal
	}
	return e.Amount
}

// ReplacementAsset is a durable good that must be bought again every UsefulLife years.
type ReplacementAsset struct {
	ID              string          `yaml:"id,omitempty" json:"id,omitempty"`
	Name            string          `yaml:"name" json:"name"`
	ReplacementCost decimal.Decimal `yaml:"replacement_cost" json:"replacement_cost"`
	Quantity        int             `yaml:"quantity" json:"quantity"`
	UsefulLife      int             `yaml:"useful_life" json:"useful_life"`
	CurrentAge      int             `yaml:"current_age" json:"current_age"`
}

// Milestone is a one-time future goal.
type Milestone struct {
	ID            string          `yaml:"id,omitempty" json:"id,omitempty"`
	Name          string          `yaml:"name" json:"name"`
	CurrentCost   decimal.Decimal `yaml:"current_cost" json:"current_cost"`
	TargetAge     int             `yaml:"target_age" json:"target_age"`
	Category      string          `yaml:"category" json:"category"`
	InflationRate decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"` // percent

	// AssignedDependent links the goal to a dependent such as "child_1".
	AssignedDependent string `yaml:"assigned_child,omitempty" json:"assigned_child,omitempty"`
}

// WealthAsset is an asset that can be earmarked against milestones.
type WealthAsset struct {
	ID              string          `yaml:"id,omitempty" json:"id,omitempty"`
	Name            string          `yaml:"name" json:"name"`
	Category        string          `yaml:"category" json:"category"`
	CurrentValue    decimal.Decimal `yaml:"current_value" json:"current_value"`
	AccumulationROI decimal.Decimal `yaml:"accumulation_roi" json:"accumulation_roi"` // percent
}

// AssetMilestoneLink earmarks a share of a wealth asset against a milestone.
type AssetMilestoneLink struct {
	ID                string          `yaml:"id,omitempty" json:"id,omitempty"`
	AssetID           string          `yaml:"asset_id" json:"asset_id"`
	MilestoneID       string          `yaml:"milestone_id" json:"milestone_id"`
	AllocationPercent decimal.Decimal `yaml:"allocation_percentage" json:"allocation_percentage"`
}

// WealthBaseline is the coarse current-corpus summary kept alongside milestones.
type WealthBaseline struct {
	EPFPPF            decimal.Decimal `yaml:"epf_ppf" json:"epf_ppf"`
	MutualFundsStocks decimal.Decimal `yaml:"mutual_funds_stocks" json:"mutual_funds_stocks"`
	Gold              decimal.Decimal `yaml:"gold" json:"gold"`
	Cash              decimal.Decimal `yaml:"cash" json:"cash"`
}

// Total sums the baseline buckets.
func (w WealthBaseline) Total() decimal.Decimal {
	return w.EPFPPF.Add(w.MutualFundsStocks).Add(w.Gold).Add(w.Cash)
}

// IsEmpty reports whether no bucket carries a value.
func (w WealthBaseline) IsEmpty() bool {
	return w.Total().IsZero()
}

// Assumptions are the tunable constants of the projection models.
type Assumptions struct {
	ProjectionYears         int             `yaml:"projection_years" json:"projection_years"`
	AssetInflation          decimal.Decimal `yaml:"asset_inflation" json:"asset_inflation"` // percent
	ReplacementHorizonStart int             `yaml:"replacement_horizon_start" json:"replacement_horizon_start"`
	ReplacementHorizonEnd   int             `yaml:"replacement_horizon_end" json:"replacement_horizon_end"`
}

// Snapshot is the fully materialized input of one planning run.
type Snapshot struct {
	Profile           Profile              `yaml:"profile" json:"profile"`
	Assumptions       Assumptions          `yaml:"assumptions" json:"assumptions"`
	ExpenseCategories []ExpenseCategory    `yaml:"expense_categories" json:"expense_categories"`
	Expenses          []ExpenseItem        `yaml:"expenses" json:"expenses"`
	LiquidAssets      []LiquidAsset        `yaml:"liquid_assets" json:"liquid_assets"`
	ReplacementAssets []ReplacementAsset   `yaml:"replacement_assets" json:"replacement_assets"`
	Milestones        []Milestone          `yaml:"milestones" json:"milestones"`
	WealthAssets      []WealthAsset        `yaml:"wealth_assets" json:"wealth_assets"`
	MilestoneLinks    []AssetMilestoneLink `yaml:"milestone_links" json:"milestone_links"`
	WealthBaseline    WealthBaseline       `yaml:"wealth_baseline" json:"wealth_baseline"`
}

// HealthCategoryID returns the id of the category named Health, if any.
func (s *Snapshot) HealthCategoryID() string {
	for _, c := range s.ExpenseCategories {
		if strings.EqualFold(c.Name, HealthCategoryName) {
			return c.ID
		}
	}
	return ""
}
