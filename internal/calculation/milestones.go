package calculation

import (
	"sort"
	"strings"

	"github.com/rpgo/dignity-planner/internal/domain"
	rates "github.com/rpgo/dignity-planner/pkg/decimal"
	"github.com/shopspring/decimal"
)

// MilestoneConfig holds the defaults and category rules of the funding calculator.
type MilestoneConfig struct {
	DefaultInflationPercent decimal.Decimal
	DefaultAssetROIPercent  decimal.Decimal
	// DependentCategories measure years-to-target against the assigned dependent.
	DependentCategories []string
	// CoreCategories are non-negotiable responsibilities.
	CoreCategories []string
}

// DefaultMilestoneConfig returns 6% goal inflation, 10% asset ROI,
// education as the dependent category and education/cultural as core.
func DefaultMilestoneConfig() MilestoneConfig {
	return MilestoneConfig{
		DefaultInflationPercent: decimal.NewFromInt(6),
		DefaultAssetROIPercent:  decimal.NewFromInt(10),
		DependentCategories:     []string{"education"},
		CoreCategories:          []string{"education", "cultural"},
	}
}

// Coverage band thresholds, in percent.
var (
	surplusThreshold = decimal.NewFromInt(120)
	onTrackThreshold = decimal.NewFromInt(100)
	cautionThreshold = decimal.NewFromInt(80)
)

// FundingInput is everything the milestone calculator reads.
type FundingInput struct {
	Profile        domain.Profile
	Milestones     []domain.Milestone
	Assets         []domain.WealthAsset
	Links          []domain.AssetMilestoneLink
	BaselineCorpus decimal.Decimal
}

// FundingCalculator evaluates goal funding from earmarked assets.
type FundingCalculator struct {
	Config MilestoneConfig
}

// NewFundingCalculator creates a calculator with the default configuration.
func NewFundingCalculator() *FundingCalculator {
	return &FundingCalculator{Config: DefaultMilestoneConfig()}
}

func hasCategory(list []string, category string) bool {
	for _, c := range list {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// referenceAge is the age a milestone's target is measured against.
func (fc *FundingCalculator) referenceAge(p domain.Profile, m domain.Milestone) int {
	if hasCategory(fc.Config.DependentCategories, m.Category) {
		if age, ok := p.DependentAge(m.AssignedDependent); ok {
			return age
		}
	}
	return p.CurrentAge
}

// YearsToTarget returns the years until the milestone falls due.
func (fc *FundingCalculator) YearsToTarget(p domain.Profile, m domain.Milestone) int {
	return m.TargetAge - fc.referenceAge(p, m)
}

// IsHistorical reports a milestone whose target age has already passed.
func (fc *FundingCalculator) IsHistorical(p domain.Profile, m domain.Milestone) bool {
	return m.TargetAge <= fc.referenceAge(p, m)
}

// IsCore reports a core-responsibility milestone.
func (fc *FundingCalculator) IsCore(m domain.Milestone) bool {
	return hasCategory(fc.Config.CoreCategories, m.Category)
}

// FutureCost inflates the milestone's current cost to its target date.
func (fc *FundingCalculator) FutureCost(p domain.Profile, m domain.Milestone) decimal.Decimal {
	years := fc.YearsToTarget(p, m)
	if years <= 0 {
		return m.CurrentCost
	}
	rate := m.InflationRate
	if rate.IsZero() {
		rate = fc.Config.DefaultInflationPercent
	}
	return rates.FutureValue(m.CurrentCost, rate, years)
}

// CoverageStatus bands aggregate coverage.
func CoverageStatus(available, needed, coveragePercent decimal.Decimal) domain.FundingStatus {
	switch {
	case !needed.IsPositive():
		return domain.FundingNoGoals
	case available.IsZero():
		return domain.FundingGap
	case coveragePercent.GreaterThanOrEqual(surplusThreshold):
		return domain.FundingSurplus
	case coveragePercent.GreaterThanOrEqual(onTrackThreshold):
		return domain.FundingOnTrack
	case coveragePercent.GreaterThanOrEqual(cautionThreshold):
		return domain.FundingCaution
	default:
		return domain.FundingGap
	}
}

// Evaluate funds every milestone from its links and rolls the result up
// against the projected corpus at retirement.
func (fc *FundingCalculator) Evaluate(in FundingInput) domain.MilestoneReport {
	assets := make(map[string]domain.WealthAsset, len(in.Assets))
	for _, a := range in.Assets {
		assets[a.ID] = a
	}
	linksByMilestone := make(map[string][]domain.AssetMilestoneLink)
	for _, l := range in.Links {
		linksByMilestone[l.MilestoneID] = append(linksByMilestone[l.MilestoneID], l)
	}

	milestones := append([]domain.Milestone(nil), in.Milestones...)
	sort.SliceStable(milestones, func(i, j int) bool {
		return milestones[i].TargetAge < milestones[j].TargetAge
	})

	report := domain.MilestoneReport{
		Milestones:       make([]domain.MilestoneFunding, 0, len(milestones)),
		TotalFutureCost:  decimal.Zero,
		TotalStillNeeded: decimal.Zero,
	}
	for _, m := range milestones {
		mf := fc.fund(in.Profile, m, linksByMilestone[m.ID], assets)
		if !mf.Historical {
			report.TotalFutureCost = report.TotalFutureCost.Add(mf.FutureCost)
			report.TotalStillNeeded = report.TotalStillNeeded.Add(mf.AmountStillNeeded)
			if mf.CoreResponsibility && mf.FutureCost.IsPositive() && mf.Underfunded() {
				report.UnderfundedCoreMilestone = append(report.UnderfundedCoreMilestone, mf.Name)
			}
		}
		report.Milestones = append(report.Milestones, mf)
	}

	years := in.Profile.YearsToRetirement()
	report.TotalProjectedAssets = decimal.Zero
	for _, a := range in.Assets {
		roi := a.AccumulationROI
		if roi.IsZero() {
			roi = fc.Config.DefaultAssetROIPercent
		}
		report.TotalProjectedAssets = report.TotalProjectedAssets.Add(rates.FutureValue(a.CurrentValue, roi, years))
	}
	report.BaselineCorpus = in.BaselineCorpus
	report.TotalAvailable = report.TotalProjectedAssets.Add(in.BaselineCorpus)
	report.CoveragePercent = rates.Ratio(report.TotalAvailable, report.TotalFutureCost).Mul(decimal.NewFromInt(100))
	report.Status = CoverageStatus(report.TotalAvailable, report.TotalFutureCost, report.CoveragePercent)
	return report
}

func (fc *FundingCalculator) fund(p domain.Profile, m domain.Milestone, links []domain.AssetMilestoneLink, assets map[string]domain.WealthAsset) domain.MilestoneFunding {
	mf := domain.MilestoneFunding{
		MilestoneID:        m.ID,
		Name:               m.Name,
		Category:           m.Category,
		YearsToTarget:      fc.YearsToTarget(p, m),
		FutureCost:         fc.FutureCost(p, m),
		Historical:         fc.IsHistorical(p, m),
		CoreResponsibility: fc.IsCore(m),
		ProjectedEarmarked: decimal.Zero,
		FundingPercent:     decimal.Zero,
		AmountStillNeeded:  decimal.Zero,
	}

	for _, l := range links {
		asset, ok := assets[l.AssetID]
		if !ok {
			continue
		}
		alloc := l.AllocationPercent
		if alloc.IsZero() {
			alloc = decimal.NewFromInt(100)
		}
		projected := rates.PercentOf(rates.FutureValue(asset.CurrentValue, asset.AccumulationROI, mf.YearsToTarget), alloc)
		lf := domain.LinkFunding{
			AssetID:           asset.ID,
			AssetName:         asset.Name,
			AllocationPercent: alloc,
			ProjectedValue:    projected,
			FundingPercent:    rates.Ratio(projected, mf.FutureCost).Mul(decimal.NewFromInt(100)),
		}
		mf.Links = append(mf.Links, lf)
		mf.ProjectedEarmarked = mf.ProjectedEarmarked.Add(projected)
	}

	mf.FundingPercent = rates.Ratio(mf.ProjectedEarmarked, mf.FutureCost).Mul(decimal.NewFromInt(100))
	if !mf.Historical {
		mf.AmountStillNeeded = rates.MaxZero(mf.FutureCost.Sub(mf.ProjectedEarmarked))
	}
	return mf
}
