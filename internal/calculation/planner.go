package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/dignity-planner/internal/domain"
)

// Planner orchestrates every calculation derived from one snapshot
type Planner struct {
	Funding  *FundingCalculator
	Solvency SolvencyTracker
	Logger   Logger

	// BaseYear pins the calendar year of projection index 0 (0 uses the clock).
	BaseYear int
}

// NewPlanner creates a planner with default calculators
func NewPlanner() *Planner {
	return &Planner{
		Funding: NewFundingCalculator(),
		Logger:  NopLogger{},
	}
}

// SetLogger sets the logger for the planner. If nil is provided, a no-op logger is used.
func (p *Planner) SetLogger(l Logger) {
	p.Logger = orNop(l)
}

// Run computes the full plan for a snapshot
func (p *Planner) Run(ctx context.Context, snap *domain.Snapshot) (*domain.PlanReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, fmt.Errorf("snapshot is required")
	}
	for _, m := range snap.Milestones {
		if err := domain.ValidateMilestone(m); err != nil {
			return nil, fmt.Errorf("milestone %q: %w", m.Name, err)
		}
	}

	opts := []EngineOption{
		WithLogger(p.Logger),
		WithProvisionerConfig(ProvisionerConfigFrom(snap.Assumptions)),
	}
	if snap.Assumptions.ProjectionYears != 0 {
		opts = append(opts, WithProjectionYears(snap.Assumptions.ProjectionYears))
	}
	if p.BaseYear != 0 {
		opts = append(opts, WithBaseYear(p.BaseYear))
	}

	engine, err := NewMasterCashFlowEngine(EngineInputFromSnapshot(snap), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build projection: %w", err)
	}

	baseline := engine.Baseline()
	report := &domain.PlanReport{
		Profile:           snap.Profile,
		Projections:       engine.Projections(),
		YearsToRetirement: engine.YearsToRetirement(),
		Baseline:          baseline,
		Provision:         engine.Provision(),
		Reconciliation:    engine.Diagnostics(),
	}

	report.Solvency = p.Solvency.Track(SolvencyInput{
		CurrentAge:           snap.Profile.CurrentAge,
		LifeExpectancy:       snap.Profile.LifeExpectancy,
		BaseInflationPercent: snap.Profile.BaseInflation,
		LiquidAssets:         snap.LiquidAssets,
		BaseLifestyle:        baseline.LifestyleExpenses,
		AnnualProvision:      baseline.SinkingFund,
	})
	if report.Solvency.ZeroDignityAge != nil {
		p.Logger.Infof("corpus exhausted at age %d", *report.Solvency.ZeroDignityAge)
	}

	report.Dignity = EvaluateDignity(snap.LiquidAssets, baseline)

	funding := p.Funding
	if funding == nil {
		funding = NewFundingCalculator()
	}
	report.Milestones = funding.Evaluate(FundingInput{
		Profile:        snap.Profile,
		Milestones:     snap.Milestones,
		Assets:         snap.WealthAssets,
		Links:          snap.MilestoneLinks,
		BaselineCorpus: snap.WealthBaseline.Total(),
	})
	for _, name := range report.Milestones.UnderfundedCoreMilestone {
		p.Logger.Warnf("core milestone %q is underfunded", name)
	}

	report.Runway = CalculateRunway(snap.LiquidAssets, baseline.LifestyleExpenses, snap.Profile.BaseInflation)

	p.Logger.Debugf("plan complete: %d projection rows, dignity band %s, milestone status %s",
		len(report.Projections), report.Dignity.Band, report.Milestones.Status)
	return report, nil
}
