package calculation

import (
	"context"
	"testing"

	"github.com/rpgo/dignity-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *domain.Snapshot {
	in := sampleEngineInput()
	return &domain.Snapshot{
		Profile: domain.Profile{
			Name:            "Asha",
			CurrentAge:      in.CurrentAge,
			RetirementAge:   in.RetirementAge,
			LifeExpectancy:  in.LifeExpectancy,
			BaseInflation:   in.BaseInflationPercent,
			HealthInflation: in.HealthInflationPercent,
			Dependents:      map[string]int{"child_1": 12},
		},
		ExpenseCategories: []domain.ExpenseCategory{{ID: "living", Name: "Living"}, {ID: "health", Name: "health"}},
		Expenses:          in.ExpenseItems,
		LiquidAssets:      in.LiquidAssets,
		ReplacementAssets: in.ReplacementAssets,
		Milestones: []domain.Milestone{
			{ID: "m1", Name: "Engineering degree", Category: "education", CurrentCost: decimal.NewFromInt(2500000), TargetAge: 18, AssignedDependent: "child_1"},
		},
		WealthAssets:   []domain.WealthAsset{{ID: "w1", Name: "Sukanya", CurrentValue: decimal.NewFromInt(800000), AccumulationROI: decimal.NewFromFloat(8.2)}},
		MilestoneLinks: []domain.AssetMilestoneLink{{AssetID: "w1", MilestoneID: "m1", AllocationPercent: decimal.NewFromInt(100)}},
		WealthBaseline: domain.WealthBaseline{EPFPPF: decimal.NewFromInt(1500000), Cash: decimal.NewFromInt(200000)},
	}
}

func TestPlannerRun(t *testing.T) {
	p := NewPlanner()
	p.BaseYear = 2025
	logger := &recordingLogger{}
	p.SetLogger(logger)

	snap := sampleSnapshot()
	report, err := p.Run(context.Background(), snap)
	require.NoError(t, err)

	engine := newTestEngine(t, EngineInputFromSnapshot(snap))
	assertSameRows(t, engine.Projections(), report.Projections)
	assert.Equal(t, 13, report.YearsToRetirement)
	assert.True(t, report.Baseline.TotalNeed.Equal(engine.BaseYearTotalNeed()))
	assert.True(t, report.Reconciliation.Checked)
	assert.False(t, report.Reconciliation.Mismatch())
	assert.NotEmpty(t, report.Provision.Replacements)

	retired, ok := report.RetirementYear()
	require.True(t, ok)
	assert.Equal(t, 58, retired.Age)
	final, ok := report.FinalYear()
	require.True(t, ok)
	assert.Equal(t, 2055, final.Year)

	assert.NotEmpty(t, report.Solvency.Points)
	assert.NotEmpty(t, report.Dignity.Band)
	require.Len(t, report.Milestones.Milestones, 1)
	assert.Equal(t, 6, report.Milestones.Milestones[0].YearsToTarget)
	assert.True(t, report.Milestones.BaselineCorpus.Equal(decimal.NewFromInt(1700000)))
	assert.NotEmpty(t, logger.debug)
}

func TestPlannerHonoursAssumptions(t *testing.T) {
	snap := sampleSnapshot()
	snap.Assumptions = domain.Assumptions{ProjectionYears: 10, ReplacementHorizonStart: 55, ReplacementHorizonEnd: 95}

	report, err := NewPlanner().Run(context.Background(), snap)
	require.NoError(t, err)
	assert.Len(t, report.Projections, 11)

	engine := newTestEngine(t, EngineInputFromSnapshot(snap), WithProvisionerConfig(ProvisionerConfigFrom(snap.Assumptions)))
	assert.True(t, report.Provision.AnnualProvision.Equal(engine.BaseYearSinkingFund()))
}

func TestPlannerErrors(t *testing.T) {
	p := NewPlanner()

	_, err := p.Run(context.Background(), nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Run(ctx, sampleSnapshot())
	assert.ErrorIs(t, err, context.Canceled)

	bad := sampleSnapshot()
	bad.Profile.LifeExpectancy = 30
	_, err = p.Run(context.Background(), bad)
	require.Error(t, err)
	assert.True(t, domain.IsConfigError(err))

	far := sampleSnapshot()
	far.Milestones = append(far.Milestones, domain.Milestone{Name: "Far", CurrentCost: decimal.NewFromInt(1), TargetAge: 1 << 30})
	_, err = p.Run(context.Background(), far)
	require.Error(t, err)
	assert.True(t, domain.IsConfigError(err))
	assert.Contains(t, err.Error(), "target_age")

	long := sampleSnapshot()
	long.Assumptions.ProjectionYears = 1 << 40
	_, err = p.Run(context.Background(), long)
	require.Error(t, err)
	assert.True(t, domain.IsConfigError(err))
}

func TestEngineInputFromSnapshot(t *testing.T) {
	in := EngineInputFromSnapshot(sampleSnapshot())
	assert.Equal(t, "health", in.HealthCategoryID, "health category matched case-insensitively")
	assert.Equal(t, 45, in.CurrentAge)
	assert.Len(t, in.LiquidAssets, 3)
}
