package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rpgo/dignity-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Profile: domain.Profile{
			Name: "Ravi", CurrentAge: 38, RetirementAge: 55, LifeExpectancy: 88,
			BaseInflation: decimal.NewFromInt(6), HealthInflation: decimal.NewFromInt(9),
			Dependents: map[string]int{"child_1": 4},
		},
		Assumptions:       domain.Assumptions{ProjectionYears: 30},
		ExpenseCategories: []domain.ExpenseCategory{{ID: "health", Name: "Health"}},
		Expenses: []domain.ExpenseItem{
			{Name: "Rent", Amount: decimal.NewFromInt(30000), Frequency: domain.FrequencyMonthly, CategoryID: "living"},
			{Name: "Medical", Amount: decimal.NewFromFloat(42000.75), Frequency: domain.FrequencyAnnual, CategoryID: "health"},
		},
		LiquidAssets: []domain.LiquidAsset{
			{Name: "Nifty index", Category: "equity", Value: decimal.NewFromInt(1800000), GrowthRate: decimal.NewFromInt(12), YieldRate: decimal.NewFromFloat(1.2), Usage: domain.UsageLiquid},
			{Name: "Flat", Category: "real_estate", Value: decimal.NewFromInt(8000000), GrowthRate: decimal.NewFromInt(5), Usage: domain.UsageSelfUse},
		},
		ReplacementAssets: []domain.ReplacementAsset{{Name: "Laptop", ReplacementCost: decimal.NewFromInt(90000), Quantity: 1, UsefulLife: 5, CurrentAge: 2}},
		Milestones:        []domain.Milestone{{ID: "m1", Name: "School", Category: "education", CurrentCost: decimal.NewFromInt(500000), TargetAge: 15, AssignedDependent: "child_1"}},
		WealthAssets:      []domain.WealthAsset{{ID: "w1", Name: "RD", CurrentValue: decimal.NewFromInt(100000), AccumulationROI: decimal.NewFromFloat(6.5)}},
		MilestoneLinks:    []domain.AssetMilestoneLink{{AssetID: "w1", MilestoneID: "m1", AllocationPercent: decimal.NewFromInt(60)}},
		WealthBaseline:    domain.WealthBaseline{Cash: decimal.NewFromInt(250000)},
	}
}

func assertSnapshotsEqual(t *testing.T, want, got *domain.Snapshot) {
	t.Helper()
	assert.Equal(t, want.Profile.Name, got.Profile.Name)
	assert.Equal(t, want.Profile.CurrentAge, got.Profile.CurrentAge)
	assert.Equal(t, want.Profile.Dependents, got.Profile.Dependents)
	assert.True(t, want.Profile.HealthInflation.Equal(got.Profile.HealthInflation))
	assert.Equal(t, want.Assumptions.ProjectionYears, got.Assumptions.ProjectionYears)
	assert.True(t, want.WealthBaseline.Total().Equal(got.WealthBaseline.Total()))

	require.Len(t, got.Expenses, len(want.Expenses))
	for i := range want.Expenses {
		assert.Equal(t, want.Expenses[i].ID, got.Expenses[i].ID)
		assert.Equal(t, want.Expenses[i].Name, got.Expenses[i].Name)
		assert.True(t, want.Expenses[i].Amount.Equal(got.Expenses[i].Amount))
	}
	require.Len(t, got.LiquidAssets, len(want.LiquidAssets))
	for i := range want.LiquidAssets {
		assert.Equal(t, want.LiquidAssets[i].Name, got.LiquidAssets[i].Name)
		assert.Equal(t, want.LiquidAssets[i].Usage, got.LiquidAssets[i].Usage)
		assert.True(t, want.LiquidAssets[i].YieldRate.Equal(got.LiquidAssets[i].YieldRate))
	}
	assert.Len(t, got.ReplacementAssets, len(want.ReplacementAssets))
	assert.Len(t, got.Milestones, len(want.Milestones))
	assert.Len(t, got.WealthAssets, len(want.WealthAssets))
	require.Len(t, got.MilestoneLinks, len(want.MilestoneLinks))
	assert.True(t, want.MilestoneLinks[0].AllocationPercent.Equal(got.MilestoneLinks[0].AllocationPercent))
}

func TestAssignIDs(t *testing.T) {
	snap := testSnapshot()
	AssignIDs(snap)

	assert.Equal(t, "m1", snap.Milestones[0].ID, "existing ids are kept")
	for _, e := range snap.Expenses {
		_, err := uuid.Parse(e.ID)
		assert.NoError(t, err)
	}
	assert.NotEqual(t, snap.Expenses[0].ID, snap.Expenses[1].ID)
	assert.NotEmpty(t, snap.MilestoneLinks[0].ID)
}

func TestValidateIdentity(t *testing.T) {
	assert.NoError(t, ValidateIdentity("user-42"))
	assert.Error(t, ValidateIdentity(""))
	assert.Error(t, ValidateIdentity("  "))
	assert.Error(t, ValidateIdentity("../etc"))
	assert.Error(t, ValidateIdentity("a/b"))
}

func TestDecomposeAssemble(t *testing.T) {
	snap := testSnapshot()
	AssignIDs(snap)

	records, err := decompose(snap)
	require.NoError(t, err)
	// 3 singletons + 1 category + 2 expenses + 2 liquid + 1 replacement + 1 milestone + 1 wealth + 1 link
	assert.Len(t, records, 12)

	got, err := assemble(records)
	require.NoError(t, err)
	assertSnapshotsEqual(t, snap, got)

	_, err = assemble([]record{{kind: "mystery", id: "x", body: []byte("{}")}})
	assert.Error(t, err)
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	cache, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	_, err = cache.Load(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	snap := testSnapshot()
	require.NoError(t, cache.Save(ctx, "ravi", snap))
	got, err := cache.Load(ctx, "ravi")
	require.NoError(t, err)
	assertSnapshotsEqual(t, snap, got)

	assert.Error(t, cache.Save(ctx, "../escape", testSnapshot()))
}
