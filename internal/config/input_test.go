package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rpgo/dignity-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalSnapshotYAML = `profile:
  name: "Test"
  current_age: 40
  target_retirement_age: 60
  life_expectancy: 85
  base_inflation: 6
  health_inflation: 10
expense_categories:
  - id: health
    name: Health
expenses:
  - name: Groceries
    amount: 20000
    frequency: monthly
    category_id: living
  - name: Insurance
    amount: 50000
    frequency: annual
    category_id: health
liquid_assets:
  - name: Index fund
    category: equity
    value: 2500000.50
    expected_growth_rate: 11
    annual_yield_percent: 1.5
  - name: Home
    category: real_estate
    value: 9000000
    expected_growth_rate: 6
    usage_type: self_use
replacement_assets:
  - name: Car
    replacement_cost: 800000
    useful_life: 10
    current_age: 3
milestones:
  - id: m1
    name: College
    category: education
    current_cost: 2000000
    target_age: 18
    assigned_child: child_1
wealth_assets:
  - id: w1
    name: Child fund
    current_value: 300000
    accumulation_roi: 12
milestone_links:
  - asset_id: w1
    milestone_id: m1
`

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	parser := NewInputParser()
	snap, err := parser.LoadFromFile(writeTempFile(t, minimalSnapshotYAML))

	require.NoError(t, err)
	assert.Equal(t, 40, snap.Profile.CurrentAge)
	assert.Equal(t, 60, snap.Profile.RetirementAge)
	assert.True(t, snap.Profile.HealthInflation.Equal(decimal.NewFromInt(10)))
	require.Len(t, snap.LiquidAssets, 2)
	assert.Equal(t, "2500000.5", snap.LiquidAssets[0].Value.String())
	assert.Equal(t, domain.UsageLiquid, snap.LiquidAssets[0].Usage, "usage defaults to liquid")
	assert.True(t, snap.LiquidAssets[1].IsSelfUse())
	assert.Equal(t, 1, snap.ReplacementAssets[0].Quantity, "quantity defaults to 1")
	assert.Equal(t, "100", snap.MilestoneLinks[0].AllocationPercent.String())
	assert.Equal(t, "child_1", snap.Milestones[0].AssignedDependent)
	assert.Equal(t, "health", snap.HealthCategoryID())
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	snap, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, snap)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	testConfig := `
profile:
	current_age: "forty"
`
	parser := NewInputParser()
	snap, err := parser.LoadFromFile(writeTempFile(t, testConfig))

	assert.Error(t, err)
	assert.Nil(t, snap)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidateConfiguration_Success(t *testing.T) {
	parser := NewInputParser()
	assert.NoError(t, parser.ValidateConfiguration(parser.CreateExampleConfiguration()))
}

func TestValidateConfiguration_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Snapshot)
		errText string
	}{
		{
			name:    "life expectancy before current age",
			mutate:  func(s *domain.Snapshot) { s.Profile.LifeExpectancy = 30 },
			errText: "life_expectancy",
		},
		{
			name:    "retirement before current age",
			mutate:  func(s *domain.Snapshot) { s.Profile.RetirementAge = 35 },
			errText: "target_retirement_age",
		},
		{
			name:    "negative projection span",
			mutate:  func(s *domain.Snapshot) { s.Assumptions.ProjectionYears = -5 },
			errText: "projection_years",
		},
		{
			name:    "projection span above maximum",
			mutate:  func(s *domain.Snapshot) { s.Assumptions.ProjectionYears = domain.MaxProjectionYears + 1 },
			errText: "projection_years",
		},
		{
			name:    "life expectancy above maximum",
			mutate:  func(s *domain.Snapshot) { s.Profile.LifeExpectancy = domain.MaxAge + 1 },
			errText: "life_expectancy",
		},
		{
			name: "replacement horizon end above maximum",
			mutate: func(s *domain.Snapshot) {
				s.Assumptions.ReplacementHorizonStart = 60
				s.Assumptions.ReplacementHorizonEnd = domain.MaxAge + 1
			},
			errText: "replacement_horizon_end",
		},
		{
			name:    "negative replacement horizon start",
			mutate:  func(s *domain.Snapshot) { s.Assumptions.ReplacementHorizonStart = -1 },
			errText: "replacement_horizon_start",
		},
		{
			name:    "milestone target age above maximum",
			mutate:  func(s *domain.Snapshot) { s.Milestones[0].TargetAge = domain.MaxAge + 1 },
			errText: "target_age",
		},
		{
			name:    "inverted replacement horizon",
			mutate:  func(s *domain.Snapshot) { s.Assumptions.ReplacementHorizonEnd = 50 },
			errText: "replacement_horizon_end",
		},
		{
			name:    "unknown expense frequency",
			mutate:  func(s *domain.Snapshot) { s.Expenses[0].Frequency = "weekly" },
			errText: "frequency",
		},
		{
			name:    "negative asset value",
			mutate:  func(s *domain.Snapshot) { s.LiquidAssets[0].Value = decimal.NewFromInt(-1) },
			errText: "value",
		},
		{
			name:    "unknown usage type",
			mutate:  func(s *domain.Snapshot) { s.LiquidAssets[0].Usage = "rented" },
			errText: "usage_type",
		},
		{
			name:    "negative useful life",
			mutate:  func(s *domain.Snapshot) { s.ReplacementAssets[0].UsefulLife = -2 },
			errText: "useful_life",
		},
		{
			name:    "negative milestone cost",
			mutate:  func(s *domain.Snapshot) { s.Milestones[0].CurrentCost = decimal.NewFromInt(-10) },
			errText: "current_cost",
		},
		{
			name:    "link to unknown asset",
			mutate:  func(s *domain.Snapshot) { s.MilestoneLinks[0].AssetID = "nope" },
			errText: "unknown wealth asset",
		},
		{
			name:    "link to unknown milestone",
			mutate:  func(s *domain.Snapshot) { s.MilestoneLinks[0].MilestoneID = "nope" },
			errText: "unknown milestone",
		},
		{
			name:    "allocation above 100",
			mutate:  func(s *domain.Snapshot) { s.MilestoneLinks[0].AllocationPercent = decimal.NewFromInt(120) },
			errText: "allocation_percentage",
		},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := parser.CreateExampleConfiguration()
			tt.mutate(snap)
			err := parser.ValidateConfiguration(snap)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
			assert.True(t, domain.IsConfigError(err))
		})
	}
}

func TestCreateExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	snap := parser.CreateExampleConfiguration()

	assert.NotEmpty(t, snap.Profile.Name)
	assert.NotEmpty(t, snap.LiquidAssets)
	assert.NotEmpty(t, snap.Expenses)
	assert.Equal(t, "cat-health", snap.HealthCategoryID())

	data, err := MarshalSnapshot(snap)
	require.NoError(t, err)

	roundTrip, err := parser.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, snap.Profile.CurrentAge, roundTrip.Profile.CurrentAge)
	require.Len(t, roundTrip.LiquidAssets, len(snap.LiquidAssets))
	assert.True(t, snap.LiquidAssets[1].GrowthRate.Equal(roundTrip.LiquidAssets[1].GrowthRate))
}
