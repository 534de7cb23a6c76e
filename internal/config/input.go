package config

import (
	"fmt"
	"os"

	"github.com/rpgo/dignity-planner/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of snapshot input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a planning snapshot from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes, defaults and validates a snapshot document
func (ip *InputParser) Parse(data []byte) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ApplyDefaults(&snap)

	if err := ip.ValidateConfiguration(&snap); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &snap, nil
}

// ApplyDefaults fills optional fields the file may omit
func ApplyDefaults(snap *domain.Snapshot) {
	for i := range snap.LiquidAssets {
		if snap.LiquidAssets[i].Usage == "" {
			snap.LiquidAssets[i].Usage = domain.UsageLiquid
		}
	}
	for i := range snap.ReplacementAssets {
		if snap.ReplacementAssets[i].Quantity == 0 {
			snap.ReplacementAssets[i].Quantity = 1
		}
	}
	for i := range snap.MilestoneLinks {
		if snap.MilestoneLinks[i].AllocationPercent.IsZero() {
			snap.MilestoneLinks[i].AllocationPercent = decimal.NewFromInt(100)
		}
	}
}

// ValidateConfiguration validates the loaded snapshot
func (ip *InputParser) ValidateConfiguration(snap *domain.Snapshot) error {
	if err := domain.ValidateProfile(snap.Profile); err != nil {
		return err
	}
	if snap.Assumptions.ProjectionYears < 0 {
		return domain.NewConfigError("assumptions.projection_years", "must not be negative, got %d", snap.Assumptions.ProjectionYears)
	}
	if snap.Assumptions.ProjectionYears > domain.MaxProjectionYears {
		return domain.NewConfigError("assumptions.projection_years", "must be at most %d, got %d", domain.MaxProjectionYears, snap.Assumptions.ProjectionYears)
	}
	if a := snap.Assumptions; a.ReplacementHorizonStart != 0 && a.ReplacementHorizonEnd != 0 && a.ReplacementHorizonEnd < a.ReplacementHorizonStart {
		return domain.NewConfigError("assumptions.replacement_horizon_end", "%d is before horizon start %d", a.ReplacementHorizonEnd, a.ReplacementHorizonStart)
	}
	if a := snap.Assumptions; a.ReplacementHorizonStart < 0 || a.ReplacementHorizonStart > domain.MaxAge {
		return domain.NewConfigError("assumptions.replacement_horizon_start", "must be between 0 and %d, got %d", domain.MaxAge, a.ReplacementHorizonStart)
	}
	if a := snap.Assumptions; a.ReplacementHorizonEnd < 0 || a.ReplacementHorizonEnd > domain.MaxAge {
		return domain.NewConfigError("assumptions.replacement_horizon_end", "must be between 0 and %d, got %d", domain.MaxAge, a.ReplacementHorizonEnd)
	}

	for i, e := range snap.Expenses {
		if err := ip.validateExpense(e); err != nil {
			return fmt.Errorf("expense %d (%s) validation failed: %w", i, e.Name, err)
		}
	}
	for i, a := range snap.LiquidAssets {
		if err := ip.validateLiquidAsset(a); err != nil {
			return fmt.Errorf("liquid asset %d (%s) validation failed: %w", i, a.Name, err)
		}
	}
	for i, r := range snap.ReplacementAssets {
		if err := ip.validateReplacementAsset(r); err != nil {
			return fmt.Errorf("replacement asset %d (%s) validation failed: %w", i, r.Name, err)
		}
	}
	for i, m := range snap.Milestones {
		if m.CurrentCost.IsNegative() {
			return fmt.Errorf("milestone %d (%s) validation failed: %w", i, m.Name,
				domain.NewConfigError("current_cost", "cannot be negative"))
		}
		if err := domain.ValidateMilestone(m); err != nil {
			return fmt.Errorf("milestone %d (%s) validation failed: %w", i, m.Name, err)
		}
	}
	if err := ip.validateLinks(snap); err != nil {
		return err
	}

	return nil
}

func (ip *InputParser) validateExpense(e domain.ExpenseItem) error {
	if e.Frequency != domain.FrequencyMonthly && e.Frequency != domain.FrequencyAnnual {
		return domain.NewConfigError("frequency", "must be monthly or annual, got %q", e.Frequency)
	}
	if e.Amount.IsNegative() {
		return domain.NewConfigError("amount", "cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateLiquidAsset(a domain.LiquidAsset) error {
	if a.Usage != domain.UsageLiquid && a.Usage != domain.UsageSelfUse {
		return domain.NewConfigError("usage_type", "must be liquid or self_use, got %q", a.Usage)
	}
	if a.Value.IsNegative() {
		return domain.NewConfigError("value", "cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateReplacementAsset(r domain.ReplacementAsset) error {
	if r.ReplacementCost.IsNegative() {
		return domain.NewConfigError("replacement_cost", "cannot be negative")
	}
	if r.UsefulLife < 0 {
		return domain.NewConfigError("useful_life", "cannot be negative")
	}
	if r.CurrentAge < 0 {
		return domain.NewConfigError("current_age", "cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateLinks(snap *domain.Snapshot) error {
	assets := make(map[string]bool, len(snap.WealthAssets))
	for _, a := range snap.WealthAssets {
		assets[a.ID] = true
	}
	milestones := make(map[string]bool, len(snap.Milestones))
	for _, m := range snap.Milestones {
		milestones[m.ID] = true
	}

	hundred := decimal.NewFromInt(100)
	for i, l := range snap.MilestoneLinks {
		if !assets[l.AssetID] {
			return fmt.Errorf("milestone link %d: %w", i, domain.NewConfigError("asset_id", "unknown wealth asset %q", l.AssetID))
		}
		if !milestones[l.MilestoneID] {
			return fmt.Errorf("milestone link %d: %w", i, domain.NewConfigError("milestone_id", "unknown milestone %q", l.MilestoneID))
		}
		if l.AllocationPercent.IsNegative() || l.AllocationPercent.GreaterThan(hundred) {
			return fmt.Errorf("milestone link %d: %w", i, domain.NewConfigError("allocation_percentage", "must be between 0 and 100"))
		}
	}
	return nil
}

// CreateExampleConfiguration creates an example snapshot for reference
func (ip *InputParser) CreateExampleConfiguration() *domain.Snapshot {
	return &domain.Snapshot{
		Profile: domain.Profile{
			Name:            "Example Household",
			CurrentAge:      42,
			RetirementAge:   58,
			LifeExpectancy:  85,
			BaseInflation:   decimal.NewFromInt(6),
			HealthInflation: decimal.NewFromInt(10),
			Dependents:      map[string]int{"child_1": 9},
		},
		Assumptions: domain.Assumptions{
			ProjectionYears:         30,
			AssetInflation:          decimal.NewFromInt(6),
			ReplacementHorizonStart: 60,
			ReplacementHorizonEnd:   85,
		},
		ExpenseCategories: []domain.ExpenseCategory{
			{ID: "cat-living", Name: "Living"},
			{ID: "cat-health", Name: "Health"},
		},
		Expenses: []domain.ExpenseItem{
			{ID: "exp-household", Name: "Household", Amount: decimal.NewFromInt(45000), Frequency: domain.FrequencyMonthly, CategoryID: "cat-living"},
			{ID: "exp-travel", Name: "Travel", Amount: decimal.NewFromInt(150000), Frequency: domain.FrequencyAnnual, CategoryID: "cat-living"},
			{ID: "exp-insurance", Name: "Health insurance", Amount: decimal.NewFromInt(65000), Frequency: domain.FrequencyAnnual, CategoryID: "cat-health"},
		},
		LiquidAssets: []domain.LiquidAsset{
			{ID: "la-equity", Name: "Equity mutual funds", Category: "equity", Value: decimal.NewFromInt(6500000), GrowthRate: decimal.NewFromInt(11), YieldRate: decimal.NewFromInt(1), Usage: domain.UsageLiquid},
			{ID: "la-epf", Name: "EPF", Category: "debt", Value: decimal.NewFromInt(3200000), GrowthRate: decimal.NewFromFloat(8.25), YieldRate: decimal.Zero, Usage: domain.UsageLiquid},
			{ID: "la-rental", Name: "Rental apartment", Category: "real_estate", Value: decimal.NewFromInt(9000000), GrowthRate: decimal.NewFromInt(5), YieldRate: decimal.NewFromInt(3), Usage: domain.UsageLiquid},
			{ID: "la-gold", Name: "Sovereign gold bonds", Category: "gold", Value: decimal.NewFromInt(1200000), GrowthRate: decimal.NewFromInt(8), YieldRate: decimal.NewFromFloat(2.5), Usage: domain.UsageLiquid},
			{ID: "la-home", Name: "Primary residence", Category: "real_estate", Value: decimal.NewFromInt(15000000), GrowthRate: decimal.NewFromInt(6), Usage: domain.UsageSelfUse},
		},
		ReplacementAssets: []domain.ReplacementAsset{
			{ID: "ra-car", Name: "Car", ReplacementCost: decimal.NewFromInt(1200000), Quantity: 1, UsefulLife: 10, CurrentAge: 4},
			{ID: "ra-ac", Name: "Air conditioner", ReplacementCost: decimal.NewFromInt(45000), Quantity: 3, UsefulLife: 8, CurrentAge: 2},
			{ID: "ra-phone", Name: "Phones", ReplacementCost: decimal.NewFromInt(60000), Quantity: 2, UsefulLife: 4, CurrentAge: 1},
		},
		Milestones: []domain.Milestone{
			{ID: "ms-college", Name: "Undergraduate degree", Category: "education", CurrentCost: decimal.NewFromInt(2500000), TargetAge: 18, InflationRate: decimal.NewFromInt(10), AssignedDependent: "child_1"},
			{ID: "ms-wedding", Name: "Wedding", Category: "cultural", CurrentCost: decimal.NewFromInt(2000000), TargetAge: 27, InflationRate: decimal.NewFromInt(7), AssignedDependent: "child_1"},
			{ID: "ms-renovation", Name: "Home renovation", Category: "lifestyle", CurrentCost: decimal.NewFromInt(1500000), TargetAge: 55, InflationRate: decimal.NewFromInt(6)},
		},
		WealthAssets: []domain.WealthAsset{
			{ID: "wa-ssy", Name: "Sukanya Samriddhi", Category: "debt", CurrentValue: decimal.NewFromInt(600000), AccumulationROI: decimal.NewFromFloat(8.2)},
			{ID: "wa-child-mf", Name: "Child education fund", Category: "equity", CurrentValue: decimal.NewFromInt(900000), AccumulationROI: decimal.NewFromInt(12)},
		},
		MilestoneLinks: []domain.AssetMilestoneLink{
			{ID: "ln-1", AssetID: "wa-child-mf", MilestoneID: "ms-college", AllocationPercent: decimal.NewFromInt(100)},
			{ID: "ln-2", AssetID: "wa-ssy", MilestoneID: "ms-wedding", AllocationPercent: decimal.NewFromInt(100)},
		},
		WealthBaseline: domain.WealthBaseline{
			EPFPPF:            decimal.NewFromInt(3200000),
			MutualFundsStocks: decimal.NewFromInt(6500000),
			Gold:              decimal.NewFromInt(1200000),
			Cash:              decimal.NewFromInt(400000),
		},
	}
}

// MarshalSnapshot renders a snapshot in the input file format
func MarshalSnapshot(snap *domain.Snapshot) ([]byte, error) {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return data, nil
}
