package calculation

import (
	"testing"

	"github.com/rpgo/dignity-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplacementProvisionerHorizon(t *testing.T) {
	rp := NewReplacementProvisioner(DefaultProvisionerConfig())
	assets := []domain.ReplacementAsset{{
		Name:            "Car",
		ReplacementCost: decimal.NewFromInt(100000),
		Quantity:        1,
		UsefulLife:      10,
		CurrentAge:      0,
	}}

	p := rp.Provision(assets, 30)

	require.Len(t, p.Replacements, 3)
	ages := []int{p.Replacements[0].Age, p.Replacements[1].Age, p.Replacements[2].Age}
	assert.Equal(t, []int{60, 70, 80}, ages, "replacements at 40 and 50 fall before the horizon")

	// 100000 × (1.06^30 + 1.06^40 + 1.06^50)
	assert.InDelta(t, 3444936.34, p.TotalLiability.InexactFloat64(), 1.0)
	assert.True(t, p.AnnualProvision.IsPositive())
	assert.True(t, p.AnnualProvision.Equal(p.TotalLiability.Div(decimal.NewFromInt(25))))
}

func TestReplacementProvisionerEdgeCases(t *testing.T) {
	cfg := DefaultProvisionerConfig()

	tests := []struct {
		name        string
		asset       domain.ReplacementAsset
		userAge     int
		wantAges    []int
		description string
	}{
		{
			name:        "overdue asset is replaced now",
			asset:       domain.ReplacementAsset{Name: "Fridge", ReplacementCost: decimal.NewFromInt(40000), Quantity: 1, UsefulLife: 10, CurrentAge: 12},
			userAge:     62,
			wantAges:    []int{62, 72, 82},
			description: "remaining life is negative so the first replacement is at the current age",
		},
		{
			name:        "zero useful life steps yearly",
			asset:       domain.ReplacementAsset{Name: "Phone", ReplacementCost: decimal.NewFromInt(1000), Quantity: 1, UsefulLife: 0},
			userAge:     83,
			wantAges:    []int{83, 84, 85},
			description: "step is clamped to one year",
		},
		{
			name:        "user older than projection end",
			asset:       domain.ReplacementAsset{Name: "TV", ReplacementCost: decimal.NewFromInt(50000), Quantity: 2, UsefulLife: 8, CurrentAge: 1},
			userAge:     90,
			wantAges:    nil,
			description: "nothing falls inside the horizon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewReplacementProvisioner(cfg).Provision([]domain.ReplacementAsset{tt.asset}, tt.userAge)
			var ages []int
			for _, r := range p.Replacements {
				ages = append(ages, r.Age)
			}
			assert.Equal(t, tt.wantAges, ages, tt.description)
		})
	}
}

func TestReplacementProvisionerQuantity(t *testing.T) {
	rp := NewReplacementProvisioner(DefaultProvisionerConfig())
	single := rp.Provision([]domain.ReplacementAsset{{Name: "AC", ReplacementCost: decimal.NewFromInt(30000), Quantity: 1, UsefulLife: 10}}, 60)
	triple := rp.Provision([]domain.ReplacementAsset{{Name: "AC", ReplacementCost: decimal.NewFromInt(30000), Quantity: 3, UsefulLife: 10}}, 60)
	missing := rp.Provision([]domain.ReplacementAsset{{Name: "AC", ReplacementCost: decimal.NewFromInt(30000), Quantity: 0, UsefulLife: 10}}, 60)

	assert.True(t, triple.TotalLiability.Equal(single.TotalLiability.Mul(decimal.NewFromInt(3))))
	assert.True(t, missing.TotalLiability.Equal(single.TotalLiability), "quantity 0 defaults to 1")
}

func TestReplacementProvisionerDegenerate(t *testing.T) {
	empty := NewReplacementProvisioner(DefaultProvisionerConfig()).Provision(nil, 40)
	assert.True(t, empty.AnnualProvision.IsZero())
	assert.True(t, empty.TotalLiability.IsZero())

	cfg := DefaultProvisionerConfig()
	cfg.RetirementStartAge = 85
	flat := NewReplacementProvisioner(cfg).Provision([]domain.ReplacementAsset{{Name: "Car", ReplacementCost: decimal.NewFromInt(100), Quantity: 1, UsefulLife: 1, CurrentAge: 1}}, 85)
	assert.True(t, flat.TotalLiability.IsPositive())
	assert.True(t, flat.AnnualProvision.IsZero(), "zero-length horizon never divides")
}

func TestProvisionerConfigFrom(t *testing.T) {
	cfg := ProvisionerConfigFrom(domain.Assumptions{})
	assert.Equal(t, DefaultProvisionerConfig(), cfg)

	cfg = ProvisionerConfigFrom(domain.Assumptions{
		AssetInflation:          decimal.NewFromInt(8),
		ReplacementHorizonStart: 55,
		ReplacementHorizonEnd:   90,
	})
	assert.True(t, cfg.AssetInflationPercent.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, 35, cfg.HorizonYears())
}
