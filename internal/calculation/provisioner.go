package calculation

import (
	"github.com/rpgo/dignity-planner/internal/domain"
	rates "github.com/rpgo/dignity-planner/pkg/decimal"
	"github.com/shopspring/decimal"
)

const (
	// DefaultAssetInflationPercent inflates replacement costs.
	DefaultAssetInflationPercent = 6
	// DefaultRetirementStartAge opens the provisioning horizon.
	DefaultRetirementStartAge = 60
	// DefaultProjectionEndAge closes the provisioning horizon.
	DefaultProjectionEndAge = 85
)

// ProvisionerConfig bounds the sinking-fund calculation.
type ProvisionerConfig struct {
	AssetInflationPercent decimal.Decimal
	RetirementStartAge    int
	ProjectionEndAge      int
}

// DefaultProvisionerConfig returns the 6% / 60–85 horizon used by the planner.
func DefaultProvisionerConfig() ProvisionerConfig {
	return ProvisionerConfig{
		AssetInflationPercent: decimal.NewFromInt(DefaultAssetInflationPercent),
		RetirementStartAge:    DefaultRetirementStartAge,
		ProjectionEndAge:      DefaultProjectionEndAge,
	}
}

// ProvisionerConfigFrom overlays non-zero assumptions on the defaults.
func ProvisionerConfigFrom(a domain.Assumptions) ProvisionerConfig {
	cfg := DefaultProvisionerConfig()
	if !a.AssetInflation.IsZero() {
		cfg.AssetInflationPercent = a.AssetInflation
	}
	if a.ReplacementHorizonStart != 0 {
		cfg.RetirementStartAge = a.ReplacementHorizonStart
	}
	if a.ReplacementHorizonEnd != 0 {
		cfg.ProjectionEndAge = a.ReplacementHorizonEnd
	}
	return cfg
}

// HorizonYears is the number of years the total liability is spread over.
func (c ProvisionerConfig) HorizonYears() int {
	return c.ProjectionEndAge - c.RetirementStartAge
}

// Validate rejects a horizon the provisioner cannot iterate.
func (c ProvisionerConfig) Validate() error {
	if c.RetirementStartAge < 0 || c.RetirementStartAge > domain.MaxAge {
		return domain.NewConfigError("replacement_horizon_start", "must be between 0 and %d, got %d", domain.MaxAge, c.RetirementStartAge)
	}
	if c.ProjectionEndAge < 0 || c.ProjectionEndAge > domain.MaxAge {
		return domain.NewConfigError("replacement_horizon_end", "must be between 0 and %d, got %d", domain.MaxAge, c.ProjectionEndAge)
	}
	return nil
}

// ReplacementProvisioner converts depreciating goods into a flat annual provision.
type ReplacementProvisioner struct {
	Config ProvisionerConfig
}

// NewReplacementProvisioner creates a provisioner for cfg.
func NewReplacementProvisioner(cfg ProvisionerConfig) *ReplacementProvisioner {
	return &ReplacementProvisioner{Config: cfg}
}

// Provision sums the inflated cost of every replacement falling inside the
// horizon and amortizes it evenly across the horizon.
func (rp *ReplacementProvisioner) Provision(assets []domain.ReplacementAsset, userCurrentAge int) domain.Provision {
	result := domain.Provision{
		AnnualProvision: decimal.Zero,
		TotalLiability:  decimal.Zero,
	}
	if len(assets) == 0 {
		return result
	}

	cfg := rp.Config
	for _, asset := range assets {
		qty := asset.Quantity
		if qty <= 0 {
			qty = 1
		}
		unitCost := asset.ReplacementCost.Mul(decimal.NewFromInt(int64(qty)))

		step := asset.UsefulLife
		if step < 1 {
			step = 1
		}

		nextAge := userCurrentAge
		if remaining := asset.UsefulLife - asset.CurrentAge; remaining > 0 {
			nextAge = userCurrentAge + remaining
		}

		for ; nextAge <= cfg.ProjectionEndAge; nextAge += step {
			if nextAge < cfg.RetirementStartAge {
				continue
			}
			cost := rates.FutureValue(unitCost, cfg.AssetInflationPercent, nextAge-userCurrentAge)
			result.TotalLiability = result.TotalLiability.Add(cost)
			result.Replacements = append(result.Replacements, domain.ReplacementEvent{
				AssetName:  asset.Name,
				Age:        nextAge,
				FutureCost: cost,
			})
		}
	}

	if horizon := cfg.HorizonYears(); horizon > 0 {
		result.AnnualProvision = result.TotalLiability.Div(decimal.NewFromInt(int64(horizon)))
	}
	return result
}
