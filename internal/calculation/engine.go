package calculation

import (
	"github.com/rpgo/dignity-planner/internal/domain"
	rates "github.com/rpgo/dignity-planner/pkg/decimal"
	"github.com/shopspring/decimal"
)

// DefaultProjectionYears is the span after year 0; rows cover 0..span inclusive.
const DefaultProjectionYears = 30

// EngineInput is the snapshot a MasterCashFlowEngine projects.
type EngineInput struct {
	CurrentAge             int
	RetirementAge          int
	LifeExpectancy         int
	BaseInflationPercent   decimal.Decimal
	HealthInflationPercent decimal.Decimal
	LiquidAssets           []domain.LiquidAsset
	ReplacementAssets      []domain.ReplacementAsset
	ExpenseItems           []domain.ExpenseItem
	HealthCategoryID       string
}

// EngineInputFromSnapshot flattens a snapshot into engine input.
func EngineInputFromSnapshot(s *domain.Snapshot) EngineInput {
	return EngineInput{
		CurrentAge:             s.Profile.CurrentAge,
		RetirementAge:          s.Profile.RetirementAge,
		LifeExpectancy:         s.Profile.LifeExpectancy,
		BaseInflationPercent:   s.Profile.BaseInflation,
		HealthInflationPercent: s.Profile.HealthInflation,
		LiquidAssets:           s.LiquidAssets,
		ReplacementAssets:      s.ReplacementAssets,
		ExpenseItems:           s.Expenses,
		HealthCategoryID:       s.HealthCategoryID(),
	}
}

func (in EngineInput) profile() domain.Profile {
	return domain.Profile{
		CurrentAge:     in.CurrentAge,
		RetirementAge:  in.RetirementAge,
		LifeExpectancy: in.LifeExpectancy,
	}
}

// EngineOption customizes a MasterCashFlowEngine.
type EngineOption func(*MasterCashFlowEngine)

// WithProjectionYears sets the projection span.
func WithProjectionYears(years int) EngineOption {
	return func(e *MasterCashFlowEngine) { e.years = years }
}

// WithProvisionerConfig replaces the replacement-provisioning horizon and rate.
func WithProvisionerConfig(cfg ProvisionerConfig) EngineOption {
	return func(e *MasterCashFlowEngine) { e.provisioner = NewReplacementProvisioner(cfg) }
}

// WithBaseYear pins the calendar year of index 0.
func WithBaseYear(year int) EngineOption {
	return func(e *MasterCashFlowEngine) { e.baseYear = year }
}

// WithLogger attaches a logger.
func WithLogger(l Logger) EngineOption {
	return func(e *MasterCashFlowEngine) { e.logger = orNop(l) }
}

// MasterCashFlowEngine produces the year-by-year corpus projection.
// All rows are computed at construction and never change afterwards.
type MasterCashFlowEngine struct {
	input       EngineInput
	years       int
	baseYear    int
	provisioner *ReplacementProvisioner
	logger      Logger

	assets         []trackedAsset
	provision      domain.Provision
	lifestyle      decimal.Decimal
	projections    []domain.YearProjection
	reconciliation domain.Reconciliation
}

// NewMasterCashFlowEngine validates input and computes the full projection.
func NewMasterCashFlowEngine(input EngineInput, opts ...EngineOption) (*MasterCashFlowEngine, error) {
	if err := domain.ValidateProfile(input.profile()); err != nil {
		return nil, err
	}

	e := &MasterCashFlowEngine{
		input:       input,
		years:       DefaultProjectionYears,
		baseYear:    currentYear(),
		provisioner: NewReplacementProvisioner(DefaultProvisionerConfig()),
		logger:      NopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.years < 0 {
		return nil, domain.NewConfigError("projection_years", "must not be negative, got %d", e.years)
	}
	if e.years > domain.MaxProjectionYears {
		return nil, domain.NewConfigError("projection_years", "must be at most %d, got %d", domain.MaxProjectionYears, e.years)
	}
	if err := e.provisioner.Config.Validate(); err != nil {
		return nil, err
	}

	e.assets = trackAssets(input.LiquidAssets)
	e.provision = e.provisioner.Provision(input.ReplacementAssets, input.CurrentAge)
	e.lifestyle = decimal.Zero
	for _, item := range input.ExpenseItems {
		e.lifestyle = e.lifestyle.Add(item.AnnualAmount())
	}

	e.logger.Debugf("projecting %d liquid assets (corpus %s) over %d years, retirement in %d",
		len(e.assets), totalInitial(e.assets).StringFixed(2), e.years, e.YearsToRetirement())

	e.project()
	e.reconciliation = reconcile(input.LiquidAssets, e.projections, DefaultReconciliationYear, ReconciliationTolerance)
	if e.reconciliation.Mismatch() {
		e.logger.Warnf("year %d corpus reconciliation off by %s (expected %s, engine %s)",
			e.reconciliation.YearIndex,
			e.reconciliation.Difference.StringFixed(2),
			e.reconciliation.Expected.StringFixed(2),
			e.reconciliation.Actual.StringFixed(2))
	}
	return e, nil
}

func (e *MasterCashFlowEngine) project() {
	e.projections = make([]domain.YearProjection, 0, e.years+1)

	var mode projectionMode = accumulationMode{assets: e.assets}
	for i := 0; i <= e.years; i++ {
		age := e.input.CurrentAge + i
		if age >= e.input.RetirementAge && mode.phase() == domain.PhaseAccumulation {
			mode = newDistributionMode(e.assets, e.YearsToRetirement())
			e.logger.Debugf("distribution begins at year %d (age %d)", i, age)
		}

		fig := mode.open(i)
		outgo := decimal.Zero
		if mode.phase() == domain.PhaseDistribution {
			outgo = e.outgo(i)
		}
		closing := fig.opening.Add(fig.yield).Sub(outgo)
		carried := mode.settle(closing)

		e.projections = append(e.projections, domain.YearProjection{
			YearIndex:            i,
			Year:                 e.baseYear + i,
			Age:                  age,
			Phase:                mode.phase(),
			OpeningCorpus:        fig.opening,
			ProjectedYield:       fig.yield,
			ProjectedAnnualOutgo: outgo,
			ClosingCorpus:        closing,
			CarriedCorpus:        carried,
			AssetBreakdown:       fig.breakdown,
		})
	}
}

// outgo is the inflated lifestyle spend for yearIndex plus the flat provision.
func (e *MasterCashFlowEngine) outgo(yearIndex int) decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.input.ExpenseItems {
		rate := e.input.BaseInflationPercent
		if e.input.HealthCategoryID != "" && item.CategoryID == e.input.HealthCategoryID {
			rate = e.input.HealthInflationPercent
		}
		total = total.Add(rates.FutureValue(item.AnnualAmount(), rate, yearIndex))
	}
	return total.Add(e.provision.AnnualProvision)
}

// Projections returns a copy of every projected year.
func (e *MasterCashFlowEngine) Projections() []domain.YearProjection {
	out := make([]domain.YearProjection, len(e.projections))
	for i, p := range e.projections {
		out[i] = copyProjection(p)
	}
	return out
}

// ProjectionAtYear returns the row for yearIndex.
func (e *MasterCashFlowEngine) ProjectionAtYear(yearIndex int) (domain.YearProjection, bool) {
	if yearIndex < 0 || yearIndex >= len(e.projections) {
		return domain.YearProjection{}, false
	}
	return copyProjection(e.projections[yearIndex]), true
}

func copyProjection(p domain.YearProjection) domain.YearProjection {
	p.AssetBreakdown = append([]domain.AssetYieldBreakdown(nil), p.AssetBreakdown...)
	return p
}

// TotalYears is the configured span; there are TotalYears()+1 rows.
func (e *MasterCashFlowEngine) TotalYears() int { return e.years }

func (e *MasterCashFlowEngine) YearsToRetirement() int {
	return e.input.RetirementAge - e.input.CurrentAge
}

// BaseYearLifestyleExpenses is the uninflated annual spend.
func (e *MasterCashFlowEngine) BaseYearLifestyleExpenses() decimal.Decimal { return e.lifestyle }

// BaseYearSinkingFund is the flat annual replacement provision.
func (e *MasterCashFlowEngine) BaseYearSinkingFund() decimal.Decimal {
	return e.provision.AnnualProvision
}

func (e *MasterCashFlowEngine) BaseYearTotalNeed() decimal.Decimal {
	return e.lifestyle.Add(e.provision.AnnualProvision)
}

// Baseline bundles the three base-year figures.
func (e *MasterCashFlowEngine) Baseline() domain.BaselineNeed {
	return domain.BaselineNeed{
		LifestyleExpenses: e.BaseYearLifestyleExpenses(),
		SinkingFund:       e.BaseYearSinkingFund(),
		TotalNeed:         e.BaseYearTotalNeed(),
	}
}

// Provision returns the replacement provision the engine withdraws each distribution year.
func (e *MasterCashFlowEngine) Provision() domain.Provision {
	p := e.provision
	p.Replacements = append([]domain.ReplacementEvent(nil), p.Replacements...)
	return p
}

// Diagnostics returns the self-consistency check computed after projection.
func (e *MasterCashFlowEngine) Diagnostics() domain.Reconciliation { return e.reconciliation }
