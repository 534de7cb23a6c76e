package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpgo/dignity-planner/internal/domain"
	"github.com/rs/zerolog"
)

// Tiered combines a remote store with a local cache. Reads prefer the remote
// copy of each collection when it has data; writes go to both tiers and
// succeed when either tier accepts them.
type Tiered struct {
	Remote Repository
	Local  Repository
	log    zerolog.Logger
}

// NewTiered creates a two-tier repository
func NewTiered(remote, local Repository, log zerolog.Logger) *Tiered {
	return &Tiered{
		Remote: remote,
		Local:  local,
		log:    log.With().Str("repository", "tiered").Logger(),
	}
}

// Load merges both tiers collection by collection.
func (t *Tiered) Load(ctx context.Context, identity string) (*domain.Snapshot, error) {
	remote, rerr := t.Remote.Load(ctx, identity)
	if rerr != nil && !errors.Is(rerr, ErrNotFound) {
		t.log.Warn().Err(rerr).Str("identity", identity).Msg("remote load failed, using local cache")
		remote = nil
	}

	local, lerr := t.Local.Load(ctx, identity)
	if lerr != nil && !errors.Is(lerr, ErrNotFound) {
		if remote == nil {
			return nil, fmt.Errorf("failed to load snapshot: %w", errors.Join(rerr, lerr))
		}
		t.log.Warn().Err(lerr).Str("identity", identity).Msg("local load failed")
		local = nil
	}

	switch {
	case remote == nil && local == nil:
		if rerr != nil && !errors.Is(rerr, ErrNotFound) {
			// An unreachable remote is not proof the snapshot is absent.
			return nil, fmt.Errorf("failed to load snapshot: %w", rerr)
		}
		return nil, ErrNotFound
	case remote == nil:
		return local, nil
	case local == nil:
		return remote, nil
	default:
		return Merge(remote, local), nil
	}
}

// Save writes to both tiers. A single failing tier is logged and tolerated.
func (t *Tiered) Save(ctx context.Context, identity string, snap *domain.Snapshot) error {
	if err := ValidateIdentity(identity); err != nil {
		return err
	}
	// Both tiers must agree on record IDs.
	AssignIDs(snap)

	rerr := t.Remote.Save(ctx, identity, snap)
	if rerr != nil {
		t.log.Warn().Err(rerr).Str("identity", identity).Msg("remote save failed")
	}
	lerr := t.Local.Save(ctx, identity, snap)
	if lerr != nil {
		t.log.Warn().Err(lerr).Str("identity", identity).Msg("local save failed")
	}
	if rerr != nil && lerr != nil {
		return fmt.Errorf("failed to save snapshot: %w", errors.Join(rerr, lerr))
	}
	return nil
}

func profileSet(p domain.Profile) bool {
	return p.Name != "" || p.CurrentAge != 0 || p.RetirementAge != 0 || p.LifeExpectancy != 0
}

func assumptionsSet(a domain.Assumptions) bool {
	return a.ProjectionYears != 0 || !a.AssetInflation.IsZero() || a.ReplacementHorizonStart != 0 || a.ReplacementHorizonEnd != 0
}

func pick[T any](remote, local []T) []T {
	if len(remote) > 0 {
		return remote
	}
	return local
}

// Merge takes each collection from remote when it is non-empty, otherwise from local.
func Merge(remote, local *domain.Snapshot) *domain.Snapshot {
	out := &domain.Snapshot{
		Profile:           local.Profile,
		Assumptions:       local.Assumptions,
		WealthBaseline:    local.WealthBaseline,
		ExpenseCategories: pick(remote.ExpenseCategories, local.ExpenseCategories),
		Expenses:          pick(remote.Expenses, local.Expenses),
		LiquidAssets:      pick(remote.LiquidAssets, local.LiquidAssets),
		ReplacementAssets: pick(remote.ReplacementAssets, local.ReplacementAssets),
		Milestones:        pick(remote.Milestones, local.Milestones),
		WealthAssets:      pick(remote.WealthAssets, local.WealthAssets),
		MilestoneLinks:    pick(remote.MilestoneLinks, local.MilestoneLinks),
	}
	if profileSet(remote.Profile) {
		out.Profile = remote.Profile
	}
	if assumptionsSet(remote.Assumptions) {
		out.Assumptions = remote.Assumptions
	}
	if !remote.WealthBaseline.IsEmpty() {
		out.WealthBaseline = remote.WealthBaseline
	}
	return out
}
