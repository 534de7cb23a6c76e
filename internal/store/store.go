// Package store persists planning snapshots per identity.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rpgo/dignity-planner/internal/domain"
)

// ErrNotFound is returned when no snapshot exists for an identity.
var ErrNotFound = errors.New("snapshot not found")

// Repository loads and saves the snapshot owned by an identity.
type Repository interface {
	Load(ctx context.Context, identity string) (*domain.Snapshot, error)
	Save(ctx context.Context, identity string, snap *domain.Snapshot) error
}

// Record kinds, one per snapshot collection.
const (
	kindProfile          = "profile"
	kindAssumptions      = "assumptions"
	kindWealthBaseline   = "wealth_baseline"
	kindExpenseCategory  = "expense_category"
	kindExpense          = "expense"
	kindLiquidAsset      = "liquid_asset"
	kindReplacementAsset = "replacement_asset"
	kindMilestone        = "milestone"
	kindWealthAsset      = "wealth_asset"
	kindMilestoneLink    = "milestone_link"
)

// ValidateIdentity rejects identities that cannot be used as keys or file names.
func ValidateIdentity(identity string) error {
	if strings.TrimSpace(identity) == "" {
		return fmt.Errorf("identity is required")
	}
	if strings.ContainsAny(identity, `/\`) || strings.Contains(identity, "..") {
		return fmt.Errorf("identity %q contains path characters", identity)
	}
	return nil
}

// AssignIDs gives every record without an ID a fresh UUID. It mutates snap.
func AssignIDs(snap *domain.Snapshot) {
	assign := func(id *string) {
		if *id == "" {
			*id = uuid.NewString()
		}
	}
	for i := range snap.ExpenseCategories {
		assign(&snap.ExpenseCategories[i].ID)
	}
	for i := range snap.Expenses {
		assign(&snap.Expenses[i].ID)
	}
	for i := range snap.LiquidAssets {
		assign(&snap.LiquidAssets[i].ID)
	}
	for i := range snap.ReplacementAssets {
		assign(&snap.ReplacementAssets[i].ID)
	}
	for i := range snap.Milestones {
		assign(&snap.Milestones[i].ID)
	}
	for i := range snap.WealthAssets {
		assign(&snap.WealthAssets[i].ID)
	}
	for i := range snap.MilestoneLinks {
		assign(&snap.MilestoneLinks[i].ID)
	}
}

// record is one stored document.
type record struct {
	kind string
	id   string
	body []byte
}

func encodeRecords[T any](kind string, items []T, id func(T) string) ([]record, error) {
	out := make([]record, 0, len(items))
	for _, item := range items {
		body, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", kind, err)
		}
		out = append(out, record{kind: kind, id: id(item), body: body})
	}
	return out, nil
}

// decompose splits a snapshot into one record per item.
func decompose(snap *domain.Snapshot) ([]record, error) {
	var records []record
	for kind, v := range map[string]any{
		kindProfile:        snap.Profile,
		kindAssumptions:    snap.Assumptions,
		kindWealthBaseline: snap.WealthBaseline,
	} {
		body, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", kind, err)
		}
		records = append(records, record{kind: kind, id: kind, body: body})
	}

	collections := []func() ([]record, error){
		func() ([]record, error) {
			return encodeRecords(kindExpenseCategory, snap.ExpenseCategories, func(c domain.ExpenseCategory) string { return c.ID })
		},
		func() ([]record, error) {
			return encodeRecords(kindExpense, snap.Expenses, func(e domain.ExpenseItem) string { return e.ID })
		},
		func() ([]record, error) {
			return encodeRecords(kindLiquidAsset, snap.LiquidAssets, func(a domain.LiquidAsset) string { return a.ID })
		},
		func() ([]record, error) {
			return encodeRecords(kindReplacementAsset, snap.ReplacementAssets, func(a domain.ReplacementAsset) string { return a.ID })
		},
		func() ([]record, error) {
			return encodeRecords(kindMilestone, snap.Milestones, func(m domain.Milestone) string { return m.ID })
		},
		func() ([]record, error) {
			return encodeRecords(kindWealthAsset, snap.WealthAssets, func(a domain.WealthAsset) string { return a.ID })
		},
		func() ([]record, error) {
			return encodeRecords(kindMilestoneLink, snap.MilestoneLinks, func(l domain.AssetMilestoneLink) string { return l.ID })
		},
	}
	for _, encode := range collections {
		rs, err := encode()
		if err != nil {
			return nil, err
		}
		records = append(records, rs...)
	}
	return records, nil
}

func appendDecoded[T any](dst *[]T, body []byte) error {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return err
	}
	*dst = append(*dst, v)
	return nil
}

// assemble rebuilds a snapshot from records in stored order.
func assemble(records []record) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}
	for _, r := range records {
		var err error
		switch r.kind {
		case kindProfile:
			err = json.Unmarshal(r.body, &snap.Profile)
		case kindAssumptions:
			err = json.Unmarshal(r.body, &snap.Assumptions)
		case kindWealthBaseline:
			err = json.Unmarshal(r.body, &snap.WealthBaseline)
		case kindExpenseCategory:
			err = appendDecoded(&snap.ExpenseCategories, r.body)
		case kindExpense:
			err = appendDecoded(&snap.Expenses, r.body)
		case kindLiquidAsset:
			err = appendDecoded(&snap.LiquidAssets, r.body)
		case kindReplacementAsset:
			err = appendDecoded(&snap.ReplacementAssets, r.body)
		case kindMilestone:
			err = appendDecoded(&snap.Milestones, r.body)
		case kindWealthAsset:
			err = appendDecoded(&snap.WealthAssets, r.body)
		case kindMilestoneLink:
			err = appendDecoded(&snap.MilestoneLinks, r.body)
		default:
			err = fmt.Errorf("unknown record kind")
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s record %s: %w", r.kind, r.id, err)
		}
	}
	return snap, nil
}
