package goal

import (
	"context"
	"sort"

	"github.com/google/uuid"
)

// Filter selects goals. Nil / empty fields match everything.
type Filter struct {
	OwnerID    *uuid.UUID
	AssigneeID *uuid.UUID
	ApproverID *uuid.UUID
	CycleID    *uuid.UUID
	Origin     Origin
	Statuses   []Status
}

func (f Filter) matches(g *Goal) bool {
	if f.OwnerID != nil && g.OwnerID != *f.OwnerID {
		return false
	}
	if f.AssigneeID != nil && (g.AssigneeID == nil || *g.AssigneeID != *f.AssigneeID) {
		return false
	}
	if f.ApproverID != nil && (g.ApproverID == nil || *g.ApproverID != *f.ApproverID) {
		return false
	}
	if f.CycleID != nil && g.CycleID != *f.CycleID {
		return false
	}
	if f.Origin != "" && g.Origin != f.Origin {
		return false
	}
	if len(f.Statuses) > 0 {
		for _, s := range f.Statuses {
			if g.Status == s {
				return true
			}
		}
		return false
	}
	return true
}

// Mutation edits a goal inside the store's atomic update. Returning an error
// aborts the update and is passed back to the caller unchanged.
type Mutation func(g *Goal) error

type Repository interface {
	Create(ctx context.Context, g *Goal) error
	Get(ctx context.Context, id uuid.UUID) (*Goal, error)
	// Update applies mutate only if the stored status still equals expected.
	// It fails with NotFound for an unknown id and Conflict on a mismatch.
	Update(ctx context.Context, id uuid.UUID, expected Status, mutate Mutation) (*Goal, error)
	Query(ctx context.Context, f Filter) ([]*Goal, error)
}

func newestFirst(goals []*Goal) {
	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].CreatedAt.After(goals[j].CreatedAt)
	})
}
