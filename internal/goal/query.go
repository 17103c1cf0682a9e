package goal

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/actor"
	"github.com/saulo-duarte/pms-lambda/internal/apperror"
	"github.com/saulo-duarte/pms-lambda/internal/config"
)

type View string

const (
	// ViewMine lists goals the actor created for themselves.
	ViewMine View = "mine"
	// ViewAssigned lists goals handed to the actor, excluding drafts.
	ViewAssigned View = "assigned"
	// ViewPending lists submitted goals waiting on the actor's approval.
	ViewPending View = "pending"
)

type ListFilter struct {
	View    View
	CycleID *uuid.UUID
	OwnerID *uuid.UUID
	Status  Status
}

func (f ListFilter) storeFilter(a actor.Actor) (Filter, error) {
	sf := Filter{CycleID: f.CycleID}
	if f.Status != "" {
		if !f.Status.IsValid() {
			return Filter{}, apperror.Validation("unknown status %q", f.Status)
		}
		sf.Statuses = []Status{f.Status}
	}

	switch f.View {
	case ViewMine:
		sf.OwnerID = &a.ID
		sf.Origin = OriginSelf
	case ViewAssigned:
		sf.AssigneeID = &a.ID
	case ViewPending:
		sf.ApproverID = &a.ID
		sf.Statuses = []Status{StatusSubmitted}
	case "":
		sf.OwnerID = f.OwnerID
	default:
		return Filter{}, apperror.Validation("unknown view %q", f.View)
	}
	return sf, nil
}

func (s *service) ListGoals(ctx context.Context, a actor.Actor, f ListFilter) ([]*Goal, error) {
	log := config.WithContext(ctx)

	sf, err := f.storeFilter(a)
	if err != nil {
		return nil, err
	}

	goals, err := s.repo.Query(ctx, sf)
	if err != nil {
		log.WithError(err).Error("Failed to query goals")
		return nil, err
	}

	if f.View == ViewPending && a.Role == actor.RoleHR {
		unrouted, err := s.unroutedSubmissions(ctx, a, f.CycleID)
		if err != nil {
			log.WithError(err).Error("Failed to query unrouted self goals")
			return nil, err
		}
		goals = append(goals, unrouted...)
		newestFirst(goals)
	}

	managesOwner := false
	if f.View == "" && a.Role != actor.RoleHR && f.OwnerID != nil && *f.OwnerID != a.ID {
		managesOwner, err = s.manages(ctx, a, *f.OwnerID)
		if err != nil {
			return nil, err
		}
	}

	out := goals[:0]
	for _, g := range goals {
		if f.View == ViewAssigned && g.Status == StatusDraft {
			continue
		}
		if f.View == "" && a.Role != actor.RoleHR && !managesOwner && !g.involves(a) {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

// unroutedSubmissions returns submitted self goals whose owner had no manager
// on record. Any HR actor other than the owner reviews them.
func (s *service) unroutedSubmissions(ctx context.Context, a actor.Actor, cycleID *uuid.UUID) ([]*Goal, error) {
	goals, err := s.repo.Query(ctx, Filter{
		CycleID:  cycleID,
		Origin:   OriginSelf,
		Statuses: []Status{StatusSubmitted},
	})
	if err != nil {
		return nil, err
	}

	out := goals[:0]
	for _, g := range goals {
		if g.routedToHR() && !g.isOwner(a) {
			out = append(out, g)
		}
	}
	return out, nil
}

// manages reports whether a is the manager on record for ownerID.
func (s *service) manages(ctx context.Context, a actor.Actor, ownerID uuid.UUID) (bool, error) {
	owner, err := s.directory.Lookup(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return false, nil
		}
		config.WithContext(ctx).WithError(err).Error("Failed to look up goal owner")
		return false, err
	}
	return owner.ManagerID != nil && *owner.ManagerID == a.ID, nil
}
