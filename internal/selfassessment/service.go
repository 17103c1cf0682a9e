package selfassessment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/actor"
	"github.com/saulo-duarte/pms-lambda/internal/apperror"
	"github.com/saulo-duarte/pms-lambda/internal/config"
	"github.com/saulo-duarte/pms-lambda/internal/cycle"
	"github.com/saulo-duarte/pms-lambda/internal/review"
	"github.com/sirupsen/logrus"
)

type SubmitInput struct {
	CycleID  uuid.UUID
	Comments string
	Rating   *int
}

type Service interface {
	Submit(ctx context.Context, a actor.Actor, in SubmitInput) (*SelfAssessment, error)
	Get(ctx context.Context, a actor.Actor, ownerID, cycleID uuid.UUID) (*SelfAssessment, error)
	ListMine(ctx context.Context, a actor.Actor) ([]*SelfAssessment, error)
}

type service struct {
	repo      Repository
	directory actor.Directory
	cycles    cycle.Checker
	now       func() time.Time
}

func NewService(repo Repository, directory actor.Directory, cycles cycle.Checker) Service {
	return &service{repo: repo, directory: directory, cycles: cycles, now: time.Now}
}

// Submit records the actor's self assessment for a cycle, replacing any
// earlier submission for the same cycle.
func (s *service) Submit(ctx context.Context, a actor.Actor, in SubmitInput) (*SelfAssessment, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"owner_id": a.ID,
		"cycle_id": in.CycleID,
	})

	if in.CycleID == uuid.Nil {
		return nil, apperror.Validation("cycle id is required")
	}
	if in.Rating != nil {
		if err := review.ValidateRating(*in.Rating); err != nil {
			return nil, err
		}
	}
	if err := s.cycles.Exists(ctx, in.CycleID); err != nil {
		return nil, err
	}

	now := s.now()
	sa := &SelfAssessment{
		ID:          IDFor(a.ID, in.CycleID),
		OwnerID:     a.ID,
		CycleID:     in.CycleID,
		Comments:    strings.TrimSpace(in.Comments),
		Rating:      in.Rating,
		SubmittedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Upsert(ctx, sa); err != nil {
		log.WithError(err).Error("Failed to store self assessment")
		return nil, err
	}

	log.Info("Self assessment submitted")
	return sa, nil
}

// Get is open to the owner, the owner's manager on record and HR.
func (s *service) Get(ctx context.Context, a actor.Actor, ownerID, cycleID uuid.UUID) (*SelfAssessment, error) {
	if a.ID != ownerID && a.Role != actor.RoleHR {
		ok, err := s.manages(ctx, a, ownerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			config.WithContext(ctx).WithField("owner_id", ownerID).Warn("Self assessment requested by unrelated actor")
			return nil, apperror.Unauthorized("not allowed to read this self assessment")
		}
	}
	return s.repo.Find(ctx, ownerID, cycleID)
}

func (s *service) ListMine(ctx context.Context, a actor.Actor) ([]*SelfAssessment, error) {
	out, err := s.repo.ListByOwner(ctx, a.ID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list self assessments")
		return nil, err
	}
	return out, nil
}

func (s *service) manages(ctx context.Context, a actor.Actor, ownerID uuid.UUID) (bool, error) {
	owner, err := s.directory.Lookup(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return owner.ManagerID != nil && *owner.ManagerID == a.ID, nil
}
