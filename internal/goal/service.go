package goal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/actor"
	"github.com/saulo-duarte/pms-lambda/internal/apperror"
	"github.com/saulo-duarte/pms-lambda/internal/config"
	"github.com/saulo-duarte/pms-lambda/internal/cycle"
	"github.com/saulo-duarte/pms-lambda/internal/review"
	"github.com/sirupsen/logrus"
)

const maxTitleLength = 200

type CreateGoalInput struct {
	CycleID     uuid.UUID
	Title       string
	Description string
	Timeline    Timeline
}

type AssignGoalInput struct {
	CreateGoalInput
	AssigneeID uuid.UUID
}

type DetailsPatch struct {
	Title       *string
	Description *string
	Timeline    *Timeline
}

// Approval is the goal in its approved state and the review emitted for it.
// When the review cannot be stored the goal is still approved, Review is nil
// and ReissueReview writes it later.
type Approval struct {
	Goal   *Goal
	Review *review.Review
}

type Service interface {
	CreateGoal(ctx context.Context, a actor.Actor, in CreateGoalInput) (*Goal, error)
	AssignGoal(ctx context.Context, a actor.Actor, in AssignGoalInput) (*Goal, error)
	AcceptGoal(ctx context.Context, a actor.Actor, id uuid.UUID) (*Goal, error)
	UpdateProgress(ctx context.Context, a actor.Actor, id uuid.UUID, progress int) (*Goal, error)
	UpdateDetails(ctx context.Context, a actor.Actor, id uuid.UUID, patch DetailsPatch) (*Goal, error)
	SubmitGoal(ctx context.Context, a actor.Actor, id uuid.UUID, comments *string) (*Goal, error)
	ArchiveGoal(ctx context.Context, a actor.Actor, id uuid.UUID) (*Goal, error)
	ApproveGoal(ctx context.Context, a actor.Actor, id uuid.UUID, rating int, comments string) (*Approval, error)
	RejectGoal(ctx context.Context, a actor.Actor, id uuid.UUID, comments string) (*Goal, error)
	ReissueReview(ctx context.Context, a actor.Actor, id uuid.UUID) (*review.Review, error)
	GetGoal(ctx context.Context, a actor.Actor, id uuid.UUID) (*Goal, error)
	ListGoals(ctx context.Context, a actor.Actor, f ListFilter) ([]*Goal, error)
}

type service struct {
	repo      Repository
	reviews   review.Emitter
	directory actor.Directory
	cycles    cycle.Checker
	now       func() time.Time
}

func NewService(repo Repository, reviews review.Emitter, directory actor.Directory, cycles cycle.Checker) Service {
	if cycles == nil {
		cycles = cycle.Opaque{}
	}
	return &service{
		repo:      repo,
		reviews:   reviews,
		directory: directory,
		cycles:    cycles,
		now:       time.Now,
	}
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperror.Validation("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", apperror.Validation("title must be at most %d characters", maxTitleLength)
	}
	return title, nil
}

func normalizeTimeline(t Timeline) (Timeline, error) {
	if t == "" {
		return TimelineQuarterly, nil
	}
	if !t.IsValid() {
		return "", apperror.Validation("unknown timeline %q", t)
	}
	return t, nil
}

func validateProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return apperror.Validation("progress must be between 0 and 100, got %d", progress)
	}
	return nil
}

func (s *service) newGoal(ctx context.Context, a actor.Actor, in CreateGoalInput) (*Goal, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	timeline, err := normalizeTimeline(in.Timeline)
	if err != nil {
		return nil, err
	}
	if in.CycleID == uuid.Nil {
		return nil, apperror.Validation("cycle id is required")
	}
	if err := s.cycles.Exists(ctx, in.CycleID); err != nil {
		return nil, err
	}

	now := s.now()
	return &Goal{
		ID:            uuid.New(),
		CycleID:       in.CycleID,
		CreatedByID:   a.ID,
		CreatedByRole: a.Role,
		Title:         title,
		Description:   strings.TrimSpace(in.Description),
		Timeline:      timeline,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (s *service) CreateGoal(ctx context.Context, a actor.Actor, in CreateGoalInput) (*Goal, error) {
	log := config.WithContext(ctx)

	g, err := s.newGoal(ctx, a, in)
	if err != nil {
		log.WithError(err).Warn("Invalid goal")
		return nil, err
	}
	g.OwnerID = a.ID
	g.Origin = OriginSelf
	g.Status = StatusDraft

	if err := s.repo.Create(ctx, g); err != nil {
		log.WithError(err).Error("Failed to create goal")
		return nil, err
	}

	log.WithField("goal_id", g.ID).Info("Goal created")
	return g, nil
}

func (s *service) AssignGoal(ctx context.Context, a actor.Actor, in AssignGoalInput) (*Goal, error) {
	log := config.WithContext(ctx).WithField("assignee_id", in.AssigneeID)

	var status Status
	switch a.Role {
	case actor.RoleManager:
		status = StatusManagerAssigned
	case actor.RoleHR:
		status = StatusHRAssigned
	default:
		log.Warn("Goal assignment by non-assigner role")
		return nil, apperror.Unauthorized("role %s cannot assign goals", a.Role)
	}

	g, err := s.newGoal(ctx, a, in.CreateGoalInput)
	if err != nil {
		log.WithError(err).Warn("Invalid goal")
		return nil, err
	}

	assignee, err := s.directory.Lookup(ctx, in.AssigneeID)
	if err != nil {
		log.WithError(err).Warn("Assignee lookup failed")
		return nil, err
	}
	if !a.Role.CanAssignTo(assignee.Role) {
		log.WithField("assignee_role", assignee.Role).Warn("Goal assignment across wrong roles")
		return nil, apperror.Unauthorized("%s cannot assign goals to %s", a.Role, assignee.Role)
	}

	assigneeID := assignee.ID
	approverID := a.ID
	g.OwnerID = assigneeID
	g.AssigneeID = &assigneeID
	g.ApproverID = &approverID
	g.Origin = OriginAssigned
	g.Status = status

	if err := s.repo.Create(ctx, g); err != nil {
		log.WithError(err).Error("Failed to create assigned goal")
		return nil, err
	}

	log.WithField("goal_id", g.ID).Info("Goal assigned")
	return g, nil
}

type applyFunc func(g *Goal)

// prepareFunc runs after the caller has been authorized against the current
// snapshot and before the atomic update; it returns the edits to apply.
type prepareFunc func(ctx context.Context, current *Goal) (applyFunc, error)

func with(fn applyFunc) prepareFunc {
	return func(context.Context, *Goal) (applyFunc, error) {
		return fn, nil
	}
}

// transition authorizes act against a snapshot, then re-checks and applies it
// inside the store's compare-and-swap on the snapshot's status.
func (s *service) transition(ctx context.Context, a actor.Actor, id uuid.UUID, act Action, prepare prepareFunc) (*Goal, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"goal_id": id,
		"action":  act,
		"actor":   a.String(),
	})

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := plan(current, a, act); err != nil {
		log.WithError(err).WithField("status", current.Status).Warn("Goal transition rejected")
		return nil, err
	}

	var apply applyFunc
	if prepare != nil {
		if apply, err = prepare(ctx, current); err != nil {
			log.WithError(err).Warn("Goal transition rejected")
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, id, current.Status, func(g *Goal) error {
		next, err := plan(g, a, act)
		if err != nil {
			return err
		}
		g.Status = next
		if apply != nil {
			apply(g)
		}
		g.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		if apperror.KindOf(err) == "" {
			log.WithError(err).Error("Failed to update goal")
		} else {
			log.WithError(err).Warn("Goal transition lost")
		}
		return nil, err
	}

	log.WithFields(logrus.Fields{"from": current.Status, "to": updated.Status}).Info("Goal transition applied")
	return updated, nil
}

func (s *service) AcceptGoal(ctx context.Context, a actor.Actor, id uuid.UUID) (*Goal, error) {
	return s.transition(ctx, a, id, ActionAccept, nil)
}

func (s *service) UpdateProgress(ctx context.Context, a actor.Actor, id uuid.UUID, progress int) (*Goal, error) {
	if err := validateProgress(progress); err != nil {
		return nil, err
	}
	return s.transition(ctx, a, id, ActionProgress, with(func(g *Goal) {
		g.Progress = progress
	}))
}

func (s *service) UpdateDetails(ctx context.Context, a actor.Actor, id uuid.UUID, patch DetailsPatch) (*Goal, error) {
	var title string
	if patch.Title != nil {
		t, err := normalizeTitle(*patch.Title)
		if err != nil {
			return nil, err
		}
		title = t
	}
	var timeline Timeline
	if patch.Timeline != nil {
		t, err := normalizeTimeline(*patch.Timeline)
		if err != nil {
			return nil, err
		}
		timeline = t
	}

	return s.transition(ctx, a, id, ActionEdit, with(func(g *Goal) {
		if patch.Title != nil {
			g.Title = title
		}
		if patch.Description != nil {
			g.Description = strings.TrimSpace(*patch.Description)
		}
		if patch.Timeline != nil {
			g.Timeline = timeline
		}
	}))
}

func (s *service) SubmitGoal(ctx context.Context, a actor.Actor, id uuid.UUID, comments *string) (*Goal, error) {
	return s.transition(ctx, a, id, ActionSubmit, func(ctx context.Context, current *Goal) (applyFunc, error) {
		var approverID *uuid.UUID
		if current.IsSelf() {
			reviewerID, err := s.reviewerFor(ctx, current.OwnerID)
			if err != nil {
				return nil, err
			}
			approverID = reviewerID
		}

		return func(g *Goal) {
			if g.IsSelf() {
				g.ApproverID = approverID
			}
			if comments != nil {
				g.SubmissionComments = strings.TrimSpace(*comments)
			}
		}, nil
	})
}

// reviewerFor resolves who approves a self-created goal: the owner's manager.
// It returns nil when no manager is on record, which leaves the goal to HR.
func (s *service) reviewerFor(ctx context.Context, ownerID uuid.UUID) (*uuid.UUID, error) {
	log := config.WithContext(ctx).WithField("owner_id", ownerID)

	owner, err := s.directory.Lookup(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			log.Warn("Goal owner not in directory, routing review to HR")
			return nil, nil
		}
		return nil, err
	}
	if owner.ManagerID == nil || *owner.ManagerID == ownerID {
		log.Info("No manager on record, routing review to HR")
		return nil, nil
	}
	managerID := *owner.ManagerID
	return &managerID, nil
}

func (s *service) ArchiveGoal(ctx context.Context, a actor.Actor, id uuid.UUID) (*Goal, error) {
	return s.transition(ctx, a, id, ActionArchive, nil)
}

func (s *service) ApproveGoal(ctx context.Context, a actor.Actor, id uuid.UUID, rating int, comments string) (*Approval, error) {
	if err := review.ValidateRating(rating); err != nil {
		return nil, err
	}
	comments = strings.TrimSpace(comments)

	g, err := s.transition(ctx, a, id, ActionApprove, with(func(g *Goal) {
		if g.ApproverID == nil {
			approverID := a.ID
			g.ApproverID = &approverID
		}
		r := rating
		at := s.now()
		g.ApprovalRating = &r
		g.ApprovalComments = comments
		g.ApprovedAt = &at
	}))
	if err != nil {
		return nil, err
	}

	rv, err := s.emit(ctx, g)
	if err != nil {
		config.WithContext(ctx).WithError(err).WithField("goal_id", id).
			Error("Goal approved but review emission failed")
		return &Approval{Goal: g}, fmt.Errorf("emit review for goal %s: %w", id, err)
	}

	return &Approval{Goal: g, Review: rv}, nil
}

func (s *service) emit(ctx context.Context, g *Goal) (*review.Review, error) {
	if g.ApprovalRating == nil || g.ApproverID == nil {
		return nil, apperror.InvalidTransition("goal %s has no recorded approval", g.ID)
	}
	return s.reviews.Emit(ctx, review.Subject{
		GoalID:     g.ID,
		EmployeeID: g.OwnerID,
		ReviewerID: *g.ApproverID,
		CycleID:    g.CycleID,
	}, *g.ApprovalRating, g.ApprovalComments)
}

func (s *service) RejectGoal(ctx context.Context, a actor.Actor, id uuid.UUID, comments string) (*Goal, error) {
	comments = strings.TrimSpace(comments)
	return s.transition(ctx, a, id, ActionReject, with(func(g *Goal) {
		g.ApprovalComments = comments
		g.ApprovalRating = nil
		g.ApprovedAt = nil
	}))
}

// ReissueReview re-emits the review of an approved goal from the approval
// stored on it. It covers a failure between the approval and the review write.
func (s *service) ReissueReview(ctx context.Context, a actor.Actor, id uuid.UUID) (*review.Review, error) {
	g, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !g.isApprover(a) && a.Role != actor.RoleHR {
		return nil, apperror.Unauthorized("only the approver or hr can reissue a review")
	}
	if g.Status != StatusManagerApproved && g.Status != StatusHRApproved {
		return nil, apperror.InvalidTransition("goal %s is %s, not approved", id, g.Status)
	}
	return s.emit(ctx, g)
}

func (s *service) GetGoal(ctx context.Context, a actor.Actor, id uuid.UUID) (*Goal, error) {
	g, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Role != actor.RoleHR && !g.involves(a) {
		return nil, apperror.Unauthorized("not allowed to read goal %s", id)
	}
	return g, nil
}
