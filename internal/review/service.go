package review

import (
	"context"

	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/actor"
	"github.com/saulo-duarte/pms-lambda/internal/apperror"
	"github.com/saulo-duarte/pms-lambda/internal/config"
)

type Service interface {
	MyReviews(ctx context.Context, a actor.Actor) ([]*Review, error)
	GetForGoal(ctx context.Context, a actor.Actor, goalID uuid.UUID) (*Review, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) MyReviews(ctx context.Context, a actor.Actor) ([]*Review, error) {
	reviews, err := s.repo.ListByEmployee(ctx, a.ID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list reviews")
		return nil, err
	}
	return reviews, nil
}

func (s *service) GetForGoal(ctx context.Context, a actor.Actor, goalID uuid.UUID) (*Review, error) {
	rv, err := s.repo.FindByGoalID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if a.Role != actor.RoleHR && rv.EmployeeID != a.ID && rv.ReviewerID != a.ID {
		config.WithContext(ctx).WithField("goal_id", goalID).Warn("Review requested by unrelated actor")
		return nil, apperror.Unauthorized("not allowed to read this review")
	}
	return rv, nil
}
