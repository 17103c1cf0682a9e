// Package report aggregates goals and reviews per cycle for HR.
package report

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/actor"
	"github.com/saulo-duarte/pms-lambda/internal/apperror"
	"github.com/saulo-duarte/pms-lambda/internal/config"
	"github.com/saulo-duarte/pms-lambda/internal/goal"
	"github.com/saulo-duarte/pms-lambda/internal/review"
)

type CycleSummary struct {
	CycleID       uuid.UUID
	TotalGoals    int
	GoalsByStatus map[goal.Status]int
	ReviewCount   int
	AverageRating float64
	// RatingCounts is keyed by rating value.
	RatingCounts map[int]int
}

type Service interface {
	CycleSummary(ctx context.Context, a actor.Actor, cycleID uuid.UUID) (*CycleSummary, error)
}

type service struct {
	goals   goal.Repository
	reviews review.Repository
}

func NewService(goals goal.Repository, reviews review.Repository) Service {
	return &service{goals: goals, reviews: reviews}
}

func (s *service) CycleSummary(ctx context.Context, a actor.Actor, cycleID uuid.UUID) (*CycleSummary, error) {
	log := config.WithContext(ctx).WithField("cycle_id", cycleID)

	if a.Role != actor.RoleHR {
		log.WithField("actor", a.String()).Warn("Cycle summary requested by non-HR actor")
		return nil, apperror.Unauthorized("only hr can read cycle summaries")
	}

	goals, err := s.goals.Query(ctx, goal.Filter{CycleID: &cycleID})
	if err != nil {
		log.WithError(err).Error("Failed to query goals")
		return nil, err
	}
	reviews, err := s.reviews.ListByCycle(ctx, cycleID)
	if err != nil {
		log.WithError(err).Error("Failed to list reviews")
		return nil, err
	}

	summary := &CycleSummary{
		CycleID:       cycleID,
		TotalGoals:    len(goals),
		GoalsByStatus: make(map[goal.Status]int, len(goal.AllStatuses)),
		ReviewCount:   len(reviews),
		RatingCounts:  make(map[int]int, review.MaxRating),
	}
	for _, g := range goals {
		summary.GoalsByStatus[g.Status]++
	}

	total := 0
	for _, rv := range reviews {
		total += rv.Rating
		summary.RatingCounts[rv.Rating]++
	}
	if len(reviews) > 0 {
		summary.AverageRating = math.Round(float64(total)/float64(len(reviews))*100) / 100
	}

	return summary, nil
}
