package review

import (
	"context"
	"errors"
	"time"

	"github.com/saulo-duarte/pms-lambda/internal/apperror"
	"github.com/saulo-duarte/pms-lambda/internal/config"
	"github.com/sirupsen/logrus"
)

func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return apperror.Validation("rating must be between %d and %d, got %d", MinRating, MaxRating, rating)
	}
	return nil
}

// Emitter turns an approved goal into its final review.
type Emitter interface {
	Emit(ctx context.Context, subject Subject, rating int, comments string) (*Review, error)
}

type emitter struct {
	repo Repository
	now  func() time.Time
}

func NewEmitter(repo Repository) Emitter {
	return &emitter{repo: repo, now: time.Now}
}

// Emit stores the review for subject. A goal that already has a review gets
// the stored one back, so a retry after a partial failure is safe.
func (e *emitter) Emit(ctx context.Context, subject Subject, rating int, comments string) (*Review, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"goal_id":     subject.GoalID,
		"employee_id": subject.EmployeeID,
	})

	if err := ValidateRating(rating); err != nil {
		return nil, err
	}

	if existing, err := e.repo.FindByGoalID(ctx, subject.GoalID); err == nil {
		log.Info("Review already emitted for goal")
		return existing, nil
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	now := e.now()
	rv := &Review{
		ID:         IDForGoal(subject.GoalID),
		GoalID:     subject.GoalID,
		EmployeeID: subject.EmployeeID,
		ReviewerID: subject.ReviewerID,
		CycleID:    subject.CycleID,
		Rating:     rating,
		Comments:   comments,
		Status:     StatusFinal,
		ReviewedAt: now,
		CreatedAt:  now,
	}

	if err := e.repo.Create(ctx, rv); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return e.repo.FindByGoalID(ctx, subject.GoalID)
		}
		log.WithError(err).Error("Failed to store review")
		return nil, err
	}

	log.WithField("review_id", rv.ID).Info("Review emitted")
	return rv, nil
}
