// Package cycle checks review cycle references. Cycles are administered
// elsewhere; goals and reviews only carry their id.
package cycle

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/apperror"
	"gorm.io/gorm"
)

type Cycle struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	StartsOn time.Time `json:"starts_on"`
	EndsOn   time.Time `json:"ends_on"`
}

func (Cycle) TableName() string {
	return "review_cycles"
}

type Checker interface {
	Exists(ctx context.Context, id uuid.UUID) error
}

type gormChecker struct {
	db *gorm.DB
}

func NewChecker(db *gorm.DB) Checker {
	return &gormChecker{db: db}
}

func (c *gormChecker) Exists(ctx context.Context, id uuid.UUID) error {
	var n int64
	if err := c.db.WithContext(ctx).Model(&Cycle{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound("cycle %s not found", id)
	}
	return nil
}

// Opaque accepts every non-nil id.
type Opaque struct{}

func (Opaque) Exists(_ context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return apperror.Validation("cycle id is required")
	}
	return nil
}

// Set is a fixed set of known cycles.
type Set map[uuid.UUID]struct{}

func NewSet(ids ...uuid.UUID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Exists(_ context.Context, id uuid.UUID) error {
	if _, ok := s[id]; !ok {
		return apperror.NotFound("cycle %s not found", id)
	}
	return nil
}

