package goal

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, g *Goal) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gormRepository) Get(ctx context.Context, id uuid.UUID) (*Goal, error) {
	var g Goal
	if err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("goal %s not found", id)
		}
		return nil, err
	}
	return &g, nil
}

func (r *gormRepository) Update(ctx context.Context, id uuid.UUID, expected Status, mutate Mutation) (*Goal, error) {
	var out *Goal

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g Goal
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&g, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("goal %s not found", id)
			}
			return err
		}
		if g.Status != expected {
			return apperror.Conflict("goal %s is %s, expected %s", id, g.Status, expected)
		}

		before := g
		if err := mutate(&g); err != nil {
			return err
		}
		preserveImmutable(&before, &g)

		res := tx.Model(&Goal{}).
			Where("id = ? AND status = ?", id, expected).
			Select("*").
			Omit("id", "created_at").
			Updates(&g)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.Conflict("goal %s changed concurrently", id)
		}

		out = &g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *gormRepository) Query(ctx context.Context, f Filter) ([]*Goal, error) {
	q := r.db.WithContext(ctx).Model(&Goal{})

	if f.OwnerID != nil {
		q = q.Where("owner_id = ?", *f.OwnerID)
	}
	if f.AssigneeID != nil {
		q = q.Where("assignee_id = ?", *f.AssigneeID)
	}
	if f.ApproverID != nil {
		q = q.Where("approver_id = ?", *f.ApproverID)
	}
	if f.CycleID != nil {
		q = q.Where("cycle_id = ?", *f.CycleID)
	}
	if f.Origin != "" {
		q = q.Where("origin = ?", f.Origin)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}

	var goals []*Goal
	if err := q.Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}
