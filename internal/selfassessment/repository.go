package selfassessment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/apperror"
	"github.com/saulo-duarte/pms-lambda/internal/config"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Upsert inserts sa or replaces the existing record for its owner and
	// cycle, keeping the original id and CreatedAt.
	Upsert(ctx context.Context, sa *SelfAssessment) error
	Find(ctx context.Context, ownerID, cycleID uuid.UUID) (*SelfAssessment, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*SelfAssessment, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Upsert(ctx context.Context, sa *SelfAssessment) error {
	row := *sa
	if config.CryptoEnabled() {
		sealed, err := config.Encrypt(sa.Comments)
		if err != nil {
			return err
		}
		row.Comments = sealed
		row.Encrypted = true
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner_id"}, {Name: "cycle_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"comments", "rating", "encrypted", "submitted_at", "updated_at",
			}),
		}).
		Create(&row).Error
	if err != nil {
		return err
	}

	stored, err := r.Find(ctx, sa.OwnerID, sa.CycleID)
	if err != nil {
		return err
	}
	*sa = *stored
	return nil
}

func (r *gormRepository) Find(ctx context.Context, ownerID, cycleID uuid.UUID) (*SelfAssessment, error) {
	var sa SelfAssessment
	err := r.db.WithContext(ctx).
		First(&sa, "owner_id = ? AND cycle_id = ?", ownerID, cycleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("no self assessment for %s in cycle %s", ownerID, cycleID)
		}
		return nil, err
	}
	if err := open(&sa); err != nil {
		return nil, err
	}
	return &sa, nil
}

func (r *gormRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*SelfAssessment, error) {
	var out []*SelfAssessment
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("submitted_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	for _, sa := range out {
		if err := open(sa); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func open(sa *SelfAssessment) error {
	if !sa.Encrypted {
		return nil
	}
	plain, err := config.Decrypt(sa.Comments)
	if err != nil {
		return err
	}
	sa.Comments = plain
	sa.Encrypted = false
	return nil
}
