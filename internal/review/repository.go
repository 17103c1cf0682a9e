package review

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
	// Create fails with Conflict when the goal already has a review.
	Create(ctx context.Context, r *Review) error
	FindByGoalID(ctx context.Context, goalID uuid.UUID) (*Review, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*Review, error)
	ListByCycle(ctx context.Context, cycleID uuid.UUID) ([]*Review, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository returns the PostgreSQL store. Comments are sealed with the
// configured crypto key when one is loaded.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, rv *Review) error {
	row := *rv
	if config.CryptoEnabled() {
		sealed, err := config.Encrypt(rv.Comments)
		if err != nil {
			return err
		}
		row.Comments = sealed
		row.Encrypted = true
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "goal_id"}}, DoNothing: true}).
		Create(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.Conflict("goal %s already has a review", rv.GoalID)
	}
	rv.CreatedAt = row.CreatedAt
	return nil
}

func (r *gormRepository) FindByGoalID(ctx context.Context, goalID uuid.UUID) (*Review, error) {
	var rv Review
	if err := r.db.WithContext(ctx).First(&rv, "goal_id = ?", goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("no review for goal %s", goalID)
		}
		return nil, err
	}
	if err := open(&rv); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *gormRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*Review, error) {
	return r.list(ctx, "employee_id = ?", employeeID)
}

func (r *gormRepository) ListByCycle(ctx context.Context, cycleID uuid.UUID) ([]*Review, error) {
	return r.list(ctx, "cycle_id = ?", cycleID)
}

func (r *gormRepository) list(ctx context.Context, query string, arg any) ([]*Review, error) {
	var reviews []*Review
	if err := r.db.WithContext(ctx).
		Where(query, arg).
		Order("reviewed_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	for _, rv := range reviews {
		if err := open(rv); err != nil {
			return nil, err
		}
	}
	return reviews, nil
}

func open(rv *Review) error {
	if !rv.Encrypted {
		return nil
	}
	plain, err := config.Decrypt(rv.Comments)
	if err != nil {
		return err
	}
	rv.Comments = plain
	rv.Encrypted = false
	return nil
}
