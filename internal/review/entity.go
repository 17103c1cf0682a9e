package review

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft Status = "draft"
	StatusFinal Status = "final"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GoalID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"goal_id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index" json:"employee_id"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null" json:"reviewer_id"`
	CycleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"cycle_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comments   string    `gorm:"type:text" json:"comments"`
	Encrypted  bool      `gorm:"not null;default:false" json:"-"`
	Status     Status    `gorm:"type:varchar(10);not null" json:"status"`
	ReviewedAt time.Time `json:"reviewed_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// Subject identifies the approved goal a review is derived from.
type Subject struct {
	GoalID     uuid.UUID
	EmployeeID uuid.UUID
	ReviewerID uuid.UUID
	CycleID    uuid.UUID
}

var namespace = uuid.MustParse("4f7b8a52-2c1e-4f0a-9d7e-6a3c5b1e8d90")

// IDForGoal derives the review id from the goal id, so emitting twice for the
// same goal always targets the same record.
func IDForGoal(goalID uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(namespace, goalID[:])
}
