// Package selfassessment stores the employee's own write-up for a review
// cycle. There is one per employee and cycle; submitting again replaces it.
package selfassessment

import (
	"time"

	"github.com/google/uuid"
)

type SelfAssessment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_self_assessment_owner_cycle" json:"owner_id"`
	CycleID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_self_assessment_owner_cycle;index" json:"cycle_id"`
	Comments    string    `gorm:"type:text" json:"comments"`
	Rating      *int      `json:"rating,omitempty"`
	Encrypted   bool      `gorm:"not null;default:false" json:"-"`
	SubmittedAt time.Time `json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (SelfAssessment) TableName() string {
	return "self_assessments"
}

var namespace = uuid.MustParse("b3d1f6e2-7a4c-4c8e-8f15-2e9a0c7d4b61")

// IDFor derives the record id from owner and cycle.
func IDFor(ownerID, cycleID uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(namespace, append(ownerID[:], cycleID[:]...))
}
