package selfassessment

import (
	"time"

	"github.com/google/uuid"
)

type SubmitDTO struct {
	CycleID  uuid.UUID `json:"cycle_id"`
	Comments string    `json:"comments"`
	Rating   *int      `json:"rating,omitempty"`
}

type SelfAssessmentResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CycleID     uuid.UUID `json:"cycle_id"`
	Comments    string    `json:"comments,omitempty"`
	Rating      *int      `json:"rating,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func toResponse(sa *SelfAssessment) *SelfAssessmentResponse {
	return &SelfAssessmentResponse{
		ID:          sa.ID,
		OwnerID:     sa.OwnerID,
		CycleID:     sa.CycleID,
		Comments:    sa.Comments,
		Rating:      sa.Rating,
		SubmittedAt: sa.SubmittedAt,
	}
}
