package review

import (
	"time"

	"github.com/google/uuid"
)

type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	GoalID     uuid.UUID `json:"goal_id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	ReviewerID uuid.UUID `json:"reviewer_id"`
	CycleID    uuid.UUID `json:"cycle_id"`
	Rating     int       `json:"rating"`
	Comments   string    `json:"comments,omitempty"`
	Status     Status    `json:"status"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

func ToResponse(rv *Review) *ReviewResponse {
	if rv == nil {
		return nil
	}
	return &ReviewResponse{
		ID:         rv.ID,
		GoalID:     rv.GoalID,
		EmployeeID: rv.EmployeeID,
		ReviewerID: rv.ReviewerID,
		CycleID:    rv.CycleID,
		Rating:     rv.Rating,
		Comments:   rv.Comments,
		Status:     rv.Status,
		ReviewedAt: rv.ReviewedAt,
	}
}
