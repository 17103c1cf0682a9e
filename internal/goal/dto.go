package goal

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/actor"
	"github.com/saulo-duarte/pms-lambda/internal/review"
)

type CreateGoalDTO struct {
	CycleID     uuid.UUID `json:"cycle_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timeline    Timeline  `json:"timeline"`
}

type AssignGoalDTO struct {
	CreateGoalDTO
	AssigneeID uuid.UUID `json:"assignee_id"`
}

type UpdateGoalDTO struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Timeline    *Timeline `json:"timeline"`
}

type ProgressDTO struct {
	Progress *int `json:"progress"`
}

type SubmitGoalDTO struct {
	Comments *string `json:"comments"`
}

type ApproveGoalDTO struct {
	Rating   int    `json:"rating"`
	Comments string `json:"comments"`
}

type RejectGoalDTO struct {
	Comments string `json:"comments"`
}

func (d CreateGoalDTO) input() CreateGoalInput {
	return CreateGoalInput{
		CycleID:     d.CycleID,
		Title:       d.Title,
		Description: d.Description,
		Timeline:    d.Timeline,
	}
}

type GoalResponse struct {
	ID                 uuid.UUID  `json:"id"`
	CycleID            uuid.UUID  `json:"cycle_id"`
	OwnerID            uuid.UUID  `json:"owner_id"`
	CreatedByID        uuid.UUID  `json:"created_by_id"`
	CreatedByRole      actor.Role `json:"created_by_role"`
	Origin             Origin     `json:"origin"`
	AssigneeID         *uuid.UUID `json:"assignee_id,omitempty"`
	ApproverID         *uuid.UUID `json:"approver_id,omitempty"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Timeline           Timeline   `json:"timeline"`
	Progress           int        `json:"progress"`
	Status             Status     `json:"status"`
	SubmissionComments string     `json:"submission_comments,omitempty"`
	ApprovalRating     *int       `json:"approval_rating,omitempty"`
	ApprovalComments   string     `json:"approval_comments,omitempty"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type ApprovalResponse struct {
	Goal   *GoalResponse          `json:"goal"`
	Review *review.ReviewResponse `json:"review"`
}

func toResponse(g *Goal) *GoalResponse {
	return &GoalResponse{
		ID:                 g.ID,
		CycleID:            g.CycleID,
		OwnerID:            g.OwnerID,
		CreatedByID:        g.CreatedByID,
		CreatedByRole:      g.CreatedByRole,
		Origin:             g.Origin,
		AssigneeID:         g.AssigneeID,
		ApproverID:         g.ApproverID,
		Title:              g.Title,
		Description:        g.Description,
		Timeline:           g.Timeline,
		Progress:           g.Progress,
		Status:             g.Status,
		SubmissionComments: g.SubmissionComments,
		ApprovalRating:     g.ApprovalRating,
		ApprovalComments:   g.ApprovalComments,
		ApprovedAt:         g.ApprovedAt,
		CreatedAt:          g.CreatedAt,
		UpdatedAt:          g.UpdatedAt,
	}
}
