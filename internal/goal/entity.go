package goal

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/actor"
)

type Goal struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CycleID            uuid.UUID  `gorm:"type:uuid;not null;index" json:"cycle_id"`
	OwnerID            uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	CreatedByID        uuid.UUID  `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedByRole      actor.Role `gorm:"type:varchar(20);not null" json:"created_by_role"`
	Origin             Origin     `gorm:"type:varchar(20);not null" json:"origin"`
	AssigneeID         *uuid.UUID `gorm:"type:uuid;index" json:"assignee_id,omitempty"`
	ApproverID         *uuid.UUID `gorm:"type:uuid;index" json:"approver_id,omitempty"`
	Title              string     `gorm:"not null" json:"title"`
	Description        string     `gorm:"type:text" json:"description,omitempty"`
	Timeline           Timeline   `gorm:"type:varchar(20);not null" json:"timeline"`
	Progress           int        `gorm:"not null;default:0" json:"progress"`
	Status             Status     `gorm:"type:varchar(30);not null;index" json:"status"`
	SubmissionComments string     `gorm:"type:text" json:"submission_comments,omitempty"`
	ApprovalRating     *int       `json:"approval_rating,omitempty"`
	ApprovalComments   string     `gorm:"type:text" json:"approval_comments,omitempty"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (g *Goal) IsSelf() bool {
	return g.Origin == OriginSelf
}

func (g *Goal) isOwner(a actor.Actor) bool {
	return g.OwnerID == a.ID
}

func (g *Goal) isAssignee(a actor.Actor) bool {
	return g.AssigneeID != nil && *g.AssigneeID == a.ID
}

// isAssigner is true for the actor who handed an assigned goal down.
func (g *Goal) isAssigner(a actor.Actor) bool {
	return g.Origin == OriginAssigned && g.CreatedByID == a.ID
}

// isApprover is true for the recorded approver. A self goal with no approver
// (the owner has no manager on record) is reviewed by any HR actor other than
// the owner.
func (g *Goal) isApprover(a actor.Actor) bool {
	if g.ApproverID != nil {
		return *g.ApproverID == a.ID
	}
	return g.routedToHR() && a.Role == actor.RoleHR && !g.isOwner(a)
}

func (g *Goal) routedToHR() bool {
	return g.IsSelf() && g.ApproverID == nil
}

// involves reports whether a has any relationship with the goal.
func (g *Goal) involves(a actor.Actor) bool {
	return g.isOwner(a) || g.isAssignee(a) || g.isApprover(a) || g.CreatedByID == a.ID
}

// preserveImmutable copies the fields that never change after creation from
// before onto after, so a store mutation cannot rewrite them.
func preserveImmutable(before, after *Goal) {
	after.ID = before.ID
	after.CycleID = before.CycleID
	after.OwnerID = before.OwnerID
	after.CreatedByID = before.CreatedByID
	after.CreatedByRole = before.CreatedByRole
	after.Origin = before.Origin
	after.AssigneeID = before.AssigneeID
	after.CreatedAt = before.CreatedAt
}

func (g *Goal) clone() *Goal {
	c := *g
	if g.AssigneeID != nil {
		id := *g.AssigneeID
		c.AssigneeID = &id
	}
	if g.ApproverID != nil {
		id := *g.ApproverID
		c.ApproverID = &id
	}
	if g.ApprovalRating != nil {
		r := *g.ApprovalRating
		c.ApprovalRating = &r
	}
	if g.ApprovedAt != nil {
		t := *g.ApprovedAt
		c.ApprovedAt = &t
	}
	return &c
}
