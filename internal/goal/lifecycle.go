package goal

import (
	"github.com/saulo-duarte/pms-lambda/internal/actor"
	"github.com/saulo-duarte/pms-lambda/internal/apperror"
)

// Edge is a permitted status change. Self loops (progress updates, edits)
// are listed explicitly so the table is the full set of writes the engine
// can make.
type Edge struct {
	From Status
	To   Status
}

var Edges = []Edge{
	{StatusDraft, StatusDraft},
	{StatusDraft, StatusSubmitted},
	{StatusDraft, StatusArchived},
	{StatusHRAssigned, StatusHRAssigned},
	{StatusHRAssigned, StatusAccepted},
	{StatusManagerAssigned, StatusManagerAssigned},
	{StatusManagerAssigned, StatusAccepted},
	{StatusAccepted, StatusAccepted},
	{StatusAccepted, StatusSubmitted},
	{StatusInProgress, StatusInProgress},
	{StatusInProgress, StatusSubmitted},
	{StatusSubmitted, StatusSubmitted},
	{StatusSubmitted, StatusManagerApproved},
	{StatusSubmitted, StatusHRApproved},
	// send back
	{StatusSubmitted, StatusAccepted},
	{StatusSubmitted, StatusDraft},
}

func IsEdge(from, to Status) bool {
	for _, e := range Edges {
		if e.From == from && e.To == to {
			return true
		}
	}
	return false
}

// acceptorRole is the role expected to accept a goal handed down by an
// assigner of role r.
func acceptorRole(r actor.Role) actor.Role {
	if r == actor.RoleHR {
		return actor.RoleManager
	}
	return actor.RoleEmployee
}

func approvedStatus(r actor.Role) (Status, bool) {
	switch r {
	case actor.RoleManager:
		return StatusManagerApproved, true
	case actor.RoleHR:
		return StatusHRApproved, true
	}
	return "", false
}

// plan decides whether a may perform act on g and returns the resulting
// status. The relationship check runs first: a caller with no standing on
// the goal gets Unauthorized whatever the state, a caller with standing on a
// goal in the wrong state gets InvalidTransition.
func plan(g *Goal, a actor.Actor, act Action) (Status, error) {
	switch act {
	case ActionAccept:
		if !g.isAssignee(a) || a.Role != acceptorRole(g.CreatedByRole) {
			return "", apperror.Unauthorized("only the assignee can accept this goal")
		}
		if !g.Status.isAwaitingAcceptance() {
			return "", apperror.InvalidTransition("cannot accept a goal in status %s", g.Status)
		}
		return StatusAccepted, nil

	case ActionProgress:
		if g.IsSelf() {
			if !g.isOwner(a) {
				return "", apperror.Unauthorized("only the owner can update progress")
			}
			if g.Status.IsTerminal() {
				return "", apperror.InvalidTransition("cannot update progress of a goal in status %s", g.Status)
			}
			return g.Status, nil
		}
		if !g.isAssignee(a) {
			return "", apperror.Unauthorized("only the assignee can update progress")
		}
		if !g.Status.isActive() {
			return "", apperror.InvalidTransition("cannot update progress of a goal in status %s", g.Status)
		}
		return g.Status, nil

	case ActionEdit:
		if g.IsSelf() {
			if !g.isOwner(a) {
				return "", apperror.Unauthorized("only the owner can edit this goal")
			}
			if g.Status != StatusDraft {
				return "", apperror.InvalidTransition("cannot edit a goal in status %s", g.Status)
			}
			return g.Status, nil
		}
		if !g.isAssigner(a) {
			return "", apperror.Unauthorized("only the assigner can edit this goal")
		}
		if !g.Status.isAwaitingAcceptance() {
			return "", apperror.InvalidTransition("cannot edit a goal in status %s", g.Status)
		}
		return g.Status, nil

	case ActionSubmit:
		if g.IsSelf() {
			if !g.isOwner(a) {
				return "", apperror.Unauthorized("only the owner can submit this goal")
			}
			if g.Status != StatusDraft {
				return "", apperror.InvalidTransition("cannot submit a goal in status %s", g.Status)
			}
			return StatusSubmitted, nil
		}
		if !g.isAssignee(a) {
			return "", apperror.Unauthorized("only the assignee can submit this goal")
		}
		if !g.Status.isActive() {
			return "", apperror.InvalidTransition("cannot submit a goal in status %s", g.Status)
		}
		if g.Progress != 100 {
			return "", apperror.InvalidTransition("goal progress is %d%%, must be 100%% to submit", g.Progress)
		}
		return StatusSubmitted, nil

	case ActionArchive:
		if !g.isOwner(a) {
			return "", apperror.Unauthorized("only the owner can archive this goal")
		}
		if !g.IsSelf() || g.Status != StatusDraft {
			return "", apperror.InvalidTransition("cannot archive a goal in status %s", g.Status)
		}
		return StatusArchived, nil

	case ActionApprove:
		if !g.isApprover(a) {
			return "", apperror.Unauthorized("only the approver can approve this goal")
		}
		to, ok := approvedStatus(a.Role)
		if !ok {
			return "", apperror.Unauthorized("role %s cannot approve goals", a.Role)
		}
		if g.Status != StatusSubmitted {
			return "", apperror.InvalidTransition("cannot approve a goal in status %s", g.Status)
		}
		return to, nil

	case ActionReject:
		if !g.isApprover(a) {
			return "", apperror.Unauthorized("only the approver can send this goal back")
		}
		if g.Status != StatusSubmitted {
			return "", apperror.InvalidTransition("cannot send back a goal in status %s", g.Status)
		}
		if g.IsSelf() {
			return StatusDraft, nil
		}
		return StatusAccepted, nil
	}

	return "", apperror.InvalidTransition("unknown action %q", act)
}
