package actor

import "strings"

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
)

var AllRoles = []Role{
	RoleEmployee,
	RoleManager,
	RoleHR,
}

func (r Role) IsValid() bool {
	for _, v := range AllRoles {
		if r == v {
			return true
		}
	}
	return false
}

// ParseRole normalizes a role claim. "admin" is the legacy name for HR.
func ParseRole(s string) (Role, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "admin" {
		return RoleHR, true
	}
	r := Role(s)
	return r, r.IsValid()
}

// CanAssignTo reports whether an assigner with role r may assign goals to
// someone holding the assignee role: manager to employee, hr to manager.
func (r Role) CanAssignTo(assignee Role) bool {
	switch r {
	case RoleManager:
		return assignee == RoleEmployee
	case RoleHR:
		return assignee == RoleManager
	default:
		return false
	}
}
