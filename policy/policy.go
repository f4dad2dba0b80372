// Package policy is the single place role rules are encoded. Every function
// is pure; route guards, the API client and the server handlers all consult
// the same tables.
package policy

import (
	"github.com/takdanai-ph/taskboard/domain"
)

// RouteTag classifies a protected view or endpoint group.
type RouteTag int

const (
	AnyAuthenticated RouteTag = iota + 1
	AdminOrManager
	AdminOnly
)

func (t RouteTag) String() string {
	return [...]string{"AnyAuthenticated", "AdminOrManager", "AdminOnly"}[t-1]
}

func isManagerial(role domain.Role) bool {
	return role == domain.ADMIN || role == domain.MANAGER
}

// CanAccessRoute decides whether a role may enter a route with the given tag.
// Token presence is checked by the caller; this only answers the role part.
func CanAccessRoute(role domain.Role, tag RouteTag) bool {
	switch tag {
	case AnyAuthenticated:
		return true
	case AdminOrManager:
		return isManagerial(role)
	case AdminOnly:
		return role == domain.ADMIN
	default:
		return false
	}
}

type TaskField string

const (
	FieldTitle       TaskField = "title"
	FieldDescription TaskField = "description"
	FieldDueDate     TaskField = "dueDate"
	FieldStatus      TaskField = "status"
	FieldTags        TaskField = "tags"
	FieldAssignee    TaskField = "assigneeId"
	FieldTeam        TaskField = "teamId"
)

var allTaskFields = []TaskField{
	FieldTitle, FieldDescription, FieldDueDate, FieldStatus,
	FieldTags, FieldAssignee, FieldTeam,
}

// MutableTaskFields returns the set of task fields the role may submit.
// A User editing an existing task may only touch its status; a User creating
// a task is rejected outright.
func MutableTaskFields(role domain.Role, isEditMode bool) ([]TaskField, error) {
	if isManagerial(role) {
		return allTaskFields, nil
	}
	if !isEditMode {
		return nil, domain.ErrForbidden()
	}
	return []TaskField{FieldStatus}, nil
}

func CanCreateTask(role domain.Role) bool {
	return isManagerial(role)
}

func CanDeleteTask(role domain.Role) bool {
	return isManagerial(role)
}

func CanApproveCompletion(role domain.Role) bool {
	return isManagerial(role)
}

func CanManageTeams(role domain.Role) bool {
	return isManagerial(role)
}

// CanManageUsers covers user account administration, which is Admin only.
func CanManageUsers(role domain.Role) bool {
	return role == domain.ADMIN
}
