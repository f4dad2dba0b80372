// Package workflow defines the task status state machine: which transitions
// exist, and which actor may trigger each one. It never talks to storage;
// services feed it the current state and persist whatever it returns.
package workflow

import (
	"github.com/takdanai-ph/taskboard/domain"
	"github.com/takdanai-ph/taskboard/policy"
)

// State is a task's position in the lifecycle. AwaitingApproval may only be
// set while the status is Completed.
type State struct {
	Status           domain.Status
	AwaitingApproval bool
}

func (s State) Valid() bool {
	return !s.AwaitingApproval || s.Status == domain.COMPLETED
}

// Initial is the state of every freshly created task.
func Initial() State {
	return State{Status: domain.PENDING}
}

// Actor identifies who is requesting a transition.
type Actor struct {
	UserId string
	Role   domain.Role
}

func (a Actor) isManagerial() bool {
	return a.Role == domain.ADMIN || a.Role == domain.MANAGER
}

type Action int

const (
	StartWork Action = iota + 1
	MarkComplete
	Approve
	Reject
	Edit
)

func (a Action) String() string {
	return [...]string{"StartWork", "MarkComplete", "Approve", "Reject", "Edit"}[a-1]
}

// Next computes the state after action is applied by actor to a task whose
// assignee is assigneeId (empty if unassigned).
//
// A disallowed actor gets ErrForbidden before anything else; an allowed actor
// applying an action the current state does not permit gets
// ErrInvalidTransition, which handlers surface as a conflict.
func Next(s State, action Action, actor Actor, assigneeId string) (State, error) {
	isAssignee := assigneeId != "" && actor.UserId == assigneeId

	switch action {
	case StartWork:
		if !isAssignee && !actor.isManagerial() {
			return s, domain.ErrForbidden()
		}
		if s.Status != domain.PENDING {
			return s, domain.ErrInvalidTransition()
		}
		return State{Status: domain.IN_PROGRESS}, nil

	case MarkComplete:
		// Managers and admins close tasks directly. An assignee with the
		// User role can only signal completion, which parks the task in
		// the awaiting-approval sub-state until someone reviews it.
		if actor.isManagerial() {
			if s.Status != domain.PENDING && s.Status != domain.IN_PROGRESS {
				return s, domain.ErrInvalidTransition()
			}
			return State{Status: domain.COMPLETED}, nil
		}
		if !isAssignee {
			return s, domain.ErrForbidden()
		}
		if s.Status != domain.IN_PROGRESS {
			return s, domain.ErrInvalidTransition()
		}
		return State{Status: domain.COMPLETED, AwaitingApproval: true}, nil

	case Approve:
		if !policy.CanApproveCompletion(actor.Role) {
			return s, domain.ErrForbidden()
		}
		if !s.AwaitingApproval {
			return s, domain.ErrInvalidTransition()
		}
		return State{Status: domain.COMPLETED}, nil

	case Reject:
		if !policy.CanApproveCompletion(actor.Role) {
			return s, domain.ErrForbidden()
		}
		if !s.AwaitingApproval {
			return s, domain.ErrInvalidTransition()
		}
		// Rejection always resets to Pending, never In Progress.
		return State{Status: domain.PENDING}, nil

	case Edit:
		if !actor.isManagerial() {
			return s, domain.ErrForbidden()
		}
		return s, nil
	}

	return s, domain.ErrInvalidTransition()
}

// NextForStatus maps a requested status value to the transition it implies
// and applies it. This is how PUT /tasks/{id} payloads that just carry a new
// status are interpreted.
func NextForStatus(s State, requested domain.Status, actor Actor, assigneeId string) (State, error) {
	if requested == s.Status {
		return s, nil
	}
	switch requested {
	case domain.IN_PROGRESS:
		return Next(s, StartWork, actor, assigneeId)
	case domain.COMPLETED:
		return Next(s, MarkComplete, actor, assigneeId)
	case domain.PENDING:
		if s.AwaitingApproval {
			return Next(s, Reject, actor, assigneeId)
		}
		return s, domain.ErrInvalidTransition()
	}
	return s, domain.ErrInvalidTransition()
}
