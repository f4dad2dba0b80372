package client

import (
	"github.com/takdanai-ph/taskboard/policy"
)

// Outcome is a route guard decision.
type Outcome int

const (
	Render Outcome = iota + 1
	RedirectToLogin
	RedirectToHome
)

func (o Outcome) String() string {
	return [...]string{"Render", "RedirectToLogin", "RedirectToHome"}[o-1]
}

// Guard decides what to do with a navigation to a view tagged tag. It is a
// pure function of the session snapshot and the tag: no token sends the user
// to login, a role mismatch sends them home, anything else renders.
func Guard(state SessionState, tag policy.RouteTag) Outcome {
	if !state.Authenticated() {
		return RedirectToLogin
	}
	if !policy.CanAccessRoute(state.Role, tag) {
		return RedirectToHome
	}
	return Render
}
