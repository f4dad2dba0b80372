package client

import (
	"testing"

	"github.com/takdanai-ph/taskboard/domain"
	"github.com/takdanai-ph/taskboard/policy"

	"github.com/stretchr/testify/assert"
)

func TestGuard(t *testing.T) {
	cases := []struct {
		name    string
		state   SessionState
		tag     policy.RouteTag
		outcome Outcome
	}{
		{"no token goes to login", SessionState{}, policy.AnyAuthenticated, RedirectToLogin},
		{"no token even for admin routes", SessionState{}, policy.AdminOnly, RedirectToLogin},
		{"user renders plain routes", SessionState{Token: "t", Role: domain.USER}, policy.AnyAuthenticated, Render},
		{"user bounced off managerial routes", SessionState{Token: "t", Role: domain.USER}, policy.AdminOrManager, RedirectToHome},
		{"user bounced off admin routes", SessionState{Token: "t", Role: domain.USER}, policy.AdminOnly, RedirectToHome},
		{"manager renders managerial routes", SessionState{Token: "t", Role: domain.MANAGER}, policy.AdminOrManager, Render},
		{"manager bounced off admin routes", SessionState{Token: "t", Role: domain.MANAGER}, policy.AdminOnly, RedirectToHome},
		{"admin renders everything", SessionState{Token: "t", Role: domain.ADMIN}, policy.AdminOnly, Render},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.outcome, Guard(tc.state, tc.tag))
		})
	}
}

func TestGuardIsPure(t *testing.T) {
	state := SessionState{Token: "t", Role: domain.MANAGER, UserId: "abc"}
	for i := 0; i < 5; i++ {
		assert.Equal(t, Render, Guard(state, policy.AdminOrManager))
	}
	assert.Equal(t, SessionState{Token: "t", Role: domain.MANAGER, UserId: "abc"}, state)
}
