package policy

import (
	"testing"

	"github.com/takdanai-ph/taskboard/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanAccessRoute(t *testing.T) {
	cases := []struct {
		role    domain.Role
		tag     RouteTag
		allowed bool
	}{
		{domain.USER, AnyAuthenticated, true},
		{domain.MANAGER, AnyAuthenticated, true},
		{domain.ADMIN, AnyAuthenticated, true},
		{domain.USER, AdminOrManager, false},
		{domain.MANAGER, AdminOrManager, true},
		{domain.ADMIN, AdminOrManager, true},
		{domain.USER, AdminOnly, false},
		{domain.MANAGER, AdminOnly, false},
		{domain.ADMIN, AdminOnly, true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanAccessRoute(tc.role, tc.tag),
			"role=%s tag=%s", tc.role, tc.tag)
	}
}

func TestCanAccessRouteIsDeterministic(t *testing.T) {
	for _, role := range []domain.Role{domain.USER, domain.MANAGER, domain.ADMIN} {
		for _, tag := range []RouteTag{AnyAuthenticated, AdminOrManager, AdminOnly} {
			first := CanAccessRoute(role, tag)
			for i := 0; i < 3; i++ {
				assert.Equal(t, first, CanAccessRoute(role, tag))
			}
		}
	}
}

func TestMutableTaskFields(t *testing.T) {
	t.Run("manager and admin may touch everything", func(t *testing.T) {
		for _, role := range []domain.Role{domain.MANAGER, domain.ADMIN} {
			for _, edit := range []bool{true, false} {
				fields, err := MutableTaskFields(role, edit)
				require.NoError(t, err)
				assert.Len(t, fields, 7)
			}
		}
	})

	t.Run("user editing may only touch status", func(t *testing.T) {
		fields, err := MutableTaskFields(domain.USER, true)
		require.NoError(t, err)
		require.Len(t, fields, 1)
		assert.Equal(t, FieldStatus, fields[0])
	})

	t.Run("user creating is forbidden", func(t *testing.T) {
		_, err := MutableTaskFields(domain.USER, false)
		assert.ErrorIs(t, err, domain.ErrForbidden())
	})
}

func TestTaskAdminActions(t *testing.T) {
	assert.False(t, CanCreateTask(domain.USER))
	assert.False(t, CanDeleteTask(domain.USER))
	assert.False(t, CanApproveCompletion(domain.USER))
	assert.False(t, CanManageTeams(domain.USER))

	for _, role := range []domain.Role{domain.MANAGER, domain.ADMIN} {
		assert.True(t, CanCreateTask(role))
		assert.True(t, CanDeleteTask(role))
		assert.True(t, CanApproveCompletion(role))
		assert.True(t, CanManageTeams(role))
	}
}

func TestCanManageUsersIsAdminOnly(t *testing.T) {
	assert.True(t, CanManageUsers(domain.ADMIN))
	assert.False(t, CanManageUsers(domain.MANAGER))
	assert.False(t, CanManageUsers(domain.USER))
}
