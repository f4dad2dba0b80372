package services

import (
	"testing"
	"time"

	"github.com/takdanai-ph/taskboard/domain"
	"github.com/takdanai-ph/taskboard/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, domain.User) {
	t.Helper()
	users := repositories.NewUserInMem()
	hash, err := HashPassword("hunter2!")
	require.NoError(t, err)
	user, err := users.Insert(domain.User{
		Username: "alice",
		Password: hash,
		Email:    "alice@example.com",
		Role:     domain.ADMIN,
	})
	require.NoError(t, err)
	return NewAuthService(users, "test-secret"), user
}

func TestLogIn(t *testing.T) {
	svc, seeded := newAuthService(t)

	token, user, err := svc.LogIn("alice", "hunter2!")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, seeded.Id, user.Id)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, seeded.Id.Hex(), claims.UserId)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "Admin", claims.Role)
	assert.Greater(t, claims.Exp, time.Now().Unix())
}

// Unknown users and wrong passwords are indistinguishable to the caller.
func TestLogInFailures(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, err := svc.LogIn("alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials())

	_, _, err = svc.LogIn("nobody", "hunter2!")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials())
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken())

	// Tokens signed with another secret are refused too.
	other := NewAuthService(repositories.NewUserInMem(), "other-secret")
	token, _, err := svc.LogIn("alice", "hunter2!")
	require.NoError(t, err)
	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken())
}

func TestResolveUser(t *testing.T) {
	svc, seeded := newAuthService(t)

	token, _, err := svc.LogIn("alice", "hunter2!")
	require.NoError(t, err)

	user, err := svc.ResolveUser(token)
	require.NoError(t, err)
	assert.Equal(t, seeded.Id, user.Id)
}

func TestPasswordReset(t *testing.T) {
	svc, _ := newAuthService(t)

	token, err := svc.ForgotPassword("alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, err = svc.ForgotPassword("nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound())

	require.NoError(t, svc.ResetPassword(token, "new-password"))

	_, _, err = svc.LogIn("alice", "hunter2!")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials())
	_, _, err = svc.LogIn("alice", "new-password")
	assert.NoError(t, err)

	// The token is single use.
	assert.ErrorIs(t, svc.ResetPassword(token, "again"), domain.ErrResetTokenExpired())
	assert.ErrorIs(t, svc.ResetPassword("bogus", "again"), domain.ErrResetTokenExpired())
}

func TestResetPasswordRequiresPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	assert.True(t, domain.IsValidation(svc.ResetPassword("whatever", "")))
}
