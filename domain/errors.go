package domain

import (
	"errors"
	"fmt"
)

var (
	errInvalidCredentials   error = errors.New("incorrect username or password")
	errInvalidToken         error = errors.New("token invalid")
	errUnauthorized         error = errors.New("unauthorized")
	errForbidden            error = errors.New("forbidden")
	errUserNotFound         error = errors.New("user not found")
	errTaskNotFound         error = errors.New("task not found")
	errTeamNotFound         error = errors.New("team not found")
	errNotificationNotFound error = errors.New("notification not found")
	errUserAlreadyExists    error = errors.New("user with the given username already exists")
	errTeamAlreadyExists    error = errors.New("team with the given name already exists")
	errInvalidTransition    error = errors.New("task is not in a state that allows this transition")
	errResetTokenExpired    error = errors.New("reset token has expired or is invalid")
	errValidation           error = errors.New("validation failed")
	errNetworkFailure       error = errors.New("network failure")
	errNotFound             error = errors.New("not found")
	errConflict             error = errors.New("conflict")
)

// ErrNotFound and ErrConflict are the generic forms used by the API client,
// which cannot always tell which entity a 404 or 409 was about.
func ErrNotFound() error {
	return errNotFound
}

func ErrConflict() error {
	return errConflict
}

func ErrInvalidCredentials() error {
	return errInvalidCredentials
}

func ErrInvalidToken() error {
	return errInvalidToken
}

func ErrUnauthorized() error {
	return errUnauthorized
}

func ErrForbidden() error {
	return errForbidden
}

func ErrUserNotFound() error {
	return errUserNotFound
}

func ErrTaskNotFound() error {
	return errTaskNotFound
}

func ErrTeamNotFound() error {
	return errTeamNotFound
}

func ErrNotificationNotFound() error {
	return errNotificationNotFound
}

func ErrUserAlreadyExists() error {
	return errUserAlreadyExists
}

func ErrTeamAlreadyExists() error {
	return errTeamAlreadyExists
}

func ErrInvalidTransition() error {
	return errInvalidTransition
}

func ErrResetTokenExpired() error {
	return errResetTokenExpired
}

// ErrValidation wraps the validation sentinel so callers can match with
// errors.Is while still carrying a reason.
func ErrValidation(msg string) error {
	return fmt.Errorf("%w: %s", errValidation, msg)
}

func IsValidation(err error) bool {
	return errors.Is(err, errValidation)
}

func ErrNetworkFailure() error {
	return errNetworkFailure
}
