package client

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/takdanai-ph/taskboard/domain"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestCredStore(t *testing.T) {
	store, err := OpenCredStore(filepath.Join(t.TempDir(), "creds.db"))
	require.NoError(t, err)
	defer store.Close()

	value, err := store.Get("missing")
	require.NoError(t, err)
	assert.Equal(t, "", value)

	require.NoError(t, store.Set("token", "abc"))
	require.NoError(t, store.Set("token", "def"))

	value, err = store.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "def", value)

	require.NoError(t, store.Clear())
	value, err = store.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestSessionPersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.db")

	store, err := OpenCredStore(path)
	require.NoError(t, err)

	session, err := NewSession(store, testLogger())
	require.NoError(t, err)
	require.NoError(t, session.set("token-123", domain.MANAGER, "user-1"))
	require.NoError(t, store.Close())

	// A fresh session over the same store picks the credentials back up.
	store, err = OpenCredStore(path)
	require.NoError(t, err)
	defer store.Close()

	restored, err := NewSession(store, testLogger())
	require.NoError(t, err)

	state := restored.Current()
	assert.True(t, state.Authenticated())
	assert.Equal(t, "token-123", state.Token)
	assert.Equal(t, domain.MANAGER, state.Role)
	assert.Equal(t, "user-1", state.UserId)
}

func TestSessionClearIsIdempotent(t *testing.T) {
	store, err := OpenCredStore(filepath.Join(t.TempDir(), "creds.db"))
	require.NoError(t, err)
	defer store.Close()

	session, err := NewSession(store, testLogger())
	require.NoError(t, err)
	require.NoError(t, session.set("token-123", domain.USER, "user-1"))

	session.Clear()
	session.Clear()

	assert.False(t, session.Current().Authenticated())

	token, err := store.Get(credKeyToken)
	require.NoError(t, err)
	assert.Equal(t, "", token)
}

func TestSessionOnUnauthorizedClears(t *testing.T) {
	session, err := NewSession(nil, testLogger())
	require.NoError(t, err)
	require.NoError(t, session.set("token-123", domain.ADMIN, "user-1"))

	session.OnUnauthorized()
	assert.False(t, session.Current().Authenticated())
}

func TestSessionWithoutStoreIsInMemory(t *testing.T) {
	session, err := NewSession(nil, testLogger())
	require.NoError(t, err)
	assert.False(t, session.Current().Authenticated())

	require.NoError(t, session.set("token-123", domain.USER, "user-1"))
	assert.True(t, session.Current().Authenticated())
}
