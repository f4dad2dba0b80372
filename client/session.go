package client

import (
	"sync"

	"github.com/takdanai-ph/taskboard/domain"

	"github.com/charmbracelet/log"
)

const (
	credKeyToken  = "token"
	credKeyRole   = "userRole"
	credKeyUserId = "userId"
)

// SessionState is a snapshot of who is acting. A zero token means
// unauthenticated; callers must not trust Role or UserId in that case.
type SessionState struct {
	Token  string
	Role   domain.Role
	UserId string
}

func (s SessionState) Authenticated() bool {
	return s.Token != ""
}

// Session is the single owner of the current credentials. Only LogIn, Logout
// and the unauthorized handler mutate it; everything else reads snapshots.
type Session struct {
	mu     sync.RWMutex
	state  SessionState
	store  *CredStore
	logger *log.Logger
}

// NewSession restores any persisted credentials from the store. A nil store
// yields a purely in-memory session.
func NewSession(store *CredStore, logger *log.Logger) (*Session, error) {
	s := &Session{store: store, logger: logger}
	if store == nil {
		return s, nil
	}

	token, err := store.Get(credKeyToken)
	if err != nil {
		return nil, err
	}
	role, err := store.Get(credKeyRole)
	if err != nil {
		return nil, err
	}
	userId, err := store.Get(credKeyUserId)
	if err != nil {
		return nil, err
	}

	if token != "" {
		s.state = SessionState{Token: token, Role: domain.Role(role), UserId: userId}
	}
	return s, nil
}

func (s *Session) Current() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) set(token string, role domain.Role, userId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = SessionState{Token: token, Role: role, UserId: userId}
	if s.store == nil {
		return nil
	}
	if err := s.store.Set(credKeyToken, token); err != nil {
		return err
	}
	if err := s.store.Set(credKeyRole, role.String()); err != nil {
		return err
	}
	return s.store.Set(credKeyUserId, userId)
}

// Clear wipes the session unconditionally; calling it twice is the same as
// calling it once.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = SessionState{}
	if s.store != nil {
		if err := s.store.Clear(); err != nil {
			s.logger.Error("failed to clear credential store", "err", err)
		}
	}
}

// OnUnauthorized is invoked whenever any call observes a 401. The session is
// cleared so the next guard check redirects to login.
func (s *Session) OnUnauthorized() {
	s.logger.Warn("session rejected by server, clearing credentials")
	s.Clear()
}
