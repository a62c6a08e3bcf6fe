package store

import (
	"go.uber.org/zap"

	"ideaboard-core/internal/domain"
	"ideaboard-core/pkg/observability"
)

// SessionStore owns the authenticated session. The session lifecycle manager
// is its sole writer; every other component only reads it.
type SessionStore struct {
	*container[domain.Session]
}

// NewSessionStore creates a logged-out session store.
func NewSessionStore(logger *zap.Logger, metrics *observability.Collector) *SessionStore {
	return &SessionStore{newContainer("session", domain.Session{}, domain.Session.Clone, logger, metrics)}
}

// Login writes the token pair and user in one mutation, so subscribers can
// never observe a user without tokens or the reverse.
func (s *SessionStore) Login(user domain.User, tokens domain.TokenPair) {
	s.update("login", func(st *domain.Session) {
		u := user
		st.User = &u
		st.AccessToken = tokens.AccessToken
		st.RefreshToken = tokens.RefreshToken
	})
}

// Logout clears the session back to the zero (logged-out) state.
func (s *SessionStore) Logout() {
	s.update("logout", func(st *domain.Session) {
		*st = domain.Session{}
	})
}

// ReplaceAccessToken swaps only the access token, leaving the refresh token
// and user identity untouched. Used after a successful refresh.
func (s *SessionStore) ReplaceAccessToken(token string) {
	s.update("replace_access_token", func(st *domain.Session) {
		st.AccessToken = token
	})
}

// SetUser replaces the user profile, keeping the tokens. Used for profile
// edits such as a display-name change.
func (s *SessionStore) SetUser(user domain.User) {
	s.update("set_user", func(st *domain.Session) {
		u := user
		st.User = &u
	})
}

// AccessToken returns the current access token for request authorization.
func (s *SessionStore) AccessToken() (string, bool) {
	var token string
	s.read(func(st domain.Session) {
		token = st.AccessToken
	})
	return token, token != ""
}
