package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"ideaboard-core/internal/domain"
	"ideaboard-core/internal/repository"
	"ideaboard-core/internal/store"
	apperrors "ideaboard-core/pkg/errors"
)

// State is the session lifecycle state.
type State string

const (
	StateLoggedOut             State = "logged_out"
	StateAwaitingAuthorization State = "awaiting_authorization"
	StateAuthenticated         State = "authenticated"
)

// Manager drives the PKCE login flow and token lifecycle, writing results
// into the session store. It is the store's sole writer.
type Manager struct {
	repo   repository.AuthRepository
	store  *store.SessionStore
	vault  Vault
	logger *zap.Logger

	// group deduplicates concurrent refresh calls into one network round-trip.
	group singleflight.Group

	mu       sync.Mutex
	verifier string
}

// NewManager creates a session manager.
func NewManager(repo repository.AuthRepository, sessions *store.SessionStore, vault Vault, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{repo: repo, store: sessions, vault: vault, logger: logger}
}

// State reports the current lifecycle state.
func (m *Manager) State() State {
	if m.store.Snapshot().Authenticated() {
		return StateAuthenticated
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.verifier != "" {
		return StateAwaitingAuthorization
	}
	return StateLoggedOut
}

// Restore loads a previously persisted session from the vault into the
// store, typically at app launch. A vault without a session is not an error.
func (m *Manager) Restore() error {
	session, err := m.vault.Load()
	if err != nil {
		return apperrors.Wrap(err, "failed to load persisted session")
	}
	if !session.Authenticated() {
		return nil
	}
	m.store.Login(*session.User, domain.TokenPair{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	})
	return nil
}

// BeginAuthorization generates a fresh code verifier, retains it for the
// upcoming code exchange, and returns the S256 challenge to send to the
// authorization endpoint. Calling it again replaces any pending verifier.
func (m *Manager) BeginAuthorization() (challenge string, err error) {
	verifier, err := NewVerifier()
	if err != nil {
		return "", apperrors.NewInternalError("failed to start authorization").WithCause(err)
	}

	m.mu.Lock()
	m.verifier = verifier
	m.mu.Unlock()

	m.logger.Debug("Authorization started")
	return ChallengeS256(verifier), nil
}

// ExchangeCode trades the authorization code for a token pair and user
// profile, then writes all three into the session store in one mutation and
// persists them to the vault. The retained verifier is consumed either way.
func (m *Manager) ExchangeCode(ctx context.Context, code string) error {
	m.mu.Lock()
	verifier := m.verifier
	m.verifier = ""
	m.mu.Unlock()

	if verifier == "" {
		return apperrors.NewUnauthorizedError("no authorization in progress")
	}

	tokens, user, err := m.repo.ExchangeCode(ctx, code, verifier)
	if err != nil {
		return err
	}

	m.store.Login(*user, tokens)
	m.persist()

	m.logger.Info("Session established", zap.String("user_id", user.ID))
	return nil
}

// RefreshAccessToken exchanges the stored refresh token for a new access
// token. It fails without mutating the store when no refresh token is held.
// Only the access token is replaced on success; concurrent callers share a
// single network call. Refresh is never triggered automatically: detecting
// expiry and invoking this is the HTTP layer's job.
func (m *Manager) RefreshAccessToken(ctx context.Context) error {
	session := m.store.Snapshot()
	if session.RefreshToken == "" {
		return apperrors.NewUnauthorizedError("no refresh token stored")
	}

	_, err, shared := m.group.Do("refresh", func() (any, error) {
		token, err := m.repo.RefreshAccessToken(ctx, session.RefreshToken)
		if err != nil {
			return nil, err
		}
		m.store.ReplaceAccessToken(token)
		m.persist()
		return nil, nil
	})
	if shared {
		m.logger.Debug("Refresh shared with concurrent caller")
	}
	return err
}

// Logout invalidates the session remotely and always clears local state,
// even when the remote call fails: local state is authoritative for the UI.
// The remote failure, if any, is returned for reporting.
func (m *Manager) Logout(ctx context.Context) error {
	var remoteErr error
	if m.store.Snapshot().Authenticated() {
		remoteErr = m.repo.Logout(ctx)
		if remoteErr != nil {
			m.logger.Warn("Remote logout failed, clearing local session anyway",
				zap.Error(remoteErr))
		}
	}

	m.mu.Lock()
	m.verifier = ""
	m.mu.Unlock()

	m.store.Logout()
	if err := m.vault.Clear(); err != nil {
		m.logger.Error("Failed to clear session vault", zap.Error(err))
	}

	return remoteErr
}

// FetchCurrentUser refreshes the stored user profile from the backend.
func (m *Manager) FetchCurrentUser(ctx context.Context) error {
	if !m.store.Snapshot().Authenticated() {
		return apperrors.NewUnauthorizedError("")
	}
	user, err := m.repo.CurrentUser(ctx)
	if err != nil {
		return err
	}
	m.store.SetUser(*user)
	m.persist()
	return nil
}

// UpdateDisplayName renames the user optimistically: the new name is visible
// immediately, and the exact prior profile is restored when the call fails.
func (m *Manager) UpdateDisplayName(ctx context.Context, name string) error {
	session := m.store.Snapshot()
	if !session.Authenticated() {
		return apperrors.NewUnauthorizedError("")
	}

	prior := *session.User
	optimistic := prior
	optimistic.DisplayName = name
	m.store.SetUser(optimistic)

	user, err := m.repo.UpdateDisplayName(ctx, name)
	if err != nil {
		m.store.SetUser(prior)
		return err
	}

	m.store.SetUser(*user)
	m.persist()
	return nil
}

// TokenExpiresAt reports the access token's exp claim. The token is decoded
// without signature verification: the client is not the token's audience
// validator, it only schedules refreshes.
func (m *Manager) TokenExpiresAt() (time.Time, error) {
	session := m.store.Snapshot()
	if session.AccessToken == "" {
		return time.Time{}, apperrors.NewUnauthorizedError("")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(session.AccessToken, claims); err != nil {
		return time.Time{}, apperrors.NewInternalError("failed to decode access token").WithCause(err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, apperrors.NewInternalError("access token has no expiry")
	}
	return exp.Time, nil
}

// NeedsRefresh reports whether the access token expires within leeway.
func (m *Manager) NeedsRefresh(leeway time.Duration) bool {
	expiresAt, err := m.TokenExpiresAt()
	if err != nil {
		return false
	}
	return time.Until(expiresAt) < leeway
}

// persist writes the current session to the vault. Vault failures are logged
// but never fail the session transition that triggered them.
func (m *Manager) persist() {
	if err := m.vault.Save(m.store.Snapshot()); err != nil {
		m.logger.Error("Failed to persist session", zap.Error(err))
	}
}
