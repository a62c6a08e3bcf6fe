package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ideaboard-core/internal/domain"
	"ideaboard-core/internal/repository"
	"ideaboard-core/internal/repository/mocks"
	"ideaboard-core/internal/store"
	apperrors "ideaboard-core/pkg/errors"
)

func newTestManager(repo repository.AuthRepository) (*Manager, *store.SessionStore, *MemoryVault) {
	sessions := store.NewSessionStore(zap.NewNop(), nil)
	vault := NewMemoryVault()
	return NewManager(repo, sessions, vault, zap.NewNop()), sessions, vault
}

func TestManager_LoginFlow(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := new(mocks.MockAuthRepository)
	manager, sessions, vault := newTestManager(mockRepo)

	assert.Equal(t, StateLoggedOut, manager.State())

	challenge, err := manager.BeginAuthorization()
	require.NoError(t, err)
	assert.Len(t, challenge, 43)
	assert.Equal(t, StateAwaitingAuthorization, manager.State())

	user := &domain.User{ID: "u1", DisplayName: "Dana"}
	tokens := domain.TokenPair{AccessToken: "at1", RefreshToken: "rt1"}
	mockRepo.On("ExchangeCode", ctx, "code-1", mock.AnythingOfType("string")).
		Return(tokens, user, nil)

	// Act
	err = manager.ExchangeCode(ctx, "code-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, manager.State())

	session := sessions.Snapshot()
	assert.Equal(t, "at1", session.AccessToken)
	assert.Equal(t, "rt1", session.RefreshToken)
	require.NotNil(t, session.User)
	assert.Equal(t, "Dana", session.User.DisplayName)

	persisted, err := vault.Load()
	require.NoError(t, err)
	assert.True(t, persisted.Authenticated())

	mockRepo.AssertExpectations(t)
}

func TestManager_ExchangeCodeWithoutAuthorization(t *testing.T) {
	mockRepo := new(mocks.MockAuthRepository)
	manager, sessions, _ := newTestManager(mockRepo)

	err := manager.ExchangeCode(context.Background(), "code-1")

	assert.True(t, apperrors.IsUnauthorized(err))
	assert.False(t, sessions.Snapshot().Authenticated())
	mockRepo.AssertNotCalled(t, "ExchangeCode")
}

func TestManager_RefreshAccessToken(t *testing.T) {
	t.Run("Should fail without a refresh token and not mutate the store", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		manager, sessions, _ := newTestManager(mockRepo)

		before := sessions.Snapshot()
		err := manager.RefreshAccessToken(context.Background())

		assert.True(t, apperrors.IsUnauthorized(err))
		assert.Equal(t, before, sessions.Snapshot())
		mockRepo.AssertNotCalled(t, "RefreshAccessToken")
	})

	t.Run("Should replace only the access token", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(mocks.MockAuthRepository)
		manager, sessions, _ := newTestManager(mockRepo)
		sessions.Login(domain.User{ID: "u1", DisplayName: "Dana"},
			domain.TokenPair{AccessToken: "at1", RefreshToken: "rt1"})

		mockRepo.On("RefreshAccessToken", ctx, "rt1").Return("at2", nil)

		err := manager.RefreshAccessToken(ctx)

		require.NoError(t, err)
		session := sessions.Snapshot()
		assert.Equal(t, "at2", session.AccessToken)
		assert.Equal(t, "rt1", session.RefreshToken)
		assert.Equal(t, "u1", session.User.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should surface a rejected refresh without forcing logout", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(mocks.MockAuthRepository)
		manager, sessions, _ := newTestManager(mockRepo)
		sessions.Login(domain.User{ID: "u1"}, domain.TokenPair{AccessToken: "at1", RefreshToken: "rt1"})

		mockRepo.On("RefreshAccessToken", ctx, "rt1").
			Return("", apperrors.NewUnauthorizedError("refresh token revoked"))

		err := manager.RefreshAccessToken(ctx)

		assert.True(t, apperrors.IsUnauthorized(err))
		// The manager does not force re-authentication; the caller decides.
		assert.True(t, sessions.Snapshot().Authenticated())
	})
}

// gateAuthRepo blocks refresh calls until released so concurrent callers
// pile up on the in-flight request.
type gateAuthRepo struct {
	mocks.MockAuthRepository
	gate  chan struct{}
	calls atomic.Int32
}

func (g *gateAuthRepo) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	g.calls.Add(1)
	<-g.gate
	return "at2", nil
}

func TestManager_RefreshIsDeduplicated(t *testing.T) {
	repo := &gateAuthRepo{gate: make(chan struct{})}
	manager, sessions, _ := newTestManager(repo)
	sessions.Login(domain.User{ID: "u1"}, domain.TokenPair{AccessToken: "at1", RefreshToken: "rt1"})

	const callers = 5
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = manager.RefreshAccessToken(context.Background())
		}(i)
	}

	// Give the goroutines time to join the in-flight call, then release it.
	time.Sleep(50 * time.Millisecond)
	close(repo.gate)
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "caller %d", i)
	}
	assert.Equal(t, int32(1), repo.calls.Load(), "expected one network refresh")
	assert.Equal(t, "at2", sessions.Snapshot().AccessToken)
}

func TestManager_Logout(t *testing.T) {
	t.Run("Should clear local state even when remote logout fails", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(mocks.MockAuthRepository)
		manager, sessions, vault := newTestManager(mockRepo)
		sessions.Login(domain.User{ID: "u1"}, domain.TokenPair{AccessToken: "at1", RefreshToken: "rt1"})
		require.NoError(t, vault.Save(sessions.Snapshot()))

		remoteErr := errors.New("backend unreachable")
		mockRepo.On("Logout", ctx).Return(remoteErr)

		err := manager.Logout(ctx)

		assert.Error(t, err)
		assert.False(t, sessions.Snapshot().Authenticated())
		assert.Equal(t, StateLoggedOut, manager.State())

		persisted, loadErr := vault.Load()
		require.NoError(t, loadErr)
		assert.False(t, persisted.Authenticated())
	})

	t.Run("Should skip the remote call when logged out", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		manager, _, _ := newTestManager(mockRepo)

		assert.NoError(t, manager.Logout(context.Background()))
		mockRepo.AssertNotCalled(t, "Logout")
	})
}

func TestManager_UpdateDisplayName(t *testing.T) {
	t.Run("Should restore the prior profile on failure", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(mocks.MockAuthRepository)
		manager, sessions, _ := newTestManager(mockRepo)
		sessions.Login(domain.User{ID: "u1", DisplayName: "Dana"},
			domain.TokenPair{AccessToken: "at1", RefreshToken: "rt1"})

		var observed []string
		cancel := sessions.Subscribe(func(s domain.Session) {
			if s.User != nil {
				observed = append(observed, s.User.DisplayName)
			}
		})
		defer cancel()

		mockRepo.On("UpdateDisplayName", ctx, "Dee").
			Return(nil, apperrors.NewNetworkError("request failed", nil))

		err := manager.UpdateDisplayName(ctx, "Dee")

		assert.True(t, apperrors.IsNetwork(err))
		assert.Equal(t, "Dana", sessions.Snapshot().User.DisplayName)
		// Optimistic write first, compensating restore second.
		assert.Equal(t, []string{"Dee", "Dana"}, observed)
	})
}

func TestManager_Restore(t *testing.T) {
	mockRepo := new(mocks.MockAuthRepository)
	manager, sessions, vault := newTestManager(mockRepo)

	require.NoError(t, vault.Save(domain.Session{
		AccessToken:  "at1",
		RefreshToken: "rt1",
		User:         &domain.User{ID: "u1", DisplayName: "Dana"},
	}))

	require.NoError(t, manager.Restore())
	assert.Equal(t, StateAuthenticated, manager.State())
	assert.Equal(t, "at1", sessions.Snapshot().AccessToken)
}

func TestManager_TokenExpiry(t *testing.T) {
	mockRepo := new(mocks.MockAuthRepository)
	manager, sessions, _ := newTestManager(mockRepo)

	exp := time.Now().Add(2 * time.Minute).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	sessions.Login(domain.User{ID: "u1"}, domain.TokenPair{AccessToken: signed, RefreshToken: "rt1"})

	got, err := manager.TokenExpiresAt()
	require.NoError(t, err)
	assert.True(t, got.Equal(exp))

	assert.False(t, manager.NeedsRefresh(time.Minute))
	assert.True(t, manager.NeedsRefresh(5*time.Minute))
}
