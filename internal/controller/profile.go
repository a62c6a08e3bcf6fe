package controller

import (
	"context"

	"go.uber.org/zap"

	"ideaboard-core/internal/domain"
	"ideaboard-core/internal/session"
	"ideaboard-core/internal/store"
)

// ProfileController orchestrates the profile screen. All session mutations go
// through the session manager, which stays the session store's sole writer;
// this controller only adds the screen-facing read surface.
type ProfileController struct {
	manager  *session.Manager
	sessions *store.SessionStore
	logger   *zap.Logger
}

// NewProfileController creates the profile screen controller.
func NewProfileController(manager *session.Manager, sessions *store.SessionStore, logger *zap.Logger) *ProfileController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileController{manager: manager, sessions: sessions, logger: logger}
}

// CurrentUser returns the signed-in user, if any.
func (c *ProfileController) CurrentUser() (domain.User, bool) {
	s := c.sessions.Snapshot()
	if !s.Authenticated() {
		return domain.User{}, false
	}
	return *s.User, true
}

// Reload refreshes the profile from the backend.
func (c *ProfileController) Reload(ctx context.Context) error {
	return c.manager.FetchCurrentUser(ctx)
}

// Rename changes the display name optimistically; the prior profile is
// restored when the call fails.
func (c *ProfileController) Rename(ctx context.Context, name string) error {
	return c.manager.UpdateDisplayName(ctx, name)
}

// SignOut ends the session. Local state is cleared even when the remote
// call fails; the remote error is returned for display.
func (c *ProfileController) SignOut(ctx context.Context) error {
	return c.manager.Logout(ctx)
}
