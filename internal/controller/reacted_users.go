package controller

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"ideaboard-core/internal/domain"
	"ideaboard-core/internal/repository"
)

// RosterState is the reacted-user roster as the screen renders it.
type RosterState struct {
	Users         []domain.ReactedUser
	IsLoading     bool
	IsLoadingMore bool
	HasMore       bool
	Total         int
}

// ReactedUsersController pages through the roster of users who reacted to a
// node. LoadUsers restarts the sequence; LoadMore appends the next cursor
// page and is a no-op while a load is in flight or when the list is
// exhausted. Switching node or reaction kind restarts from an empty list.
type ReactedUsersController struct {
	repo     repository.ReactionRepository
	pageSize int
	logger   *zap.Logger

	mu            sync.Mutex
	epoch         uint64
	nodeID        string
	kind          domain.ReactionKind
	users         []domain.ReactedUser
	cursor        string
	hasMore       bool
	total         int
	isLoading     bool
	isLoadingMore bool
}

// NewReactedUsersController creates the roster controller with a fixed page
// size.
func NewReactedUsersController(repo repository.ReactionRepository, pageSize int, logger *zap.Logger) *ReactedUsersController {
	if pageSize <= 0 || pageSize > repository.MaxPageSize {
		pageSize = repository.DefaultPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReactedUsersController{repo: repo, pageSize: pageSize, logger: logger}
}

// State returns a snapshot of the roster.
func (c *ReactedUsersController) State() RosterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return RosterState{
		Users:         append([]domain.ReactedUser(nil), c.users...),
		IsLoading:     c.isLoading,
		IsLoadingMore: c.isLoadingMore,
		HasMore:       c.hasMore,
		Total:         c.total,
	}
}

// LoadUsers resets cursor state and fetches the first page for the given
// node and reaction kind. It supersedes any load still in flight: a stale
// response arriving afterwards is discarded.
func (c *ReactedUsersController) LoadUsers(ctx context.Context, nodeID string, kind domain.ReactionKind) error {
	c.mu.Lock()
	c.epoch++
	epoch := c.epoch
	c.nodeID = nodeID
	c.kind = kind
	c.users = nil
	c.cursor = ""
	c.hasMore = false
	c.total = 0
	c.isLoading = true
	c.isLoadingMore = false
	c.mu.Unlock()

	page, err := c.repo.ListReactedUsers(ctx, nodeID, kind, repository.NewPageRequest(c.pageSize, ""))

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		c.logger.Debug("Dropping stale roster page",
			zap.String("node_id", nodeID), zap.String("kind", string(kind)))
		return nil
	}
	c.isLoading = false
	if err != nil {
		return err
	}

	c.users = append([]domain.ReactedUser(nil), page.Users...)
	c.cursor = page.NextCursor
	c.hasMore = page.HasMore
	c.total = page.Total
	return nil
}

// LoadMore fetches the next page using the stored cursor and appends the
// results, never replacing what is already shown. It does nothing while a
// load is in flight or once HasMore is false.
func (c *ReactedUsersController) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.isLoading || c.isLoadingMore || !c.hasMore {
		c.mu.Unlock()
		return nil
	}
	c.isLoadingMore = true
	epoch := c.epoch
	nodeID, kind, cursor := c.nodeID, c.kind, c.cursor
	c.mu.Unlock()

	page, err := c.repo.ListReactedUsers(ctx, nodeID, kind, repository.NewPageRequest(c.pageSize, cursor))

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		// A newer LoadUsers restarted the sequence and already owns the
		// loading flags.
		return nil
	}
	c.isLoadingMore = false
	if err != nil {
		return err
	}

	c.users = append(c.users, page.Users...)
	c.cursor = page.NextCursor
	c.hasMore = page.HasMore
	c.total = page.Total
	return nil
}
