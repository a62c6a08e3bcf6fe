// Package controller holds the per-screen orchestration units. Controllers
// subscribe to store state, issue repository calls, and apply optimistic
// mutations with compensating rollbacks. They hold only transient,
// screen-local state; canonical collections live in the stores.
package controller

import (
	"context"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"ideaboard-core/internal/domain"
	"ideaboard-core/internal/repository"
	"ideaboard-core/internal/store"
	apperrors "ideaboard-core/pkg/errors"
)

// HomeController orchestrates the home feed: loading the node collection,
// switching tabs and sort order, and creating or deleting nodes.
type HomeController struct {
	nodes    *store.NodeStore
	repo     repository.NodeRepository
	validate *validator.Validate
	logger   *zap.Logger

	// epoch detects stale feed responses: a reload supersedes any load still
	// in flight, whose result is then discarded instead of overwriting
	// fresher state.
	epoch atomic.Uint64
}

// NewHomeController creates the home feed controller.
func NewHomeController(nodes *store.NodeStore, repo repository.NodeRepository, logger *zap.Logger) *HomeController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HomeController{
		nodes:    nodes,
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

// LoadNodes reloads the feed. A response that resolves after a newer
// LoadNodes call is dropped.
func (c *HomeController) LoadNodes(ctx context.Context) error {
	epoch := c.epoch.Add(1)

	nodes, err := c.repo.ListNodes(ctx)
	if err != nil {
		return err
	}

	if c.epoch.Load() != epoch {
		c.logger.Debug("Dropping stale feed response", zap.Uint64("epoch", epoch))
		return nil
	}

	c.nodes.ReplaceAll(nodes)
	return nil
}

// SetTab switches the feed tab. Pure store projection, no network call.
func (c *HomeController) SetTab(tab store.HomeTab) {
	c.nodes.SetTab(tab)
}

// SetSortOrder switches the feed sort order. Pure store projection.
func (c *HomeController) SetSortOrder(order store.SortOrder) {
	c.nodes.SetSortOrder(order)
}

// CreateNode validates and posts a new node, then adds the server's copy
// (with its assigned id) to the store.
func (c *HomeController) CreateNode(ctx context.Context, draft domain.NodeDraft) (*domain.Node, error) {
	if err := c.validate.Struct(draft); err != nil {
		return nil, apperrors.NewValidationError("invalid node draft").WithCause(err)
	}

	node, err := c.repo.CreateNode(ctx, draft)
	if err != nil {
		return nil, err
	}

	c.nodes.Add(*node)
	return node, nil
}

// CreateDerivedIdea posts a new idea citing an existing node as inspiration.
// The parent reference is snapshotted from the store at creation time and
// immutable afterwards.
func (c *HomeController) CreateDerivedIdea(ctx context.Context, parentID string, draft domain.NodeDraft) (*domain.Node, error) {
	var parent *domain.Node
	for _, n := range c.nodes.Snapshot().Nodes {
		if n.ID == parentID {
			p := n.Clone()
			parent = &p
			break
		}
	}
	if parent == nil {
		return nil, apperrors.NewNotFoundError("parent node")
	}

	draft.Type = domain.NodeTypeIdea
	draft.Parent = parent.ParentSnapshot()
	return c.CreateNode(ctx, draft)
}

// DeleteNode removes a node, dropping it from the store only after the
// server confirms the delete.
func (c *HomeController) DeleteNode(ctx context.Context, id string) error {
	if err := c.repo.DeleteNode(ctx, id); err != nil {
		return err
	}
	c.nodes.Remove(id)
	return nil
}
