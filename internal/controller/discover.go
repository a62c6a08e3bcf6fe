package controller

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"ideaboard-core/internal/repository"
	"ideaboard-core/internal/store"
)

// DiscoverController orchestrates tag discovery: popular tags and live
// suggestions for the search box. Each keystroke cancels the previous
// in-flight suggestion lookup so results can never land out of order.
type DiscoverController struct {
	repo     repository.TagRepository
	discover *store.DiscoverStore
	logger   *zap.Logger

	mu         sync.Mutex
	cancelPrev context.CancelFunc
}

// NewDiscoverController creates the discovery controller.
func NewDiscoverController(repo repository.TagRepository, discover *store.DiscoverStore, logger *zap.Logger) *DiscoverController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscoverController{repo: repo, discover: discover, logger: logger}
}

// SetQuery records the query and fetches suggestions for it, cancelling the
// previous lookup. A superseded lookup returns nil: cancellation is the
// expected outcome of typing, not an error the screen should show.
func (c *DiscoverController) SetQuery(ctx context.Context, query string) error {
	c.discover.SetQuery(query)

	c.mu.Lock()
	if c.cancelPrev != nil {
		c.cancelPrev()
		c.cancelPrev = nil
	}
	if query == "" {
		c.mu.Unlock()
		return nil
	}
	lookupCtx, cancel := context.WithCancel(ctx)
	c.cancelPrev = cancel
	c.mu.Unlock()

	tags, err := c.repo.SuggestTags(lookupCtx, query)
	if err != nil {
		if lookupCtx.Err() != nil {
			c.logger.Debug("Suggestion lookup superseded", zap.String("query", query))
			return nil
		}
		return err
	}

	// The store drops results whose query is no longer current.
	c.discover.SetSuggestions(query, tags)
	return nil
}

// LoadPopularTags fetches the popular tag list into the store.
func (c *DiscoverController) LoadPopularTags(ctx context.Context) error {
	tags, err := c.repo.PopularTags(ctx)
	if err != nil {
		return err
	}
	c.discover.SetPopularTags(tags)
	return nil
}
