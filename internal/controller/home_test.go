package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ideaboard-core/internal/domain"
	"ideaboard-core/internal/repository/mocks"
	"ideaboard-core/internal/store"
	apperrors "ideaboard-core/pkg/errors"
)

func TestHomeController_LoadNodes(t *testing.T) {
	ctx := context.Background()
	nodes := store.NewNodeStore(zap.NewNop(), nil)
	repo := new(mocks.MockNodeRepository)
	c := NewHomeController(nodes, repo, zap.NewNop())

	feed := []domain.Node{
		{ID: "n1", Type: domain.NodeTypeIssue, Title: "first"},
		{ID: "n2", Type: domain.NodeTypeIdea, Title: "second"},
	}
	repo.On("ListNodes", ctx).Return(feed, nil)

	require.NoError(t, c.LoadNodes(ctx))

	assert.Len(t, nodes.Snapshot().Nodes, 2)
	repo.AssertExpectations(t)
}

func TestHomeController_LoadNodes_DropsStaleResponse(t *testing.T) {
	ctx := context.Background()
	nodes := store.NewNodeStore(zap.NewNop(), nil)
	repo := new(mocks.MockNodeRepository)
	c := NewHomeController(nodes, repo, zap.NewNop())

	started := make(chan struct{})
	release := make(chan struct{})
	repo.On("ListNodes", ctx).
		Run(func(mock.Arguments) { close(started); <-release }).
		Return([]domain.Node{{ID: "stale", Type: domain.NodeTypeIdea}}, nil).Once()
	repo.On("ListNodes", ctx).
		Return([]domain.Node{{ID: "fresh", Type: domain.NodeTypeIdea}}, nil).Once()

	done := make(chan error, 1)
	go func() { done <- c.LoadNodes(ctx) }()
	<-started

	require.NoError(t, c.LoadNodes(ctx))
	close(release)
	require.NoError(t, <-done)

	got := nodes.Snapshot().Nodes
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].ID, "superseded reload must not overwrite the fresh feed")
}

func TestHomeController_TabAndSortAreLocal(t *testing.T) {
	nodes := store.NewNodeStore(zap.NewNop(), nil)
	repo := new(mocks.MockNodeRepository)
	c := NewHomeController(nodes, repo, zap.NewNop())

	nodes.ReplaceAll([]domain.Node{
		{ID: "n1", Type: domain.NodeTypeIssue},
		{ID: "n2", Type: domain.NodeTypeIdea},
	})

	c.SetTab(store.TabIdeas)
	c.SetSortOrder(store.SortOldest)

	state := nodes.Snapshot()
	assert.Equal(t, store.TabIdeas, state.Tab)
	assert.Equal(t, store.SortOldest, state.Sort)
	filtered := state.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "n2", filtered[0].ID)
	repo.AssertNotCalled(t, "ListNodes")
}

func TestHomeController_CreateNode(t *testing.T) {
	ctx := context.Background()
	nodes := store.NewNodeStore(zap.NewNop(), nil)
	repo := new(mocks.MockNodeRepository)
	c := NewHomeController(nodes, repo, zap.NewNop())

	t.Run("valid draft is posted and added", func(t *testing.T) {
		draft := domain.NodeDraft{Type: domain.NodeTypeIssue, Title: "flaky login", Body: "details"}
		created := &domain.Node{ID: "n1", Type: domain.NodeTypeIssue, Title: "flaky login", CreatedAt: time.Now()}
		repo.On("CreateNode", ctx, draft).Return(created, nil).Once()

		node, err := c.CreateNode(ctx, draft)

		require.NoError(t, err)
		assert.Equal(t, "n1", node.ID)
		got := nodes.Snapshot().Nodes
		require.Len(t, got, 1)
		assert.Equal(t, "n1", got[0].ID, "server copy with its assigned id lands in the store")
	})

	t.Run("invalid draft is rejected before the network", func(t *testing.T) {
		_, err := c.CreateNode(ctx, domain.NodeDraft{Type: domain.NodeTypeIssue})

		assert.True(t, apperrors.IsValidation(err))
		repo.AssertNumberOfCalls(t, "CreateNode", 1)
	})
}

func TestHomeController_CreateDerivedIdea(t *testing.T) {
	ctx := context.Background()
	nodes := store.NewNodeStore(zap.NewNop(), nil)
	repo := new(mocks.MockNodeRepository)
	c := NewHomeController(nodes, repo, zap.NewNop())

	parent := domain.Node{
		ID:    "n1",
		Type:  domain.NodeTypeIssue,
		Title: "original issue",
		Author: domain.Author{
			ID:   "u1",
			Name: "Dana",
		},
	}
	nodes.ReplaceAll([]domain.Node{parent})

	t.Run("snapshots the parent and forces the idea type", func(t *testing.T) {
		var sent domain.NodeDraft
		repo.On("CreateNode", ctx, mock.AnythingOfType("domain.NodeDraft")).
			Run(func(args mock.Arguments) { sent = args.Get(1).(domain.NodeDraft) }).
			Return(&domain.Node{ID: "n2", Type: domain.NodeTypeIdea, Title: "derived"}, nil).Once()

		_, err := c.CreateDerivedIdea(ctx, "n1", domain.NodeDraft{
			Type:  domain.NodeTypeIssue, // overridden
			Title: "derived",
			Body:  "building on the issue",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.NodeTypeIdea, sent.Type)
		require.NotNil(t, sent.Parent)
		assert.Equal(t, "n1", sent.Parent.ID)
		assert.Equal(t, "original issue", sent.Parent.Title)
	})

	t.Run("unknown parent", func(t *testing.T) {
		_, err := c.CreateDerivedIdea(ctx, "missing", domain.NodeDraft{Title: "t", Body: "b"})
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestHomeController_DeleteNode(t *testing.T) {
	ctx := context.Background()
	nodes := store.NewNodeStore(zap.NewNop(), nil)
	repo := new(mocks.MockNodeRepository)
	c := NewHomeController(nodes, repo, zap.NewNop())

	nodes.ReplaceAll([]domain.Node{{ID: "n1", Type: domain.NodeTypeIdea}})

	t.Run("removed only after the server confirms", func(t *testing.T) {
		repo.On("DeleteNode", ctx, "n1").
			Return(apperrors.NewNetworkError("request failed", nil)).Once()

		err := c.DeleteNode(ctx, "n1")

		assert.True(t, apperrors.IsNetwork(err))
		assert.Len(t, nodes.Snapshot().Nodes, 1, "failed delete keeps the node")

		repo.On("DeleteNode", ctx, "n1").Return(nil).Once()
		require.NoError(t, c.DeleteNode(ctx, "n1"))
		assert.Empty(t, nodes.Snapshot().Nodes)
	})
}
