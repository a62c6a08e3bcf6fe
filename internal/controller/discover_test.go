package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ideaboard-core/internal/domain"
	"ideaboard-core/internal/repository/mocks"
	"ideaboard-core/internal/store"
)

func tagNames(tags []domain.Tag) []string {
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = tag.Name
	}
	return out
}

func TestDiscoverController_SetQuery(t *testing.T) {
	ctx := context.Background()
	discover := store.NewDiscoverStore(zap.NewNop(), nil)
	repo := new(mocks.MockTagRepository)
	c := NewDiscoverController(repo, discover, zap.NewNop())

	repo.On("SuggestTags", mock.Anything, "go").
		Return([]domain.Tag{{ID: "t1", Name: "golang"}}, nil)

	require.NoError(t, c.SetQuery(ctx, "go"))

	state := discover.Snapshot()
	assert.Equal(t, "go", state.Query)
	assert.Equal(t, []string{"golang"}, tagNames(state.Suggestions))
}

func TestDiscoverController_SetQuery_CancelsPreviousLookup(t *testing.T) {
	ctx := context.Background()
	discover := store.NewDiscoverStore(zap.NewNop(), nil)
	repo := new(mocks.MockTagRepository)
	c := NewDiscoverController(repo, discover, zap.NewNop())

	// The first lookup blocks until its context is cancelled by the second
	// keystroke, then fails the way a cancelled HTTP request would.
	started := make(chan struct{})
	repo.On("SuggestTags", mock.Anything, "g").
		Run(func(args mock.Arguments) {
			close(started)
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.Canceled).Once()
	repo.On("SuggestTags", mock.Anything, "go").
		Return([]domain.Tag{{ID: "t1", Name: "golang"}}, nil).Once()

	done := make(chan error, 1)
	go func() { done <- c.SetQuery(ctx, "g") }()
	<-started

	require.NoError(t, c.SetQuery(ctx, "go"))
	assert.NoError(t, <-done, "a superseded lookup is not an error")

	state := discover.Snapshot()
	assert.Equal(t, "go", state.Query)
	assert.Equal(t, []string{"golang"}, tagNames(state.Suggestions),
		"only the latest query's suggestions are shown")
	repo.AssertExpectations(t)
}

func TestDiscoverController_SetQuery_EmptyClearsSuggestions(t *testing.T) {
	ctx := context.Background()
	discover := store.NewDiscoverStore(zap.NewNop(), nil)
	repo := new(mocks.MockTagRepository)
	c := NewDiscoverController(repo, discover, zap.NewNop())

	repo.On("SuggestTags", mock.Anything, "go").
		Return([]domain.Tag{{ID: "t1", Name: "golang"}}, nil).Once()
	require.NoError(t, c.SetQuery(ctx, "go"))
	require.NotEmpty(t, discover.Snapshot().Suggestions)

	require.NoError(t, c.SetQuery(ctx, ""))

	state := discover.Snapshot()
	assert.Empty(t, state.Query)
	assert.Empty(t, state.Suggestions)
	repo.AssertNumberOfCalls(t, "SuggestTags", 1)
}

func TestDiscoverController_LoadPopularTags(t *testing.T) {
	ctx := context.Background()
	discover := store.NewDiscoverStore(zap.NewNop(), nil)
	repo := new(mocks.MockTagRepository)
	c := NewDiscoverController(repo, discover, zap.NewNop())

	repo.On("PopularTags", ctx).Return([]domain.Tag{
		{ID: "t1", Name: "golang", UsageCount: 42},
		{ID: "t2", Name: "mobile", UsageCount: 17},
	}, nil)

	require.NoError(t, c.LoadPopularTags(ctx))

	assert.Equal(t, []string{"golang", "mobile"}, tagNames(discover.Snapshot().Popular))
}
