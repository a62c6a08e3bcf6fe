package store

import (
	"go.uber.org/zap"

	"ideaboard-core/internal/domain"
	"ideaboard-core/pkg/observability"
)

// DiscoverState is the search/tag discovery context: the live query text,
// its suggestions, and the popular tag list.
type DiscoverState struct {
	Query       string
	Suggestions []domain.Tag
	Popular     []domain.Tag
}

func cloneDiscoverState(s DiscoverState) DiscoverState {
	out := s
	if s.Suggestions != nil {
		out.Suggestions = append([]domain.Tag(nil), s.Suggestions...)
	}
	if s.Popular != nil {
		out.Popular = append([]domain.Tag(nil), s.Popular...)
	}
	return out
}

// DiscoverStore owns the discovery screen's canonical state.
type DiscoverStore struct {
	*container[DiscoverState]
}

// NewDiscoverStore creates an empty discover store.
func NewDiscoverStore(logger *zap.Logger, metrics *observability.Collector) *DiscoverStore {
	return &DiscoverStore{newContainer("discover", DiscoverState{}, cloneDiscoverState, logger, metrics)}
}

// SetQuery records the current search text and clears suggestions that no
// longer match any query.
func (s *DiscoverStore) SetQuery(query string) {
	s.update("set_query", func(st *DiscoverState) {
		st.Query = query
		if query == "" {
			st.Suggestions = nil
		}
	})
}

// SetSuggestions publishes suggestions for the query they were fetched for.
// Results for a superseded query are dropped.
func (s *DiscoverStore) SetSuggestions(query string, suggestions []domain.Tag) {
	s.update("set_suggestions", func(st *DiscoverState) {
		if st.Query != query {
			return
		}
		st.Suggestions = append([]domain.Tag(nil), suggestions...)
	})
}

// SetPopularTags publishes the popular tag list.
func (s *DiscoverStore) SetPopularTags(tags []domain.Tag) {
	s.update("set_popular_tags", func(st *DiscoverState) {
		st.Popular = append([]domain.Tag(nil), tags...)
	})
}
