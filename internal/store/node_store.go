package store

import (
	"sort"

	"go.uber.org/zap"

	"ideaboard-core/internal/domain"
	"ideaboard-core/pkg/observability"
)

// HomeTab selects which node types the home feed shows.
type HomeTab string

const (
	TabAll      HomeTab = "all"
	TabIssues   HomeTab = "issues"
	TabIdeas    HomeTab = "ideas"
	TabProjects HomeTab = "projects"
)

// SortOrder selects how the home feed is ordered.
type SortOrder string

const (
	SortNewest      SortOrder = "newest"
	SortOldest      SortOrder = "oldest"
	SortMostReacted SortOrder = "most_reacted"
)

// NodeState is the canonical node collection plus its view filters.
type NodeState struct {
	Nodes      []domain.Node
	SelectedID string
	Tab        HomeTab
	Sort       SortOrder
}

// Filtered projects the collection through the current tab and sort order.
// It is a pure function of the state and is recomputed per call rather than
// cached, so the store never carries derived bookkeeping.
func (s NodeState) Filtered() []domain.Node {
	var want domain.NodeType
	switch s.Tab {
	case TabIssues:
		want = domain.NodeTypeIssue
	case TabIdeas:
		want = domain.NodeTypeIdea
	case TabProjects:
		want = domain.NodeTypeProject
	}

	out := make([]domain.Node, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		if want == "" || n.Type == want {
			out = append(out, n.Clone())
		}
	}

	switch s.Sort {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case SortMostReacted:
		sort.SliceStable(out, func(i, j int) bool {
			return totalReactions(out[i]) > totalReactions(out[j])
		})
	default: // SortNewest
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

func totalReactions(n domain.Node) int {
	return n.Reactions.Like.Count + n.Reactions.Interested.Count + n.Reactions.WantToTry.Count
}

// Selected returns the currently selected node, if any.
func (s NodeState) Selected() (domain.Node, bool) {
	if s.SelectedID == "" {
		return domain.Node{}, false
	}
	for _, n := range s.Nodes {
		if n.ID == s.SelectedID {
			return n.Clone(), true
		}
	}
	return domain.Node{}, false
}

// ChildrenOf returns the nodes citing targetID as their parent. Linear scan:
// the client holds at most one page of nodes, so no index is maintained.
func (s NodeState) ChildrenOf(targetID string) []domain.Node {
	var out []domain.Node
	for _, n := range s.Nodes {
		if n.IsChildOf(targetID) {
			out = append(out, n.Clone())
		}
	}
	return out
}

func cloneNodeState(s NodeState) NodeState {
	out := s
	if s.Nodes != nil {
		out.Nodes = make([]domain.Node, len(s.Nodes))
		for i, n := range s.Nodes {
			out.Nodes[i] = n.Clone()
		}
	}
	return out
}

// NodeStore owns the canonical node collection and its view filters.
type NodeStore struct {
	*container[NodeState]
}

// NewNodeStore creates an empty node store.
func NewNodeStore(logger *zap.Logger, metrics *observability.Collector) *NodeStore {
	initial := NodeState{Tab: TabAll, Sort: SortNewest}
	return &NodeStore{newContainer("nodes", initial, cloneNodeState, logger, metrics)}
}

// ReplaceAll replaces the whole collection, typically after a feed reload.
// The selection is kept when the selected node survives the reload.
func (s *NodeStore) ReplaceAll(nodes []domain.Node) {
	s.update("replace_all", func(st *NodeState) {
		st.Nodes = make([]domain.Node, len(nodes))
		for i, n := range nodes {
			st.Nodes[i] = n.Clone()
		}
		if _, ok := st.Selected(); !ok {
			st.SelectedID = ""
		}
	})
}

// Add prepends a newly created node.
func (s *NodeStore) Add(node domain.Node) {
	s.update("add", func(st *NodeState) {
		st.Nodes = append([]domain.Node{node.Clone()}, st.Nodes...)
	})
}

// Upsert replaces the node with the same id, or prepends it when absent.
func (s *NodeStore) Upsert(node domain.Node) {
	s.update("upsert", func(st *NodeState) {
		for i, n := range st.Nodes {
			if n.ID == node.ID {
				st.Nodes[i] = node.Clone()
				return
			}
		}
		st.Nodes = append([]domain.Node{node.Clone()}, st.Nodes...)
	})
}

// Remove drops a node after a successful delete, clearing the selection when
// the removed node was selected.
func (s *NodeStore) Remove(id string) {
	s.update("remove", func(st *NodeState) {
		for i, n := range st.Nodes {
			if n.ID == id {
				st.Nodes = append(st.Nodes[:i], st.Nodes[i+1:]...)
				break
			}
		}
		if st.SelectedID == id {
			st.SelectedID = ""
		}
	})
}

// Select marks the node the detail screen is showing.
func (s *NodeStore) Select(id string) {
	s.update("select", func(st *NodeState) {
		st.SelectedID = id
	})
}

// ClearSelection drops the detail selection.
func (s *NodeStore) ClearSelection() {
	s.update("clear_selection", func(st *NodeState) {
		st.SelectedID = ""
	})
}

// SetTab switches the home feed tab.
func (s *NodeStore) SetTab(tab HomeTab) {
	s.update("set_tab", func(st *NodeState) {
		st.Tab = tab
	})
}

// SetSortOrder switches the home feed sort order.
func (s *NodeStore) SetSortOrder(order SortOrder) {
	s.update("set_sort_order", func(st *NodeState) {
		st.Sort = order
	})
}

// ApplyReaction toggles one reaction counter in place and returns the
// pre-toggle state, which the caller keeps as the rollback snapshot for a
// failed optimistic mutation. ok is false when the node is not in the store;
// nothing is mutated or notified in that case.
func (s *NodeStore) ApplyReaction(id string, kind domain.ReactionKind) (prior domain.ReactionState, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Nodes {
		if s.state.Nodes[i].ID != id {
			continue
		}
		prior = s.state.Nodes[i].Reactions.Get(kind)
		s.state.Nodes[i].Reactions.Set(kind, prior.Toggle())
		ok = true
		break
	}
	if !ok {
		return domain.ReactionState{}, false
	}

	s.metrics.RecordStoreMutation(s.name, "apply_reaction")
	for _, sub := range s.subs {
		sub(s.clone(s.state))
	}
	return prior, true
}

// RestoreReaction writes back an exact pre-mutation snapshot. Used as the
// compensating action when the reaction-toggle network call fails; restoring
// the saved value rather than re-toggling keeps overlapping toggles from
// compounding a wrong rollback.
func (s *NodeStore) RestoreReaction(id string, kind domain.ReactionKind, snapshot domain.ReactionState) {
	s.update("restore_reaction", func(st *NodeState) {
		for i := range st.Nodes {
			if st.Nodes[i].ID == id {
				st.Nodes[i].Reactions.Set(kind, snapshot)
				return
			}
		}
	})
}

// SetReaction overwrites one counter with the server's authoritative value.
func (s *NodeStore) SetReaction(id string, kind domain.ReactionKind, state domain.ReactionState) {
	s.update("set_reaction", func(st *NodeState) {
		for i := range st.Nodes {
			if st.Nodes[i].ID == id {
				st.Nodes[i].Reactions.Set(kind, state)
				return
			}
		}
	})
}
