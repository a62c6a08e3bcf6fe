package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ideaboard-core/internal/domain"
)

func testNode(id string, nodeType domain.NodeType, createdAt time.Time) domain.Node {
	return domain.Node{
		ID:        id,
		Type:      nodeType,
		Title:     "title " + id,
		Body:      "body " + id,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestNodeStore_ApplyReaction(t *testing.T) {
	s := NewNodeStore(nil, nil)
	n := testNode("n1", domain.NodeTypeIdea, time.Now())
	n.Reactions.Like = domain.ReactionState{Count: 5, IsReacted: false}
	s.ReplaceAll([]domain.Node{n})

	prior, ok := s.ApplyReaction("n1", domain.ReactionLike)
	require.True(t, ok)
	assert.Equal(t, domain.ReactionState{Count: 5, IsReacted: false}, prior)

	state := s.Snapshot()
	assert.Equal(t, domain.ReactionState{Count: 6, IsReacted: true}, state.Nodes[0].Reactions.Like)

	// Restoring the snapshot settles the store back to the pre-toggle value.
	s.RestoreReaction("n1", domain.ReactionLike, prior)
	state = s.Snapshot()
	assert.Equal(t, domain.ReactionState{Count: 5, IsReacted: false}, state.Nodes[0].Reactions.Like)
}

func TestNodeStore_ApplyReaction_MissingNode(t *testing.T) {
	s := NewNodeStore(nil, nil)

	notified := false
	cancel := s.Subscribe(func(NodeState) { notified = true })
	defer cancel()

	_, ok := s.ApplyReaction("ghost", domain.ReactionLike)
	assert.False(t, ok)
	assert.False(t, notified, "missing node must not notify subscribers")
}

func TestNodeStore_SubscribersSeeWritesInOrder(t *testing.T) {
	s := NewNodeStore(nil, nil)

	var tabs []HomeTab
	cancel := s.Subscribe(func(st NodeState) { tabs = append(tabs, st.Tab) })
	defer cancel()

	s.SetTab(TabIssues)
	s.SetTab(TabIdeas)
	s.SetTab(TabAll)

	require.Len(t, tabs, 3)
	assert.Equal(t, []HomeTab{TabIssues, TabIdeas, TabAll}, tabs)
}

func TestNodeStore_SnapshotIsACopy(t *testing.T) {
	s := NewNodeStore(nil, nil)
	s.ReplaceAll([]domain.Node{testNode("n1", domain.NodeTypeIssue, time.Now())})

	snap := s.Snapshot()
	snap.Nodes[0].Title = "mutated by reader"

	assert.Equal(t, "title n1", s.Snapshot().Nodes[0].Title)
}

func TestNodeState_Filtered(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issue := testNode("n1", domain.NodeTypeIssue, base)
	idea := testNode("n2", domain.NodeTypeIdea, base.Add(time.Hour))
	project := testNode("n3", domain.NodeTypeProject, base.Add(2*time.Hour))
	idea.Reactions.Like.Count = 9

	s := NewNodeStore(nil, nil)
	s.ReplaceAll([]domain.Node{issue, idea, project})

	t.Run("Should return only issue nodes on the issues tab", func(t *testing.T) {
		s.SetTab(TabIssues)
		filtered := s.Snapshot().Filtered()
		require.Len(t, filtered, 1)
		assert.Equal(t, "n1", filtered[0].ID)
	})

	t.Run("Should sort newest first by default", func(t *testing.T) {
		s.SetTab(TabAll)
		s.SetSortOrder(SortNewest)
		filtered := s.Snapshot().Filtered()
		require.Len(t, filtered, 3)
		assert.Equal(t, "n3", filtered[0].ID)
		assert.Equal(t, "n1", filtered[2].ID)
	})

	t.Run("Should sort oldest first", func(t *testing.T) {
		s.SetSortOrder(SortOldest)
		filtered := s.Snapshot().Filtered()
		assert.Equal(t, "n1", filtered[0].ID)
	})

	t.Run("Should sort by reaction totals", func(t *testing.T) {
		s.SetSortOrder(SortMostReacted)
		filtered := s.Snapshot().Filtered()
		assert.Equal(t, "n2", filtered[0].ID)
	})
}

func TestNodeState_ChildrenOf(t *testing.T) {
	parent := testNode("n1", domain.NodeTypeIssue, time.Now())
	child := testNode("n2", domain.NodeTypeIdea, time.Now())
	child.Parent = parent.ParentSnapshot()
	unrelated := testNode("n3", domain.NodeTypeIdea, time.Now())

	s := NewNodeStore(nil, nil)
	s.ReplaceAll([]domain.Node{parent, child, unrelated})

	children := s.Snapshot().ChildrenOf("n1")
	require.Len(t, children, 1)
	assert.Equal(t, "n2", children[0].ID)
}

func TestNodeStore_RemoveClearsSelection(t *testing.T) {
	s := NewNodeStore(nil, nil)
	s.ReplaceAll([]domain.Node{testNode("n1", domain.NodeTypeIssue, time.Now())})
	s.Select("n1")

	_, ok := s.Snapshot().Selected()
	require.True(t, ok)

	s.Remove("n1")
	_, ok = s.Snapshot().Selected()
	assert.False(t, ok)
	assert.Empty(t, s.Snapshot().Nodes)
}

func TestNodeStore_Upsert(t *testing.T) {
	s := NewNodeStore(nil, nil)
	n := testNode("n1", domain.NodeTypeIssue, time.Now())
	s.ReplaceAll([]domain.Node{n})

	n.Title = "edited"
	s.Upsert(n)

	state := s.Snapshot()
	require.Len(t, state.Nodes, 1)
	assert.Equal(t, "edited", state.Nodes[0].Title)

	s.Upsert(testNode("n2", domain.NodeTypeIdea, time.Now()))
	assert.Len(t, s.Snapshot().Nodes, 2)
}
