package controller

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"ideaboard-core/internal/domain"
	"ideaboard-core/internal/repository"
	"ideaboard-core/internal/store"
	apperrors "ideaboard-core/pkg/errors"
	"ideaboard-core/pkg/observability"
)

// DetailController orchestrates the node detail screen: loading the node and
// its comment thread, toggling reactions optimistically, and submitting
// comments optimistically. The comment thread and the comment input buffer
// are screen-local state owned by this controller; the node itself stays in
// the node store.
type DetailController struct {
	nodes        *store.NodeStore
	sessions     *store.SessionStore
	nodeRepo     repository.NodeRepository
	commentRepo  repository.CommentRepository
	reactionRepo repository.ReactionRepository
	logger       *zap.Logger
	metrics      *observability.Collector

	mu          sync.Mutex
	epoch       uint64
	comments    []domain.Comment
	inputBuffer string
	onComments  func([]domain.Comment)
}

// NewDetailController creates the detail screen controller.
func NewDetailController(
	nodes *store.NodeStore,
	sessions *store.SessionStore,
	nodeRepo repository.NodeRepository,
	commentRepo repository.CommentRepository,
	reactionRepo repository.ReactionRepository,
	logger *zap.Logger,
	metrics *observability.Collector,
) *DetailController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DetailController{
		nodes:        nodes,
		sessions:     sessions,
		nodeRepo:     nodeRepo,
		commentRepo:  commentRepo,
		reactionRepo: reactionRepo,
		logger:       logger,
		metrics:      metrics,
	}
}

// OnCommentsChanged registers the screen's re-render callback for the
// comment thread. Called synchronously after every thread mutation.
func (c *DetailController) OnCommentsChanged(fn func([]domain.Comment)) {
	c.mu.Lock()
	c.onComments = fn
	c.mu.Unlock()
}

// Open selects the node and loads its detail and comment thread. Opening a
// different node supersedes any load still in flight.
func (c *DetailController) Open(ctx context.Context, nodeID string) error {
	c.nodes.Select(nodeID)

	c.mu.Lock()
	c.epoch++
	epoch := c.epoch
	c.comments = nil
	c.inputBuffer = ""
	c.mu.Unlock()
	c.notifyComments()

	node, err := c.nodeRepo.GetNode(ctx, nodeID)
	if err != nil {
		return err
	}
	comments, err := c.commentRepo.ListComments(ctx, nodeID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		c.logger.Debug("Dropping stale detail response", zap.String("node_id", nodeID))
		return nil
	}
	c.comments = comments
	c.mu.Unlock()

	c.nodes.Upsert(*node)
	c.notifyComments()
	return nil
}

// Comments returns a snapshot of the comment thread.
func (c *DetailController) Comments() []domain.Comment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneComments(c.comments)
}

// SetInputBuffer records the comment the user is typing.
func (c *DetailController) SetInputBuffer(text string) {
	c.mu.Lock()
	c.inputBuffer = text
	c.mu.Unlock()
}

// InputBuffer returns the current comment input text.
func (c *DetailController) InputBuffer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inputBuffer
}

// ToggleReaction optimistically flips one reaction counter on the selected
// node. The flip is written to the store before the network call, so every
// subscribed screen sees it immediately. On failure the exact pre-toggle
// counter is restored. Without a selected node this is a no-op: no side
// effects, no error.
func (c *DetailController) ToggleReaction(ctx context.Context, kind domain.ReactionKind) error {
	selected, ok := c.nodes.Snapshot().Selected()
	if !ok {
		return nil
	}

	prior, ok := c.nodes.ApplyReaction(selected.ID, kind)
	if !ok {
		return nil
	}

	serverState, err := c.reactionRepo.ToggleReaction(ctx, selected.ID, kind)
	if err != nil {
		c.nodes.RestoreReaction(selected.ID, kind, prior)
		c.metrics.RecordOptimisticRollback("reaction")
		c.logger.Warn("Reaction toggle failed, restored prior state",
			zap.String("node_id", selected.ID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return err
	}

	// The optimistic state already matches the server for a single in-flight
	// toggle; only note divergence, the next full reload reconciles it.
	if local := prior.Toggle(); serverState != local {
		c.logger.Debug("Reaction state diverged from server",
			zap.String("node_id", selected.ID),
			zap.Int("local_count", local.Count),
			zap.Int("server_count", serverState.Count),
		)
	}
	return nil
}

// SubmitComment optimistically appends the typed comment to the thread and
// clears the input buffer, then posts it. On success the server's copy
// replaces the tentative one; on failure the tentative comment is removed
// and the input buffer restored so the user can retry.
//
// The owning node's CommentCount is deliberately not adjusted here; it is
// refreshed on the next detail reload.
func (c *DetailController) SubmitComment(ctx context.Context, parentID string) error {
	selected, ok := c.nodes.Snapshot().Selected()
	if !ok {
		return apperrors.NewValidationError("no node selected")
	}

	session := c.sessions.Snapshot()
	if !session.Authenticated() {
		return apperrors.NewUnauthorizedError("")
	}

	c.mu.Lock()
	body := c.inputBuffer
	if body == "" {
		c.mu.Unlock()
		return apperrors.NewValidationError("comment body is empty")
	}

	author := domain.Author{
		ID:        session.User.ID,
		Name:      session.User.DisplayName,
		AvatarURL: session.User.AvatarURL,
	}
	tentative := domain.NewTentativeComment(selected.ID, parentID, body, author)
	c.comments = appendComment(c.comments, tentative)
	c.inputBuffer = ""
	c.mu.Unlock()
	c.notifyComments()

	draft := domain.CommentDraft{NodeID: selected.ID, ParentID: parentID, Body: body}
	created, err := c.commentRepo.CreateComment(ctx, draft)

	c.mu.Lock()
	if err != nil {
		c.comments = removeComment(c.comments, tentative.ID)
		c.inputBuffer = body
		c.mu.Unlock()
		c.notifyComments()
		c.metrics.RecordOptimisticRollback("comment")
		return err
	}
	c.comments = replaceComment(c.comments, tentative.ID, *created)
	c.mu.Unlock()
	c.notifyComments()
	return nil
}

// EditComment updates a comment body and splices the server's copy into the
// thread.
func (c *DetailController) EditComment(ctx context.Context, id, body string) error {
	updated, err := c.commentRepo.UpdateComment(ctx, id, body)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.comments = replaceComment(c.comments, id, *updated)
	c.mu.Unlock()
	c.notifyComments()
	return nil
}

// DeleteComment removes a comment from the thread after the server confirms.
// The owning node's CommentCount is not adjusted (see SubmitComment).
func (c *DetailController) DeleteComment(ctx context.Context, id string) error {
	if err := c.commentRepo.DeleteComment(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	c.comments = removeComment(c.comments, id)
	c.mu.Unlock()
	c.notifyComments()
	return nil
}

// EditNode updates the selected node's title and body.
func (c *DetailController) EditNode(ctx context.Context, edit domain.NodeEdit) error {
	selected, ok := c.nodes.Snapshot().Selected()
	if !ok {
		return apperrors.NewValidationError("no node selected")
	}

	updated, err := c.nodeRepo.UpdateNode(ctx, selected.ID, edit)
	if err != nil {
		return err
	}
	c.nodes.Upsert(*updated)
	return nil
}

// Children returns the nodes derived from the selected node. Pure store
// scan, no network call.
func (c *DetailController) Children() []domain.Node {
	state := c.nodes.Snapshot()
	if state.SelectedID == "" {
		return nil
	}
	return state.ChildrenOf(state.SelectedID)
}

func (c *DetailController) notifyComments() {
	c.mu.Lock()
	fn := c.onComments
	snapshot := cloneComments(c.comments)
	c.mu.Unlock()
	if fn != nil {
		fn(snapshot)
	}
}

// Comment thread helpers. The thread is one level deep: top-level comments
// with nested replies.

func cloneComments(comments []domain.Comment) []domain.Comment {
	if comments == nil {
		return nil
	}
	out := make([]domain.Comment, len(comments))
	for i, c := range comments {
		out[i] = c.Clone()
	}
	return out
}

func appendComment(comments []domain.Comment, comment domain.Comment) []domain.Comment {
	if comment.ParentID == "" {
		return append(comments, comment)
	}
	for i := range comments {
		if comments[i].ID == comment.ParentID {
			comments[i].Replies = append(comments[i].Replies, comment)
			return comments
		}
	}
	// Parent vanished (deleted mid-typing); keep the comment visible at the
	// top level rather than dropping the user's text.
	return append(comments, comment)
}

func removeComment(comments []domain.Comment, id string) []domain.Comment {
	for i := range comments {
		if comments[i].ID == id {
			return append(comments[:i], comments[i+1:]...)
		}
		for j := range comments[i].Replies {
			if comments[i].Replies[j].ID == id {
				comments[i].Replies = append(comments[i].Replies[:j], comments[i].Replies[j+1:]...)
				return comments
			}
		}
	}
	return comments
}

func replaceComment(comments []domain.Comment, id string, replacement domain.Comment) []domain.Comment {
	for i := range comments {
		if comments[i].ID == id {
			replacement.Replies = comments[i].Replies
			comments[i] = replacement
			return comments
		}
		for j := range comments[i].Replies {
			if comments[i].Replies[j].ID == id {
				comments[i].Replies[j] = replacement
				return comments
			}
		}
	}
	return comments
}
