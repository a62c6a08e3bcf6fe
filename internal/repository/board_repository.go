package repository

import (
	"context"

	"go.uber.org/zap"

	"ideaboard-core/internal/domain"
	"ideaboard-core/internal/gateway"
	apperrors "ideaboard-core/pkg/errors"
)

// BoardRepository is the gateway-backed implementation of every repository
// interface. Splitting the interfaces keeps controller dependencies narrow;
// one concrete type behind them keeps the wiring flat.
type BoardRepository struct {
	gw     *gateway.Client
	logger *zap.Logger
}

var (
	_ NodeRepository     = (*BoardRepository)(nil)
	_ CommentRepository  = (*BoardRepository)(nil)
	_ ReactionRepository = (*BoardRepository)(nil)
	_ TagRepository      = (*BoardRepository)(nil)
	_ AuthRepository     = (*BoardRepository)(nil)
)

// NewBoardRepository creates the repository over a gateway client.
func NewBoardRepository(gw *gateway.Client, logger *zap.Logger) *BoardRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BoardRepository{gw: gw, logger: logger}
}

// Node operations

func (r *BoardRepository) ListNodes(ctx context.Context) ([]domain.Node, error) {
	dtos, err := r.gw.ListNodes(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list nodes")
	}
	nodes := make([]domain.Node, len(dtos))
	for i, dto := range dtos {
		nodes[i] = nodeFromDTO(dto)
	}
	return nodes, nil
}

func (r *BoardRepository) GetNode(ctx context.Context, id string) (*domain.Node, error) {
	dto, err := r.gw.GetNode(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to fetch node")
	}
	node := nodeFromDTO(*dto)
	return &node, nil
}

func (r *BoardRepository) CreateNode(ctx context.Context, draft domain.NodeDraft) (*domain.Node, error) {
	dto, err := r.gw.CreateNode(ctx, draftToCreateRequest(draft))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create node")
	}
	node := nodeFromDTO(*dto)
	r.logger.Debug("Node created", zap.String("node_id", node.ID), zap.String("type", string(node.Type)))
	return &node, nil
}

func (r *BoardRepository) UpdateNode(ctx context.Context, id string, edit domain.NodeEdit) (*domain.Node, error) {
	dto, err := r.gw.UpdateNode(ctx, id, gateway.UpdateNodeRequest{Title: edit.Title, Body: edit.Body})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to update node")
	}
	node := nodeFromDTO(*dto)
	return &node, nil
}

func (r *BoardRepository) DeleteNode(ctx context.Context, id string) error {
	if err := r.gw.DeleteNode(ctx, id); err != nil {
		return apperrors.Wrap(err, "failed to delete node")
	}
	return nil
}

// Comment operations

func (r *BoardRepository) ListComments(ctx context.Context, nodeID string) ([]domain.Comment, error) {
	dtos, err := r.gw.ListComments(ctx, nodeID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list comments")
	}
	comments := make([]domain.Comment, len(dtos))
	for i, dto := range dtos {
		comments[i] = commentFromDTO(dto)
	}
	return comments, nil
}

func (r *BoardRepository) CreateComment(ctx context.Context, draft domain.CommentDraft) (*domain.Comment, error) {
	req := gateway.CreateCommentRequest{NodeID: draft.NodeID, ParentID: draft.ParentID, Body: draft.Body}
	dto, err := r.gw.CreateComment(ctx, req)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create comment")
	}
	comment := commentFromDTO(*dto)
	return &comment, nil
}

func (r *BoardRepository) UpdateComment(ctx context.Context, id, body string) (*domain.Comment, error) {
	dto, err := r.gw.UpdateComment(ctx, id, body)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to update comment")
	}
	comment := commentFromDTO(*dto)
	return &comment, nil
}

func (r *BoardRepository) DeleteComment(ctx context.Context, id string) error {
	if err := r.gw.DeleteComment(ctx, id); err != nil {
		return apperrors.Wrap(err, "failed to delete comment")
	}
	return nil
}

// Reaction operations

func (r *BoardRepository) ToggleReaction(ctx context.Context, nodeID string, kind domain.ReactionKind) (domain.ReactionState, error) {
	if !kind.Valid() {
		return domain.ReactionState{}, apperrors.NewValidationError("unknown reaction kind")
	}
	dto, err := r.gw.ToggleReaction(ctx, nodeID, string(kind))
	if err != nil {
		return domain.ReactionState{}, apperrors.Wrap(err, "failed to toggle reaction")
	}
	return reactionFromDTO(*dto), nil
}

func (r *BoardRepository) ListReactedUsers(ctx context.Context, nodeID string, kind domain.ReactionKind, page PageRequest) (*domain.ReactedUsersPage, error) {
	if !kind.Valid() {
		return nil, apperrors.NewValidationError("unknown reaction kind")
	}
	dto, err := r.gw.ListReactedUsers(ctx, nodeID, string(kind), page.GetEffectiveLimit(), page.Cursor)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list reacted users")
	}
	result := reactedUsersPageFromDTO(*dto)
	return &result, nil
}

// Tag operations

func (r *BoardRepository) PopularTags(ctx context.Context) ([]domain.Tag, error) {
	dtos, err := r.gw.PopularTags(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to fetch popular tags")
	}
	tags := make([]domain.Tag, len(dtos))
	for i, dto := range dtos {
		tags[i] = tagFromDTO(dto)
	}
	return tags, nil
}

func (r *BoardRepository) SuggestTags(ctx context.Context, query string) ([]domain.Tag, error) {
	dtos, err := r.gw.SuggestTags(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to fetch tag suggestions")
	}
	tags := make([]domain.Tag, len(dtos))
	for i, dto := range dtos {
		tags[i] = tagFromDTO(dto)
	}
	return tags, nil
}

// Auth operations

func (r *BoardRepository) ExchangeCode(ctx context.Context, code, verifier string) (domain.TokenPair, *domain.User, error) {
	dto, err := r.gw.ExchangeCode(ctx, code, verifier)
	if err != nil {
		return domain.TokenPair{}, nil, apperrors.Wrap(err, "failed to exchange authorization code")
	}
	if dto.AccessToken == "" || dto.RefreshToken == "" || dto.User == nil {
		// A partial token response must never reach the session store.
		return domain.TokenPair{}, nil, apperrors.NewServerError("token response missing tokens or user")
	}
	user := userFromDTO(*dto.User)
	pair := domain.TokenPair{AccessToken: dto.AccessToken, RefreshToken: dto.RefreshToken}
	return pair, &user, nil
}

func (r *BoardRepository) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	dto, err := r.gw.RefreshToken(ctx, refreshToken)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to refresh access token")
	}
	if dto.AccessToken == "" {
		return "", apperrors.NewServerError("refresh response missing access token")
	}
	return dto.AccessToken, nil
}

func (r *BoardRepository) CurrentUser(ctx context.Context) (*domain.User, error) {
	dto, err := r.gw.CurrentUser(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to fetch current user")
	}
	user := userFromDTO(*dto)
	return &user, nil
}

func (r *BoardRepository) UpdateDisplayName(ctx context.Context, name string) (*domain.User, error) {
	dto, err := r.gw.UpdateDisplayName(ctx, name)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to update display name")
	}
	user := userFromDTO(*dto)
	return &user, nil
}

func (r *BoardRepository) Logout(ctx context.Context) error {
	if err := r.gw.Logout(ctx); err != nil {
		return apperrors.Wrap(err, "remote logout failed")
	}
	return nil
}
