// Package repository translates remote gateway calls into domain operations.
// Every method returns either a domain value or an error from the closed
// pkg/errors taxonomy, never both; DTO to domain conversion lives here so
// the stores and controllers only ever see domain-shaped values.
package repository

import (
	"context"

	"ideaboard-core/internal/domain"
)

// NodeRepository provides node CRUD against the backend.
type NodeRepository interface {
	ListNodes(ctx context.Context) ([]domain.Node, error)
	GetNode(ctx context.Context, id string) (*domain.Node, error)
	CreateNode(ctx context.Context, draft domain.NodeDraft) (*domain.Node, error)
	UpdateNode(ctx context.Context, id string, edit domain.NodeEdit) (*domain.Node, error)
	DeleteNode(ctx context.Context, id string) error
}

// CommentRepository provides comment CRUD against the backend.
type CommentRepository interface {
	ListComments(ctx context.Context, nodeID string) ([]domain.Comment, error)
	CreateComment(ctx context.Context, draft domain.CommentDraft) (*domain.Comment, error)
	UpdateComment(ctx context.Context, id, body string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, id string) error
}

// ReactionRepository provides reaction toggling and the reacted-user roster.
type ReactionRepository interface {
	ToggleReaction(ctx context.Context, nodeID string, kind domain.ReactionKind) (domain.ReactionState, error)
	ListReactedUsers(ctx context.Context, nodeID string, kind domain.ReactionKind, page PageRequest) (*domain.ReactedUsersPage, error)
}

// TagRepository provides tag discovery lookups.
type TagRepository interface {
	PopularTags(ctx context.Context) ([]domain.Tag, error)
	SuggestTags(ctx context.Context, query string) ([]domain.Tag, error)
}

// AuthRepository provides the authentication operations consumed by the
// session lifecycle manager.
type AuthRepository interface {
	ExchangeCode(ctx context.Context, code, verifier string) (domain.TokenPair, *domain.User, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	CurrentUser(ctx context.Context) (*domain.User, error)
	UpdateDisplayName(ctx context.Context, name string) (*domain.User, error)
	Logout(ctx context.Context) error
}
