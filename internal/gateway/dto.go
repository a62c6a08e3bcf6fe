package gateway

import "time"

// Transfer objects for the board API. These mirror the wire format and are
// converted to domain values by the repository layer.

// AuthorDTO is the denormalized author block on nodes and comments.
type AuthorDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// ParentRefDTO is the weak back-reference snapshot on derived nodes.
type ParentRefDTO struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

// ReactionStateDTO is one reaction counter.
type ReactionStateDTO struct {
	Count     int  `json:"count"`
	IsReacted bool `json:"is_reacted"`
}

// ReactionsDTO holds the three reaction counters of a node.
type ReactionsDTO struct {
	Like       ReactionStateDTO `json:"like"`
	Interested ReactionStateDTO `json:"interested"`
	WantToTry  ReactionStateDTO `json:"want_to_try"`
}

// NodeDTO is the wire representation of a node.
type NodeDTO struct {
	ID           string        `json:"id"`
	Type         string        `json:"type"`
	Title        string        `json:"title"`
	Body         string        `json:"body"`
	Author       AuthorDTO     `json:"author"`
	TagIDs       []string      `json:"tag_ids,omitempty"`
	Parent       *ParentRefDTO `json:"parent,omitempty"`
	Reactions    ReactionsDTO  `json:"reactions"`
	CommentCount int           `json:"comment_count"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// CommentDTO is the wire representation of a comment with nested replies.
type CommentDTO struct {
	ID        string       `json:"id"`
	NodeID    string       `json:"node_id"`
	ParentID  string       `json:"parent_id,omitempty"`
	Author    AuthorDTO    `json:"author"`
	Body      string       `json:"body"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Replies   []CommentDTO `json:"replies,omitempty"`
}

// TagDTO is the wire representation of a tag.
type TagDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	UsageCount int    `json:"usage_count,omitempty"`
}

// ReactedUserDTO is one roster row of users who reacted to a node.
type ReactedUserDTO struct {
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name,omitempty"`
	UserPicture string    `json:"user_picture,omitempty"`
	ReactedAt   time.Time `json:"reacted_at"`
}

// ReactedUsersPageDTO is one cursor-delimited roster page.
type ReactedUsersPageDTO struct {
	Users      []ReactedUserDTO `json:"users"`
	NextCursor string           `json:"next_cursor,omitempty"`
	HasMore    bool             `json:"has_more"`
	Total      int              `json:"total"`
}

// UserDTO is the wire representation of the current user's profile.
type UserDTO struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// TokenResponseDTO is the OAuth token endpoint response. The code exchange
// bundles the user profile; the refresh grant returns tokens only.
type TokenResponseDTO struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	TokenType    string   `json:"token_type,omitempty"`
	ExpiresIn    int      `json:"expires_in,omitempty"`
	User         *UserDTO `json:"user,omitempty"`
}

// CreateNodeRequest is the body for posting a new node.
type CreateNodeRequest struct {
	Type   string        `json:"type"`
	Title  string        `json:"title"`
	Body   string        `json:"body"`
	TagIDs []string      `json:"tag_ids,omitempty"`
	Parent *ParentRefDTO `json:"parent,omitempty"`
}

// UpdateNodeRequest is the body for editing a node. Only title and body are
// editable after creation.
type UpdateNodeRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CreateCommentRequest is the body for posting a comment.
type CreateCommentRequest struct {
	NodeID   string `json:"node_id"`
	ParentID string `json:"parent_id,omitempty"`
	Body     string `json:"body"`
}

// UpdateDisplayNameRequest is the body for renaming the current user.
type UpdateDisplayNameRequest struct {
	DisplayName string `json:"display_name"`
}
