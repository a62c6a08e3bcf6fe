package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to exactly one node. ParentID supports one level of
// threaded replies; Replies is a nested list, never a separate collection.
//
// Creating or deleting a comment does not adjust the owning node's
// CommentCount in the store; the count is refreshed on the next full reload.
type Comment struct {
	ID        string    `json:"id"`
	NodeID    string    `json:"node_id"`
	ParentID  string    `json:"parent_id,omitempty"`
	Author    Author    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Replies   []Comment `json:"replies,omitempty"`

	// Tentative marks an optimistically appended comment whose server copy
	// has not arrived yet. Tentative comments carry a locally generated id.
	Tentative bool `json:"-"`
}

// NewTentativeComment builds the optimistic placeholder appended before the
// create call resolves. The local id is replaced by the server-assigned one
// when the response is spliced in.
func NewTentativeComment(nodeID, parentID, body string, author Author) Comment {
	now := time.Now()
	return Comment{
		ID:        "local-" + uuid.NewString(),
		NodeID:    nodeID,
		ParentID:  parentID,
		Author:    author,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
		Tentative: true,
	}
}

// Clone returns a deep copy of the comment including its replies.
func (c Comment) Clone() Comment {
	out := c
	if c.Replies != nil {
		out.Replies = make([]Comment, len(c.Replies))
		for i, r := range c.Replies {
			out.Replies[i] = r.Clone()
		}
	}
	return out
}

// CommentDraft carries the user-entered fields for creating a comment.
type CommentDraft struct {
	NodeID   string `json:"node_id" validate:"required"`
	ParentID string `json:"parent_id,omitempty"`
	Body     string `json:"body" validate:"required,max=2000"`
}
