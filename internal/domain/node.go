// Package domain holds the client-side domain model for the idea board:
// nodes, comments, reactions, tags and the authenticated session. Types here
// are plain values owned by the domain stores; they never perform I/O.
package domain

import "time"

// NodeType classifies what kind of entry a node is.
type NodeType string

const (
	NodeTypeIssue   NodeType = "issue"
	NodeTypeIdea    NodeType = "idea"
	NodeTypeProject NodeType = "project"
)

// Valid reports whether the node type is one of the known kinds.
func (t NodeType) Valid() bool {
	switch t {
	case NodeTypeIssue, NodeTypeIdea, NodeTypeProject:
		return true
	}
	return false
}

// Author is the denormalized author display info carried on nodes and comments.
type Author struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// ParentRef is a weak back-reference to the node a derived idea cites as
// inspiration. It is a snapshot of id/type/title captured at creation time,
// not a live pointer: later edits to the parent's title do not propagate here.
type ParentRef struct {
	ID    string   `json:"id"`
	Type  NodeType `json:"type"`
	Title string   `json:"title"`
}

// Node represents a posted issue, idea, or project.
//
// The reaction counters and CommentCount are denormalized server values;
// CommentCount is authoritative only immediately after a server response.
type Node struct {
	ID           string     `json:"id"`
	Type         NodeType   `json:"type"`
	Title        string     `json:"title"`
	Body         string     `json:"body"`
	Author       Author     `json:"author"`
	TagIDs       []string   `json:"tag_ids,omitempty"`
	Parent       *ParentRef `json:"parent,omitempty"`
	Reactions    Reactions  `json:"reactions"`
	CommentCount int        `json:"comment_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Clone returns a deep copy of the node. Stores hand out clones so readers
// can never alias the canonical copy.
func (n Node) Clone() Node {
	c := n
	if n.TagIDs != nil {
		c.TagIDs = append([]string(nil), n.TagIDs...)
	}
	if n.Parent != nil {
		p := *n.Parent
		c.Parent = &p
	}
	return c
}

// ParentSnapshot captures the weak back-reference for a node derived from n.
func (n Node) ParentSnapshot() *ParentRef {
	return &ParentRef{ID: n.ID, Type: n.Type, Title: n.Title}
}

// IsChildOf reports whether the node cites target as its parent.
func (n Node) IsChildOf(targetID string) bool {
	return n.Parent != nil && n.Parent.ID == targetID
}

// NodeDraft carries the user-entered fields for creating a node.
// The server assigns the id; ParentRef, when present, is recorded verbatim
// and immutable afterwards.
type NodeDraft struct {
	Type   NodeType   `json:"type" validate:"required,oneof=issue idea project"`
	Title  string     `json:"title" validate:"required,max=120"`
	Body   string     `json:"body" validate:"required,max=4000"`
	TagIDs []string   `json:"tag_ids,omitempty" validate:"max=10,dive,required"`
	Parent *ParentRef `json:"parent,omitempty"`
}

// NodeEdit carries the editable fields of an existing node. Only title and
// body can change after creation.
type NodeEdit struct {
	Title string `json:"title" validate:"required,max=120"`
	Body  string `json:"body" validate:"required,max=4000"`
}
