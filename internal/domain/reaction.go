package domain

import "time"

// ReactionKind identifies one of the three independent reaction counters.
type ReactionKind string

const (
	ReactionLike       ReactionKind = "like"
	ReactionInterested ReactionKind = "interested"
	ReactionWantToTry  ReactionKind = "want_to_try"
)

// Valid reports whether the kind is one of the known reactions.
func (k ReactionKind) Valid() bool {
	switch k {
	case ReactionLike, ReactionInterested, ReactionWantToTry:
		return true
	}
	return false
}

// ReactionState is one counter: how many users reacted and whether the
// current user is among them.
//
// Invariant: Count >= 0 at all times; a single Toggle moves Count by exactly
// one and flips IsReacted.
type ReactionState struct {
	Count     int  `json:"count"`
	IsReacted bool `json:"is_reacted"`
}

// Toggle flips the current user's reaction and adjusts the count.
// It is an involution: applying it twice restores the original state.
func (s ReactionState) Toggle() ReactionState {
	if s.IsReacted {
		next := ReactionState{Count: s.Count - 1, IsReacted: false}
		if next.Count < 0 {
			next.Count = 0
		}
		return next
	}
	return ReactionState{Count: s.Count + 1, IsReacted: true}
}

// Reactions holds the three independent counters of a node.
type Reactions struct {
	Like       ReactionState `json:"like"`
	Interested ReactionState `json:"interested"`
	WantToTry  ReactionState `json:"want_to_try"`
}

// Get returns the counter for the given kind.
func (r Reactions) Get(kind ReactionKind) ReactionState {
	switch kind {
	case ReactionLike:
		return r.Like
	case ReactionInterested:
		return r.Interested
	case ReactionWantToTry:
		return r.WantToTry
	}
	return ReactionState{}
}

// Set replaces the counter for the given kind.
func (r *Reactions) Set(kind ReactionKind, state ReactionState) {
	switch kind {
	case ReactionLike:
		r.Like = state
	case ReactionInterested:
		r.Interested = state
	case ReactionWantToTry:
		r.WantToTry = state
	}
}

// ReactedUser is one row of the reaction-user roster for a node.
type ReactedUser struct {
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name,omitempty"`
	UserPicture string    `json:"user_picture,omitempty"`
	ReactedAt   time.Time `json:"reacted_at"`
}

// ReactedUsersPage is one cursor-delimited page of the roster.
// NextCursor is opaque and empty once the list is exhausted.
type ReactedUsersPage struct {
	Users      []ReactedUser `json:"users"`
	NextCursor string        `json:"next_cursor,omitempty"`
	HasMore    bool          `json:"has_more"`
	Total      int           `json:"total"`
}
