package repository

// PageRequest represents cursor-based pagination parameters for queries.
// The cursor is the opaque continuation token returned by the previous page;
// the client never inspects its contents.
type PageRequest struct {
	Limit  int    `json:"limit"`
	Cursor string `json:"cursor,omitempty"`
}

// Constants for pagination
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NewPageRequest creates a new PageRequest with default values
func NewPageRequest(limit int, cursor string) PageRequest {
	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	return PageRequest{
		Limit:  limit,
		Cursor: cursor,
	}
}

// GetEffectiveLimit returns the limit to use, ensuring it's within bounds
func (pr PageRequest) GetEffectiveLimit() int {
	if pr.Limit <= 0 || pr.Limit > MaxPageSize {
		return DefaultPageSize
	}
	return pr.Limit
}

// HasCursor returns true if the request continues a previous page
func (pr PageRequest) HasCursor() bool {
	return pr.Cursor != ""
}
