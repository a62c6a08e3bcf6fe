package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Node operations

// ListNodes fetches the current node feed.
func (c *Client) ListNodes(ctx context.Context) ([]NodeDTO, error) {
	var out []NodeDTO
	if err := c.doJSON(ctx, "list_nodes", http.MethodGet, "/v1/nodes", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetNode fetches a single node by id.
func (c *Client) GetNode(ctx context.Context, id string) (*NodeDTO, error) {
	var out NodeDTO
	if err := c.doJSON(ctx, "get_node", http.MethodGet, "/v1/nodes/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateNode posts a new node; the server assigns the id.
func (c *Client) CreateNode(ctx context.Context, req CreateNodeRequest) (*NodeDTO, error) {
	var out NodeDTO
	if err := c.doJSON(ctx, "create_node", http.MethodPost, "/v1/nodes", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateNode edits a node's title and body.
func (c *Client) UpdateNode(ctx context.Context, id string, req UpdateNodeRequest) (*NodeDTO, error) {
	var out NodeDTO
	if err := c.doJSON(ctx, "update_node", http.MethodPatch, "/v1/nodes/"+id, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteNode removes a node.
func (c *Client) DeleteNode(ctx context.Context, id string) error {
	return c.doJSON(ctx, "delete_node", http.MethodDelete, "/v1/nodes/"+id, nil, nil, nil)
}

// Comment operations

// ListComments fetches all comments of a node, replies nested.
func (c *Client) ListComments(ctx context.Context, nodeID string) ([]CommentDTO, error) {
	var out []CommentDTO
	if err := c.doJSON(ctx, "list_comments", http.MethodGet, "/v1/nodes/"+nodeID+"/comments", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateComment posts a comment or a one-level reply.
func (c *Client) CreateComment(ctx context.Context, req CreateCommentRequest) (*CommentDTO, error) {
	var out CommentDTO
	if err := c.doJSON(ctx, "create_comment", http.MethodPost, "/v1/comments", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateComment edits a comment body.
func (c *Client) UpdateComment(ctx context.Context, id, body string) (*CommentDTO, error) {
	var out CommentDTO
	req := map[string]string{"body": body}
	if err := c.doJSON(ctx, "update_comment", http.MethodPatch, "/v1/comments/"+id, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.doJSON(ctx, "delete_comment", http.MethodDelete, "/v1/comments/"+id, nil, nil, nil)
}

// Reaction operations

// ToggleReaction flips the current user's reaction of the given kind and
// returns the server's resulting counter.
func (c *Client) ToggleReaction(ctx context.Context, nodeID, kind string) (*ReactionStateDTO, error) {
	var out ReactionStateDTO
	path := "/v1/nodes/" + nodeID + "/reactions/" + kind + "/toggle"
	if err := c.doJSON(ctx, "toggle_reaction", http.MethodPost, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListReactedUsers fetches one cursor-delimited page of the reaction roster.
func (c *Client) ListReactedUsers(ctx context.Context, nodeID, kind string, limit int, cursor string) (*ReactedUsersPageDTO, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	var out ReactedUsersPageDTO
	path := "/v1/nodes/" + nodeID + "/reactions/" + kind + "/users"
	if err := c.doJSON(ctx, "list_reacted_users", http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tag operations

// PopularTags fetches the popular tag list for discovery.
func (c *Client) PopularTags(ctx context.Context) ([]TagDTO, error) {
	var out []TagDTO
	if err := c.doJSON(ctx, "popular_tags", http.MethodGet, "/v1/tags/popular", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SuggestTags fetches tag suggestions for a partial query.
func (c *Client) SuggestTags(ctx context.Context, q string) ([]TagDTO, error) {
	query := url.Values{}
	query.Set("q", q)

	var out []TagDTO
	if err := c.doJSON(ctx, "suggest_tags", http.MethodGet, "/v1/tags/suggest", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// User and auth operations

// CurrentUser fetches the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*UserDTO, error) {
	var out UserDTO
	if err := c.doJSON(ctx, "current_user", http.MethodGet, "/v1/users/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDisplayName renames the authenticated user.
func (c *Client) UpdateDisplayName(ctx context.Context, name string) (*UserDTO, error) {
	var out UserDTO
	req := UpdateDisplayNameRequest{DisplayName: name}
	if err := c.doJSON(ctx, "update_display_name", http.MethodPatch, "/v1/users/me", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExchangeCode trades a PKCE authorization code for a token pair and the
// user profile.
func (c *Client) ExchangeCode(ctx context.Context, code, verifier string) (*TokenResponseDTO, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("code_verifier", verifier)
	form.Set("client_id", c.clientID)
	form.Set("redirect_uri", c.redirectURI)

	var out TokenResponseDTO
	if err := c.doForm(ctx, "exchange_code", c.tokenURL, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshToken trades a refresh token for a fresh access token.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponseDTO, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", c.clientID)

	var out TokenResponseDTO
	if err := c.doForm(ctx, "refresh_token", c.tokenURL, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the session remotely. Local state is cleared by the
// session manager regardless of the outcome here.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, "logout", http.MethodPost, "/v1/auth/logout", nil, nil, nil)
}
