package domain

// User is the authenticated user's profile snapshot.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// TokenPair is the access/refresh token pair returned by the auth backend.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Session is the current authenticated identity plus its tokens.
// The zero value is the logged-out state.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user,omitempty"`
}

// Authenticated reports whether a user is logged in. Tokens and user are
// written atomically, so a non-nil user implies a full token pair.
func (s Session) Authenticated() bool {
	return s.User != nil && s.AccessToken != ""
}

// Clone returns a deep copy of the session.
func (s Session) Clone() Session {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}
