package auth

import "strings"

// Credentials holds the registry bearer token. The token is opaque: it is
// injected at construction and never refreshed or validated here.
type Credentials struct {
	token string
}

// NewStatic creates credentials from a fixed token.
func NewStatic(token string) Credentials {
	return Credentials{token: strings.TrimSpace(token)}
}

func (c Credentials) IsZero() bool { return c.token == "" }

// Header returns the Authorization header value, or "" when no token is set.
func (c Credentials) Header() string {
	if c.token == "" {
		return ""
	}
	return "Bearer " + c.token
}
