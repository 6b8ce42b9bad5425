// Package auth implements the optional cookie-session gate in front of the
// listing and administrative endpoints. It is deliberately pluggable: the
// service works without it, and the static credential pair is one
// Authenticator among possible others.
package auth

import "context"

// Authenticator validates a credential pair.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) bool
}

// Static authenticates against a single configured credential pair.
type Static struct {
	username string
	password string
}

// NewStatic creates an authenticator for one fixed credential pair.
func NewStatic(username, password string) *Static {
	return &Static{
		username: username,
		password: password,
	}
}

func (s *Static) Authenticate(_ context.Context, username, password string) bool {
	return username == s.username && password == s.password
}
