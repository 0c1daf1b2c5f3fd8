package interfaces

import "context"

// Session is the view of an authenticated principal exposed by the external
// auth provider. Email and Roles may be empty depending on the provider.
type Session interface {
	Authenticated() bool
	Email() string
	Roles() []string
}

// AuthProvider resolves the session attached to a request context. A nil or
// anonymous session is a valid answer; providers must not error on missing
// credentials.
type AuthProvider interface {
	CurrentSession(ctx context.Context) (Session, error)
}
