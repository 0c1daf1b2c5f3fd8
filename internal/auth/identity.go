// Package auth maps host-provided sessions onto access identities. The
// module never authenticates anyone itself; the host's AuthProvider answers
// who is calling, and this package decides what that means for visibility.
package auth

import (
	"context"
	"strings"

	"github.com/goliatone/go-docs/access"
	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/pkg/interfaces"
)

// Resolver derives an access.Identity from the current session. Privileged
// clearance comes from a role claim first, with an exact-match admin email
// list as fallback for hosts that do not issue role claims.
type Resolver struct {
	provider        interfaces.AuthProvider
	privilegedRoles map[string]struct{}
	adminEmails     map[string]struct{}
	logger          interfaces.Logger
}

// Option configures the resolver.
type Option func(*Resolver)

// WithPrivilegedRoles sets the role claims that grant privileged clearance.
func WithPrivilegedRoles(roles ...string) Option {
	return func(r *Resolver) {
		r.privilegedRoles = normalizeSet(roles)
	}
}

// WithAdminEmails sets the emails granted privileged clearance by exact,
// case-insensitive match.
func WithAdminEmails(emails ...string) Option {
	return func(r *Resolver) {
		r.adminEmails = normalizeSet(emails)
	}
}

// WithLogger injects the logger used by the resolver.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver constructs a resolver over the host's auth provider. A nil
// provider yields anonymous identities, which keeps public-only deployments
// working without any auth wiring.
func NewResolver(provider interfaces.AuthProvider, opts ...Option) *Resolver {
	r := &Resolver{
		provider:        provider,
		privilegedRoles: normalizeSet([]string{"admin"}),
		adminEmails:     map[string]struct{}{},
		logger:          logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Identify resolves the caller's identity. Provider failures degrade to
// anonymous rather than erroring: a broken session must never grant access,
// and the reader can always serve public content.
func (r *Resolver) Identify(ctx context.Context) access.Identity {
	if r.provider == nil {
		return access.Anonymous
	}

	session, err := r.provider.CurrentSession(ctx)
	if err != nil {
		r.logger.Warn("auth.session_unavailable", "error", err)
		return access.Anonymous
	}
	if session == nil || !session.Authenticated() {
		return access.Anonymous
	}

	return access.Identity{
		Authenticated: true,
		Privileged:    r.isPrivileged(session),
	}
}

func (r *Resolver) isPrivileged(session interfaces.Session) bool {
	for _, role := range session.Roles() {
		if _, ok := r.privilegedRoles[normalize(role)]; ok {
			return true
		}
	}
	if email := normalize(session.Email()); email != "" {
		if _, ok := r.adminEmails[email]; ok {
			return true
		}
	}
	return false
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func normalizeSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if key := normalize(v); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}
