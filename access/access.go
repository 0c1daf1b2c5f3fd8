// Package access implements the visibility gate for sections and documents.
// Visibility is an ordered ladder rather than a set of independent flags so
// the policy stays a single comparison as new classes appear.
package access

import "strings"

// Visibility classifies who may view a section and the documents it owns.
type Visibility string

const (
	// VisibilityPublic content is readable by any identity, anonymous included.
	VisibilityPublic Visibility = "public"
	// VisibilityProtected content requires an authenticated identity.
	VisibilityProtected Visibility = "protected"
	// VisibilityPrivileged content requires a privileged identity.
	VisibilityPrivileged Visibility = "privileged"
)

// rank orders the ladder: public < protected < privileged.
func (v Visibility) rank() int {
	switch v {
	case VisibilityProtected:
		return 1
	case VisibilityPrivileged:
		return 2
	default:
		return 0
	}
}

// Valid reports whether v names a known visibility class.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityProtected, VisibilityPrivileged:
		return true
	}
	return false
}

// ParseVisibility normalizes a stored visibility value. Unknown or empty
// values default to public, matching the store adapter's defaulting rules.
func ParseVisibility(value string) Visibility {
	switch Visibility(strings.ToLower(strings.TrimSpace(value))) {
	case VisibilityProtected:
		return VisibilityProtected
	case VisibilityPrivileged:
		return VisibilityPrivileged
	default:
		return VisibilityPublic
	}
}

// Identity is the immutable, explicitly threaded view of the requesting
// principal. It is derived once at the auth boundary and passed by value;
// nothing in the core reads ambient auth state.
type Identity struct {
	Authenticated bool
	Privileged    bool
}

// Anonymous is the zero identity: unauthenticated, unprivileged.
var Anonymous = Identity{}

// Clearance maps an identity onto the visibility ladder.
func (id Identity) Clearance() Visibility {
	switch {
	case id.Privileged:
		return VisibilityPrivileged
	case id.Authenticated:
		return VisibilityProtected
	default:
		return VisibilityPublic
	}
}

// CanView reports whether the identity may read content of the given
// visibility class. The gate is a pure function of its inputs.
func CanView(v Visibility, id Identity) bool {
	return id.Clearance().rank() >= v.rank()
}
