package structure

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-docs/access"
)

// Section is a named, ordered grouping of documents with a visibility class.
// Documents do not carry independent visibility; the owning section's type
// governs every document inside it.
type Section struct {
	bun.BaseModel `bun:"table:sections,alias:s"`

	ID        uuid.UUID         `bun:",pk,type:uuid"                      json:"id"`
	Title     string            `bun:"title,notnull"                      json:"title"`
	Type      access.Visibility `bun:"type,notnull,default:'public'"      json:"type"`
	Order     int               `bun:"display_order,notnull,default:0"    json:"order"`
	CreatedAt time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time         `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Documents []*Document `bun:"rel:has-many,join:id=section_id" json:"documents,omitempty"`
}

// Document is a single markdown content unit. ID is the store-assigned
// identity; Slug is the user-facing identifier derived from the title and
// used for routing and lookup.
type Document struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	ID        uuid.UUID `bun:",pk,type:uuid"                      json:"id"`
	Slug      string    `bun:"slug,notnull"                       json:"slug"`
	Title     string    `bun:"title,notnull"                      json:"title"`
	Content   string    `bun:"content"                            json:"content"`
	Order     int       `bun:"display_order,notnull,default:0"    json:"order"`
	SectionID uuid.UUID `bun:"section_id,notnull,type:uuid"       json:"section_id"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Section *Section `bun:"rel:belongs-to,join:section_id=id" json:"section,omitempty"`
}

// Tree is the resolved, ordered, visibility-partitioned view of all sections
// and documents. It is derived, never stored, and each instance is an
// immutable snapshot owned by the view that requested it.
type Tree struct {
	Public     []*Section `json:"public"`
	Protected  []*Section `json:"protected"`
	Privileged []*Section `json:"privileged,omitempty"`
}

// Bucket returns the sections bucketed under the given visibility class.
func (t *Tree) Bucket(v access.Visibility) []*Section {
	if t == nil {
		return nil
	}
	switch v {
	case access.VisibilityProtected:
		return t.Protected
	case access.VisibilityPrivileged:
		return t.Privileged
	default:
		return t.Public
	}
}

// Visible returns the buckets the identity is cleared to read, public first.
func (t *Tree) Visible(id access.Identity) []*Section {
	if t == nil {
		return nil
	}
	out := make([]*Section, 0, len(t.Public)+len(t.Protected)+len(t.Privileged))
	for _, v := range []access.Visibility{access.VisibilityPublic, access.VisibilityProtected, access.VisibilityPrivileged} {
		if !access.CanView(v, id) {
			continue
		}
		out = append(out, t.Bucket(v)...)
	}
	return out
}
