package structure

import (
	"context"

	"github.com/google/uuid"

	"github.com/goliatone/go-docs/access"
)

// Service exposes structure resolution and authoring use cases.
//
// Resolve produces the full visibility-partitioned tree; authors mutate
// sections and documents through the request types below and re-resolve
// rather than patching local state.
type Service interface {
	Resolve(ctx context.Context) (*Tree, error)

	GetSection(ctx context.Context, id uuid.UUID) (*Section, error)
	CreateSection(ctx context.Context, req CreateSectionRequest) (*Section, error)
	UpdateSection(ctx context.Context, req UpdateSectionRequest) (*Section, error)
	DeleteSection(ctx context.Context, req DeleteSectionRequest) error

	GetDocumentBySlug(ctx context.Context, slug string) (*Document, error)
	CreateDocument(ctx context.Context, req CreateDocumentRequest) (*Document, error)
	UpdateDocument(ctx context.Context, req UpdateDocumentRequest) (*Document, error)
	DeleteDocument(ctx context.Context, req DeleteDocumentRequest) error
}

// CreateSectionRequest captures the fields required to create a section.
type CreateSectionRequest struct {
	Title string
	Type  access.Visibility
	Order int
}

// UpdateSectionRequest captures mutable fields for an existing section.
// Nil pointers leave the current value untouched.
type UpdateSectionRequest struct {
	ID    uuid.UUID
	Title *string
	Type  *access.Visibility
	Order *int
}

// DeleteSectionRequest removes a section and cascades to its documents.
// Documents are deleted first; if any child delete fails the section is
// retained so surviving documents keep their parent.
type DeleteSectionRequest struct {
	ID uuid.UUID
}

// CreateDocumentRequest captures the fields required to create a document.
// Slug may be left empty, in which case it is derived from the title.
type CreateDocumentRequest struct {
	SectionID uuid.UUID
	Title     string
	Slug      string
	Content   string
	Order     int
}

// UpdateDocumentRequest captures mutable fields for an existing document.
// Nil pointers leave the current value untouched. Supplying a new title
// without a slug re-derives the slug from the title.
type UpdateDocumentRequest struct {
	ID        uuid.UUID
	Title     *string
	Slug      *string
	Content   *string
	Order     *int
	SectionID *uuid.UUID
}

// DeleteDocumentRequest removes a single document.
type DeleteDocumentRequest struct {
	ID uuid.UUID
}
