package structure

import (
	"context"

	"github.com/google/uuid"

	"github.com/goliatone/go-docs/structure"
)

// SectionRepository abstracts the sections collection of the content store.
type SectionRepository interface {
	Create(ctx context.Context, section *structure.Section) (*structure.Section, error)
	GetByID(ctx context.Context, id uuid.UUID) (*structure.Section, error)
	List(ctx context.Context) ([]*structure.Section, error)
	Update(ctx context.Context, section *structure.Section) (*structure.Section, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DocumentRepository abstracts the documents collection of the content store.
// GetBySlug matches the user-facing slug field, never the store identity.
type DocumentRepository interface {
	Create(ctx context.Context, doc *structure.Document) (*structure.Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (*structure.Document, error)
	GetBySlug(ctx context.Context, slug string) (*structure.Document, error)
	List(ctx context.Context) ([]*structure.Document, error)
	ListBySection(ctx context.Context, sectionID uuid.UUID) ([]*structure.Document, error)
	Update(ctx context.Context, doc *structure.Document) (*structure.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CacheInvalidator is an optional repository extension. Repositories that
// cache reads must drop their entries when the authoring surface mutates
// content, otherwise the locator could serve stale documents.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}
