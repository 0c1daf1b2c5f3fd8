package structure

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-docs/structure"
)

const (
	sectionNamespace  = "section"
	documentNamespace = "document"
)

// BunSectionRepository implements SectionRepository with optional caching.
type BunSectionRepository struct {
	repo         repository.Repository[*structure.Section]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunSectionRepository creates a section repository without caching.
func NewBunSectionRepository(db *bun.DB) *BunSectionRepository {
	return NewBunSectionRepositoryWithCache(db, nil, nil)
}

// NewBunSectionRepositoryWithCache creates a section repository with caching services.
func NewBunSectionRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunSectionRepository {
	base := NewSectionRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = cachePrefix(sectionNamespace)
	}
	return &BunSectionRepository{
		repo:         base,
		cacheService: svc,
		cachePrefix:  prefix,
	}
}

func (r *BunSectionRepository) Create(ctx context.Context, section *structure.Section) (*structure.Section, error) {
	record, err := r.repo.Create(ctx, section)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunSectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*structure.Section, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "section", id.String())
	}
	return record, nil
}

func (r *BunSectionRepository) List(ctx context.Context) ([]*structure.Section, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunSectionRepository) Update(ctx context.Context, section *structure.Section) (*structure.Section, error) {
	record, err := r.repo.Update(ctx, section)
	if err != nil {
		return nil, mapRepositoryError(err, "section", section.ID.String())
	}
	return record, nil
}

func (r *BunSectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &structure.Section{ID: id}); err != nil {
		return mapRepositoryError(err, "section", id.String())
	}
	return nil
}

// InvalidateCache drops cached section reads after a mutation.
func (r *BunSectionRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

// BunDocumentRepository implements DocumentRepository with optional caching.
type BunDocumentRepository struct {
	repo         repository.Repository[*structure.Document]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunDocumentRepository creates a document repository without caching.
func NewBunDocumentRepository(db *bun.DB) *BunDocumentRepository {
	return NewBunDocumentRepositoryWithCache(db, nil, nil)
}

// NewBunDocumentRepositoryWithCache creates a document repository with caching services.
func NewBunDocumentRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunDocumentRepository {
	base := NewDocumentRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = cachePrefix(documentNamespace)
	}
	return &BunDocumentRepository{
		repo:         base,
		cacheService: svc,
		cachePrefix:  prefix,
	}
}

func (r *BunDocumentRepository) Create(ctx context.Context, doc *structure.Document) (*structure.Document, error) {
	record, err := r.repo.Create(ctx, doc)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*structure.Document, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "document", id.String())
	}
	return record, nil
}

func (r *BunDocumentRepository) GetBySlug(ctx context.Context, slug string) (*structure.Document, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "document", slug)
	}
	return record, nil
}

func (r *BunDocumentRepository) List(ctx context.Context) ([]*structure.Document, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunDocumentRepository) ListBySection(ctx context.Context, sectionID uuid.UUID) ([]*structure.Document, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.section_id = ?", sectionID)
		}),
	)
	return records, err
}

func (r *BunDocumentRepository) Update(ctx context.Context, doc *structure.Document) (*structure.Document, error) {
	record, err := r.repo.Update(ctx, doc)
	if err != nil {
		return nil, mapRepositoryError(err, "document", doc.ID.String())
	}
	return record, nil
}

func (r *BunDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &structure.Document{ID: id}); err != nil {
		return mapRepositoryError(err, "document", id.String())
	}
	return nil
}

// InvalidateCache drops cached document reads after a mutation.
func (r *BunDocumentRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &structure.NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func cachePrefix(namespace string) string {
	if namespace == "" {
		return ""
	}
	return namespace + cache.KeySeparator
}
