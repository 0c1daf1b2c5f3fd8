package structure

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-docs/access"
	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/pkg/interfaces"
	"github.com/goliatone/go-docs/structure"
)

type service struct {
	sections  SectionRepository
	documents DocumentRepository
	logger    interfaces.Logger
	now       func() time.Time
}

// Option configures the structure service.
type Option func(*service)

// WithLogger injects the logger used by the service. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the timestamp source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs the structure service over the provided repositories.
func NewService(sections SectionRepository, documents DocumentRepository, opts ...Option) structure.Service {
	s := &service{
		sections:  sections,
		documents: documents,
		logger:    logging.NoOp(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve joins documents to sections in a single pass over each collection.
// Documents are bucketed by section id first, then each level is
// stable-sorted ascending by order so equal orders keep insertion order.
// Orphaned documents fall out naturally: their bucket has no owning section.
func (s *service) Resolve(ctx context.Context) (*structure.Tree, error) {
	sections, err := s.sections.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("structure: fetch sections: %w", err)
	}
	documents, err := s.documents.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("structure: fetch documents: %w", err)
	}

	buckets := make(map[uuid.UUID][]*structure.Document, len(sections))
	for _, doc := range documents {
		buckets[doc.SectionID] = append(buckets[doc.SectionID], doc)
	}

	tree := &structure.Tree{}
	for _, section := range sections {
		section.Type = access.ParseVisibility(string(section.Type))
		section.Documents = buckets[section.ID]
		sort.SliceStable(section.Documents, func(i, j int) bool {
			return section.Documents[i].Order < section.Documents[j].Order
		})

		switch section.Type {
		case access.VisibilityProtected:
			tree.Protected = append(tree.Protected, section)
		case access.VisibilityPrivileged:
			tree.Privileged = append(tree.Privileged, section)
		default:
			tree.Public = append(tree.Public, section)
		}
	}

	for _, bucket := range [][]*structure.Section{tree.Public, tree.Protected, tree.Privileged} {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Order < bucket[j].Order
		})
	}

	return tree, nil
}

func (s *service) GetSection(ctx context.Context, id uuid.UUID) (*structure.Section, error) {
	if id == uuid.Nil {
		return nil, structure.ErrSectionIDRequired
	}
	return s.sections.GetByID(ctx, id)
}

func (s *service) CreateSection(ctx context.Context, req structure.CreateSectionRequest) (*structure.Section, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, structure.ErrSectionTitleRequired
	}

	now := s.now()
	section := &structure.Section{
		ID:        uuid.New(),
		Title:     title,
		Type:      access.ParseVisibility(string(req.Type)),
		Order:     req.Order,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.sections.Create(ctx, section)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *service) UpdateSection(ctx context.Context, req structure.UpdateSectionRequest) (*structure.Section, error) {
	if req.ID == uuid.Nil {
		return nil, structure.ErrSectionIDRequired
	}

	section, err := s.sections.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, structure.ErrSectionTitleRequired
		}
		section.Title = title
	}
	if req.Type != nil {
		section.Type = access.ParseVisibility(string(*req.Type))
	}
	if req.Order != nil {
		section.Order = *req.Order
	}
	section.UpdatedAt = s.now()

	updated, err := s.sections.Update(ctx, section)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

// DeleteSection cascades: owned documents go first, one delete per record.
// Any child failure aborts the cascade with the section still in place so
// surviving documents keep their parent.
func (s *service) DeleteSection(ctx context.Context, req structure.DeleteSectionRequest) error {
	if req.ID == uuid.Nil {
		return structure.ErrSectionIDRequired
	}

	if _, err := s.sections.GetByID(ctx, req.ID); err != nil {
		return err
	}

	docs, err := s.documents.ListBySection(ctx, req.ID)
	if err != nil {
		return fmt.Errorf("structure: list section documents: %w", err)
	}
	for _, doc := range docs {
		if err := s.documents.Delete(ctx, doc.ID); err != nil {
			return fmt.Errorf("structure: cascade delete document %s: %w", doc.Slug, err)
		}
	}

	if err := s.sections.Delete(ctx, req.ID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) GetDocumentBySlug(ctx context.Context, slug string) (*structure.Document, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, structure.ErrSlugRequired
	}
	return s.documents.GetBySlug(ctx, slug)
}

func (s *service) CreateDocument(ctx context.Context, req structure.CreateDocumentRequest) (*structure.Document, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, structure.ErrDocumentTitleRequired
	}
	if req.SectionID == uuid.Nil {
		return nil, structure.ErrSectionIDRequired
	}
	if _, err := s.sections.GetByID(ctx, req.SectionID); err != nil {
		return nil, err
	}

	slug, err := s.resolveSlug(ctx, req.Slug, title, uuid.Nil)
	if err != nil {
		return nil, err
	}

	now := s.now()
	doc := &structure.Document{
		ID:        uuid.New(),
		Slug:      slug,
		Title:     title,
		Content:   req.Content,
		Order:     req.Order,
		SectionID: req.SectionID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.documents.Create(ctx, doc)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *service) UpdateDocument(ctx context.Context, req structure.UpdateDocumentRequest) (*structure.Document, error) {
	if req.ID == uuid.Nil {
		return nil, structure.ErrDocumentIDRequired
	}

	doc, err := s.documents.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, structure.ErrDocumentTitleRequired
		}
		doc.Title = title
		if req.Slug == nil {
			slug, err := s.resolveSlug(ctx, "", title, doc.ID)
			if err != nil {
				return nil, err
			}
			doc.Slug = slug
		}
	}
	if req.Slug != nil {
		slug, err := s.resolveSlug(ctx, *req.Slug, doc.Title, doc.ID)
		if err != nil {
			return nil, err
		}
		doc.Slug = slug
	}
	if req.Content != nil {
		doc.Content = *req.Content
	}
	if req.Order != nil {
		doc.Order = *req.Order
	}
	if req.SectionID != nil {
		if *req.SectionID == uuid.Nil {
			return nil, structure.ErrSectionIDRequired
		}
		if _, err := s.sections.GetByID(ctx, *req.SectionID); err != nil {
			return nil, err
		}
		doc.SectionID = *req.SectionID
	}
	doc.UpdatedAt = s.now()

	updated, err := s.documents.Update(ctx, doc)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *service) DeleteDocument(ctx context.Context, req structure.DeleteDocumentRequest) error {
	if req.ID == uuid.Nil {
		return structure.ErrDocumentIDRequired
	}
	if err := s.documents.Delete(ctx, req.ID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// resolveSlug derives a slug when none is supplied and enforces uniqueness
// across all documents, not just the owning section. The locator assumes a
// slug matches exactly one record; write time is where that holds.
func (s *service) resolveSlug(ctx context.Context, requested, title string, selfID uuid.UUID) (string, error) {
	raw := strings.TrimSpace(requested)
	if raw == "" {
		raw = title
	}
	slug, err := structure.NormalizeSlug(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s", structure.ErrSlugInvalid, raw)
	}
	if slug == "" {
		return "", structure.ErrSlugRequired
	}

	existing, err := s.documents.GetBySlug(ctx, slug)
	if err != nil {
		if structure.IsNotFound(err) {
			return slug, nil
		}
		return "", err
	}
	if existing.ID != selfID {
		return "", &structure.SlugExistsError{Slug: slug}
	}
	return slug, nil
}

// invalidate drops cached reads on repositories that support it. Failures
// are logged, not returned: the mutation itself already succeeded.
func (s *service) invalidate(ctx context.Context) {
	for _, repo := range []any{s.sections, s.documents} {
		invalidator, ok := repo.(CacheInvalidator)
		if !ok {
			continue
		}
		if err := invalidator.InvalidateCache(ctx); err != nil {
			s.logger.Warn("structure.cache.invalidate_failed", "error", err)
		}
	}
}
