package structure

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-docs/access"
	"github.com/goliatone/go-docs/structure"
)

func newTestService(t *testing.T) (structure.Service, SectionRepository, DocumentRepository) {
	t.Helper()
	sections := NewMemorySectionRepository()
	documents := NewMemoryDocumentRepository()
	return NewService(sections, documents), sections, documents
}

func mustCreateSection(t *testing.T, svc structure.Service, title string, visibility access.Visibility, order int) *structure.Section {
	t.Helper()
	section, err := svc.CreateSection(context.Background(), structure.CreateSectionRequest{
		Title: title,
		Type:  visibility,
		Order: order,
	})
	if err != nil {
		t.Fatalf("create section %q: %v", title, err)
	}
	return section
}

func mustCreateDocument(t *testing.T, svc structure.Service, sectionID uuid.UUID, title string, order int) *structure.Document {
	t.Helper()
	doc, err := svc.CreateDocument(context.Background(), structure.CreateDocumentRequest{
		SectionID: sectionID,
		Title:     title,
		Order:     order,
	})
	if err != nil {
		t.Fatalf("create document %q: %v", title, err)
	}
	return doc
}

func TestResolveBucketsAndOrders(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	guides := mustCreateSection(t, svc, "Guides", access.VisibilityPublic, 2)
	intro := mustCreateSection(t, svc, "Introduction", access.VisibilityPublic, 1)
	internal := mustCreateSection(t, svc, "Team Handbook", access.VisibilityProtected, 1)
	admin := mustCreateSection(t, svc, "Operations", access.VisibilityPrivileged, 1)

	mustCreateDocument(t, svc, guides.ID, "Second Guide", 2)
	mustCreateDocument(t, svc, guides.ID, "First Guide", 1)
	mustCreateDocument(t, svc, internal.ID, "Onboarding", 1)
	mustCreateDocument(t, svc, admin.ID, "Runbooks", 1)

	tree, err := svc.Resolve(ctx)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if got := len(tree.Public); got != 2 {
		t.Fatalf("public sections = %d, want 2", got)
	}
	if got := len(tree.Protected); got != 1 {
		t.Fatalf("protected sections = %d, want 1", got)
	}
	if got := len(tree.Privileged); got != 1 {
		t.Fatalf("privileged sections = %d, want 1", got)
	}

	if tree.Public[0].ID != intro.ID || tree.Public[1].ID != guides.ID {
		t.Fatalf("public sections not ordered by display order: %q, %q", tree.Public[0].Title, tree.Public[1].Title)
	}

	docs := tree.Public[1].Documents
	if len(docs) != 2 {
		t.Fatalf("guides documents = %d, want 2", len(docs))
	}
	if docs[0].Title != "First Guide" || docs[1].Title != "Second Guide" {
		t.Fatalf("documents not ordered: %q, %q", docs[0].Title, docs[1].Title)
	}
}

func TestResolveStableOnEqualOrder(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	section := mustCreateSection(t, svc, "Notes", access.VisibilityPublic, 0)
	first := mustCreateDocument(t, svc, section.ID, "Alpha", 0)
	second := mustCreateDocument(t, svc, section.ID, "Beta", 0)

	tree, err := svc.Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	docs := tree.Public[0].Documents
	if docs[0].ID != first.ID || docs[1].ID != second.ID {
		t.Fatal("equal orders should keep insertion order")
	}
}

func TestResolveExcludesOrphans(t *testing.T) {
	t.Parallel()

	svc, _, documents := newTestService(t)
	ctx := context.Background()

	section := mustCreateSection(t, svc, "Guides", access.VisibilityPublic, 0)
	mustCreateDocument(t, svc, section.ID, "Kept", 0)

	// Insert directly to bypass the section existence check.
	orphan := &structure.Document{
		ID:        uuid.New(),
		Slug:      "orphan",
		Title:     "Orphan",
		SectionID: uuid.New(),
	}
	if _, err := documents.Create(ctx, orphan); err != nil {
		t.Fatalf("seed orphan: %v", err)
	}

	tree, err := svc.Resolve(ctx)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for _, section := range tree.Public {
		for _, doc := range section.Documents {
			if doc.ID == orphan.ID {
				t.Fatal("orphaned document should not appear in the tree")
			}
		}
	}
}

func TestCreateSectionDefaults(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	section, err := svc.CreateSection(context.Background(), structure.CreateSectionRequest{Title: "  Guides  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if section.Title != "Guides" {
		t.Fatalf("title = %q, want trimmed", section.Title)
	}
	if section.Type != access.VisibilityPublic {
		t.Fatalf("type = %q, want public default", section.Type)
	}
	if section.Order != 0 {
		t.Fatalf("order = %d, want 0 default", section.Order)
	}

	if _, err := svc.CreateSection(context.Background(), structure.CreateSectionRequest{Title: "   "}); !errors.Is(err, structure.ErrSectionTitleRequired) {
		t.Fatalf("blank title error = %v, want ErrSectionTitleRequired", err)
	}
}

func TestCreateDocumentDerivesSlug(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	section := mustCreateSection(t, svc, "Guides", access.VisibilityPublic, 0)

	doc := mustCreateDocument(t, svc, section.ID, "Getting Started!", 0)
	if doc.Slug != "getting-started" {
		t.Fatalf("slug = %q, want derived from title", doc.Slug)
	}
}

func TestCreateDocumentRejectsDuplicateSlug(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()
	section := mustCreateSection(t, svc, "Guides", access.VisibilityPublic, 0)

	mustCreateDocument(t, svc, section.ID, "Getting Started", 0)

	_, err := svc.CreateDocument(ctx, structure.CreateDocumentRequest{
		SectionID: section.ID,
		Title:     "Getting Started",
	})
	if !errors.Is(err, structure.ErrSlugExists) {
		t.Fatalf("duplicate slug error = %v, want ErrSlugExists", err)
	}

	var exists *structure.SlugExistsError
	if !errors.As(err, &exists) || exists.Slug != "getting-started" {
		t.Fatalf("error should carry the conflicting slug, got %v", err)
	}
}

func TestCreateDocumentRequiresExistingSection(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	_, err := svc.CreateDocument(context.Background(), structure.CreateDocumentRequest{
		SectionID: uuid.New(),
		Title:     "Homeless",
	})
	if !structure.IsNotFound(err) {
		t.Fatalf("missing section error = %v, want not found", err)
	}
}

func TestUpdateDocumentRederivesSlugFromTitle(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()
	section := mustCreateSection(t, svc, "Guides", access.VisibilityPublic, 0)
	doc := mustCreateDocument(t, svc, section.ID, "Old Title", 0)

	newTitle := "New Title"
	updated, err := svc.UpdateDocument(ctx, structure.UpdateDocumentRequest{
		ID:    doc.ID,
		Title: &newTitle,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "new-title" {
		t.Fatalf("slug = %q, want re-derived from new title", updated.Slug)
	}

	// An explicit slug wins over derivation.
	explicit := "custom-slug"
	another := "Another Title"
	updated, err = svc.UpdateDocument(ctx, structure.UpdateDocumentRequest{
		ID:    doc.ID,
		Title: &another,
		Slug:  &explicit,
	})
	if err != nil {
		t.Fatalf("update with slug: %v", err)
	}
	if updated.Slug != "custom-slug" {
		t.Fatalf("slug = %q, want explicit slug", updated.Slug)
	}
}

func TestUpdateDocumentKeepsOwnSlug(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()
	section := mustCreateSection(t, svc, "Guides", access.VisibilityPublic, 0)
	doc := mustCreateDocument(t, svc, section.ID, "Stable", 0)

	content := "updated body"
	updated, err := svc.UpdateDocument(ctx, structure.UpdateDocumentRequest{
		ID:      doc.ID,
		Content: &content,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != doc.Slug {
		t.Fatalf("slug changed on content-only update: %q -> %q", doc.Slug, updated.Slug)
	}
	if updated.Content != content {
		t.Fatalf("content = %q, want %q", updated.Content, content)
	}
}

func TestDeleteSectionCascades(t *testing.T) {
	t.Parallel()

	svc, sections, documents := newTestService(t)
	ctx := context.Background()

	section := mustCreateSection(t, svc, "Guides", access.VisibilityPublic, 0)
	doc := mustCreateDocument(t, svc, section.ID, "Child", 0)

	if err := svc.DeleteSection(ctx, structure.DeleteSectionRequest{ID: section.ID}); err != nil {
		t.Fatalf("delete section: %v", err)
	}

	if _, err := sections.GetByID(ctx, section.ID); !structure.IsNotFound(err) {
		t.Fatalf("section should be gone, got %v", err)
	}
	if _, err := documents.GetByID(ctx, doc.ID); !structure.IsNotFound(err) {
		t.Fatalf("document should be cascade deleted, got %v", err)
	}
}

// failingDocumentRepository wraps the memory repository and fails deletes.
type failingDocumentRepository struct {
	DocumentRepository
}

func (f *failingDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return errors.New("storage unavailable")
}

func TestDeleteSectionAbortsWhenChildDeleteFails(t *testing.T) {
	t.Parallel()

	sections := NewMemorySectionRepository()
	documents := &failingDocumentRepository{DocumentRepository: NewMemoryDocumentRepository()}
	svc := NewService(sections, documents)
	ctx := context.Background()

	section := mustCreateSection(t, svc, "Guides", access.VisibilityPublic, 0)
	mustCreateDocument(t, svc, section.ID, "Child", 0)

	if err := svc.DeleteSection(ctx, structure.DeleteSectionRequest{ID: section.ID}); err == nil {
		t.Fatal("delete should fail when a child delete fails")
	}

	if _, err := sections.GetByID(ctx, section.ID); err != nil {
		t.Fatalf("section should survive a failed cascade, got %v", err)
	}
}

func TestGetDocumentBySlug(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()
	section := mustCreateSection(t, svc, "Guides", access.VisibilityPublic, 0)
	doc := mustCreateDocument(t, svc, section.ID, "Findable", 0)

	got, err := svc.GetDocumentBySlug(ctx, doc.Slug)
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if got.ID != doc.ID {
		t.Fatalf("got document %s, want %s", got.ID, doc.ID)
	}

	if _, err := svc.GetDocumentBySlug(ctx, "missing"); !structure.IsNotFound(err) {
		t.Fatalf("missing slug error = %v, want not found", err)
	}
	if _, err := svc.GetDocumentBySlug(ctx, "  "); !errors.Is(err, structure.ErrSlugRequired) {
		t.Fatalf("blank slug error = %v, want ErrSlugRequired", err)
	}
}

type cacheTrackingSectionRepository struct {
	SectionRepository
	invalidations int
}

func (r *cacheTrackingSectionRepository) InvalidateCache(context.Context) error {
	r.invalidations++
	return nil
}

type cacheTrackingDocumentRepository struct {
	DocumentRepository
	invalidations int
}

func (r *cacheTrackingDocumentRepository) InvalidateCache(context.Context) error {
	r.invalidations++
	return nil
}

func TestMutationsInvalidateRepositoryCaches(t *testing.T) {
	t.Parallel()

	sections := &cacheTrackingSectionRepository{SectionRepository: NewMemorySectionRepository()}
	documents := &cacheTrackingDocumentRepository{DocumentRepository: NewMemoryDocumentRepository()}
	svc := NewService(sections, documents)
	ctx := context.Background()

	assertInvalidations := func(step string, want int) {
		t.Helper()
		if sections.invalidations != want || documents.invalidations != want {
			t.Fatalf("%s: invalidations = %d/%d, want %d on both repositories",
				step, sections.invalidations, documents.invalidations, want)
		}
	}

	section, err := svc.CreateSection(ctx, structure.CreateSectionRequest{Title: "Guides"})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	assertInvalidations("create section", 1)

	title := "Handbook"
	if _, err := svc.UpdateSection(ctx, structure.UpdateSectionRequest{ID: section.ID, Title: &title}); err != nil {
		t.Fatalf("update section: %v", err)
	}
	assertInvalidations("update section", 2)

	doc, err := svc.CreateDocument(ctx, structure.CreateDocumentRequest{SectionID: section.ID, Title: "Intro"})
	if err != nil {
		t.Fatalf("create document: %v", err)
	}
	assertInvalidations("create document", 3)

	content := "updated body"
	if _, err := svc.UpdateDocument(ctx, structure.UpdateDocumentRequest{ID: doc.ID, Content: &content}); err != nil {
		t.Fatalf("update document: %v", err)
	}
	assertInvalidations("update document", 4)

	if err := svc.DeleteDocument(ctx, structure.DeleteDocumentRequest{ID: doc.ID}); err != nil {
		t.Fatalf("delete document: %v", err)
	}
	assertInvalidations("delete document", 5)

	if err := svc.DeleteSection(ctx, structure.DeleteSectionRequest{ID: section.ID}); err != nil {
		t.Fatalf("delete section: %v", err)
	}
	assertInvalidations("delete section", 6)

	if _, err := svc.CreateSection(ctx, structure.CreateSectionRequest{}); err == nil {
		t.Fatal("blank title should be rejected")
	}
	assertInvalidations("rejected mutation", 6)
}
