package docs_test

import (
	"context"
	"strings"
	"testing"

	docs "github.com/goliatone/go-docs"
	"github.com/goliatone/go-docs/access"
	"github.com/goliatone/go-docs/structure"
)

func newMemoryModule(t *testing.T) *docs.Module {
	t.Helper()
	cfg := docs.DefaultConfig()
	cfg.Cache.Enabled = false

	module, err := docs.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	return module
}

func TestModuleEndToEnd(t *testing.T) {
	t.Parallel()

	module := newMemoryModule(t)
	ctx := context.Background()
	svc := module.Structure()

	section, err := svc.CreateSection(ctx, structure.CreateSectionRequest{
		Title: "Guides",
		Type:  access.VisibilityPublic,
	})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}

	doc, err := svc.CreateDocument(ctx, structure.CreateDocumentRequest{
		SectionID: section.ID,
		Title:     "Getting Started",
		Content:   "# Getting Started\n\nInstall the binary and run it.",
	})
	if err != nil {
		t.Fatalf("create document: %v", err)
	}
	if doc.Slug != "getting-started" {
		t.Fatalf("slug = %q", doc.Slug)
	}

	result, err := module.Locator().Locate(ctx, doc.Slug, access.Anonymous)
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if result.Document == nil || result.Document.ID != doc.ID {
		t.Fatal("locate should return the created document")
	}

	rendered, err := module.Markdown().Render(result.Content)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(rendered.HTML, "<h1") {
		t.Fatalf("rendered html = %q", rendered.HTML)
	}

	tree, err := svc.Resolve(ctx)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	matches := module.Search(tree, access.Anonymous, "install")
	if len(matches) != 1 || matches[0].Slug != doc.Slug {
		t.Fatalf("search matches = %+v", matches)
	}
	if matches[0].Path != "/docs/getting-started" {
		t.Fatalf("match path = %q", matches[0].Path)
	}
}

func TestModuleMutationsRefreshResolvedTree(t *testing.T) {
	t.Parallel()

	module := newMemoryModule(t)
	ctx := context.Background()
	svc := module.Structure()

	section, err := svc.CreateSection(ctx, structure.CreateSectionRequest{Title: "Notes"})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}

	tree, err := svc.Resolve(ctx)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(tree.Public) != 1 {
		t.Fatalf("public sections = %d", len(tree.Public))
	}

	if err := svc.DeleteSection(ctx, structure.DeleteSectionRequest{ID: section.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	tree, err = svc.Resolve(ctx)
	if err != nil {
		t.Fatalf("resolve after delete: %v", err)
	}
	if len(tree.Public) != 0 {
		t.Fatal("deleted section still visible in resolved tree")
	}
}

func TestModuleRouterMounts(t *testing.T) {
	t.Parallel()

	module := newMemoryModule(t)
	if module.Router() == nil {
		t.Fatal("router should be constructed")
	}
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestModuleRegisterCommands(t *testing.T) {
	t.Parallel()

	module := newMemoryModule(t)
	registry := &recordingRegistry{}

	result, err := module.RegisterCommands(docs.CommandRegistrationOptions{Registry: registry})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) != 6 {
		t.Fatalf("handlers = %d, want 6", len(result.Handlers))
	}
	if len(registry.handlers) != 6 {
		t.Fatalf("registry received %d handlers, want 6", len(registry.handlers))
	}
}

func TestModuleRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := docs.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.DSN = ""

	if _, err := docs.New(cfg); err == nil {
		t.Fatal("bun storage without dsn should fail validation")
	}
}
