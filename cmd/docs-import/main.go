// Command docs-import loads a directory of markdown files into the content
// store. Each file carries YAML frontmatter naming its title and section;
// sections are created on first use.
//
// Frontmatter fields:
//
//	title:        document title (required)
//	section:      owning section title (required)
//	section_type: public, protected, or privileged (defaults to public)
//	slug:         explicit slug (defaults to a title-derived slug)
//	order:        display order within the section
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	docs "github.com/goliatone/go-docs"
	"github.com/goliatone/go-docs/access"
	"github.com/goliatone/go-docs/internal/logging/gologger"
	"github.com/goliatone/go-docs/structure"
)

type documentMatter struct {
	Title       string `yaml:"title"`
	Section     string `yaml:"section"`
	SectionType string `yaml:"section_type"`
	Slug        string `yaml:"slug"`
	Order       int    `yaml:"order"`
}

func main() {
	_ = godotenv.Load()

	dir := flag.String("dir", "content", "directory of markdown files to import")
	dsn := flag.String("dsn", os.Getenv("DOCS_DATABASE_DSN"), "sqlite database dsn")
	flag.Parse()

	provider, err := gologger.NewProvider(gologger.Config{Level: "info", Format: "console"})
	if err != nil {
		panic(err)
	}
	logger := provider.GetLogger("docs-import")

	if *dsn == "" {
		logger.Fatal("a database dsn is required, set -dsn or DOCS_DATABASE_DSN")
	}

	sqlDB, err := sql.Open("sqlite3", *dsn)
	if err != nil {
		logger.Fatal("open database", "dsn", *dsn, "error", err)
	}
	defer sqlDB.Close()

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	ctx := context.Background()
	if err := docs.CreateSchema(ctx, db); err != nil {
		logger.Fatal("create schema", "error", err)
	}

	cfg := docs.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.DSN = *dsn
	cfg.Cache.Enabled = false

	module, err := docs.New(cfg, docs.WithDB(db), docs.WithLoggerProvider(provider))
	if err != nil {
		logger.Fatal("initialize module", "error", err)
	}

	imported, err := importDirectory(ctx, module.Structure(), *dir)
	if err != nil {
		logger.Fatal("import failed", "dir", *dir, "error", err)
	}
	logger.Info("import complete", "dir", *dir, "documents", imported)
}

func importDirectory(ctx context.Context, svc structure.Service, dir string) (int, error) {
	sections, err := loadSections(ctx, svc)
	if err != nil {
		return 0, err
	}

	imported := 0
	err = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		if err := importFile(ctx, svc, sections, path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		imported++
		return nil
	})
	return imported, err
}

func importFile(ctx context.Context, svc structure.Service, sections map[string]*structure.Section, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var matter documentMatter
	body, err := frontmatter.Parse(f, &matter)
	if err != nil {
		return fmt.Errorf("parse frontmatter: %w", err)
	}
	if strings.TrimSpace(matter.Title) == "" {
		return fmt.Errorf("frontmatter is missing a title")
	}
	if strings.TrimSpace(matter.Section) == "" {
		return fmt.Errorf("frontmatter is missing a section")
	}

	section, err := ensureSection(ctx, svc, sections, matter.Section, matter.SectionType)
	if err != nil {
		return err
	}

	_, err = svc.CreateDocument(ctx, structure.CreateDocumentRequest{
		SectionID: section.ID,
		Title:     matter.Title,
		Slug:      matter.Slug,
		Content:   string(body),
		Order:     matter.Order,
	})
	return err
}

// ensureSection reuses an existing section by title or creates it with the
// requested visibility. A type on a later file never demotes an existing
// section.
func ensureSection(ctx context.Context, svc structure.Service, sections map[string]*structure.Section, title, sectionType string) (*structure.Section, error) {
	key := strings.ToLower(strings.TrimSpace(title))
	if section, ok := sections[key]; ok {
		return section, nil
	}

	section, err := svc.CreateSection(ctx, structure.CreateSectionRequest{
		Title: strings.TrimSpace(title),
		Type:  access.ParseVisibility(sectionType),
		Order: len(sections),
	})
	if err != nil {
		return nil, err
	}
	sections[key] = section
	return section, nil
}

func loadSections(ctx context.Context, svc structure.Service) (map[string]*structure.Section, error) {
	tree, err := svc.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	sections := map[string]*structure.Section{}
	for _, visibility := range []access.Visibility{access.VisibilityPublic, access.VisibilityProtected, access.VisibilityPrivileged} {
		for _, section := range tree.Bucket(visibility) {
			sections[strings.ToLower(section.Title)] = section
		}
	}
	return sections, nil
}
