// Package docs is an embeddable documentation portal: content-managed
// markdown sections and documents with visibility gating, rendering, search,
// and a privileged authoring API. Hosts construct a Module, plug in their
// session provider, and mount the router.
package docs

import (
	"context"
	"fmt"

	"github.com/go-chi/chi/v5"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-docs/access"
	"github.com/goliatone/go-docs/internal/auth"
	docshttp "github.com/goliatone/go-docs/internal/http"
	"github.com/goliatone/go-docs/internal/locator"
	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/internal/logging/gologger"
	"github.com/goliatone/go-docs/internal/markdown"
	"github.com/goliatone/go-docs/internal/media"
	"github.com/goliatone/go-docs/internal/search"
	"github.com/goliatone/go-docs/internal/storage"
	istructure "github.com/goliatone/go-docs/internal/structure"
	"github.com/goliatone/go-docs/pkg/interfaces"
	"github.com/goliatone/go-docs/structure"
)

// Module is the assembled portal. Construct with New; zero value is not usable.
type Module struct {
	config    Config
	structure structure.Service
	locator   *locator.Service
	renderer  interfaces.MarkdownRenderer
	media     *media.Service
	resolver  *auth.Resolver
	server    *docshttp.Server
	logger    interfaces.Logger
	provider  interfaces.LoggerProvider
}

// ModuleOption overrides a default dependency during construction.
type ModuleOption func(*moduleDeps)

type moduleDeps struct {
	db       *bun.DB
	auth     interfaces.AuthProvider
	storage  interfaces.ObjectStorage
	provider interfaces.LoggerProvider
}

// WithDB supplies the bun database used when Storage.Provider is "bun".
func WithDB(db *bun.DB) ModuleOption {
	return func(d *moduleDeps) {
		d.db = db
	}
}

// WithAuthProvider supplies the host's session source. Without one, every
// caller is anonymous and only public content is reachable.
func WithAuthProvider(provider interfaces.AuthProvider) ModuleOption {
	return func(d *moduleDeps) {
		d.auth = provider
	}
}

// WithObjectStorage supplies the media backend, replacing local disk.
func WithObjectStorage(store interfaces.ObjectStorage) ModuleOption {
	return func(d *moduleDeps) {
		d.storage = store
	}
}

// WithLoggerProvider supplies the logger factory, replacing the built-in
// gologger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) ModuleOption {
	return func(d *moduleDeps) {
		d.provider = provider
	}
}

// New validates the configuration and assembles the portal services.
func New(cfg Config, opts ...ModuleOption) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deps := &moduleDeps{}
	for _, opt := range opts {
		opt(deps)
	}

	provider := deps.provider
	if provider == nil {
		var err error
		provider, err = gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, fmt.Errorf("docs: logger provider: %w", err)
		}
	}

	sections, documents, err := buildRepositories(cfg, deps.db)
	if err != nil {
		return nil, err
	}

	structureSvc := istructure.NewService(sections, documents,
		istructure.WithLogger(logging.StructureLogger(provider)),
	)

	locatorSvc := locator.New(sections, documents,
		locator.WithLogger(logging.LocatorLogger(provider)),
	)

	renderer := markdown.NewPipeline(
		markdown.WithDefaultImage(cfg.Markdown.DefaultImage),
		markdown.WithExcerptLimit(cfg.Markdown.ExcerptLimit),
	)

	objectStore := deps.storage
	if objectStore == nil {
		objectStore = storage.NewLocalStorage(cfg.Media.UploadDir, cfg.Media.BaseURL)
	}
	mediaSvc := media.New(objectStore,
		media.WithKeyPrefix(cfg.Media.KeyPrefix),
		media.WithLogger(logging.MediaLogger(provider)),
	)

	resolver := auth.NewResolver(deps.auth,
		auth.WithPrivilegedRoles(cfg.Auth.PrivilegedRoles...),
		auth.WithAdminEmails(cfg.Auth.AdminEmails...),
		auth.WithLogger(logging.ModuleLogger(provider, "docs")),
	)

	server := docshttp.NewServer(structureSvc, locatorSvc, renderer, mediaSvc, resolver,
		docshttp.WithLogger(logging.HTTPLogger(provider)),
		docshttp.WithLoginPath(cfg.Auth.LoginPath),
		docshttp.WithMaxUploadSize(cfg.Media.MaxUploadSize),
	)

	return &Module{
		config:    cfg,
		structure: structureSvc,
		locator:   locatorSvc,
		renderer:  renderer,
		media:     mediaSvc,
		resolver:  resolver,
		server:    server,
		logger:    logging.ModuleLogger(provider, "docs"),
		provider:  provider,
	}, nil
}

// buildRepositories selects the store backend from configuration.
func buildRepositories(cfg Config, db *bun.DB) (istructure.SectionRepository, istructure.DocumentRepository, error) {
	switch cfg.Storage.Provider {
	case "bun":
		if db == nil {
			return nil, nil, fmt.Errorf("docs: bun storage requires WithDB")
		}
		if cfg.Cache.Enabled {
			cacheCfg := repocache.DefaultConfig()
			if cfg.Cache.DefaultTTL > 0 {
				cacheCfg.TTL = cfg.Cache.DefaultTTL
			}
			cacheService, err := repocache.NewCacheService(cacheCfg)
			if err != nil {
				return nil, nil, fmt.Errorf("docs: cache service: %w", err)
			}
			serializer := repocache.NewDefaultKeySerializer()
			return istructure.NewBunSectionRepositoryWithCache(db, cacheService, serializer),
				istructure.NewBunDocumentRepositoryWithCache(db, cacheService, serializer),
				nil
		}
		return istructure.NewBunSectionRepository(db), istructure.NewBunDocumentRepository(db), nil
	default:
		return istructure.NewMemorySectionRepository(), istructure.NewMemoryDocumentRepository(), nil
	}
}

// Structure exposes tree resolution and authoring operations.
func (m *Module) Structure() structure.Service { return m.structure }

// Locator exposes slug lookup with access gating.
func (m *Module) Locator() *locator.Service { return m.locator }

// Markdown exposes the rendering pipeline.
func (m *Module) Markdown() interfaces.MarkdownRenderer { return m.renderer }

// Media exposes upload handling.
func (m *Module) Media() *media.Service { return m.media }

// Identify resolves the calling identity through the configured auth provider.
func (m *Module) Identify(ctx context.Context) access.Identity {
	return m.resolver.Identify(ctx)
}

// Search runs a query against an already resolved tree for the identity.
func (m *Module) Search(tree *structure.Tree, id access.Identity, query string) []search.Match {
	return search.Search(tree, id, query)
}

// Router returns the HTTP surface ready to mount.
func (m *Module) Router() chi.Router {
	return m.server.Router()
}

// Logger returns the module's root logger.
func (m *Module) Logger() interfaces.Logger { return m.logger }
