// Package http exposes the portal over a chi router: reader routes for
// documents, a search endpoint, the resolved structure, and a privileged
// admin API for authoring. Presentation stays with the host; every endpoint
// speaks JSON with rendered HTML embedded in the payload.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-docs/internal/auth"
	"github.com/goliatone/go-docs/internal/locator"
	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/internal/media"
	"github.com/goliatone/go-docs/pkg/interfaces"
	"github.com/goliatone/go-docs/structure"
)

// Server bundles the services the HTTP layer fronts.
type Server struct {
	structure structure.Service
	locator   *locator.Service
	renderer  interfaces.MarkdownRenderer
	media     *media.Service
	resolver  *auth.Resolver
	logger    interfaces.Logger
	loginPath string
	maxUpload int64
}

// Option configures the server.
type Option func(*Server)

// WithLogger injects the logger used by HTTP handlers.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLoginPath sets where anonymous visitors are redirected from protected
// reader routes.
func WithLoginPath(path string) Option {
	return func(s *Server) {
		if path != "" {
			s.loginPath = path
		}
	}
}

// WithMaxUploadSize caps multipart upload bodies in bytes.
func WithMaxUploadSize(size int64) Option {
	return func(s *Server) {
		if size > 0 {
			s.maxUpload = size
		}
	}
}

// NewServer wires the portal services behind HTTP handlers.
func NewServer(
	structureSvc structure.Service,
	locatorSvc *locator.Service,
	renderer interfaces.MarkdownRenderer,
	mediaSvc *media.Service,
	resolver *auth.Resolver,
	opts ...Option,
) *Server {
	s := &Server{
		structure: structureSvc,
		locator:   locatorSvc,
		renderer:  renderer,
		media:     mediaSvc,
		resolver:  resolver,
		logger:    logging.NoOp(),
		loginPath: "/login",
		maxUpload: 32 << 20,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the route tree. Reader routes are public; the protected
// prefix requires an authenticated session; the admin API requires
// privileged clearance.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/docs/{slug}", s.handleDocument)
	r.Get("/api/structure", s.handleStructure)
	r.Get("/api/search", s.handleSearch)
	r.Get("/api/session", s.handleSession)

	r.Route("/protected", func(pr chi.Router) {
		pr.Use(s.requireAuthenticated)
		pr.Get("/docs/{slug}", s.handleDocument)
	})

	r.Route("/api/admin", func(ar chi.Router) {
		ar.Use(s.requirePrivileged)

		ar.Post("/sections", s.handleCreateSection)
		ar.Patch("/sections/{id}", s.handleUpdateSection)
		ar.Delete("/sections/{id}", s.handleDeleteSection)

		ar.Post("/documents", s.handleCreateDocument)
		ar.Patch("/documents/{id}", s.handleUpdateDocument)
		ar.Delete("/documents/{id}", s.handleDeleteDocument)

		ar.Post("/uploads", s.handleUpload)
	})

	return r
}

// requireAuthenticated redirects anonymous visitors to the login path.
// Reader routes redirect rather than 401 because the caller is a browser.
func (s *Server) requireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := s.resolver.Identify(req.Context())
		if !id.Authenticated {
			http.Redirect(w, req, s.loginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// requirePrivileged rejects non-privileged callers with a JSON error. The
// admin API is programmatic, so no redirects here.
func (s *Server) requirePrivileged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := s.resolver.Identify(req.Context())
		if !id.Privileged {
			respondError(w, http.StatusForbidden, "privileged access required")
			return
		}
		next.ServeHTTP(w, req)
	})
}
