// Package locator resolves route-supplied document slugs to content records,
// applying the access gate of the owning section. Lookup runs fresh on every
// navigation; freshness across authoring mutations is the repository cache's
// responsibility, not the locator's.
package locator

import (
	"context"

	"github.com/goliatone/go-docs/access"
	"github.com/goliatone/go-docs/internal/logging"
	istructure "github.com/goliatone/go-docs/internal/structure"
	"github.com/goliatone/go-docs/pkg/interfaces"
	"github.com/goliatone/go-docs/structure"
)

// Outcome classifies the result of a slug lookup.
type Outcome string

const (
	// OutcomeOK means the document was found and the identity may view it.
	OutcomeOK Outcome = "ok"
	// OutcomeNotFound covers missing slugs and orphaned documents alike.
	OutcomeNotFound Outcome = "not_found"
	// OutcomeDenied means the document exists but the identity lacks the
	// owning section's visibility.
	OutcomeDenied Outcome = "denied"
	// OutcomeError means the store could not answer.
	OutcomeError Outcome = "error"
)

// Every placeholder is valid markdown rendered through the normal pipeline,
// keeping the rendering path uniform across outcomes.
const (
	notFoundContent = "# Not Found\n\nThe document you are looking for does not exist or has been moved.\n"
	deniedContent   = "# Access Denied\n\nYou need to sign in with sufficient access to view this document.\n"
	errorContent    = "# Something Went Wrong\n\nWe could not load this document. Please try again later.\n"
)

// Result carries the lookup outcome plus the markdown to render. On denial
// the real document and its metadata are withheld entirely; Content is the
// sentinel body.
type Result struct {
	Outcome  Outcome
	Document *structure.Document
	Section  *structure.Section
	Content  string
}

// Service performs slug lookups against the content store.
type Service struct {
	sections  istructure.SectionRepository
	documents istructure.DocumentRepository
	logger    interfaces.Logger
}

// Option configures the locator service.
type Option func(*Service)

// WithLogger injects the logger used by the locator.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a locator over the given repositories.
func New(sections istructure.SectionRepository, documents istructure.DocumentRepository, opts ...Option) *Service {
	s := &Service{
		sections:  sections,
		documents: documents,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Locate resolves a slug for the given identity. The returned Result is
// never nil; err is non-nil only for store failures, in which case Result
// still carries the error placeholder so callers render uniformly.
func (s *Service) Locate(ctx context.Context, slug string, id access.Identity) (*Result, error) {
	doc, err := s.documents.GetBySlug(ctx, slug)
	if err != nil {
		if structure.IsNotFound(err) {
			return &Result{Outcome: OutcomeNotFound, Content: notFoundContent}, nil
		}
		s.logger.Error("locator.fetch_failed", "slug", slug, "error", err)
		return &Result{Outcome: OutcomeError, Content: errorContent}, err
	}

	section, err := s.sections.GetByID(ctx, doc.SectionID)
	if err != nil {
		if structure.IsNotFound(err) {
			// Orphaned document: the owning section is gone, so there is no
			// visibility class to gate on. Treat as missing rather than leak.
			s.logger.Warn("locator.orphaned_document", "slug", slug, "section_id", doc.SectionID)
			return &Result{Outcome: OutcomeNotFound, Content: notFoundContent}, nil
		}
		s.logger.Error("locator.section_fetch_failed", "slug", slug, "error", err)
		return &Result{Outcome: OutcomeError, Content: errorContent}, err
	}

	visibility := access.ParseVisibility(string(section.Type))
	if !access.CanView(visibility, id) {
		return &Result{Outcome: OutcomeDenied, Content: deniedContent}, nil
	}

	return &Result{
		Outcome:  OutcomeOK,
		Document: doc,
		Section:  section,
		Content:  doc.Content,
	}, nil
}
