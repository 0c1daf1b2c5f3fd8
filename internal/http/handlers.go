package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/goliatone/go-docs/access"
	"github.com/goliatone/go-docs/internal/locator"
	"github.com/goliatone/go-docs/internal/search"
	"github.com/goliatone/go-docs/structure"
)

type documentResponse struct {
	Outcome    string `json:"outcome"`
	Slug       string `json:"slug,omitempty"`
	Title      string `json:"title,omitempty"`
	Section    string `json:"section,omitempty"`
	HTML       string `json:"html"`
	Excerpt    string `json:"excerpt,omitempty"`
	FirstImage string `json:"first_image,omitempty"`
}

// handleDocument serves both the public and the protected reader route; the
// locator applies the access gate either way, so the protected prefix only
// adds the login redirect for anonymous browsers.
func (s *Server) handleDocument(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	slug := chi.URLParam(req, "slug")
	id := s.resolver.Identify(ctx)

	result, err := s.locator.Locate(ctx, slug, id)
	if err != nil {
		s.logger.Error("http.document.lookup_failed", "slug", slug, "error", err)
	}
	// The client may have navigated away during the store round-trip; a
	// response written now would go nowhere.
	if ctx.Err() != nil {
		return
	}

	rendered, rerr := s.renderer.Render(result.Content)
	if rerr != nil {
		s.logger.Error("http.document.render_failed", "slug", slug, "error", rerr)
		respondError(w, http.StatusInternalServerError, "failed to render document")
		return
	}

	resp := documentResponse{
		Outcome:    string(result.Outcome),
		HTML:       rendered.HTML,
		Excerpt:    rendered.Excerpt,
		FirstImage: rendered.FirstImage,
	}
	if result.Document != nil {
		resp.Slug = result.Document.Slug
		resp.Title = result.Document.Title
	}
	if result.Section != nil {
		resp.Section = result.Section.Title
	}

	respondJSON(w, statusForOutcome(result.Outcome), resp)
}

func statusForOutcome(outcome locator.Outcome) int {
	switch outcome {
	case locator.OutcomeNotFound:
		return http.StatusNotFound
	case locator.OutcomeDenied:
		return http.StatusForbidden
	case locator.OutcomeError:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}

// handleStructure returns the resolved tree filtered to what the caller may
// see. Buckets above the caller's clearance are omitted entirely.
func (s *Server) handleStructure(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	id := s.resolver.Identify(ctx)

	tree, err := s.structure.Resolve(ctx)
	if err != nil {
		s.logger.Error("http.structure.resolve_failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load structure")
		return
	}
	if ctx.Err() != nil {
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"sections": tree.Visible(id),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	id := s.resolver.Identify(ctx)
	query := req.URL.Query().Get("q")

	tree, err := s.structure.Resolve(ctx)
	if err != nil {
		s.logger.Error("http.search.resolve_failed", "error", err)
		respondError(w, http.StatusInternalServerError, "search unavailable")
		return
	}
	if ctx.Err() != nil {
		return
	}

	matches := search.Search(tree, id, query)
	if matches == nil {
		matches = []search.Match{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": matches,
	})
}

// handleSession reports the caller's clearance so host UIs can decide which
// navigation and authoring affordances to show.
func (s *Server) handleSession(w http.ResponseWriter, req *http.Request) {
	id := s.resolver.Identify(req.Context())
	respondJSON(w, http.StatusOK, map[string]bool{
		"authenticated": id.Authenticated,
		"privileged":    id.Privileged,
	})
}

type sectionPayload struct {
	Title *string `json:"title"`
	Type  *string `json:"type"`
	Order *int    `json:"order"`
}

func (s *Server) handleCreateSection(w http.ResponseWriter, req *http.Request) {
	var payload sectionPayload
	if err := decodeJSON(req, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	createReq := structure.CreateSectionRequest{}
	if payload.Title != nil {
		createReq.Title = *payload.Title
	}
	if payload.Type != nil {
		createReq.Type = access.ParseVisibility(*payload.Type)
	}
	if payload.Order != nil {
		createReq.Order = *payload.Order
	}

	section, err := s.structure.CreateSection(req.Context(), createReq)
	if err != nil {
		s.respondStructureError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, section)
}

func (s *Server) handleUpdateSection(w http.ResponseWriter, req *http.Request) {
	id, ok := parseID(w, req)
	if !ok {
		return
	}
	var payload sectionPayload
	if err := decodeJSON(req, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updateReq := structure.UpdateSectionRequest{
		ID:    id,
		Title: payload.Title,
		Order: payload.Order,
	}
	if payload.Type != nil {
		visibility := access.ParseVisibility(*payload.Type)
		updateReq.Type = &visibility
	}

	section, err := s.structure.UpdateSection(req.Context(), updateReq)
	if err != nil {
		s.respondStructureError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, section)
}

func (s *Server) handleDeleteSection(w http.ResponseWriter, req *http.Request) {
	id, ok := parseID(w, req)
	if !ok {
		return
	}
	if err := s.structure.DeleteSection(req.Context(), structure.DeleteSectionRequest{ID: id}); err != nil {
		s.respondStructureError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type documentPayload struct {
	Title     *string `json:"title"`
	Slug      *string `json:"slug"`
	Content   *string `json:"content"`
	Order     *int    `json:"order"`
	SectionID *string `json:"section_id"`
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, req *http.Request) {
	var payload documentPayload
	if err := decodeJSON(req, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	createReq := structure.CreateDocumentRequest{}
	if payload.Title != nil {
		createReq.Title = *payload.Title
	}
	if payload.Slug != nil {
		createReq.Slug = *payload.Slug
	}
	if payload.Content != nil {
		createReq.Content = *payload.Content
	}
	if payload.Order != nil {
		createReq.Order = *payload.Order
	}
	if payload.SectionID != nil {
		sectionID, err := uuid.Parse(*payload.SectionID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid section_id")
			return
		}
		createReq.SectionID = sectionID
	}

	doc, err := s.structure.CreateDocument(req.Context(), createReq)
	if err != nil {
		s.respondStructureError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleUpdateDocument(w http.ResponseWriter, req *http.Request) {
	id, ok := parseID(w, req)
	if !ok {
		return
	}
	var payload documentPayload
	if err := decodeJSON(req, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updateReq := structure.UpdateDocumentRequest{
		ID:      id,
		Title:   payload.Title,
		Slug:    payload.Slug,
		Content: payload.Content,
		Order:   payload.Order,
	}
	if payload.SectionID != nil {
		sectionID, err := uuid.Parse(*payload.SectionID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid section_id")
			return
		}
		updateReq.SectionID = &sectionID
	}

	doc, err := s.structure.UpdateDocument(req.Context(), updateReq)
	if err != nil {
		s.respondStructureError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, req *http.Request) {
	id, ok := parseID(w, req)
	if !ok {
		return
	}
	if err := s.structure.DeleteDocument(req.Context(), structure.DeleteDocumentRequest{ID: id}); err != nil {
		s.respondStructureError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUpload accepts a multipart form with a single "file" field and
// returns the stored URL plus a ready-to-paste embed snippet.
func (s *Server) handleUpload(w http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(w, req.Body, s.maxUpload)
	file, header, err := req.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	upload, err := s.media.Store(req.Context(), header.Filename, file)
	if err != nil {
		s.logger.Error("http.upload.failed", "filename", header.Filename, "error", err)
		respondError(w, http.StatusBadGateway, "upload failed")
		return
	}
	respondJSON(w, http.StatusCreated, upload)
}

// respondStructureError translates domain errors onto HTTP status codes.
func (s *Server) respondStructureError(w http.ResponseWriter, err error) {
	switch {
	case structure.IsNotFound(err):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, structure.ErrSlugExists):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, structure.ErrSectionTitleRequired),
		errors.Is(err, structure.ErrDocumentTitleRequired),
		errors.Is(err, structure.ErrSectionIDRequired),
		errors.Is(err, structure.ErrDocumentIDRequired),
		errors.Is(err, structure.ErrSlugRequired),
		errors.Is(err, structure.ErrSlugInvalid):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("http.structure.mutation_failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func parseID(w http.ResponseWriter, req *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(req, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func decodeJSON(req *http.Request, target any) error {
	defer req.Body.Close()
	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
