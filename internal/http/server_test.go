package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-docs/access"
	"github.com/goliatone/go-docs/internal/auth"
	"github.com/goliatone/go-docs/internal/locator"
	"github.com/goliatone/go-docs/internal/markdown"
	"github.com/goliatone/go-docs/internal/media"
	istructure "github.com/goliatone/go-docs/internal/structure"
	"github.com/goliatone/go-docs/pkg/interfaces"
	"github.com/goliatone/go-docs/structure"
)

type stubSession struct {
	authenticated bool
	email         string
	roles         []string
}

func (s stubSession) Authenticated() bool { return s.authenticated }
func (s stubSession) Email() string       { return s.email }
func (s stubSession) Roles() []string     { return s.roles }

type stubAuthProvider struct {
	session interfaces.Session
}

func (p *stubAuthProvider) CurrentSession(context.Context) (interfaces.Session, error) {
	if p.session == nil {
		return stubSession{}, nil
	}
	return p.session, nil
}

type stubObjectStorage struct{}

func (stubObjectStorage) Put(_ context.Context, key string, content io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, content)
	return "/uploads/" + key, nil
}

type testEnv struct {
	server  *Server
	handler http.Handler
	svc     structure.Service
	auth    *stubAuthProvider
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sections := istructure.NewMemorySectionRepository()
	documents := istructure.NewMemoryDocumentRepository()
	svc := istructure.NewService(sections, documents)
	loc := locator.New(sections, documents)
	renderer := markdown.NewPipeline()
	mediaSvc := media.New(stubObjectStorage{})

	provider := &stubAuthProvider{}
	resolver := auth.NewResolver(provider)

	server := NewServer(svc, loc, renderer, mediaSvc, resolver)
	return &testEnv{
		server:  server,
		handler: server.Router(),
		svc:     svc,
		auth:    provider,
	}
}

func (e *testEnv) seed(t *testing.T, visibility access.Visibility, title string) *structure.Document {
	t.Helper()
	ctx := context.Background()

	section, err := e.svc.CreateSection(ctx, structure.CreateSectionRequest{
		Title: title + " Section",
		Type:  visibility,
	})
	if err != nil {
		t.Fatalf("seed section: %v", err)
	}
	doc, err := e.svc.CreateDocument(ctx, structure.CreateDocumentRequest{
		SectionID: section.ID,
		Title:     title,
		Content:   "# " + title + "\n\nbody text",
	})
	if err != nil {
		t.Fatalf("seed document: %v", err)
	}
	return doc
}

func (e *testEnv) do(method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func TestGetDocument(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	doc := env.seed(t, access.VisibilityPublic, "Welcome")

	rec := env.do(http.MethodGet, "/docs/"+doc.Slug, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp documentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Outcome != "ok" {
		t.Fatalf("outcome = %q", resp.Outcome)
	}
	if !strings.Contains(resp.HTML, "<h1") {
		t.Fatalf("html = %q, want rendered heading", resp.HTML)
	}
	if resp.Title != "Welcome" {
		t.Fatalf("title = %q", resp.Title)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/docs/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Not Found") {
		t.Fatalf("body should carry the rendered placeholder: %q", rec.Body.String())
	}
}

func TestGetProtectedDocumentDeniedForAnonymous(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	doc := env.seed(t, access.VisibilityProtected, "Internal")

	// The public route answers 403 without leaking content.
	rec := env.do(http.MethodGet, "/docs/"+doc.Slug, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "body text") {
		t.Fatal("denied response leaked document content")
	}

	// The protected prefix redirects browsers to login instead.
	rec = env.do(http.MethodGet, "/protected/docs/"+doc.Slug, nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302 redirect", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/login" {
		t.Fatalf("redirect target = %q, want /login", got)
	}
}

func TestGetProtectedDocumentAuthenticated(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	doc := env.seed(t, access.VisibilityProtected, "Internal")
	env.auth.session = stubSession{authenticated: true}

	rec := env.do(http.MethodGet, "/protected/docs/"+doc.Slug, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestStructureFiltersByIdentity(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seed(t, access.VisibilityPublic, "Open")
	env.seed(t, access.VisibilityProtected, "Closed")

	rec := env.do(http.MethodGet, "/api/structure", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Open Section") {
		t.Fatalf("public section missing: %q", body)
	}
	if strings.Contains(body, "Closed Section") {
		t.Fatalf("protected section leaked to anonymous: %q", body)
	}
}

func TestSearchEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	doc := env.seed(t, access.VisibilityPublic, "Searchable")

	rec := env.do(http.MethodGet, "/api/search?q=searchable", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), doc.Slug) {
		t.Fatalf("search should find the document: %q", rec.Body.String())
	}

	rec = env.do(http.MethodGet, "/api/search?q=s", nil)
	var resp struct {
		Results []any `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 0 {
		t.Fatalf("single-character query should match nothing, got %v", resp.Results)
	}
}

func TestSessionEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/session", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var session struct {
		Authenticated bool `json:"authenticated"`
		Privileged    bool `json:"privileged"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if session.Authenticated || session.Privileged {
		t.Fatalf("anonymous session = %+v", session)
	}

	env.auth.session = stubSession{authenticated: true, roles: []string{"admin"}}
	rec = env.do(http.MethodGet, "/api/session", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !session.Authenticated || !session.Privileged {
		t.Fatalf("admin session = %+v", session)
	}
}

func TestAdminRequiresPrivilege(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/admin/sections", strings.NewReader(`{"title":"Guides"}`))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("anonymous admin call status = %d, want 403", rec.Code)
	}

	env.auth.session = stubSession{authenticated: true}
	rec = env.do(http.MethodPost, "/api/admin/sections", strings.NewReader(`{"title":"Guides"}`))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("unprivileged admin call status = %d, want 403", rec.Code)
	}
}

func TestAdminSectionLifecycle(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.auth.session = stubSession{authenticated: true, roles: []string{"admin"}}

	rec := env.do(http.MethodPost, "/api/admin/sections", strings.NewReader(`{"title":"Guides","type":"protected","order":1}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	var section structure.Section
	if err := json.Unmarshal(rec.Body.Bytes(), &section); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if section.Type != access.VisibilityProtected {
		t.Fatalf("type = %q", section.Type)
	}

	rec = env.do(http.MethodPatch, "/api/admin/sections/"+section.ID.String(), strings.NewReader(`{"title":"Handbook"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(http.MethodDelete, "/api/admin/sections/"+section.ID.String(), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
}

func TestAdminDocumentConflictOnDuplicateSlug(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.auth.session = stubSession{authenticated: true, roles: []string{"admin"}}
	doc := env.seed(t, access.VisibilityPublic, "Duplicate Me")

	payload := fmt.Sprintf(`{"title":"Duplicate Me","section_id":%q}`, doc.SectionID.String())
	rec := env.do(http.MethodPost, "/api/admin/documents", strings.NewReader(payload))
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate slug status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminUpload(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.auth.session = stubSession{authenticated: true, roles: []string{"admin"}}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", "picture.png")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write([]byte("image bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	_ = form.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d: %s", rec.Code, rec.Body.String())
	}
	var upload media.Upload
	if err := json.Unmarshal(rec.Body.Bytes(), &upload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasSuffix(upload.Key, ".png") {
		t.Fatalf("key = %q, want original extension preserved", upload.Key)
	}
	if upload.Embed == "" {
		t.Fatal("upload should return an embed snippet")
	}
}
