// Package media handles file uploads from the authoring console and produces
// markdown embed snippets for the uploaded assets.
package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/internal/markdown"
	"github.com/goliatone/go-docs/pkg/interfaces"
)

// ErrUploadFailed wraps storage failures so callers can branch without
// inspecting backend-specific errors.
var ErrUploadFailed = fmt.Errorf("media: upload failed")

// Upload is the outcome of a successful upload: where the asset lives and a
// markdown snippet ready to paste into a document body.
type Upload struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Embed string `json:"embed"`
}

// Service stores uploaded assets and builds their embed snippets.
type Service struct {
	storage interfaces.ObjectStorage
	prefix  string
	logger  interfaces.Logger
	newID   func() uuid.UUID
}

// Option configures the media service.
type Option func(*Service)

// WithLogger injects the logger used by the service.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithKeyPrefix namespaces storage keys, e.g. "uploads".
func WithKeyPrefix(prefix string) Option {
	return func(s *Service) {
		s.prefix = strings.Trim(prefix, "/")
	}
}

// WithIDGenerator overrides key generation, used by tests.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// New constructs a media service over the given object storage.
func New(storage interfaces.ObjectStorage, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		prefix:  "uploads",
		logger:  logging.NoOp(),
		newID:   uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store uploads the content under a collision-free generated key that keeps
// the original file extension, then returns the public URL together with an
// embed snippet matching the asset kind.
func (s *Service) Store(ctx context.Context, filename string, content io.Reader) (*Upload, error) {
	key := s.objectKey(filename)

	url, err := s.storage.Put(ctx, key, content)
	if err != nil {
		s.logger.Error("media.upload_failed", "key", key, "filename", filename, "error", err)
		return nil, fmt.Errorf("%w: %s: %v", ErrUploadFailed, filename, err)
	}

	upload := &Upload{
		Key:   key,
		URL:   url,
		Embed: EmbedSnippet(filename, url),
	}
	s.logger.Info("media.uploaded", "key", key, "url", url)
	return upload, nil
}

// EmbedSnippet builds the markdown to paste into a document: an HTML5 player
// for video assets, image syntax for everything else.
func EmbedSnippet(filename, url string) string {
	if markdown.IsVideoURL(url) || markdown.IsVideoURL(filename) {
		return fmt.Sprintf(`<video controls="controls" playsinline="playsinline"><source src="%s"></video>`, url)
	}
	name := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	if name == "" || name == "." {
		name = "image"
	}
	return fmt.Sprintf("![%s](%s)", name, url)
}

func (s *Service) objectKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	key := s.newID().String() + ext
	if s.prefix != "" {
		return s.prefix + "/" + key
	}
	return key
}
