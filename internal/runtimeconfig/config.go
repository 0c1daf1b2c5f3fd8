// Package runtimeconfig defines the configuration surface of the docs
// module. Fields use simple types so host applications can bind them from
// whatever configuration source they already use.
package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrDatabaseDSNRequired indicates the bun storage provider was selected
	// without a connection string.
	ErrDatabaseDSNRequired = errors.New("docs config: database dsn is required for the bun storage provider")
	// ErrStorageProviderUnknown indicates an unsupported storage provider.
	ErrStorageProviderUnknown = errors.New("docs config: storage provider is invalid")
	// ErrAdminEmailInvalid indicates a privileged email entry that cannot match anything.
	ErrAdminEmailInvalid = errors.New("docs config: admin email is invalid")
	// ErrExcerptLimitInvalid indicates a non-positive excerpt length.
	ErrExcerptLimitInvalid = errors.New("docs config: excerpt limit must be positive")
	// ErrMaxUploadSizeInvalid indicates a negative upload size cap.
	ErrMaxUploadSizeInvalid = errors.New("docs config: max upload size must be zero or positive")
	// ErrLoggingLevelInvalid indicates an unknown logging level.
	ErrLoggingLevelInvalid = errors.New("docs config: logging level is invalid")
	// ErrLoggingFormatInvalid indicates an unknown logging format.
	ErrLoggingFormatInvalid = errors.New("docs config: logging format is invalid")
)

// Config aggregates module behaviour: storage, access, media, rendering,
// and logging.
type Config struct {
	Enabled  bool
	Storage  StorageConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Media    MediaConfig
	Markdown MarkdownConfig
	HTTP     HTTPConfig
	Logging  LoggingConfig
}

// StorageConfig selects the content store backend.
type StorageConfig struct {
	// Provider is "bun" for SQL-backed storage or "memory" for the in-memory store.
	Provider string
	// DSN is the database connection string, required when Provider is "bun".
	DSN string
}

// CacheConfig captures read-cache behaviour for repositories.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// AuthConfig binds the session boundary to access decisions.
type AuthConfig struct {
	// AdminEmails grants privileged clearance by exact, case-insensitive match.
	AdminEmails []string
	// PrivilegedRoles grants privileged clearance when a session carries one
	// of these role claims.
	PrivilegedRoles []string
	// LoginPath is where anonymous visitors are redirected from protected routes.
	LoginPath string
}

// MediaConfig captures upload handling.
type MediaConfig struct {
	// KeyPrefix namespaces generated object keys.
	KeyPrefix string
	// UploadDir is the filesystem root for the local storage backend.
	UploadDir string
	// BaseURL prefixes public URLs for stored objects.
	BaseURL string
	// MaxUploadSize caps request bodies in bytes. Zero means no explicit cap.
	MaxUploadSize int64
}

// MarkdownConfig captures rendering behaviour.
type MarkdownConfig struct {
	// DefaultImage is the preview image for documents that embed none.
	DefaultImage string
	// ExcerptLimit is the plain-text excerpt length in characters.
	ExcerptLimit int
}

// HTTPConfig captures the serving surface.
type HTTPConfig struct {
	Addr string
}

// LoggingConfig captures runtime logging options.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults: in-memory storage, cache on,
// console logging at info.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Auth: AuthConfig{
			PrivilegedRoles: []string{"admin"},
			LoginPath:       "/login",
		},
		Media: MediaConfig{
			KeyPrefix:     "uploads",
			UploadDir:     "uploads",
			BaseURL:       "/uploads",
			MaxUploadSize: 32 << 20,
		},
		Markdown: MarkdownConfig{
			ExcerptLimit: 160,
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	switch normalize(cfg.Storage.Provider) {
	case "bun":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrDatabaseDSNRequired
		}
	case "memory", "":
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}

	for _, email := range cfg.Auth.AdminEmails {
		if !strings.Contains(email, "@") {
			return fmt.Errorf("%w: %s", ErrAdminEmailInvalid, email)
		}
	}

	if cfg.Markdown.ExcerptLimit <= 0 {
		return ErrExcerptLimitInvalid
	}
	if cfg.Media.MaxUploadSize < 0 {
		return ErrMaxUploadSizeInvalid
	}

	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
