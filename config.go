package docs

import "github.com/goliatone/go-docs/internal/runtimeconfig"

var (
	ErrDatabaseDSNRequired    = runtimeconfig.ErrDatabaseDSNRequired
	ErrStorageProviderUnknown = runtimeconfig.ErrStorageProviderUnknown
	ErrAdminEmailInvalid      = runtimeconfig.ErrAdminEmailInvalid
	ErrExcerptLimitInvalid    = runtimeconfig.ErrExcerptLimitInvalid
	ErrMaxUploadSizeInvalid   = runtimeconfig.ErrMaxUploadSizeInvalid
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	AuthConfig     = runtimeconfig.AuthConfig
	MediaConfig    = runtimeconfig.MediaConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	HTTPConfig     = runtimeconfig.HTTPConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
