// Command portal runs the documentation portal as a standalone server over
// SQLite. Configuration comes from the environment; a .env file is loaded
// when present.
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	docs "github.com/goliatone/go-docs"
	"github.com/goliatone/go-docs/internal/logging/gologger"
)

func main() {
	_ = godotenv.Load()

	cfg := configFromEnv()

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
	})
	if err != nil {
		panic(err)
	}
	logger := provider.GetLogger("portal")

	opts := []docs.ModuleOption{
		docs.WithLoggerProvider(provider),
	}

	if cfg.Storage.Provider == "bun" {
		sqlDB, err := sql.Open("sqlite3", cfg.Storage.DSN)
		if err != nil {
			logger.Fatal("open database", "dsn", cfg.Storage.DSN, "error", err)
		}
		defer sqlDB.Close()

		db := bun.NewDB(sqlDB, sqlitedialect.New())
		if err := docs.CreateSchema(context.Background(), db); err != nil {
			logger.Fatal("create schema", "error", err)
		}
		opts = append(opts, docs.WithDB(db))
	}

	module, err := docs.New(cfg, opts...)
	if err != nil {
		logger.Fatal("initialize module", "error", err)
	}

	logger.Info("portal listening", "addr", cfg.HTTP.Addr, "storage", cfg.Storage.Provider)
	if err := http.ListenAndServe(cfg.HTTP.Addr, module.Router()); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}

func configFromEnv() docs.Config {
	cfg := docs.DefaultConfig()

	if dsn := os.Getenv("DOCS_DATABASE_DSN"); dsn != "" {
		cfg.Storage.Provider = "bun"
		cfg.Storage.DSN = dsn
	}
	if addr := os.Getenv("DOCS_HTTP_ADDR"); addr != "" {
		cfg.HTTP.Addr = addr
	}
	if emails := os.Getenv("DOCS_ADMIN_EMAILS"); emails != "" {
		cfg.Auth.AdminEmails = splitList(emails)
	}
	if roles := os.Getenv("DOCS_PRIVILEGED_ROLES"); roles != "" {
		cfg.Auth.PrivilegedRoles = splitList(roles)
	}
	if dir := os.Getenv("DOCS_UPLOAD_DIR"); dir != "" {
		cfg.Media.UploadDir = dir
	}
	if base := os.Getenv("DOCS_UPLOAD_BASE_URL"); base != "" {
		cfg.Media.BaseURL = base
	}
	if img := os.Getenv("DOCS_DEFAULT_IMAGE"); img != "" {
		cfg.Markdown.DefaultImage = img
	}
	if level := os.Getenv("DOCS_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv("DOCS_LOG_FORMAT"); format != "" {
		cfg.Logging.Format = format
	}
	if cacheEnabled := os.Getenv("DOCS_CACHE_ENABLED"); cacheEnabled != "" {
		if enabled, err := strconv.ParseBool(cacheEnabled); err == nil {
			cfg.Cache.Enabled = enabled
		}
	}

	return cfg
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
