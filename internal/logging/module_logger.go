package logging

import (
	"context"

	"github.com/goliatone/go-docs/pkg/interfaces"
)

const (
	rootModule      = "docs"
	structureModule = "docs.structure"
	locatorModule   = "docs.locator"
	markdownModule  = "docs.markdown"
	mediaModule     = "docs.media"
	httpModule      = "docs.http"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// StructureLogger returns the logger namespace reserved for structure services.
func StructureLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, structureModule)
}

// LocatorLogger returns the logger namespace reserved for document lookups.
func LocatorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, locatorModule)
}

// MarkdownLogger returns the logger namespace reserved for the rendering pipeline.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// MediaLogger returns the logger namespace reserved for upload workflows.
func MediaLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, mediaModule)
}

// HTTPLogger returns the logger namespace reserved for the routing surface.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }
