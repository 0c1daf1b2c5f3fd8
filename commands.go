package docs

import (
	structurecmd "github.com/goliatone/go-docs/internal/commands/structure"
	"github.com/goliatone/go-docs/internal/logging"
)

// CommandRegistry records command handlers so hosts can expose them via CLI
// or background tooling.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CommandRegistrationOptions configures how authoring handlers are registered.
type CommandRegistrationOptions struct {
	Registry   CommandRegistry
	Dispatcher CommandDispatcher
}

// CommandRegistrationResult captures the constructed handlers and any
// dispatcher subscriptions.
type CommandRegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// RegisterCommands builds the authoring command handlers bound to this
// module's structure service and optionally registers them with the host's
// registry and dispatcher. Handlers implement command.Commander for their
// message type.
func (m *Module) RegisterCommands(opts CommandRegistrationOptions) (*CommandRegistrationResult, error) {
	logger := logging.ModuleLogger(m.provider, "docs.commands")

	handlers := []any{
		structurecmd.NewCreateSectionHandler(m.structure, logger),
		structurecmd.NewUpdateSectionHandler(m.structure, logger),
		structurecmd.NewDeleteSectionHandler(m.structure, logger),
		structurecmd.NewCreateDocumentHandler(m.structure, logger),
		structurecmd.NewUpdateDocumentHandler(m.structure, logger),
		structurecmd.NewDeleteDocumentHandler(m.structure, logger),
	}

	result := &CommandRegistrationResult{
		Handlers:      handlers,
		Subscriptions: make([]CommandSubscription, 0, len(handlers)),
	}

	for _, handler := range handlers {
		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				return result, err
			}
		}
		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				return result, err
			}
			if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	return result, nil
}
