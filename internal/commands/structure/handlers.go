package structurecmd

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-docs/access"
	"github.com/goliatone/go-docs/internal/commands"
	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/pkg/interfaces"
	"github.com/goliatone/go-docs/structure"
)

const (
	createSectionOperation = "structure.section.create"
	updateSectionOperation = "structure.section.update"
	deleteSectionOperation = "structure.section.delete"

	createDocumentOperation = "structure.document.create"
	updateDocumentOperation = "structure.document.update"
	deleteDocumentOperation = "structure.document.delete"
)

var (
	_ command.Commander[CreateSectionCommand]  = (*CreateSectionHandler)(nil)
	_ command.Commander[UpdateSectionCommand]  = (*UpdateSectionHandler)(nil)
	_ command.Commander[DeleteSectionCommand]  = (*DeleteSectionHandler)(nil)
	_ command.Commander[CreateDocumentCommand] = (*CreateDocumentHandler)(nil)
	_ command.Commander[UpdateDocumentCommand] = (*UpdateDocumentHandler)(nil)
	_ command.Commander[DeleteDocumentCommand] = (*DeleteDocumentHandler)(nil)
)

// CreateSectionHandler executes section creation through the shared handler
// foundation.
type CreateSectionHandler struct {
	inner *commands.Handler[CreateSectionCommand]
}

// NewCreateSectionHandler binds the handler to the structure service.
func NewCreateSectionHandler(service structure.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CreateSectionCommand]) *CreateSectionHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CreateSectionCommand) error {
		section, err := service.CreateSection(ctx, structure.CreateSectionRequest{
			Title: msg.Title,
			Type:  access.ParseVisibility(msg.Visibility),
			Order: msg.Order,
		})
		if err != nil {
			return err
		}
		logging.WithFields(logger, map[string]any{
			"section_id": section.ID,
			"type":       section.Type,
		}).Info("structure.command.section_created")
		return nil
	}

	handlerOpts := append([]commands.HandlerOption[CreateSectionCommand]{
		commands.WithLogger[CreateSectionCommand](logger),
		commands.WithOperation[CreateSectionCommand](createSectionOperation),
	}, opts...)

	return &CreateSectionHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CreateSectionCommand].
func (h *CreateSectionHandler) Execute(ctx context.Context, msg CreateSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UpdateSectionHandler executes partial section updates.
type UpdateSectionHandler struct {
	inner *commands.Handler[UpdateSectionCommand]
}

// NewUpdateSectionHandler binds the handler to the structure service.
func NewUpdateSectionHandler(service structure.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateSectionCommand]) *UpdateSectionHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg UpdateSectionCommand) error {
		req := structure.UpdateSectionRequest{
			ID:    msg.ID,
			Title: msg.Title,
			Order: msg.Order,
		}
		if msg.Visibility != nil {
			visibility := access.ParseVisibility(*msg.Visibility)
			req.Type = &visibility
		}
		_, err := service.UpdateSection(ctx, req)
		return err
	}

	handlerOpts := append([]commands.HandlerOption[UpdateSectionCommand]{
		commands.WithLogger[UpdateSectionCommand](logger),
		commands.WithOperation[UpdateSectionCommand](updateSectionOperation),
	}, opts...)

	return &UpdateSectionHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[UpdateSectionCommand].
func (h *UpdateSectionHandler) Execute(ctx context.Context, msg UpdateSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteSectionHandler executes the guarded cascade delete.
type DeleteSectionHandler struct {
	inner *commands.Handler[DeleteSectionCommand]
}

// NewDeleteSectionHandler binds the handler to the structure service.
func NewDeleteSectionHandler(service structure.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteSectionCommand]) *DeleteSectionHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg DeleteSectionCommand) error {
		return service.DeleteSection(ctx, structure.DeleteSectionRequest{ID: msg.ID})
	}

	handlerOpts := append([]commands.HandlerOption[DeleteSectionCommand]{
		commands.WithLogger[DeleteSectionCommand](logger),
		commands.WithOperation[DeleteSectionCommand](deleteSectionOperation),
	}, opts...)

	return &DeleteSectionHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[DeleteSectionCommand].
func (h *DeleteSectionHandler) Execute(ctx context.Context, msg DeleteSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CreateDocumentHandler executes document creation.
type CreateDocumentHandler struct {
	inner *commands.Handler[CreateDocumentCommand]
}

// NewCreateDocumentHandler binds the handler to the structure service.
func NewCreateDocumentHandler(service structure.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CreateDocumentCommand]) *CreateDocumentHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CreateDocumentCommand) error {
		doc, err := service.CreateDocument(ctx, structure.CreateDocumentRequest{
			Title:     msg.Title,
			Slug:      msg.Slug,
			Content:   msg.Content,
			Order:     msg.Order,
			SectionID: msg.SectionID,
		})
		if err != nil {
			return err
		}
		logging.WithFields(logger, map[string]any{
			"document_id": doc.ID,
			"slug":        doc.Slug,
		}).Info("structure.command.document_created")
		return nil
	}

	handlerOpts := append([]commands.HandlerOption[CreateDocumentCommand]{
		commands.WithLogger[CreateDocumentCommand](logger),
		commands.WithOperation[CreateDocumentCommand](createDocumentOperation),
	}, opts...)

	return &CreateDocumentHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CreateDocumentCommand].
func (h *CreateDocumentHandler) Execute(ctx context.Context, msg CreateDocumentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UpdateDocumentHandler executes partial document updates.
type UpdateDocumentHandler struct {
	inner *commands.Handler[UpdateDocumentCommand]
}

// NewUpdateDocumentHandler binds the handler to the structure service.
func NewUpdateDocumentHandler(service structure.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateDocumentCommand]) *UpdateDocumentHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg UpdateDocumentCommand) error {
		_, err := service.UpdateDocument(ctx, structure.UpdateDocumentRequest{
			ID:        msg.ID,
			Title:     msg.Title,
			Slug:      msg.Slug,
			Content:   msg.Content,
			Order:     msg.Order,
			SectionID: msg.SectionID,
		})
		return err
	}

	handlerOpts := append([]commands.HandlerOption[UpdateDocumentCommand]{
		commands.WithLogger[UpdateDocumentCommand](logger),
		commands.WithOperation[UpdateDocumentCommand](updateDocumentOperation),
	}, opts...)

	return &UpdateDocumentHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[UpdateDocumentCommand].
func (h *UpdateDocumentHandler) Execute(ctx context.Context, msg UpdateDocumentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteDocumentHandler executes single-document deletion.
type DeleteDocumentHandler struct {
	inner *commands.Handler[DeleteDocumentCommand]
}

// NewDeleteDocumentHandler binds the handler to the structure service.
func NewDeleteDocumentHandler(service structure.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteDocumentCommand]) *DeleteDocumentHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg DeleteDocumentCommand) error {
		return service.DeleteDocument(ctx, structure.DeleteDocumentRequest{ID: msg.ID})
	}

	handlerOpts := append([]commands.HandlerOption[DeleteDocumentCommand]{
		commands.WithLogger[DeleteDocumentCommand](logger),
		commands.WithOperation[DeleteDocumentCommand](deleteDocumentOperation),
	}, opts...)

	return &DeleteDocumentHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[DeleteDocumentCommand].
func (h *DeleteDocumentHandler) Execute(ctx context.Context, msg DeleteDocumentCommand) error {
	return h.inner.Execute(ctx, msg)
}
