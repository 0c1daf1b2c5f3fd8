// Package structurecmd exposes authoring mutations on sections and documents
// as validated command messages.
package structurecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-docs/access"
)

const (
	createSectionMessageType = "docs.section.create"
	updateSectionMessageType = "docs.section.update"
	deleteSectionMessageType = "docs.section.delete"

	createDocumentMessageType = "docs.document.create"
	updateDocumentMessageType = "docs.document.update"
	deleteDocumentMessageType = "docs.document.delete"
)

func requireNonBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}

func validVisibility(code string) validation.RuleFunc {
	return func(value any) error {
		s, ok := value.(string)
		if !ok || s == "" {
			return nil
		}
		if !access.Visibility(s).Valid() {
			return validation.NewError(code, "visibility must be public, protected, or privileged")
		}
		return nil
	}
}

// CreateSectionCommand creates a section with the given visibility class.
// Visibility defaults to public when empty.
type CreateSectionCommand struct {
	Title      string `json:"title"`
	Visibility string `json:"type,omitempty"`
	Order      int    `json:"order,omitempty"`
}

// Type implements command.Message.
func (CreateSectionCommand) Type() string { return createSectionMessageType }

// Validate ensures the section carries a usable title and a known visibility.
func (cmd CreateSectionCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Title, validation.Required,
			validation.By(requireNonBlank("docs.section.create.title_required", "title is required"))),
		validation.Field(&cmd.Visibility,
			validation.By(validVisibility("docs.section.create.type_invalid"))),
	)
}

// UpdateSectionCommand applies a partial update; nil fields are untouched.
type UpdateSectionCommand struct {
	ID         uuid.UUID `json:"id"`
	Title      *string   `json:"title,omitempty"`
	Visibility *string   `json:"type,omitempty"`
	Order      *int      `json:"order,omitempty"`
}

// Type implements command.Message.
func (UpdateSectionCommand) Type() string { return updateSectionMessageType }

// Validate requires a target id; supplied fields must be usable. Pointer
// fields are dereferenced by the validator and skipped when nil.
func (cmd UpdateSectionCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ID, validation.Required),
		validation.Field(&cmd.Title,
			validation.By(requireNonBlank("docs.section.update.title_blank", "title cannot be blank"))),
		validation.Field(&cmd.Visibility,
			validation.By(validVisibility("docs.section.update.type_invalid"))),
	)
}

// DeleteSectionCommand removes a section and cascades over its documents.
type DeleteSectionCommand struct {
	ID uuid.UUID `json:"id"`
}

// Type implements command.Message.
func (DeleteSectionCommand) Type() string { return deleteSectionMessageType }

// Validate requires a target id.
func (cmd DeleteSectionCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ID, validation.Required),
	)
}

// CreateDocumentCommand creates a document inside a section. Slug is
// optional; when empty it is derived from the title.
type CreateDocumentCommand struct {
	Title     string    `json:"title"`
	Slug      string    `json:"slug,omitempty"`
	Content   string    `json:"content,omitempty"`
	Order     int       `json:"order,omitempty"`
	SectionID uuid.UUID `json:"section_id"`
}

// Type implements command.Message.
func (CreateDocumentCommand) Type() string { return createDocumentMessageType }

// Validate ensures title and owning section are present.
func (cmd CreateDocumentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Title, validation.Required,
			validation.By(requireNonBlank("docs.document.create.title_required", "title is required"))),
		validation.Field(&cmd.SectionID, validation.Required),
	)
}

// UpdateDocumentCommand applies a partial update; nil fields are untouched.
type UpdateDocumentCommand struct {
	ID        uuid.UUID  `json:"id"`
	Title     *string    `json:"title,omitempty"`
	Slug      *string    `json:"slug,omitempty"`
	Content   *string    `json:"content,omitempty"`
	Order     *int       `json:"order,omitempty"`
	SectionID *uuid.UUID `json:"section_id,omitempty"`
}

// Type implements command.Message.
func (UpdateDocumentCommand) Type() string { return updateDocumentMessageType }

// Validate requires a target id; a supplied title must not be blank.
func (cmd UpdateDocumentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ID, validation.Required),
		validation.Field(&cmd.Title,
			validation.By(requireNonBlank("docs.document.update.title_blank", "title cannot be blank"))),
	)
}

// DeleteDocumentCommand removes a single document.
type DeleteDocumentCommand struct {
	ID uuid.UUID `json:"id"`
}

// Type implements command.Message.
func (DeleteDocumentCommand) Type() string { return deleteDocumentMessageType }

// Validate requires a target id.
func (cmd DeleteDocumentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ID, validation.Required),
	)
}
