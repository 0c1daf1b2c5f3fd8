package structure

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-docs/structure"
)

func NewSectionRepository(db *bun.DB) repository.Repository[*structure.Section] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*structure.Section]{
		NewRecord: func() *structure.Section { return &structure.Section{} },
		GetID: func(s *structure.Section) uuid.UUID {
			return s.ID
		},
		SetID: func(s *structure.Section, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(s *structure.Section) string {
			if s == nil {
				return ""
			}
			return s.ID.String()
		},
	})
}

func NewDocumentRepository(db *bun.DB) repository.Repository[*structure.Document] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*structure.Document]{
		NewRecord: func() *structure.Document { return &structure.Document{} },
		GetID: func(d *structure.Document) uuid.UUID {
			return d.ID
		},
		SetID: func(d *structure.Document, id uuid.UUID) {
			d.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(d *structure.Document) string {
			if d == nil {
				return ""
			}
			return d.Slug
		},
	})
}
