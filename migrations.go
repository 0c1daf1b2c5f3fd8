package docs

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-docs/structure"
)

// CreateSchema creates the content tables if they do not exist. Intended for
// embedded SQLite deployments and tests; hosts with their own migration
// tooling can mirror the models instead.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*structure.Section)(nil),
		(*structure.Document)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("docs: create table %T: %w", model, err)
		}
	}

	if _, err := db.NewCreateIndex().
		Model((*structure.Document)(nil)).
		Index("idx_documents_slug").
		Column("slug").
		Unique().
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("docs: create slug index: %w", err)
	}
	return nil
}
