package catalog

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// CreateTables creates the catalog schema when it does not exist yet. Hosts
// with managed migrations can skip this and own the DDL themselves.
func CreateTables(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*Subject)(nil),
		(*Grade)(nil),
		(*Course)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("catalog: create table for %T: %w", model, err)
		}
	}
	return nil
}
