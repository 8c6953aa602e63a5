package manager

import (
	"context"
	"fmt"
	"slices"

	"github.com/dot5enko/flexrow/schema"
)

func (sm *Manager) CreateTable(ctx context.Context, table schema.Table) error {

	if nameErr := schema.ValidateTableName(table.Name); nameErr != nil {
		return nameErr
	}

	if table.KeyColumn == "" {
		return fmt.Errorf("key column of `%s` is required", table.Name)
	}

	if err := sm.store.CreateTable(ctx, table); err != nil {
		return fmt.Errorf("unable to create table `%s` : %w", table.Name, err)
	}

	sm.log.Info("table created", "table", table.Name, "key", table.KeyColumn, "columns", len(table.Columns))

	return nil
}

// DropTable removes the table. Store failures, a missing table included,
// are logged and ignored. Invalid names are rejected.
func (sm *Manager) DropTable(ctx context.Context, table string) error {

	if nameErr := schema.ValidateTableName(table); nameErr != nil {
		return nameErr
	}

	if err := sm.store.DropTable(ctx, table); err != nil {
		sm.log.Warn("drop table ignored", "table", table, "err", err)
	}

	return nil
}

func (sm *Manager) Tables(ctx context.Context) ([]string, error) {
	tables, err := sm.store.Tables(ctx)
	if err != nil {
		return nil, err
	}

	slices.Sort(tables)
	return tables, nil
}
