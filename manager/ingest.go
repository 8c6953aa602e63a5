package manager

import (
	"context"
	"fmt"

	"github.com/dot5enko/flexrow/schema"
)

// Insert writes rows one by one, adding unseen attribute columns to the
// table before each write.
func (sm *Manager) Insert(ctx context.Context, table string, rows ...schema.Row) error {

	for _, row := range rows {

		if validateErr := row.Validate(); validateErr != nil {
			return validateErr
		}

		added, syncErr := sm.Schema.EnsureColumns(ctx, table, row)
		if syncErr != nil {
			return syncErr
		}

		if added > 0 {
			sm.log.Debug("columns added on write", "table", table, "added", added)
		}

		if insertErr := sm.store.Insert(ctx, table, row); insertErr != nil {
			return fmt.Errorf("unable to insert row `%s` into `%s` : %w", row.Key.Value, table, insertErr)
		}
	}

	return nil
}
