package manager

import (
	"context"
	"fmt"
	"slices"

	"github.com/dot5enko/flexrow/schema"
	"github.com/dot5enko/flexrow/storage"
	"golang.org/x/sync/singleflight"
)

// SchemaSync adds columns for attributes a table has not seen yet. Adds of
// one column are serialised per table and re-checked before running, so a
// column is added and counted once per process.
type SchemaSync struct {
	store           storage.Store
	indexNewColumns bool
	metrics         *Metrics

	addGroup singleflight.Group
}

func NewSchemaSync(store storage.Store, indexNewColumns bool, metrics *Metrics) *SchemaSync {
	return &SchemaSync{
		store:           store,
		indexNewColumns: indexNewColumns,
		metrics:         metrics,
	}
}

// EnsureColumns returns how many of the row's attributes were unknown to
// the table.
func (s *SchemaSync) EnsureColumns(ctx context.Context, table string, row schema.Row) (int, error) {

	known, columnsErr := s.store.Columns(ctx, table)
	if columnsErr != nil {
		return 0, fmt.Errorf("unable to read columns of `%s` : %w", table, columnsErr)
	}

	knownSet := make(map[string]struct{}, len(known))
	for _, name := range known {
		knownSet[name] = struct{}{}
	}

	added := 0

	for _, attr := range row.Attributes {
		if _, ok := knownSet[attr.Name]; ok {
			continue
		}

		_, addErr, _ := s.addGroup.Do(table+"\x00"+attr.Name, func() (any, error) {
			// a flight that finished after our read may have added it already
			current, err := s.store.Columns(ctx, table)
			if err != nil {
				return nil, err
			}
			if slices.Contains(current, attr.Name) {
				return nil, nil
			}

			if err := s.store.AddColumn(ctx, table, attr.Name, s.indexNewColumns); err != nil {
				return nil, err
			}

			s.metrics.ColumnsAdded.Inc()
			return nil, nil
		})

		if addErr != nil {
			return added, fmt.Errorf("unable to add column `%s` to `%s` : %w", attr.Name, table, addErr)
		}

		knownSet[attr.Name] = struct{}{}
		added++
	}

	return added, nil
}
