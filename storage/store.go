package storage

import (
	"context"
	"errors"

	"github.com/dot5enko/flexrow/manager/query"
	"github.com/dot5enko/flexrow/schema"
)

var (
	ErrTableNotFound = errors.New("table not found")
)

// Store is the column-family engine the query manager runs on. Implementations
// must be safe for concurrent use.
type Store interface {
	// Scan reads every row of the table.
	Scan(ctx context.Context, table string) ([]query.Record, error)

	// FilteredScan runs a native WHERE query.
	FilteredScan(ctx context.Context, stmt query.SelectStatement) ([]query.Record, error)

	Insert(ctx context.Context, table string, row schema.Row) error

	// Columns lists the known columns of the table, key column included.
	Columns(ctx context.Context, table string) ([]string, error)

	// AddColumn adds a text column. Adding an existing column is a no-op.
	AddColumn(ctx context.Context, table, column string, indexed bool) error

	CreateTable(ctx context.Context, table schema.Table) error
	DropTable(ctx context.Context, table string) error
	Tables(ctx context.Context) ([]string, error)
}
