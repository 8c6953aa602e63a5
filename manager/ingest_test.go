package manager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dot5enko/flexrow/schema"
	"github.com/dot5enko/flexrow/storage"
	"github.com/dot5enko/flexrow/storage/memstore"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestInsertAddsUnseenColumns(t *testing.T) {

	ctx := context.Background()
	m := New(memstore.New(), ManagerConfig{IndexNewColumns: true})
	require.NoError(t, m.CreateTable(ctx, schema.Table{Name: "users", KeyColumn: "id"}))

	require.NoError(t, m.Insert(ctx, "users", schema.NewRow(schema.NewKey("id", "1"), schema.NewAttribute("status", "active"))))
	require.NoError(t, m.Insert(ctx, "users", schema.NewRow(schema.NewKey("id", "2"), schema.NewAttribute("status", "x"), schema.NewAttribute("age", "5"))))

	cols, err := m.Store().Columns(ctx, "users")
	require.NoError(t, err)
	require.Equal(t, []string{"id", "status", "age"}, cols)

	require.Equal(t, float64(2), testutil.ToFloat64(m.Metrics.ColumnsAdded))
}

func TestInsertRejectsInvalidRows(t *testing.T) {

	ctx := context.Background()
	m := New(memstore.New(), ManagerConfig{})
	require.NoError(t, m.CreateTable(ctx, schema.Table{Name: "users", KeyColumn: "id"}))

	err := m.Insert(ctx, "users", schema.NewRow(schema.NewKey("id", "1"), schema.NewAttribute("a", "1"), schema.NewAttribute("a", "2")))
	require.ErrorIs(t, err, schema.ErrDuplicateAttribute)

	err = m.Insert(ctx, "ghost", schema.NewRow(schema.NewKey("id", "1"), schema.NewAttribute("a", "1")))
	require.ErrorIs(t, err, storage.ErrTableNotFound)
}

func TestConcurrentFirstWritesOfOneColumn(t *testing.T) {

	ctx := context.Background()
	m := New(memstore.New(), ManagerConfig{IndexNewColumns: true})
	require.NoError(t, m.CreateTable(ctx, schema.Table{Name: "events", KeyColumn: "id"}))

	var wg sync.WaitGroup
	errs := make(chan error, 32)

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- m.Insert(ctx, "events", schema.NewRow(
				schema.NewKey("id", fmt.Sprintf("e%d", i)),
				schema.NewAttribute("source", "api"),
			))
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	cols, err := m.Store().Columns(ctx, "events")
	require.NoError(t, err)
	require.Equal(t, []string{"id", "source"}, cols)

	records, err := m.Store().Scan(ctx, "events")
	require.NoError(t, err)
	require.Len(t, records, 32)

	require.Equal(t, float64(1), testutil.ToFloat64(m.Metrics.ColumnsAdded))
}

func TestTableNamesCannotEscapeStorage(t *testing.T) {

	ctx := context.Background()
	parent := t.TempDir()

	sibling := filepath.Join(parent, "keep.txt")
	require.NoError(t, os.WriteFile(sibling, []byte("keep"), 0644))

	store, err := memstore.Open(filepath.Join(parent, "storage"))
	require.NoError(t, err)
	m := New(store, ManagerConfig{})

	for _, name := range []string{"..", ".", "../users", "a/b", "users-2"} {
		require.ErrorIs(t, m.CreateTable(ctx, schema.Table{Name: name, KeyColumn: "id"}), schema.ErrInvalidTableName, name)
		require.ErrorIs(t, m.DropTable(ctx, name), schema.ErrInvalidTableName, name)
		require.ErrorIs(t, store.CreateTable(ctx, schema.Table{Name: name, KeyColumn: "id"}), schema.ErrInvalidTableName, name)
		require.ErrorIs(t, store.DropTable(ctx, name), schema.ErrInvalidTableName, name)
	}

	require.NoError(t, m.CreateTable(ctx, schema.Table{Name: "users", KeyColumn: "id"}))
	require.NoError(t, store.Save())

	_, statErr := os.Stat(filepath.Join(parent, "table.json"))
	require.ErrorIs(t, statErr, os.ErrNotExist)

	_, statErr = os.Stat(sibling)
	require.NoError(t, statErr)

	tables, err := m.Tables(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"users"}, tables)
}

func TestDropTableAbsorbsErrors(t *testing.T) {

	ctx := context.Background()
	m := New(memstore.New(), ManagerConfig{})

	require.NoError(t, m.DropTable(ctx, "never_created"))

	require.NoError(t, m.CreateTable(ctx, schema.Table{Name: "b", KeyColumn: "id"}))
	require.NoError(t, m.CreateTable(ctx, schema.Table{Name: "a", KeyColumn: "id"}))

	tables, err := m.Tables(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, tables)

	require.NoError(t, m.DropTable(ctx, "a"))

	tables, _ = m.Tables(ctx)
	require.Equal(t, []string{"b"}, tables)

	require.Error(t, m.CreateTable(ctx, schema.Table{Name: "c"}))
}
