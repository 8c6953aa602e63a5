package meta

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dot5enko/flexrow/schema"
)

func usersTable() schema.Table {
	return schema.Table{
		Name:      "users",
		KeyColumn: "id",
		Columns:   []schema.SchemaColumn{schema.NewTextColumn("status", true)},
	}
}

func TestAddColumnOnce(t *testing.T) {

	m := NewMetaManager("")

	if err := m.AddTable(usersTable()); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if err := m.AddTable(usersTable()); !errors.Is(err, ErrTableExists) {
		t.Errorf("expected table exists, got %v", err)
	}

	added, err := m.AddColumn("users", schema.NewTextColumn("age", true))
	if err != nil || !added {
		t.Errorf("expected age to be added, added=%v err=%v", added, err)
	}

	added, _ = m.AddColumn("users", schema.NewTextColumn("age", true))
	if added {
		t.Errorf("second add of the same column must be a no-op")
	}

	added, _ = m.AddColumn("users", schema.NewTextColumn("id", false))
	if added {
		t.Errorf("key column is already known")
	}

	if _, err := m.AddColumn("missing", schema.NewTextColumn("x", false)); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("expected table not found, got %v", err)
	}
}

func TestGetTableReturnsCopy(t *testing.T) {

	m := NewMetaManager("")
	m.AddTable(usersTable())

	tbl, _ := m.GetTable("users")
	tbl.Columns[0].Name = "changed"

	again, _ := m.GetTable("users")
	if again.Columns[0].Name != "status" {
		t.Errorf("catalog entry was mutated through a copy")
	}
}

func TestTablesSurviveReload(t *testing.T) {

	dir := t.TempDir()

	m := NewMetaManager(dir)
	m.AddTable(usersTable())
	m.AddColumn("users", schema.NewTextColumn("age", false))

	tbl, _ := m.GetTable("users")
	if err := m.StoreTableToDisk(tbl); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	reloaded := NewMetaManager(dir)
	if err := reloaded.LoadTablesFromDisk(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	got, ok := reloaded.GetTable("users")
	if !ok {
		t.Fatalf("users table was not loaded")
	}

	if got.KeyColumn != "id" || len(got.Columns) != 2 || got.Columns[1].Name != "age" {
		t.Errorf("unexpected reloaded table %+v", got)
	}

	if err := reloaded.RemoveTableFromDisk("users"); err != nil {
		t.Errorf("unexpected error %v", err)
	}

	empty := NewMetaManager(dir)
	empty.LoadTablesFromDisk()
	if len(empty.TableNames()) != 0 {
		t.Errorf("expected no tables after removal")
	}
}

func TestTablePathStaysInsideStorage(t *testing.T) {

	parent := t.TempDir()
	storage := filepath.Join(parent, "storage")
	m := NewMetaManager(storage)

	sibling := filepath.Join(parent, "keep.txt")
	if err := os.WriteFile(sibling, []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"..", ".", "", "../other", "a/b"} {
		if _, err := m.TablePath(name, "table.json"); !errors.Is(err, ErrOutsideStorage) {
			t.Errorf("table `%s` must be refused, got %v", name, err)
		}
		if err := m.RemoveTableFromDisk(name); !errors.Is(err, ErrOutsideStorage) {
			t.Errorf("removing `%s` must be refused, got %v", name, err)
		}
	}

	if err := m.StoreTableToDisk(schema.Table{Name: "..", KeyColumn: "id"}); !errors.Is(err, ErrOutsideStorage) {
		t.Errorf("storing `..` must be refused, got %v", err)
	}

	if _, err := os.Stat(filepath.Join(parent, "table.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("nothing may be written next to the storage folder, stat err %v", err)
	}

	if _, err := os.Stat(sibling); err != nil {
		t.Errorf("sibling file must survive, got %v", err)
	}

	if _, err := m.TablePath("users", "../table.json"); !errors.Is(err, ErrOutsideStorage) {
		t.Errorf("file names with separators must be refused, got %v", err)
	}

	path, err := m.TablePath("users", "table.json")
	if err != nil || path != filepath.Join(storage, "users", "table.json") {
		t.Errorf("unexpected path %s, err %v", path, err)
	}
}
