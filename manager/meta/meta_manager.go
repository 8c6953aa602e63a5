package meta

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sync"

	"github.com/dot5enko/flexrow/io"
	"github.com/dot5enko/flexrow/schema"
)

var (
	ErrTableExists   = errors.New("table already exists")
	ErrTableNotFound = errors.New("table not found")
)

// MetaManager is the catalog of table definitions. With a storage path it
// keeps one table.json per table folder.
type MetaManager struct {
	tables map[string]*schema.Table
	lock   sync.RWMutex

	storagePath string
}

func NewMetaManager(storagePath string) *MetaManager {
	return &MetaManager{
		tables: map[string]*schema.Table{},
		lock:   sync.RWMutex{},

		storagePath: storagePath,
	}
}

func (m *MetaManager) Persistent() bool {
	return m.storagePath != ""
}

func (m *MetaManager) AddTable(table schema.Table) error {

	m.lock.Lock()
	defer m.lock.Unlock()

	if _, exists := m.tables[table.Name]; exists {
		return fmt.Errorf("%w: `%s`", ErrTableExists, table.Name)
	}

	stored := table
	stored.Columns = slices.Clone(table.Columns)
	m.tables[table.Name] = &stored

	return nil
}

// GetTable returns a copy of the table definition.
func (m *MetaManager) GetTable(name string) (schema.Table, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	t, ok := m.tables[name]
	if !ok {
		return schema.Table{}, false
	}

	result := *t
	result.Columns = slices.Clone(t.Columns)

	return result, true
}

func (m *MetaManager) RemoveTable(name string) bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	_, ok := m.tables[name]
	delete(m.tables, name)

	return ok
}

func (m *MetaManager) TableNames() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()

	names := make([]string, 0, len(m.tables))
	for name := range m.tables {
		names = append(names, name)
	}

	slices.Sort(names)
	return names
}

// AddColumn appends a column to the table definition. It reports false when
// the column was already known.
func (m *MetaManager) AddColumn(table string, column schema.SchemaColumn) (bool, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	t, ok := m.tables[table]
	if !ok {
		return false, fmt.Errorf("%w: `%s`", ErrTableNotFound, table)
	}

	if t.HasColumn(column.Name) {
		return false, nil
	}

	t.Columns = append(t.Columns, column)

	return true, nil
}

func (m *MetaManager) StoreTableToDisk(table schema.Table) error {

	if !m.Persistent() {
		return nil
	}

	if _, dirErr := m.TableDir(table.Name); dirErr != nil {
		return dirErr
	}

	tableBytes, marshalErr := json.Marshal(table)
	if marshalErr != nil {
		return marshalErr
	}

	tablePath, pathErr := m.TablePath(table.Name, tableFileName)
	if pathErr != nil {
		return pathErr
	}

	return io.WriteFile(tablePath, tableBytes)
}

func (m *MetaManager) RemoveTableFromDisk(name string) error {

	if !m.Persistent() {
		return nil
	}

	folder, folderErr := m.tableFolder(name)
	if folderErr != nil {
		return folderErr
	}

	return os.RemoveAll(folder)
}

func (m *MetaManager) LoadTablesFromDisk() error {

	if !m.Persistent() {
		return nil
	}

	entries, err := os.ReadDir(m.storagePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) { // no tables yet
			return nil
		} else {
			return err
		}
	}

	loadSingleTableFileFromDisk := func(path string) error {

		tablePath, pathErr := m.TablePath(path, tableFileName)
		if pathErr != nil {
			return pathErr
		}

		fullContent, contentErr := io.ReadFile(tablePath)
		if contentErr != nil {
			return contentErr
		}

		var table schema.Table
		if unmarshalErr := json.Unmarshal(fullContent, &table); unmarshalErr != nil {
			return unmarshalErr
		}

		if addErr := m.AddTable(table); addErr != nil {
			return addErr
		}

		slog.Debug("loaded table from disk", "table", table.Name, "columns", len(table.Columns))

		return nil
	}

	for _, e := range entries {
		if e.IsDir() {
			if loadErr := loadSingleTableFileFromDisk(e.Name()); loadErr != nil {
				return fmt.Errorf("unable to load table `%s` : %w", e.Name(), loadErr)
			}
		}
	}

	return nil
}
