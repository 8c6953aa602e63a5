package memstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dot5enko/flexrow/lists"
	"github.com/dot5enko/flexrow/manager/meta"
	"github.com/dot5enko/flexrow/manager/query"
	"github.com/dot5enko/flexrow/schema"
	"github.com/dot5enko/flexrow/storage"
)

// The native language restrictions enforced by FilteredScan.
var (
	ErrUnknownColumn             = errors.New("undefined column name")
	ErrUnsupportedNativeOperator = errors.New("operator not supported by the native query language")
	ErrFilteringRequired         = errors.New("query might involve data filtering, ALLOW FILTERING required")
	ErrKeyMismatch               = errors.New("row key does not match the table key column")
)

type table struct {
	slots   map[string]int
	keys    []string
	columns map[string]*column
}

func newTable(def schema.Table) *table {
	t := &table{
		slots:   map[string]int{},
		keys:    []string{},
		columns: map[string]*column{},
	}

	for _, col := range def.Columns {
		t.columns[col.Name] = newColumn(0)
	}

	return t
}

// Store is an in-memory column store speaking the restricted native
// query language. It is used as the embedded backend and in tests.
type Store struct {
	meta   *meta.MetaManager
	tables map[string]*table
	lock   sync.RWMutex
}

var _ storage.Store = (*Store)(nil)

// New returns a store without persistence.
func New() *Store {
	return newStore(meta.NewMetaManager(""))
}

func newStore(m *meta.MetaManager) *Store {
	return &Store{
		meta:   m,
		tables: map[string]*table{},
	}
}

func (s *Store) lookup(name string) (schema.Table, *table, error) {
	def, ok := s.meta.GetTable(name)
	if !ok {
		return schema.Table{}, nil, fmt.Errorf("%w: `%s`", storage.ErrTableNotFound, name)
	}

	return def, s.tables[name], nil
}

func (s *Store) record(def schema.Table, t *table, slot int) memRecord {

	rec := memRecord{
		columns: def.ColumnNames(),
		values:  make(map[string]string, len(def.Columns)+1),
	}

	rec.values[def.KeyColumn] = t.keys[slot]

	for _, col := range def.Columns {
		if value, ok := t.columns[col.Name].get(slot); ok {
			rec.values[col.Name] = value
		}
	}

	return rec
}

func (s *Store) Scan(ctx context.Context, name string) ([]query.Record, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	def, t, err := s.lookup(name)
	if err != nil {
		return nil, err
	}

	result := make([]query.Record, 0, len(t.keys))
	for slot := range t.keys {
		result = append(result, s.record(def, t, slot))
	}

	return result, nil
}

func (s *Store) FilteredScan(ctx context.Context, stmt query.SelectStatement) ([]query.Record, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	def, t, err := s.lookup(stmt.Table)
	if err != nil {
		return nil, err
	}

	if len(stmt.Where) == 0 {
		return nil, fmt.Errorf("filtered scan on `%s` without conditions", stmt.Table)
	}

	keyColumn := &column{values: t.keys, present: make([]bool, len(t.keys))}
	for i := range keyColumn.present {
		keyColumn.present[i] = true
	}

	matches := make([][]int, 0, len(stmt.Where))

	for _, clause := range stmt.Where {

		if !clause.Operator.Native() {
			return nil, fmt.Errorf("%w `%s`", ErrUnsupportedNativeOperator, clause.Operator)
		}

		var col *column
		if clause.Column == def.KeyColumn {
			col = keyColumn
		} else {
			schemaCol, known := def.Column(clause.Column)
			if !known {
				return nil, fmt.Errorf("%w `%s`", ErrUnknownColumn, clause.Column)
			}

			if !stmt.AllowFiltering && !schemaCol.Indexed {
				return nil, fmt.Errorf("%w: column `%s` is not indexed", ErrFilteringRequired, clause.Column)
			}

			col = t.columns[clause.Column]
		}

		if !stmt.AllowFiltering && (len(stmt.Where) > 1 || clause.Operator != query.EQ) {
			return nil, ErrFilteringRequired
		}

		slots, selectErr := col.selectSlots(clause)
		if selectErr != nil {
			return nil, selectErr
		}

		matches = append(matches, slots)
	}

	slots := lists.IntersectAll(matches...)
	if stmt.Limit > 0 && len(slots) > stmt.Limit {
		slots = slots[:stmt.Limit]
	}

	result := make([]query.Record, 0, len(slots))
	for _, slot := range slots {
		result = append(result, s.record(def, t, slot))
	}

	return result, nil
}

// Insert upserts the row. Columns must exist, missing ones are left as they were.
func (s *Store) Insert(ctx context.Context, name string, row schema.Row) error {

	if validateErr := row.Validate(); validateErr != nil {
		return validateErr
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	def, t, err := s.lookup(name)
	if err != nil {
		return err
	}

	if row.Key.Name != def.KeyColumn {
		return fmt.Errorf("%w: `%s` != `%s`", ErrKeyMismatch, row.Key.Name, def.KeyColumn)
	}

	for _, attr := range row.Attributes {
		if _, known := t.columns[attr.Name]; !known {
			return fmt.Errorf("%w `%s`", ErrUnknownColumn, attr.Name)
		}
	}

	slot, exists := t.slots[row.Key.Value]
	if !exists {
		slot = len(t.keys)
		t.slots[row.Key.Value] = slot
		t.keys = append(t.keys, row.Key.Value)

		for _, col := range t.columns {
			col.grow()
		}
	}

	for _, attr := range row.Attributes {
		t.columns[attr.Name].set(slot, attr.Value)
	}

	return nil
}

func (s *Store) Columns(ctx context.Context, name string) ([]string, error) {
	def, ok := s.meta.GetTable(name)
	if !ok {
		return nil, fmt.Errorf("%w: `%s`", storage.ErrTableNotFound, name)
	}

	return def.ColumnNames(), nil
}

func (s *Store) AddColumn(ctx context.Context, name, columnName string, indexed bool) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	added, err := s.meta.AddColumn(name, schema.NewTextColumn(columnName, indexed))
	if err != nil {
		if errors.Is(err, meta.ErrTableNotFound) {
			return fmt.Errorf("%w: `%s`", storage.ErrTableNotFound, name)
		}
		return err
	}

	if added {
		t := s.tables[name]
		t.columns[columnName] = newColumn(len(t.keys))
	}

	return nil
}

// CreateTable is a no-op for existing tables.
func (s *Store) CreateTable(ctx context.Context, def schema.Table) error {

	if nameErr := schema.ValidateTableName(def.Name); nameErr != nil {
		return nameErr
	}

	if def.KeyColumn == "" {
		return fmt.Errorf("key column of `%s` is required", def.Name)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, exists := s.meta.GetTable(def.Name); exists {
		return nil
	}

	if addErr := s.meta.AddTable(def); addErr != nil {
		return addErr
	}

	s.tables[def.Name] = newTable(def)

	return nil
}

// DropTable is a no-op for missing tables.
func (s *Store) DropTable(ctx context.Context, name string) error {

	if nameErr := schema.ValidateTableName(name); nameErr != nil {
		return nameErr
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.meta.RemoveTable(name) {
		return nil
	}

	delete(s.tables, name)

	return s.meta.RemoveTableFromDisk(name)
}

func (s *Store) Tables(ctx context.Context) ([]string, error) {
	return s.meta.TableNames(), nil
}

type memRecord struct {
	columns []string
	values  map[string]string
}

func (r memRecord) ColumnNames() []string {
	return r.columns
}

func (r memRecord) Value(column string) (string, bool) {
	v, ok := r.values[column]
	return v, ok
}
