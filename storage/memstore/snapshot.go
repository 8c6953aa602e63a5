package memstore

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dot5enko/flexrow/compression"
	"github.com/dot5enko/flexrow/io"
	"github.com/dot5enko/flexrow/manager/meta"
	"github.com/dot5enko/flexrow/schema"
)

const rowsFileName = "rows.lz4"

// Open loads a store persisted under path. A missing path yields an empty
// store that will be saved there.
func Open(path string) (*Store, error) {

	m := meta.NewMetaManager(path)

	if loadErr := m.LoadTablesFromDisk(); loadErr != nil {
		return nil, fmt.Errorf("unable to load table catalog : %w", loadErr)
	}

	s := newStore(m)

	for _, name := range m.TableNames() {

		def, _ := m.GetTable(name)
		t := newTable(def)
		s.tables[name] = t

		rowsLoaded, loadErr := s.loadRows(def, t)
		if loadErr != nil {
			return nil, fmt.Errorf("unable to load rows of `%s` : %w", name, loadErr)
		}

		slog.Debug("table loaded", "table", name, "rows", rowsLoaded)
	}

	return s, nil
}

func (s *Store) loadRows(def schema.Table, t *table) (int, error) {

	rowsPath, pathErr := s.meta.TablePath(def.Name, rowsFileName)
	if pathErr != nil {
		return 0, pathErr
	}

	compressed, readErr := io.ReadFile(rowsPath)
	if readErr != nil {
		if errors.Is(readErr, os.ErrNotExist) {
			return 0, nil
		}
		return 0, readErr
	}

	raw, decompressErr := compression.DecompressLz4(compressed)
	if decompressErr != nil {
		return 0, decompressErr
	}

	rows, decodeErr := decodeRows(raw, def.KeyColumn)
	if decodeErr != nil {
		return 0, decodeErr
	}

	for _, row := range rows {
		if _, dup := t.slots[row.Key.Value]; dup {
			return 0, fmt.Errorf("%w: duplicate key `%s`", ErrBadRowsFile, row.Key.Value)
		}

		slot := len(t.keys)
		t.slots[row.Key.Value] = slot
		t.keys = append(t.keys, row.Key.Value)

		for _, col := range t.columns {
			col.grow()
		}

		for _, attr := range row.Attributes {
			col, known := t.columns[attr.Name]
			if !known {
				return 0, fmt.Errorf("%w `%s` in stored row", ErrUnknownColumn, attr.Name)
			}
			col.set(slot, attr.Value)
		}
	}

	return len(rows), nil
}

// Save writes every table definition and its rows. Stores created with New
// have nowhere to save to.
func (s *Store) Save() error {

	if !s.meta.Persistent() {
		return errors.New("store has no storage path")
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	for _, name := range s.meta.TableNames() {

		def, _ := s.meta.GetTable(name)
		t := s.tables[name]

		if storeErr := s.meta.StoreTableToDisk(def); storeErr != nil {
			return fmt.Errorf("unable to save table `%s` : %w", name, storeErr)
		}

		rows := make([]schema.Row, 0, len(t.keys))
		for slot := range t.keys {
			rec := s.record(def, t, slot)
			rows = append(rows, rowFromRecord(def, rec))
		}

		raw, encodeErr := encodeRows(rows)
		if encodeErr != nil {
			return encodeErr
		}

		var buf bytes.Buffer
		if compressErr := compression.CompressLz4(raw, &buf); compressErr != nil {
			return compressErr
		}

		rowsPath, pathErr := s.meta.TablePath(name, rowsFileName)
		if pathErr != nil {
			return pathErr
		}

		if writeErr := io.WriteFile(rowsPath, buf.Bytes()); writeErr != nil {
			return fmt.Errorf("unable to save rows of `%s` : %w", name, writeErr)
		}
	}

	return nil
}

func rowFromRecord(def schema.Table, rec memRecord) schema.Row {
	row := schema.Row{Key: schema.NewKey(def.KeyColumn, rec.values[def.KeyColumn])}

	for _, col := range def.Columns {
		if value, ok := rec.values[col.Name]; ok {
			row.Attributes = append(row.Attributes, schema.NewAttribute(col.Name, value))
		}
	}

	return row
}
