package memstore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/dot5enko/flexrow/bits"
	"github.com/dot5enko/flexrow/schema"
)

const rowsFormatVersion = 1

var (
	rowsMagic = [4]byte{'F', 'X', 'R', 'W'}

	ErrBadRowsFile = errors.New("malformed rows file")
)

// encodeRows lays rows out as: magic, version byte, u32 row count, then per
// row the key value, a u16 attribute count and name/value string pairs.
func encodeRows(rows []schema.Row) ([]byte, error) {
	w := bits.NewEncodeBuffer(make([]byte, 0, 1024), binary.LittleEndian)

	w.Write(rowsMagic[:])
	w.WriteByte(rowsFormatVersion)
	w.PutUint32(uint32(len(rows)))

	for _, row := range rows {
		if len(row.Attributes) > math.MaxUint16 {
			return nil, fmt.Errorf("row `%s` has too many attributes", row.Key.Value)
		}

		if err := w.PutString(row.Key.Value); err != nil {
			return nil, err
		}

		w.PutUint16(uint16(len(row.Attributes)))
		for _, attr := range row.Attributes {
			if err := w.PutString(attr.Name); err != nil {
				return nil, err
			}
			if err := w.PutString(attr.Value); err != nil {
				return nil, err
			}
		}
	}

	return w.Bytes(), nil
}

func decodeRows(data []byte, keyColumn string) ([]schema.Row, error) {
	r := bits.NewReader(bytes.NewReader(data), binary.LittleEndian)

	var magic [4]byte
	if err := r.ReadBytes(len(magic), magic[:]); err != nil || magic != rowsMagic {
		return nil, ErrBadRowsFile
	}

	version, err := r.ReadU8()
	if err != nil {
		return nil, ErrBadRowsFile
	}
	if version != rowsFormatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadRowsFile, version)
	}

	count, err := r.ReadU32()
	if err != nil {
		return nil, ErrBadRowsFile
	}

	rows := make([]schema.Row, 0, min(int(count), 1<<16))

	for i := uint32(0); i < count; i++ {
		keyValue, err := r.ReadString()
		if err != nil {
			return nil, fmt.Errorf("%w: row %d key: %v", ErrBadRowsFile, i, err)
		}

		attrCount, err := r.ReadU16()
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrBadRowsFile, i, err)
		}

		row := schema.NewRow(schema.NewKey(keyColumn, keyValue))
		for a := uint16(0); a < attrCount; a++ {
			name, nameErr := r.ReadString()
			if nameErr != nil {
				return nil, fmt.Errorf("%w: row %d attribute %d: %v", ErrBadRowsFile, i, a, nameErr)
			}
			value, valueErr := r.ReadString()
			if valueErr != nil {
				return nil, fmt.Errorf("%w: row %d attribute %d: %v", ErrBadRowsFile, i, a, valueErr)
			}
			row.Attributes = append(row.Attributes, schema.NewAttribute(name, value))
		}

		rows = append(rows, row)
	}

	return rows, nil
}
