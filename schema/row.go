package schema

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateAttribute = errors.New("duplicate attribute")
	ErrEmptyKey           = errors.New("row key name is empty")
)

// Row is one persisted record: a key plus a sparse set of attributes.
type Row struct {
	Key        Key         `json:"key"`
	Attributes []Attribute `json:"attributes"`
}

func NewRow(key Key, attributes ...Attribute) Row {
	return Row{Key: key, Attributes: attributes}
}

func (r Row) Validate() error {
	if r.Key.Name == "" {
		return ErrEmptyKey
	}

	seen := make(map[string]struct{}, len(r.Attributes)+1)
	seen[r.Key.Name] = struct{}{}

	for _, attr := range r.Attributes {
		if attr.Name == "" {
			return fmt.Errorf("attribute with empty name on row `%s`", r.Key.Value)
		}
		if _, dup := seen[attr.Name]; dup {
			return fmt.Errorf("%w `%s` on row `%s`", ErrDuplicateAttribute, attr.Name, r.Key.Value)
		}
		seen[attr.Name] = struct{}{}
	}

	return nil
}

// ColumnNames lists the key column first, then attributes in order.
func (r Row) ColumnNames() []string {
	names := make([]string, 0, len(r.Attributes)+1)
	names = append(names, r.Key.Name)

	for _, attr := range r.Attributes {
		names = append(names, attr.Name)
	}

	return names
}

func (r Row) Value(column string) (string, bool) {
	if column == r.Key.Name {
		return r.Key.Value, true
	}

	for _, attr := range r.Attributes {
		if attr.Name == column {
			return attr.Value, true
		}
	}

	return "", false
}
