package schema

// Table describes a dynamic-column table. Columns grow as new attribute
// names are written, the key column is fixed at creation.
type Table struct {
	Name      string         `json:"name"`
	KeyColumn string         `json:"key_column"`
	Columns   []SchemaColumn `json:"columns"`
}

func (t *Table) Column(name string) (SchemaColumn, bool) {
	for _, it := range t.Columns {
		if it.Name == name {
			return it, true
		}
	}

	return SchemaColumn{}, false
}

func (t *Table) HasColumn(name string) bool {
	if name == t.KeyColumn {
		return true
	}

	_, ok := t.Column(name)
	return ok
}

// ColumnNames returns the key column followed by regular columns in
// creation order.
func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns)+1)
	names = append(names, t.KeyColumn)

	for _, it := range t.Columns {
		names = append(names, it.Name)
	}

	return names
}
