package schema

type SchemaColumn struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`

	// secondary index on the column, added together with it
	Indexed bool `json:"indexed"`
}

func NewTextColumn(name string, indexed bool) SchemaColumn {
	return SchemaColumn{
		Name:    name,
		Type:    TextColumnType,
		Indexed: indexed,
	}
}
