package schema

// Attribute is a single named string value of a row.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Key is the attribute stored in the table's primary key column.
type Key struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func NewAttribute(name, value string) Attribute {
	return Attribute{Name: name, Value: value}
}

func NewKey(name, value string) Key {
	return Key{Name: name, Value: value}
}
