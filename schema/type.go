package schema

type ColumnType uint8

const (
	TextColumnType ColumnType = iota
)

// String returns the native type name used in DDL.
func (c ColumnType) String() string {
	switch c {
	case TextColumnType:
		return "text"
	default:
		return ""
	}
}
