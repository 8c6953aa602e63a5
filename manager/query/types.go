package query

import "github.com/dot5enko/flexrow/schema"

// Record is a row as returned by the storage engine.
type Record interface {
	// ColumnNames lists every column of the result, key column first.
	ColumnNames() []string

	// Value returns false when the column is absent (null) for this row.
	Value(column string) (string, bool)
}

var _ Record = schema.Row{}

type PlanKind byte

const (
	// unconditioned scan of the whole table
	FullScan PlanKind = iota
	// WHERE clause pushed to the engine
	FilteredScan
)

func (k PlanKind) String() string {
	switch k {
	case FullScan:
		return "full_scan"
	case FilteredScan:
		return "filtered_scan"
	default:
		return "unknown"
	}
}

type QueryPlan struct {
	Table      string
	Combinator Combinator
	Kind       PlanKind

	Where          []Clause
	AllowFiltering bool
	Limit          int

	// evaluated in memory against retrieved rows
	Deferred []Filter

	Filters []Filter
}

func (p QueryPlan) Statement() SelectStatement {
	return SelectStatement{
		Table:          p.Table,
		Where:          p.Where,
		AllowFiltering: p.AllowFiltering,
		Limit:          p.Limit,
	}
}
