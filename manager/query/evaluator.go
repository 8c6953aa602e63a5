package query

import "github.com/dot5enko/flexrow/ops"

// Outcome of testing one filter against one record.
type Outcome byte

const (
	Absent Outcome = iota
	Matched
	Rejected
	Invalid
)

func (o Outcome) String() string {
	switch o {
	case Absent:
		return "absent"
	case Matched:
		return "matched"
	case Rejected:
		return "rejected"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

var comparators = [...]func(value, cmp string) bool{
	EQ: ops.Equal,
	NE: ops.NotEqual,
	LT: ops.Less,
	GT: ops.Greater,
	LE: ops.LessOrEqual,
	GE: ops.GreaterOrEqual,
}

func Match(record Record, filter Filter) Outcome {

	if !filter.Operator.Valid() {
		return Invalid
	}

	value, present := record.Value(filter.Attribute.Name)
	if !present {
		return Absent
	}

	if comparators[filter.Operator](value, filter.Attribute.Value) {
		return Matched
	}

	return Rejected
}

// Evaluate resolves a filter to a boolean under the given combinator.
// An absent column fails under AND and is inconclusive (true) under OR.
func Evaluate(record Record, filter Filter, combinator Combinator) bool {

	switch Match(record, filter) {
	case Matched:
		return true
	case Absent:
		return combinator == Or
	default:
		return false
	}
}
