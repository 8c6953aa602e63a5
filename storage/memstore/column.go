package memstore

import (
	"fmt"

	"github.com/dot5enko/flexrow/manager/query"
	"github.com/dot5enko/flexrow/ops"
)

// column is a value vector indexed by row slot. Unset cells are absent.
type column struct {
	values  []string
	present []bool
}

func newColumn(slots int) *column {
	return &column{
		values:  make([]string, slots),
		present: make([]bool, slots),
	}
}

func (c *column) grow() {
	c.values = append(c.values, "")
	c.present = append(c.present, false)
}

func (c *column) set(slot int, value string) {
	c.values[slot] = value
	c.present[slot] = true
}

func (c *column) get(slot int) (string, bool) {
	return c.values[slot], c.present[slot]
}

// selectSlots returns the ascending slots matching the clause.
func (c *column) selectSlots(clause query.Clause) ([]int, error) {

	out := make([]int, len(c.values))
	var filled int

	switch clause.Operator {
	case query.EQ:
		filled = ops.SelectEqual(c.values, c.present, clause.Value, out)
	case query.LT:
		filled = ops.SelectLess(c.values, c.present, clause.Value, out)
	case query.LE:
		filled = ops.SelectLessOrEqual(c.values, c.present, clause.Value, out)
	case query.GT:
		filled = ops.SelectGreater(c.values, c.present, clause.Value, out)
	case query.GE:
		filled = ops.SelectGreaterOrEqual(c.values, c.present, clause.Value, out)
	default:
		return nil, fmt.Errorf("%w `%s`", ErrUnsupportedNativeOperator, clause.Operator)
	}

	return out[:filled], nil
}
