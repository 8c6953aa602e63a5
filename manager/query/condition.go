package query

import (
	"fmt"
	"strings"

	"github.com/dot5enko/flexrow/schema"
)

// Filter compares the named column of a row with the attribute value.
type Filter struct {
	Attribute schema.Attribute
	Operator  Operator
}

func NewFilter(column string, op Operator, value string) Filter {
	return Filter{
		Attribute: schema.NewAttribute(column, value),
		Operator:  op,
	}
}

func (f Filter) Column() string {
	return f.Attribute.Name
}

func (f Filter) Value() string {
	return f.Attribute.Value
}

func (f Filter) String() string {
	return fmt.Sprintf("%s %s '%s'", f.Attribute.Name, f.Operator, f.Attribute.Value)
}

// ParseFilter parses expressions like `status=active`, `age>=35` or
// `name!=bob`. The first operator character splits column and value.
func ParseFilter(expr string) (Filter, error) {
	idx := strings.IndexAny(expr, "!<>=")
	if idx <= 0 {
		return Filter{}, fmt.Errorf("filter `%s` has no column or operator", expr)
	}

	end := idx + 1
	if end < len(expr) && (expr[end] == '=' || (expr[idx] == '<' && expr[end] == '>')) {
		end++
	}

	op, opErr := ParseOperator(expr[idx:end])
	if opErr != nil {
		return Filter{}, opErr
	}

	column := strings.TrimSpace(expr[:idx])
	if column == "" {
		return Filter{}, fmt.Errorf("filter `%s` has an empty column name", expr)
	}

	return NewFilter(column, op, expr[end:]), nil
}
