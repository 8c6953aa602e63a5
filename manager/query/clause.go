package query

import (
	"strconv"
	"strings"
)

// Clause is one condition of a native WHERE.
type Clause struct {
	Column   string
	Operator Operator
	Value    string
}

// SelectStatement is the native filtered scan handed to the store.
type SelectStatement struct {
	Table string
	Where []Clause

	AllowFiltering bool

	// 0 means no limit
	Limit int
}

// QuoteIdentifier renders a case-preserving quoted identifier.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteLiteral renders a string literal for display.
func QuoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// CQL renders the statement with bind markers, values are returned in
// marker order.
func (s SelectStatement) CQL() (string, []any) {
	values := make([]any, 0, len(s.Where))

	stmt := s.render(func(c Clause) string {
		values = append(values, c.Value)
		return "?"
	})

	return stmt, values
}

// String renders the statement with inline literals.
func (s SelectStatement) String() string {
	return s.render(func(c Clause) string {
		return QuoteLiteral(c.Value)
	})
}

func (s SelectStatement) render(value func(Clause) string) string {
	parts := []string{"SELECT * FROM", QuoteIdentifier(s.Table)}

	if len(s.Where) > 0 {
		conditions := make([]string, 0, len(s.Where))
		for _, c := range s.Where {
			conditions = append(conditions, QuoteIdentifier(c.Column)+" "+c.Operator.String()+" "+value(c))
		}

		parts = append(parts, "WHERE", strings.Join(conditions, " AND "))
	}

	if s.Limit > 0 {
		parts = append(parts, "LIMIT", strconv.Itoa(s.Limit))
	}

	if s.AllowFiltering {
		parts = append(parts, "ALLOW FILTERING")
	}

	return strings.Join(parts, " ")
}
