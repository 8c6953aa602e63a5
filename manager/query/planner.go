package query

import (
	"errors"
	"fmt"

	"github.com/dot5enko/flexrow/schema"
)

var (
	ErrTableNameRequired = errors.New("table name is required")
	ErrNoKeys            = errors.New("lookup requires at least one key")
)

type QueryPlanner struct {
}

func NewQueryPlanner() *QueryPlanner {
	return &QueryPlanner{}
}

// Plan decides which filters go to the storage engine and which are
// evaluated in memory after the scan.
func (qp *QueryPlanner) Plan(
	table string,
	combinator Combinator,
	filters []Filter,
) (QueryPlan, error) {

	if table == "" {
		return QueryPlan{}, ErrTableNameRequired
	}

	if combinator != And && combinator != Or {
		return QueryPlan{}, fmt.Errorf("%w %d", ErrUnknownCombinator, combinator)
	}

	plan := QueryPlan{
		Table:      table,
		Combinator: combinator,
		Kind:       FullScan,
		Filters:    filters,
	}

	if len(filters) == 0 {
		return plan, nil
	}

	// no OR in the native language, everything is checked after a full scan
	if combinator == Or {
		plan.Deferred = append([]Filter{}, filters...)
		return plan, nil
	}

	equalityFilters := 0
	for _, filter := range filters {
		if filter.Operator == EQ {
			equalityFilters++
		}
	}

	if equalityFilters == 0 {
		plan.Deferred = append([]Filter{}, filters...)
		return plan, nil
	}

	where := make([]Clause, 0, len(filters))
	deferred := []Filter{}

	for _, filter := range filters {
		if filter.Operator.Native() {
			where = append(where, Clause{
				Column:   filter.Attribute.Name,
				Operator: filter.Operator,
				Value:    filter.Attribute.Value,
			})
		} else {
			deferred = append(deferred, filter)
		}
	}

	plan.Kind = FilteredScan
	plan.Where = where
	plan.Deferred = deferred
	plan.AllowFiltering = true

	return plan, nil
}

// PlanLookup builds a point lookup on key columns.
func (qp *QueryPlanner) PlanLookup(table string, keys ...schema.Key) (QueryPlan, error) {

	if table == "" {
		return QueryPlan{}, ErrTableNameRequired
	}

	if len(keys) == 0 {
		return QueryPlan{}, ErrNoKeys
	}

	plan := QueryPlan{
		Table:      table,
		Combinator: And,
		Kind:       FilteredScan,
		Where:      make([]Clause, 0, len(keys)),
		Filters:    make([]Filter, 0, len(keys)),

		// one is expected, the second one tells the lookup is ambiguous
		Limit: 2,
	}

	for _, key := range keys {
		plan.Where = append(plan.Where, Clause{Column: key.Name, Operator: EQ, Value: key.Value})
		plan.Filters = append(plan.Filters, NewFilter(key.Name, EQ, key.Value))
	}

	// a table has one key column, several restrictions need filtering
	plan.AllowFiltering = len(keys) > 1

	return plan, nil
}
