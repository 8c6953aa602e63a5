package query

import "github.com/dot5enko/flexrow/schema"

// Reconcile applies the deferred filters of the plan to the records
// returned by the engine and materializes the surviving rows.
func Reconcile(records []Record, plan QueryPlan) []schema.Row {

	result := []schema.Row{}

	// nothing to read column names from
	if len(records) == 0 {
		return result
	}

	for _, record := range records {

		if !selected(record, plan.Deferred, plan.Combinator) {
			continue
		}

		row, ok := materialize(record)
		if ok {
			result = append(result, row)
		}
	}

	return result
}

func selected(record Record, filters []Filter, combinator Combinator) bool {

	if len(filters) == 0 {
		return true
	}

	if combinator == Or {
		for _, filter := range filters {
			// absent columns do not decide a union on their own
			if Match(record, filter) == Matched {
				return true
			}
		}
		return false
	}

	for _, filter := range filters {
		if !Evaluate(record, filter, And) {
			return false
		}
	}

	return true
}

// materialize copies a record into a row. The first reported column is the
// key, null columns are left out.
func materialize(record Record) (schema.Row, bool) {

	columns := record.ColumnNames()
	if len(columns) == 0 {
		return schema.Row{}, false
	}

	keyValue, _ := record.Value(columns[0])

	row := schema.Row{
		Key:        schema.NewKey(columns[0], keyValue),
		Attributes: make([]schema.Attribute, 0, len(columns)-1),
	}

	for _, column := range columns[1:] {
		if value, present := record.Value(column); present {
			row.Attributes = append(row.Attributes, schema.NewAttribute(column, value))
		}
	}

	return row, true
}
