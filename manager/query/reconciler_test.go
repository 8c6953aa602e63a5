package query

import (
	"testing"

	"github.com/dot5enko/flexrow/schema"
)

func usersRecords() []Record {
	return []Record{
		schema.NewRow(schema.NewKey("id", "1"), schema.NewAttribute("status", "active"), schema.NewAttribute("age", "30")),
		schema.NewRow(schema.NewKey("id", "2"), schema.NewAttribute("status", "inactive"), schema.NewAttribute("age", "40")),
		schema.NewRow(schema.NewKey("id", "3")),
	}
}

func keysOf(rows []schema.Row) []string {
	keys := []string{}
	for _, r := range rows {
		keys = append(keys, r.Key.Value)
	}
	return keys
}

func TestReconcileEmptyRecordSet(t *testing.T) {

	// regression: column names used to be read from the first record
	// before checking the set was empty
	plan := QueryPlan{Combinator: And, Deferred: []Filter{NewFilter("status", NE, "active")}}

	rows := Reconcile(nil, plan)
	if rows == nil || len(rows) != 0 {
		t.Errorf("expected empty non-nil result, got %v", rows)
	}

	rows = Reconcile([]Record{}, QueryPlan{Combinator: Or})
	if rows == nil || len(rows) != 0 {
		t.Errorf("expected empty non-nil result, got %v", rows)
	}
}

func TestReconcileOrUnion(t *testing.T) {

	plan := QueryPlan{
		Combinator: Or,
		Deferred:   []Filter{NewFilter("status", EQ, "active"), NewFilter("age", GT, "35")},
	}

	keys := keysOf(Reconcile(usersRecords(), plan))
	if len(keys) != 2 || keys[0] != "1" || keys[1] != "2" {
		t.Errorf("expected rows 1 and 2, got %v", keys)
	}
}

func TestReconcileOrDropsRowsWithOnlyAbsentColumns(t *testing.T) {

	plan := QueryPlan{
		Combinator: Or,
		Deferred:   []Filter{NewFilter("email", EQ, "a"), NewFilter("phone", EQ, "b")},
	}

	if rows := Reconcile(usersRecords(), plan); len(rows) != 0 {
		t.Errorf("expected no rows, got %v", keysOf(rows))
	}
}

func TestReconcileAndIntersection(t *testing.T) {

	plan := QueryPlan{
		Combinator: And,
		Deferred:   []Filter{NewFilter("status", NE, "active")},
	}

	keys := keysOf(Reconcile(usersRecords(), plan))

	// row 3 has no status and fails under AND
	if len(keys) != 1 || keys[0] != "2" {
		t.Errorf("expected only row 2, got %v", keys)
	}
}

func TestReconcilePassThroughKeepsEveryRow(t *testing.T) {

	rows := Reconcile(usersRecords(), QueryPlan{Combinator: Or})
	if len(rows) != 3 {
		t.Errorf("expected all rows, got %d", len(rows))
	}

	if rows[0].Key.Name != "id" || len(rows[0].Attributes) != 2 {
		t.Errorf("unexpected materialized row %+v", rows[0])
	}

	if len(rows[2].Attributes) != 0 {
		t.Errorf("absent columns must not be materialized: %+v", rows[2])
	}
}
