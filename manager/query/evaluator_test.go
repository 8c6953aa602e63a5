package query

import (
	"testing"

	"github.com/dot5enko/flexrow/schema"
)

var evalRow = schema.NewRow(
	schema.NewKey("id", "1"),
	schema.NewAttribute("status", "active"),
	schema.NewAttribute("age", "30"),
)

func TestEvaluateOperators(t *testing.T) {

	cases := []struct {
		filter Filter
		expect bool
	}{
		{NewFilter("status", EQ, "active"), true},
		{NewFilter("status", EQ, "Active"), false},
		{NewFilter("status", NE, "active"), false},
		{NewFilter("status", NE, "inactive"), true},
		{NewFilter("age", LT, "4"), true},
		{NewFilter("age", GT, "100"), true}, // lexicographic
		{NewFilter("age", LE, "30"), true},
		{NewFilter("age", GE, "31"), false},
		{NewFilter("id", EQ, "1"), true},
	}

	for _, c := range cases {
		for _, combinator := range []Combinator{And, Or} {
			if got := Evaluate(evalRow, c.filter, combinator); got != c.expect {
				t.Errorf("%s under %s: expected %v got %v", c.filter, combinator, c.expect, got)
			}
		}
	}
}

func TestEvaluateAbsentColumn(t *testing.T) {

	filter := NewFilter("email", EQ, "x@y.z")

	if Match(evalRow, filter) != Absent {
		t.Errorf("expected absent outcome")
	}

	if Evaluate(evalRow, filter, And) {
		t.Errorf("absent column must fail under AND")
	}

	if !Evaluate(evalRow, filter, Or) {
		t.Errorf("absent column must not disqualify under OR")
	}
}

func TestEvaluateUnknownOperatorIsNonMatch(t *testing.T) {

	filter := Filter{Attribute: schema.NewAttribute("status", "active"), Operator: Operator(42)}

	if Match(evalRow, filter) != Invalid {
		t.Errorf("expected invalid outcome")
	}

	for _, combinator := range []Combinator{And, Or} {
		if Evaluate(evalRow, filter, combinator) {
			t.Errorf("unknown operator must not match under %s", combinator)
		}
	}

	// unknown operator on an absent column is still a non-match
	absent := Filter{Attribute: schema.NewAttribute("email", "x"), Operator: Operator(42)}
	if Evaluate(evalRow, absent, Or) {
		t.Errorf("unknown operator must not match on absent column")
	}
}
