package query

import (
	"errors"
	"testing"
)

func TestSelectStatementRendering(t *testing.T) {

	stmt := SelectStatement{
		Table: "users",
		Where: []Clause{
			{Column: "status", Operator: EQ, Value: "o'neil"},
			{Column: `we"ird`, Operator: GE, Value: "30"},
		},
		AllowFiltering: true,
	}

	cql, values := stmt.CQL()
	expected := `SELECT * FROM "users" WHERE "status" = ? AND "we""ird" >= ? ALLOW FILTERING`
	if cql != expected {
		t.Errorf("expected %s\n got %s", expected, cql)
	}

	if len(values) != 2 || values[0] != "o'neil" || values[1] != "30" {
		t.Errorf("unexpected values %v", values)
	}

	inline := stmt.String()
	expectedInline := `SELECT * FROM "users" WHERE "status" = 'o''neil' AND "we""ird" >= '30' ALLOW FILTERING`
	if inline != expectedInline {
		t.Errorf("expected %s\n got %s", expectedInline, inline)
	}
}

func TestSelectStatementWithoutWhere(t *testing.T) {

	cql, values := SelectStatement{Table: "users"}.CQL()
	if cql != `SELECT * FROM "users"` || len(values) != 0 {
		t.Errorf("unexpected unconditioned scan %s %v", cql, values)
	}
}

func TestParseFilter(t *testing.T) {

	cases := []struct {
		expr   string
		column string
		op     Operator
		value  string
	}{
		{"status=active", "status", EQ, "active"},
		{"status!=active", "status", NE, "active"},
		{"status<>active", "status", NE, "active"},
		{"age>35", "age", GT, "35"},
		{"age>=35", "age", GE, "35"},
		{"age<35", "age", LT, "35"},
		{"age<=35", "age", LE, "35"},
		{"note=a=b", "note", EQ, "a=b"},
		{"note=", "note", EQ, ""},
	}

	for _, c := range cases {
		f, err := ParseFilter(c.expr)
		if err != nil {
			t.Errorf("%s: unexpected error %v", c.expr, err)
			continue
		}

		if f.Column() != c.column || f.Operator != c.op || f.Value() != c.value {
			t.Errorf("%s: parsed into %+v", c.expr, f)
		}
	}

	for _, bad := range []string{"status", "=active", "a!b"} {
		if _, err := ParseFilter(bad); err == nil {
			t.Errorf("%s: expected error", bad)
		}
	}
}

func TestParseCombinator(t *testing.T) {

	cases := map[string]Combinator{"and": And, "AND": And, " or ": Or, "Or": Or}
	for in, expected := range cases {
		got, err := ParseCombinator(in)
		if err != nil || got != expected {
			t.Errorf("`%s`: expected %s, got %s (%v)", in, expected, got, err)
		}
	}

	if _, err := ParseCombinator("xor"); !errors.Is(err, ErrUnknownCombinator) {
		t.Errorf("expected unknown combinator, got %v", err)
	}
}
