package cqlstore

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/dot5enko/flexrow/manager/query"
	"github.com/dot5enko/flexrow/schema"
)

// DefaultReplication is used when a keyspace is created without options.
func DefaultReplication(factor int) map[string]string {
	if factor <= 0 {
		factor = 3
	}

	return map[string]string{
		"class":              "SimpleStrategy",
		"replication_factor": strconv.Itoa(factor),
	}
}

func createKeyspaceStmt(name string, replication map[string]string) string {

	options := make([]string, 0, len(replication))
	for _, k := range slices.Sorted(maps.Keys(replication)) {
		options = append(options, query.QuoteLiteral(k)+": "+query.QuoteLiteral(replication[k]))
	}

	return "CREATE KEYSPACE IF NOT EXISTS " + query.QuoteIdentifier(name) +
		" WITH replication = {" + strings.Join(options, ", ") + "}"
}

func createTableStmt(table schema.Table) string {

	columns := make([]string, 0, len(table.Columns)+1)
	columns = append(columns, query.QuoteIdentifier(table.KeyColumn)+" "+schema.TextColumnType.String()+" PRIMARY KEY")

	for _, col := range table.Columns {
		if col.Name == table.KeyColumn {
			continue
		}
		columns = append(columns, query.QuoteIdentifier(col.Name)+" "+col.Type.String())
	}

	return "CREATE TABLE IF NOT EXISTS " + query.QuoteIdentifier(table.Name) + " (" + strings.Join(columns, ", ") + ")"
}

func addColumnStmt(table, column string) string {
	return "ALTER TABLE " + query.QuoteIdentifier(table) + " ADD " + query.QuoteIdentifier(column) + " " + schema.TextColumnType.String()
}

func createIndexStmt(table, column string) string {
	return "CREATE INDEX IF NOT EXISTS ON " + query.QuoteIdentifier(table) + " (" + query.QuoteIdentifier(column) + ")"
}

func dropTableStmt(table string) string {
	return "DROP TABLE IF EXISTS " + query.QuoteIdentifier(table)
}

func insertStmt(table string, row schema.Row) (string, []any) {

	columns := make([]string, 0, len(row.Attributes)+1)
	markers := make([]string, 0, len(row.Attributes)+1)
	values := make([]any, 0, len(row.Attributes)+1)

	columns = append(columns, query.QuoteIdentifier(row.Key.Name))
	markers = append(markers, "?")
	values = append(values, row.Key.Value)

	for _, attr := range row.Attributes {
		columns = append(columns, query.QuoteIdentifier(attr.Name))
		markers = append(markers, "?")
		values = append(values, attr.Value)
	}

	stmt := "INSERT INTO " + query.QuoteIdentifier(table) +
		" (" + strings.Join(columns, ", ") + ") VALUES (" + strings.Join(markers, ", ") + ")"

	return stmt, values
}

const (
	selectTablesStmt  = "SELECT table_name FROM system_schema.tables WHERE keyspace_name = ?"
	selectColumnsStmt = "SELECT column_name, kind, position FROM system_schema.columns WHERE keyspace_name = ? AND table_name = ?"
)
