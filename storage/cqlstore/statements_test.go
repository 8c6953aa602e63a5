package cqlstore

import (
	"testing"

	"github.com/dot5enko/flexrow/schema"
	"github.com/stretchr/testify/require"
)

func TestCreateKeyspaceStmt(t *testing.T) {

	stmt := createKeyspaceStmt("shop", DefaultReplication(0))
	require.Equal(t, `CREATE KEYSPACE IF NOT EXISTS "shop" WITH replication = {'class': 'SimpleStrategy', 'replication_factor': '3'}`, stmt)

	stmt = createKeyspaceStmt("shop", map[string]string{"class": "NetworkTopologyStrategy", "dc1": "2"})
	require.Equal(t, `CREATE KEYSPACE IF NOT EXISTS "shop" WITH replication = {'class': 'NetworkTopologyStrategy', 'dc1': '2'}`, stmt)
}

func TestCreateTableStmtHasNoTrailingSeparators(t *testing.T) {

	stmt := createTableStmt(schema.Table{Name: "users", KeyColumn: "id"})
	require.Equal(t, `CREATE TABLE IF NOT EXISTS "users" ("id" text PRIMARY KEY)`, stmt)

	stmt = createTableStmt(schema.Table{
		Name:      "users",
		KeyColumn: "id",
		Columns:   []schema.SchemaColumn{schema.NewTextColumn("status", true), schema.NewTextColumn("age", false)},
	})
	require.Equal(t, `CREATE TABLE IF NOT EXISTS "users" ("id" text PRIMARY KEY, "status" text, "age" text)`, stmt)
}

func TestInsertStmtBindsValues(t *testing.T) {

	row := schema.NewRow(schema.NewKey("id", "1"), schema.NewAttribute("note", "it's"), schema.NewAttribute("age", "30"))

	stmt, values := insertStmt("users", row)
	require.Equal(t, `INSERT INTO "users" ("id", "note", "age") VALUES (?, ?, ?)`, stmt)
	require.Equal(t, []any{"1", "it's", "30"}, values)
}

func TestAlterStatements(t *testing.T) {

	require.Equal(t, `ALTER TABLE "users" ADD "email" text`, addColumnStmt("users", "email"))
	require.Equal(t, `CREATE INDEX IF NOT EXISTS ON "users" ("email")`, createIndexStmt("users", "email"))
	require.Equal(t, `DROP TABLE IF EXISTS "users"`, dropTableStmt("users"))
}

func TestColumnOrdering(t *testing.T) {

	require.Less(t, kindOrder("partition_key"), kindOrder("clustering"))
	require.Less(t, kindOrder("clustering"), kindOrder("regular"))
}
