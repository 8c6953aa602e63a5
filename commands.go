package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/dot5enko/flexrow/manager/query"
	"github.com/dot5enko/flexrow/schema"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configPath string

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "flexrow",
		Short:         "Dynamic-column row store over a column-family engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (yaml, json or toml)")

	root.AddCommand(
		tablesCmd(),
		createKeyspaceCmd(),
		createTableCmd(),
		dropTableCmd(),
		insertCmd(),
		getCmd(),
		queryCmd(),
		explainCmd(),
	)

	return root
}

// withRuntime opens the configured backend for the duration of fn.
func withRuntime(cmd *cobra.Command, write bool, fn func(ctx context.Context, rt *runtime) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := openRuntime(ctx, configPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := fn(ctx, rt); err != nil {
		return err
	}

	if write {
		return rt.persist()
	}

	return nil
}

func parsePair(expr string) (string, string, error) {
	name, value, ok := strings.Cut(expr, "=")
	if !ok || name == "" {
		return "", "", fmt.Errorf("expected name=value, got `%s`", expr)
	}
	return name, value, nil
}

func parseFilters(exprs []string) ([]query.Filter, error) {
	filters := make([]query.Filter, 0, len(exprs))
	for _, expr := range exprs {
		f, err := query.ParseFilter(expr)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

func printRows(rows []schema.Row) {
	keyColor := color.New(color.FgCyan, color.Bold)

	for _, row := range rows {
		keyColor.Printf("%s=%s", row.Key.Name, row.Key.Value)
		for _, attr := range row.Attributes {
			fmt.Printf(" %s=%s", attr.Name, attr.Value)
		}
		fmt.Println()
	}

	color.New(color.Faint).Fprintf(os.Stderr, "(%d rows)\n", len(rows))
}

func tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, false, func(ctx context.Context, rt *runtime) error {
				tables, err := rt.manager.Tables(ctx)
				if err != nil {
					return err
				}
				for _, name := range tables {
					fmt.Println(name)
				}
				return nil
			})
		},
	}
}

func createKeyspaceCmd() *cobra.Command {
	var replicationFactor int

	cmd := &cobra.Command{
		Use:   "create-keyspace <name>",
		Short: "Create a keyspace (cql backend only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, false, func(ctx context.Context, rt *runtime) error {
				if rt.cql == nil {
					return usageError("keyspaces exist only on the cql backend")
				}
				if !cmd.Flags().Changed("rf") {
					replicationFactor = rt.cfg.Cql.ReplicationFactor
				}
				return rt.cql.CreateKeyspace(ctx, args[0], cqlReplication(replicationFactor))
			})
		},
	}

	cmd.Flags().IntVar(&replicationFactor, "rf", 3, "SimpleStrategy replication factor, defaults to cql.replication_factor")

	return cmd
}

func createTableCmd() *cobra.Command {
	var unindexed bool

	cmd := &cobra.Command{
		Use:   "create-table <table> <key-column> [columns...]",
		Short: "Create a table with a text primary key",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := schema.Table{Name: args[0], KeyColumn: args[1]}
			for _, col := range args[2:] {
				table.Columns = append(table.Columns, schema.NewTextColumn(col, !unindexed))
			}

			return withRuntime(cmd, true, func(ctx context.Context, rt *runtime) error {
				return rt.manager.CreateTable(ctx, table)
			})
		},
	}

	cmd.Flags().BoolVar(&unindexed, "no-index", false, "do not index the listed columns")

	return cmd
}

func dropTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop-table <table>",
		Short: "Drop a table, missing tables are ignored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, true, func(ctx context.Context, rt *runtime) error {
				return rt.manager.DropTable(ctx, args[0])
			})
		},
	}
}

func insertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insert <table> <key=value> [attribute=value...]",
		Short: "Insert a row, adding unseen columns",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyName, keyValue, err := parsePair(args[1])
			if err != nil {
				return err
			}

			row := schema.NewRow(schema.NewKey(keyName, keyValue))
			for _, expr := range args[2:] {
				name, value, err := parsePair(expr)
				if err != nil {
					return err
				}
				row.Attributes = append(row.Attributes, schema.NewAttribute(name, value))
			}

			return withRuntime(cmd, true, func(ctx context.Context, rt *runtime) error {
				return rt.manager.Insert(ctx, args[0], row)
			})
		},
	}
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <table> <key=value>...",
		Short: "Look a row up by key",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := make([]schema.Key, 0, len(args)-1)
			for _, expr := range args[1:] {
				name, value, err := parsePair(expr)
				if err != nil {
					return err
				}
				keys = append(keys, schema.NewKey(name, value))
			}

			return withRuntime(cmd, false, func(ctx context.Context, rt *runtime) error {
				row, err := rt.manager.GetByKey(ctx, args[0], keys...)
				if err != nil {
					return err
				}
				printRows([]schema.Row{row})
				return nil
			})
		},
	}
}

func queryCmd() *cobra.Command {
	var combinatorName string

	cmd := &cobra.Command{
		Use:   "query <table> [filter...]",
		Short: "Query rows with filters like status=active age>35 name!=bob",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			combinator, err := query.ParseCombinator(combinatorName)
			if err != nil {
				return err
			}

			filters, err := parseFilters(args[1:])
			if err != nil {
				return err
			}

			return withRuntime(cmd, false, func(ctx context.Context, rt *runtime) error {
				rows, err := rt.manager.Query(ctx, args[0], combinator, filters...)
				if err != nil {
					return err
				}
				printRows(rows)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&combinatorName, "combinator", "and", "join filters with `and` or `or`")

	return cmd
}

func explainCmd() *cobra.Command {
	var combinatorName string
	var dump bool

	cmd := &cobra.Command{
		Use:   "explain <table> [filter...]",
		Short: "Show the native statement and the filters evaluated in memory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			combinator, err := query.ParseCombinator(combinatorName)
			if err != nil {
				return err
			}

			filters, err := parseFilters(args[1:])
			if err != nil {
				return err
			}

			return withRuntime(cmd, false, func(ctx context.Context, rt *runtime) error {
				plan, err := rt.manager.Explain(args[0], combinator, filters...)
				if err != nil {
					return err
				}

				if dump {
					spew.Dump(plan)
					return nil
				}

				fmt.Printf("plan:     %s\n", plan.Kind)
				fmt.Printf("native:   %s\n", plan.Statement())
				for _, f := range plan.Deferred {
					fmt.Printf("deferred: %s (%s)\n", f, plan.Combinator)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&combinatorName, "combinator", "and", "join filters with `and` or `or`")
	cmd.Flags().BoolVar(&dump, "dump", false, "dump the whole plan structure")

	return cmd
}
