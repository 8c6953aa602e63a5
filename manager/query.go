package manager

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dot5enko/flexrow/manager/query"
	"github.com/dot5enko/flexrow/schema"
	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("row not found")
)

// Query returns the rows of the table matching the filters joined by the
// combinator. An empty table or no match yields an empty slice, storage
// failures are returned as errors.
func (sm *Manager) Query(
	ctx context.Context,
	table string,
	combinator query.Combinator,
	filters ...query.Filter,
) ([]schema.Row, error) {

	plan, planErr := sm.Planner.Plan(table, combinator, filters)
	if planErr != nil {
		return nil, fmt.Errorf("unable to construct query execution plan : %w", planErr)
	}

	log := sm.log.With("query_id", newQueryId(), "table", table)

	records, scanErr := sm.execute(ctx, plan)
	if scanErr != nil {
		log.Error("query failed", "plan", plan.Kind.String(), "err", scanErr)
		return nil, fmt.Errorf("%s of `%s` failed : %w", plan.Kind, table, scanErr)
	}

	rows := query.Reconcile(records, plan)

	sm.Metrics.Queries.WithLabelValues(combinator.String(), plan.Kind.String()).Inc()
	sm.Metrics.DeferredFilters.Add(float64(len(plan.Deferred)))
	sm.Metrics.RowsScanned.Add(float64(len(records)))
	sm.Metrics.RowsReturned.Add(float64(len(rows)))

	log.Debug("query executed",
		"combinator", combinator.String(),
		"plan", plan.Kind.String(),
		"native_clauses", len(plan.Where),
		"deferred_filters", len(plan.Deferred),
		"scanned", len(records),
		"returned", len(rows),
	)

	return rows, nil
}

func (sm *Manager) execute(ctx context.Context, plan query.QueryPlan) ([]query.Record, error) {
	switch plan.Kind {
	case query.FullScan:
		return sm.store.Scan(ctx, plan.Table)
	case query.FilteredScan:
		columns, columnsErr := sm.store.Columns(ctx, plan.Table)
		if columnsErr != nil {
			return nil, columnsErr
		}

		// every clause is ANDed, a column nobody wrote yet matches no row
		for _, clause := range plan.Where {
			if !slices.Contains(columns, clause.Column) {
				sm.log.Debug("native clause on unknown column", "table", plan.Table, "column", clause.Column)
				return []query.Record{}, nil
			}
		}

		return sm.store.FilteredScan(ctx, plan.Statement())
	default:
		return nil, fmt.Errorf("unknown plan kind %d", plan.Kind)
	}
}

// Explain returns the plan Query would run without touching the store.
func (sm *Manager) Explain(table string, combinator query.Combinator, filters ...query.Filter) (query.QueryPlan, error) {
	return sm.Planner.Plan(table, combinator, filters)
}

// GetByKey looks a single row up by equality on its key columns. ErrNotFound
// is returned when nothing matches.
func (sm *Manager) GetByKey(ctx context.Context, table string, keys ...schema.Key) (schema.Row, error) {

	plan, planErr := sm.Planner.PlanLookup(table, keys...)
	if planErr != nil {
		return schema.Row{}, fmt.Errorf("unable to construct lookup plan : %w", planErr)
	}

	records, scanErr := sm.execute(ctx, plan)
	if scanErr != nil {
		sm.Metrics.Lookups.WithLabelValues("error").Inc()
		return schema.Row{}, fmt.Errorf("lookup in `%s` failed : %w", table, scanErr)
	}

	rows := query.Reconcile(records, plan)

	if len(rows) == 0 {
		sm.Metrics.Lookups.WithLabelValues("not_found").Inc()
		return schema.Row{}, fmt.Errorf("%w: `%s` where %s", ErrNotFound, table, describeKeys(keys))
	}

	if len(rows) > 1 {
		sm.log.Warn("lookup matched more than one row", "table", table, "keys", describeKeys(keys))
	}

	sm.Metrics.Lookups.WithLabelValues("found").Inc()

	return rows[0], nil
}

// newQueryId prefers time ordered ids, falling back to random ones.
func newQueryId() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func describeKeys(keys []schema.Key) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k.Name+"="+k.Value)
	}
	return strings.Join(parts, ", ")
}
