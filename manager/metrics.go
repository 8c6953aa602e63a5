package manager

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus metrics of the query engine.
type Metrics struct {
	Queries         *prometheus.CounterVec
	DeferredFilters prometheus.Counter
	RowsScanned     prometheus.Counter
	RowsReturned    prometheus.Counter
	Lookups         *prometheus.CounterVec
	ColumnsAdded    prometheus.Counter
}

// NewMetrics creates and registers all metrics with the provided registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	queries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flexrow_queries_total",
		Help: "Queries executed by combinator and native plan",
	}, []string{"combinator", "plan"})

	deferredFilters := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "flexrow_deferred_filters_total",
		Help: "Filters evaluated in memory instead of by the storage engine",
	})

	rowsScanned := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "flexrow_rows_scanned_total",
		Help: "Candidate rows returned by the storage engine",
	})

	rowsReturned := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "flexrow_rows_returned_total",
		Help: "Rows returned to callers after reconciliation",
	})

	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flexrow_lookups_total",
		Help: "Key lookups by result",
	}, []string{"result"})

	columnsAdded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "flexrow_columns_added_total",
		Help: "Columns added to tables on first write of an attribute",
	})

	reg.MustRegister(queries, deferredFilters, rowsScanned, rowsReturned, lookups, columnsAdded)

	return &Metrics{
		Queries:         queries,
		DeferredFilters: deferredFilters,
		RowsScanned:     rowsScanned,
		RowsReturned:    rowsReturned,
		Lookups:         lookups,
		ColumnsAdded:    columnsAdded,
	}
}
