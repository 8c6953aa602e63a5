package manager

import (
	"log/slog"

	"github.com/dot5enko/flexrow/manager/query"
	"github.com/dot5enko/flexrow/storage"
	"github.com/prometheus/client_golang/prometheus"
)

type ManagerConfig struct {
	// new columns get a secondary index when added on write
	IndexNewColumns bool

	Logger *slog.Logger

	// nil keeps metrics in a private registry
	Registerer prometheus.Registerer
}

// Manager plans and runs queries over a storage engine and keeps table
// columns in sync with written attributes.
type Manager struct {
	store  storage.Store
	config ManagerConfig

	Planner *query.QueryPlanner
	Schema  *SchemaSync
	Metrics *Metrics

	log *slog.Logger
}

func New(store storage.Store, config ManagerConfig) *Manager {

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registerer := config.Registerer
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}

	metrics := NewMetrics(registerer)

	return &Manager{
		store:   store,
		config:  config,
		Planner: query.NewQueryPlanner(),
		Schema:  NewSchemaSync(store, config.IndexNewColumns, metrics),
		Metrics: metrics,
		log:     logger,
	}
}

func (sm *Manager) Store() storage.Store {
	return sm.store
}
