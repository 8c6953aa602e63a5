package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dot5enko/flexrow/config"
	"github.com/dot5enko/flexrow/logging"
	"github.com/dot5enko/flexrow/manager"
	"github.com/dot5enko/flexrow/storage/cqlstore"
	"github.com/dot5enko/flexrow/storage/memstore"
)

// runtime ties the configured store and the manager together for one
// command invocation.
type runtime struct {
	cfg     *config.Config
	manager *manager.Manager

	mem *memstore.Store
	cql *cqlstore.Store
}

func openRuntime(ctx context.Context, configPath string) (*runtime, error) {

	cfg, cfgErr := config.Load(configPath)
	if cfgErr != nil {
		return nil, cfgErr
	}

	logger := logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	rt := &runtime{cfg: cfg}

	managerConfig := manager.ManagerConfig{
		IndexNewColumns: cfg.Schema.IndexNewColumns,
		Logger:          logger,
	}

	switch cfg.Backend {
	case config.CqlBackend:
		store, openErr := cqlstore.Open(ctx, cfg.Cql)
		if openErr != nil {
			return nil, openErr
		}
		rt.cql = store
		rt.manager = manager.New(store, managerConfig)

	default:
		var store *memstore.Store
		if cfg.Storage.Path == "" {
			store = memstore.New()
		} else {
			var openErr error
			store, openErr = memstore.Open(cfg.Storage.Path)
			if openErr != nil {
				return nil, fmt.Errorf("unable to open storage at %s : %w", cfg.Storage.Path, openErr)
			}
		}
		rt.mem = store
		rt.manager = manager.New(store, managerConfig)
	}

	slog.Debug("runtime ready", "backend", cfg.Backend)

	return rt, nil
}

// persist saves the memory backend snapshot after a write.
func (rt *runtime) persist() error {
	if rt.mem == nil || rt.cfg.Storage.Path == "" {
		return nil
	}

	return rt.mem.Save()
}

func (rt *runtime) Close() {
	if rt.cql != nil {
		rt.cql.Close()
	}
}

func cqlReplication(factor int) map[string]string {
	return cqlstore.DefaultReplication(factor)
}
