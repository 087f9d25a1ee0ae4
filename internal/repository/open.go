package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jafarshop/dealmarket/internal/config"
	"github.com/jafarshop/dealmarket/internal/repository/memory"
	"github.com/jafarshop/dealmarket/internal/repository/postgres"
	"github.com/jafarshop/dealmarket/internal/repository/redisx"
	"github.com/jafarshop/dealmarket/internal/repository/sqlite"
)

var (
	_ Store = (*memory.Store)(nil)
	_ Store = (*sqlite.Store)(nil)
	_ Store = (*redisx.Store)(nil)
)

// Open connects the backend selected by cfg.Storage.Driver and scopes it
// to cfg.Storage.Namespace
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		store = memory.NewStore()
	case config.DriverSQLite:
		store, err = sqlite.Open(ctx, cfg.Storage.SQLitePath, logger)
	case config.DriverPostgres:
		db, connErr := postgres.NewConnection(cfg.Database)
		if connErr != nil {
			return nil, connErr
		}
		store, err = postgres.NewKVRepository(ctx, db, logger)
		if err != nil {
			db.Close()
		}
	case config.DriverRedis:
		store, err = redisx.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Driver, err)
	}

	logger.Info("Storage ready",
		zap.String("driver", cfg.Storage.Driver),
		zap.String("namespace", cfg.Storage.Namespace),
	)
	return Prefixed(store, cfg.Storage.Namespace), nil
}
