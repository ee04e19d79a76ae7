package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/Visitas-api/internal/domain/repository"
	"github.com/jhoicas/Visitas-api/internal/infrastructure/memory"
	"github.com/jhoicas/Visitas-api/internal/infrastructure/postgres"
	visitorredis "github.com/jhoicas/Visitas-api/internal/infrastructure/redis"
	"github.com/jhoicas/Visitas-api/pkg/clock"
	"github.com/jhoicas/Visitas-api/pkg/config"
)

// openStore construye el VisitorRepository según STORE_DRIVER.
// El cierre devuelto libera pool o cliente; para memoria no hace nada.
func openStore(ctx context.Context, cfg *config.Config, clk clock.Clock) (repository.VisitorRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migraciones: %w", err)
		}
		return postgres.NewVisitorRepository(pool, clk), pool.Close, nil

	case config.StoreRedis:
		rdb, err := visitorredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a Redis: %w", err)
		}
		return visitorredis.NewVisitorRepository(rdb, cfg.Redis.Prefix, clk), func() { _ = rdb.Close() }, nil

	default:
		return memory.NewVisitorRepository(clk), func() {}, nil
	}
}
