// Package storage elige el adaptador de almacén según DB_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/bill-detail/internal/domain/repository"
	"github.com/jhoicas/bill-detail/internal/infrastructure/fixtures"
	"github.com/jhoicas/bill-detail/internal/infrastructure/memory"
	"github.com/jhoicas/bill-detail/internal/infrastructure/postgres"
	"github.com/jhoicas/bill-detail/internal/infrastructure/sqlite"
	"github.com/jhoicas/bill-detail/pkg/config"
)

// Backend almacén abierto: lectura (Store), carga de datos (Seeder) y liberación (Close).
type Backend struct {
	Driver string
	Store  repository.BillStore
	Seeder repository.Seeder
	close  func()
}

// Close libera el pool o el archivo subyacente.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open conecta el adaptador configurado. Postgres aplica el esquema al arrancar;
// memory carga FIXTURES_PATH si está definido.
func Open(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Str("driver", cfg.Driver).Msg("almacén PostgreSQL listo")
		return &Backend{
			Driver: cfg.Driver,
			Store:  postgres.NewBillStore(pool),
			Seeder: postgres.NewTxRunner(pool),
			close:  pool.Close,
		}, nil

	case config.DriverSQLite:
		store, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", cfg.Driver).Str("path", cfg.SQLitePath).Msg("almacén SQLite listo")
		return &Backend{
			Driver: cfg.Driver,
			Store:  store,
			Seeder: store,
			close: func() {
				if err := store.Close(); err != nil {
					log.Warn().Err(err).Msg("cerrar SQLite")
				}
			},
		}, nil

	case config.DriverMemory:
		store := memory.NewStore()
		if cfg.FixturesPath != "" {
			f, err := fixtures.Load(cfg.FixturesPath)
			if err != nil {
				return nil, err
			}
			st, err := f.Apply(ctx, store)
			if err != nil {
				return nil, err
			}
			log.Info().Str("fixtures", cfg.FixturesPath).Int("shops", st.Shops).Int("bills", st.Bills).Int("items", st.Items).Msg("fixtures cargados")
		}
		return &Backend{Driver: cfg.Driver, Store: store, Seeder: store}, nil

	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Driver)
	}
}
