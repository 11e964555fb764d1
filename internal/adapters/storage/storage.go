// Package storage abre el backend configurado y expone el repo de mascotas
// y el destino del seeder sobre la misma conexión.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"petdb/internal/adapters/storage/memory"
	"petdb/internal/adapters/storage/mongo"
	"petdb/internal/adapters/storage/postgres"
	"petdb/internal/adapters/storage/sqlite"
	"petdb/internal/adapters/storage/sqlstore"
	"petdb/internal/domain/pets"
	"petdb/internal/platform/config"
	"petdb/internal/seed"
)

type Backend struct {
	Name   string
	Pets   pets.Repository
	Target seed.Target

	// Fresh indica que el storage arranca vacío en cada proceso (memory):
	// ahí el seed corre siempre.
	Fresh bool

	Close func(ctx context.Context) error
}

func Open(ctx context.Context, cfg config.Storage) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		st := memory.NewStore()
		return &Backend{
			Name:   config.BackendMemory,
			Pets:   st,
			Target: st,
			Fresh:  true,
			Close:  func(context.Context) error { return nil },
		}, nil

	case config.BackendMongo:
		client, err := mongo.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		st := mongo.NewStore(client.Database(cfg.MongoDatabase))
		return &Backend{
			Name:   config.BackendMongo,
			Pets:   st,
			Target: st,
			Close:  client.Disconnect,
		}, nil

	case config.BackendPostgres:
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		return sqlBackend(config.BackendPostgres, db, postgres.Dialect)

	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return sqlBackend(config.BackendSQLite, db, sqlite.Dialect)

	default:
		return nil, fmt.Errorf("storage: %w: %q", config.ErrUnknownBackend, cfg.Backend)
	}
}

// sqlBackend aplica migraciones (tabla pets) antes de devolver el store.
func sqlBackend(name string, db *sql.DB, d sqlstore.Dialect) (*Backend, error) {
	if err := sqlstore.Migrate(db, d); err != nil {
		_ = db.Close()
		return nil, err
	}
	st := sqlstore.NewStore(db, d)
	return &Backend{
		Name:   name,
		Pets:   st,
		Target: st,
		Close:  func(context.Context) error { return db.Close() },
	}, nil
}
