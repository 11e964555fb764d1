package sqlstore

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate aplica las migraciones pendientes (tabla pets). Los índices
// secundarios no van acá: los crea el seeder.
func Migrate(db *sql.DB, d Dialect) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect(d.Name); err != nil {
		return fmt.Errorf("sqlstore: set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("sqlstore: run migrations: %w", err)
	}

	return nil
}
