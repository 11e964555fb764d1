package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"petdb/internal/adapters/storage/sqlstore"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect para sqlstore: placeholders '?' y errores de constraint de sqlite.
var Dialect = sqlstore.Dialect{
	Name:        "sqlite3",
	Bind:        func(int) string { return "?" },
	IsDuplicate: isDuplicate,
}

// Open abre la base SQLite en dbPath: WAL, foreign keys y un solo writer.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", dbPath, err)
	}

	// SQLite es single-writer; una conexión evita SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: exec %q: %w", p, err)
		}
	}

	return db, nil
}

func isDuplicate(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	default:
		return false
	}
}
