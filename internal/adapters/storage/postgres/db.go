package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"petdb/internal/adapters/storage/sqlstore"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// código SQLSTATE de unique_violation
const uniqueViolation = "23505"

// Dialect para sqlstore: placeholders $n y unique_violation de pgx.
var Dialect = sqlstore.Dialect{
	Name:        "postgres",
	Bind:        func(n int) string { return "$" + strconv.Itoa(n) },
	IsDuplicate: isDuplicate,
}

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
