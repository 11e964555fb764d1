package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"petdb/internal/domain/pets"
)

// columnas indexables (whitelist: el nombre va interpolado en el DDL)
var indexColumns = map[string]string{
	pets.FieldSpecies:   "species",
	pets.FieldOwnerName: "owner_name",
}

const petColumns = `id, name, species, age, owner_name`

type Store struct {
	db *sql.DB
	d  Dialect
}

func NewStore(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, d: d}
}

// -------------------------
// seed target
// -------------------------

// InsertMany hace un único INSERT multi-fila dentro de una transacción.
func (s *Store) InsertMany(ctx context.Context, records []pets.Pet) error {
	if len(records) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString(`INSERT INTO pets (` + petColumns + `) VALUES `)
	args := make([]any, 0, len(records)*5)
	for i, p := range records {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(?, ?, ?, ?, ?)")
		args = append(args, p.ID, p.Name, p.Species, p.Age, p.OwnerName)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, s.d.rebind(b.String()), args...); err != nil {
		return s.mapDuplicate(err)
	}
	return tx.Commit()
}

func (s *Store) CreateIndex(ctx context.Context, field string) error {
	col, ok := indexColumns[field]
	if !ok {
		return fmt.Errorf("sqlstore: cannot index unknown field %q", field)
	}
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`CREATE INDEX idx_pets_%s ON pets (%s ASC)`, col, col))
	return err
}

// FindBy busca por igualdad sobre un campo indexable.
func (s *Store) FindBy(ctx context.Context, field, value string) ([]pets.Pet, error) {
	col, ok := indexColumns[field]
	if !ok {
		return nil, fmt.Errorf("sqlstore: unknown field %q", field)
	}
	return s.query(ctx, `SELECT `+petColumns+` FROM pets WHERE `+col+` = ? ORDER BY id ASC`, value)
}

// -------------------------
// pets.Repository
// -------------------------

func (s *Store) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	if p.ID != 0 {
		_, err := s.db.ExecContext(ctx, s.d.rebind(`
			INSERT INTO pets (`+petColumns+`) VALUES (?, ?, ?, ?, ?)
		`), p.ID, p.Name, p.Species, p.Age, p.OwnerName)
		if err != nil {
			return pets.Pet{}, s.mapDuplicate(err)
		}
		return p, nil
	}

	// Mismo criterio que el seed: ids explícitos, siguiente = max + 1.
	row := s.db.QueryRowContext(ctx, s.d.rebind(`
		INSERT INTO pets (`+petColumns+`)
		SELECT COALESCE(MAX(id), 0) + 1, ?, ?, ?, ? FROM pets
		RETURNING id
	`), p.Name, p.Species, p.Age, p.OwnerName)
	if err := row.Scan(&p.ID); err != nil {
		return pets.Pet{}, s.mapDuplicate(err)
	}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	row := s.db.QueryRowContext(ctx, s.d.rebind(`SELECT `+petColumns+` FROM pets WHERE id = ?`), id)

	var p pets.Pet
	if err := row.Scan(&p.ID, &p.Name, &p.Species, &p.Age, &p.OwnerName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (s *Store) List(ctx context.Context) ([]pets.Pet, error) {
	return s.query(ctx, `SELECT `+petColumns+` FROM pets ORDER BY id ASC`)
}

func (s *Store) Update(ctx context.Context, p pets.Pet) error {
	res, err := s.db.ExecContext(ctx, s.d.rebind(`
		UPDATE pets
		SET
			name = ?,
			species = ?,
			age = ?,
			owner_name = ?
		WHERE id = ?
	`), p.Name, p.Species, p.Age, p.OwnerName, p.ID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.d.rebind(`DELETE FROM pets WHERE id = ?`), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, id int64) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, s.d.rebind(`SELECT COUNT(*) FROM pets WHERE id = ?`), id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) CountDistinctSpecies(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT species) FROM pets`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]pets.Pet, error) {
	rows, err := s.db.QueryContext(ctx, s.d.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		var p pets.Pet
		if err := rows.Scan(&p.ID, &p.Name, &p.Species, &p.Age, &p.OwnerName); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) mapDuplicate(err error) error {
	if s.d.isDuplicate(err) {
		return fmt.Errorf("%w: %v", pets.ErrDuplicateID, err)
	}
	return err
}
