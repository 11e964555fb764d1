// Package seed carga el set fijo de mascotas de ejemplo y crea los índices
// secundarios. Corre una sola vez, en la primera inicialización del storage:
// no es idempotente y una segunda corrida falla por id duplicado.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"petdb/internal/domain/pets"
	"petdb/internal/platform/logger"

	"github.com/google/uuid"
)

var ErrStorageOperationFailed = errors.New("storage operation failed")

// StorageError envuelve cualquier falla del storage (conexión, id duplicado,
// índice). Unwrap devuelve el error original.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("seed: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool {
	return target == ErrStorageOperationFailed
}

// Target es el storage destino, ya apuntando a la base/colección.
type Target interface {
	InsertMany(ctx context.Context, records []pets.Pet) error
	CreateIndex(ctx context.Context, field string) error
}

type Seeder struct {
	target  Target
	log     logger.Logger
	out     io.Writer
	records []pets.Pet
	runID   func() string
}

func New(target Target, log logger.Logger) *Seeder {
	if log == nil {
		log = logger.NewFromEnv()
	}
	return &Seeder{
		target:  target,
		log:     log.With(map[string]any{"component": "seed"}),
		out:     os.Stdout,
		records: Records(),
		runID:   uuid.NewString,
	}
}

// SetOutput cambia dónde va la línea de cierre (default os.Stdout).
func (s *Seeder) SetOutput(w io.Writer) {
	if w != nil {
		s.out = w
	}
}

// Seed: un insert masivo + un índice por campo + una línea de cierre.
// Cualquier error corta la corrida y se devuelve como *StorageError.
func (s *Seeder) Seed(ctx context.Context) error {
	l := s.log.With(map[string]any{
		"run_id":     s.runID(),
		"database":   DatabaseName,
		"collection": CollectionName,
	})

	l.Debug("inserting pets", map[string]any{"count": len(s.records)})
	if err := s.target.InsertMany(ctx, s.records); err != nil {
		l.Error("insert failed", map[string]any{"err": err.Error()})
		return &StorageError{Op: "insert pets", Err: err}
	}

	for _, field := range IndexedFields {
		if err := s.target.CreateIndex(ctx, field); err != nil {
			l.Error("create index failed", map[string]any{"field": field, "err": err.Error()})
			return &StorageError{Op: "create index " + field, Err: err}
		}
	}

	l.Info("seed complete", map[string]any{"count": len(s.records)})
	_, _ = fmt.Fprintf(s.out, "pet store initialization complete - %d pets inserted\n", len(s.records))
	return nil
}
