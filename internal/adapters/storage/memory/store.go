package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"petdb/internal/domain/pets"
)

// Store guarda mascotas en memoria. Sirve como pets.Repository y como
// destino del seeder; los índices secundarios existen recién después de
// CreateIndex, igual que en mongo.
type Store struct {
	mu   sync.RWMutex
	byID map[int64]pets.Pet

	// field -> valor -> ids ordenados asc
	indexes map[string]map[string][]int64
}

func NewStore() *Store {
	return &Store{
		byID:    make(map[int64]pets.Pet),
		indexes: make(map[string]map[string][]int64),
	}
}

// -------------------------
// seed target
// -------------------------

// InsertMany es todo o nada: si algún id choca (con el store o dentro del
// mismo batch) no se inserta ninguno.
func (s *Store) InsertMany(ctx context.Context, records []pets.Pet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := make(map[int64]struct{}, len(records))
	for _, p := range records {
		if p.ID <= 0 {
			return fmt.Errorf("pet id required")
		}
		if _, exists := s.byID[p.ID]; exists {
			return fmt.Errorf("%w: %d", pets.ErrDuplicateID, p.ID)
		}
		if _, dup := batch[p.ID]; dup {
			return fmt.Errorf("%w: %d", pets.ErrDuplicateID, p.ID)
		}
		batch[p.ID] = struct{}{}
	}

	for _, p := range records {
		s.byID[p.ID] = p
		s.indexAdd(p)
	}
	return nil
}

// CreateIndex construye el índice sobre un campo. Repetirlo es no-op
// (mismo comportamiento que createIndex con la misma clave).
func (s *Store) CreateIndex(ctx context.Context, field string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := (pets.Pet{}).FieldValue(field); !ok {
		return fmt.Errorf("cannot index unknown field %q", field)
	}
	if _, exists := s.indexes[field]; exists {
		return nil
	}

	idx := make(map[string][]int64)
	for _, p := range s.byID {
		v, _ := p.FieldValue(field)
		idx[v] = insertSorted(idx[v], p.ID)
	}
	s.indexes[field] = idx
	return nil
}

// Indexes lista los campos indexados, ordenados.
func (s *Store) Indexes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.indexes))
	for f := range s.indexes {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// FindBy busca por igualdad. Usa el índice si existe; si no, recorre todo.
func (s *Store) FindBy(ctx context.Context, field, value string) ([]pets.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := (pets.Pet{}).FieldValue(field); !ok {
		return nil, fmt.Errorf("unknown field %q", field)
	}

	out := make([]pets.Pet, 0)
	if idx, ok := s.indexes[field]; ok {
		for _, id := range idx[value] {
			out = append(out, s.byID[id])
		}
		return out, nil
	}

	for _, p := range s.byID {
		if v, _ := p.FieldValue(field); v == value {
			out = append(out, p)
		}
	}
	sortByID(out)
	return out, nil
}

// -------------------------
// pets.Repository
// -------------------------

func (s *Store) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		p.ID = s.maxID() + 1
	}
	if _, exists := s.byID[p.ID]; exists {
		return pets.Pet{}, fmt.Errorf("%w: %d", pets.ErrDuplicateID, p.ID)
	}
	s.byID[p.ID] = p
	s.indexAdd(p)
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (s *Store) List(ctx context.Context) ([]pets.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]pets.Pet, 0, len(s.byID))
	for _, p := range s.byID {
		out = append(out, p)
	}
	sortByID(out)
	return out, nil
}

func (s *Store) Update(ctx context.Context, p pets.Pet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, exists := s.byID[p.ID]
	if !exists {
		return pets.ErrNotFound
	}
	s.indexRemove(old)
	s.byID[p.ID] = p
	s.indexAdd(p)
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, exists := s.byID[id]
	if !exists {
		return pets.ErrNotFound
	}
	s.indexRemove(old)
	delete(s.byID, id)
	return nil
}

func (s *Store) Exists(ctx context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byID[id]
	return ok, nil
}

func (s *Store) CountDistinctSpecies(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, p := range s.byID {
		seen[p.Species] = struct{}{}
	}
	return len(seen), nil
}

// -------------------------
// helpers (requieren lock tomado)
// -------------------------

func (s *Store) maxID() int64 {
	var max int64
	for id := range s.byID {
		if id > max {
			max = id
		}
	}
	return max
}

func (s *Store) indexAdd(p pets.Pet) {
	for field, idx := range s.indexes {
		v, _ := p.FieldValue(field)
		idx[v] = insertSorted(idx[v], p.ID)
	}
}

func (s *Store) indexRemove(p pets.Pet) {
	for field, idx := range s.indexes {
		v, _ := p.FieldValue(field)
		ids := idx[v]
		for i, id := range ids {
			if id == p.ID {
				ids = append(ids[:i], ids[i+1:]...)
				break
			}
		}
		if len(ids) == 0 {
			delete(idx, v)
			continue
		}
		idx[v] = ids
	}
}

func insertSorted(ids []int64, id int64) []int64 {
	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}

func sortByID(ps []pets.Pet) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
}
