package pets

import (
	"context"
	"errors"
	"sort"
	"testing"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[int64]Pet

	failWith error
}

func newTestRepo(seed ...Pet) *testRepo {
	r := &testRepo{byID: map[int64]Pet{}}
	for _, p := range seed {
		r.byID[p.ID] = p
	}
	return r
}

func (r *testRepo) Create(ctx context.Context, p Pet) (Pet, error) {
	if r.failWith != nil {
		return Pet{}, r.failWith
	}
	if p.ID == 0 {
		var max int64
		for id := range r.byID {
			if id > max {
				max = id
			}
		}
		p.ID = max + 1
	}
	if _, ok := r.byID[p.ID]; ok {
		return Pet{}, ErrDuplicateID
	}
	r.byID[p.ID] = p
	return p, nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) List(ctx context.Context) ([]Pet, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]Pet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := r.byID[id]
	return ok, nil
}

func (r *testRepo) CountDistinctSpecies(ctx context.Context) (int, error) {
	seen := map[string]struct{}{}
	for _, p := range r.byID {
		seen[p.Species] = struct{}{}
	}
	return len(seen), nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_AssignsNextID(t *testing.T) {
	repo := newTestRepo(Pet{ID: 7, Name: "Buddy", Species: SpeciesDog, Age: 7, OwnerName: "Tom Anderson"})
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), Input{
		Name:      "  Nala ",
		Species:   "Cat",
		Age:       2,
		OwnerName: " Ana ",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID != 8 {
		t.Fatalf("expected id 8, got %d", p.ID)
	}
	if p.Name != "Nala" || p.OwnerName != "Ana" {
		t.Fatalf("expected trimmed fields, got %+v", p)
	}
}

func TestService_Create_ValidationFields(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), Input{Name: " ", Species: "", Age: -1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	for _, f := range []string{"name", "species", "age"} {
		if _, ok := ve.Fields[f]; !ok {
			t.Fatalf("expected field error for %q, got %v", f, ve.Fields)
		}
	}
}

func TestService_Create_OwnerNameOptional(t *testing.T) {
	svc := NewService(newTestRepo())

	p, err := svc.Create(context.Background(), Input{Name: "Max", Species: SpeciesDog})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID != 1 || p.OwnerName != "" {
		t.Fatalf("unexpected pet %+v", p)
	}
}

func TestService_GetByID_NotFoundCarriesID(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.GetByID(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err.Error() != "pet not found with id: 42" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestService_Update_ReplacesAllFields(t *testing.T) {
	repo := newTestRepo(Pet{ID: 2, Name: "Bella", Species: SpeciesCat, Age: 2, OwnerName: "Jane Smith"})
	svc := NewService(repo)

	p, err := svc.Update(context.Background(), 2, Input{Name: "Bella", Species: SpeciesCat, Age: 3})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.Age != 3 || p.OwnerName != "" {
		t.Fatalf("expected full replace, got %+v", p)
	}
	if repo.byID[2] != p {
		t.Fatalf("repo not updated: %+v", repo.byID[2])
	}
}

func TestService_Update_UnknownID(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Update(context.Background(), 9, Input{Name: "x", Species: "y"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	repo := newTestRepo(Pet{ID: 1, Name: "Max", Species: SpeciesDog})
	svc := NewService(repo)

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := repo.byID[1]; ok {
		t.Fatalf("expected pet 1 removed")
	}

	err := svc.Delete(context.Background(), 1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestService_CountDistinctSpecies(t *testing.T) {
	svc := NewService(newTestRepo(
		Pet{ID: 1, Species: SpeciesDog},
		Pet{ID: 2, Species: SpeciesCat},
		Pet{ID: 3, Species: SpeciesDog},
	))

	n, err := svc.CountDistinctSpecies(context.Background())
	if err != nil {
		t.Fatalf("CountDistinctSpecies: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 species, got %d", n)
	}
}
