package seed

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"petdb/internal/domain/pets"
	"petdb/internal/platform/logger"
)

// -------------------------
// Test target (recording)
// -------------------------

type recordingTarget struct {
	inserts [][]pets.Pet
	indexes []string

	insertErr error
	indexErr  map[string]error
}

func (t *recordingTarget) InsertMany(ctx context.Context, records []pets.Pet) error {
	t.inserts = append(t.inserts, records)
	return t.insertErr
}

func (t *recordingTarget) CreateIndex(ctx context.Context, field string) error {
	t.indexes = append(t.indexes, field)
	return t.indexErr[field]
}

func newTestSeeder(target Target) (*Seeder, *bytes.Buffer) {
	var out bytes.Buffer
	s := New(target, logger.Discard())
	s.out = &out
	s.runID = func() string { return "run-1" }
	return s, &out
}

// -------------------------
// Tests
// -------------------------

func TestSeed_OneInsertTwoIndexes(t *testing.T) {
	target := &recordingTarget{}
	s, out := newTestSeeder(target)

	if err := s.Seed(context.Background()); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	if len(target.inserts) != 1 {
		t.Fatalf("expected exactly 1 bulk insert, got %d", len(target.inserts))
	}
	if len(target.inserts[0]) != 7 {
		t.Fatalf("expected 7 records, got %d", len(target.inserts[0]))
	}
	if got := strings.Join(target.indexes, ","); got != "species,owner_name" {
		t.Fatalf("unexpected index calls %q", got)
	}
	if got := out.String(); got != "pet store initialization complete - 7 pets inserted\n" {
		t.Fatalf("unexpected completion line %q", got)
	}
}

func TestSeed_LiteralOrderAndIDs(t *testing.T) {
	target := &recordingTarget{}
	s, _ := newTestSeeder(target)

	if err := s.Seed(context.Background()); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	want := []string{"Max", "Bella", "Charlie", "Luna", "Rocky", "Mittens", "Buddy"}
	for i, p := range target.inserts[0] {
		if p.ID != int64(i+1) {
			t.Fatalf("record %d: expected id %d, got %d", i, i+1, p.ID)
		}
		if p.Name != want[i] {
			t.Fatalf("record %d: expected %s, got %s", i, want[i], p.Name)
		}
	}
}

func TestSeed_InsertFailureStopsBeforeIndexes(t *testing.T) {
	target := &recordingTarget{insertErr: pets.ErrDuplicateID}
	s, out := newTestSeeder(target)

	err := s.Seed(context.Background())
	if !errors.Is(err, ErrStorageOperationFailed) {
		t.Fatalf("expected ErrStorageOperationFailed, got %v", err)
	}
	if !errors.Is(err, pets.ErrDuplicateID) {
		t.Fatalf("expected wrapped ErrDuplicateID, got %v", err)
	}
	if len(target.indexes) != 0 {
		t.Fatalf("no index should be created after a failed insert, got %v", target.indexes)
	}
	if out.Len() != 0 {
		t.Fatalf("no completion line expected, got %q", out.String())
	}
}

func TestSeed_IndexFailure(t *testing.T) {
	boom := errors.New("index conflict")
	target := &recordingTarget{indexErr: map[string]error{pets.FieldOwnerName: boom}}
	s, _ := newTestSeeder(target)

	err := s.Seed(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected index error, got %v", err)
	}

	var se *StorageError
	if !errors.As(err, &se) || se.Op != "create index owner_name" {
		t.Fatalf("unexpected storage error %#v", err)
	}
}

func TestRecords_ReturnsCopy(t *testing.T) {
	a := Records()
	a[0].Name = "changed"

	if Records()[0].Name != "Max" {
		t.Fatalf("Records must not expose the shared table")
	}
}

func TestRecords_UniqueIDs(t *testing.T) {
	seen := map[int64]bool{}
	for _, p := range Records() {
		if seen[p.ID] {
			t.Fatalf("duplicate id %d", p.ID)
		}
		seen[p.ID] = true
		if p.Name == "" || p.OwnerName == "" || p.Age < 0 {
			t.Fatalf("invalid seed record %+v", p)
		}
	}
	if len(seen) != 7 {
		t.Fatalf("expected 7 ids, got %d", len(seen))
	}
}
