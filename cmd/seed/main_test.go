package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"petdb/internal/domain/pets"
	"petdb/internal/seed"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PETDB_CONFIG", "STORAGE_BACKEND", "MONGO_URI", "MONGO_DATABASE", "DB_DSN", "SQLITE_PATH", "SEED_ON_START"} {
		t.Setenv(k, "")
	}
}

func execute(args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestSeedCmd_SQLite_OnceThenDuplicate(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "pets.sqlite")

	out, err := execute("--backend", "sqlite", "--sqlite-path", path)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if strings.TrimSpace(out) != "pet store initialization complete - 7 pets inserted" {
		t.Fatalf("unexpected stdout %q", out)
	}

	out, err = execute("--backend", "sqlite", "--sqlite-path", path)
	if !errors.Is(err, seed.ErrStorageOperationFailed) || !errors.Is(err, pets.ErrDuplicateID) {
		t.Fatalf("second run: expected duplicate storage error, got %v", err)
	}
	if out != "" {
		t.Fatalf("no completion line on failure, got %q", out)
	}
}

func TestSeedCmd_Memory(t *testing.T) {
	clearEnv(t)

	out, err := execute("--backend", "memory")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "7 pets inserted") {
		t.Fatalf("unexpected stdout %q", out)
	}
}

func TestSeedCmd_InvalidBackend(t *testing.T) {
	clearEnv(t)

	if _, err := execute("--backend", "cassandra"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestSeedCmd_RejectsArgs(t *testing.T) {
	clearEnv(t)

	if _, err := execute("extra"); err == nil {
		t.Fatalf("expected error for positional args")
	}
}
