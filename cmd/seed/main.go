// petdb-seed carga las mascotas de ejemplo y crea los índices. Pensado para
// correr una sola vez, cuando el storage se inicializa por primera vez: una
// segunda corrida falla por id duplicado y sale con código 1.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"petdb/internal/adapters/storage"
	"petdb/internal/platform/config"
	"petdb/internal/platform/logger"
	"petdb/internal/seed"

	"github.com/spf13/cobra"
)

type flags struct {
	configFile string
	backend    string
	mongoURI   string
	database   string
	dsn        string
	sqlitePath string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "petdb-seed",
		Short: "Seed the pets collection with the sample records",
		Long: `Inserts the 7 sample pets into petdb.pets and creates the
species and owner_name indexes.

Run it once, on first storage initialization. Running it again against
a populated store fails with a duplicate id error.

Configuration:
  1. flags
  2. environment (STORAGE_BACKEND, MONGO_URI, MONGO_DATABASE, DB_DSN, SQLITE_PATH)
  3. --config / PETDB_CONFIG YAML file
  4. defaults`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(f.configFile)
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg, f)
			if err := cfg.Validate(); err != nil {
				return err
			}

			lg := logger.New(logger.Options{
				Level:  logger.ParseLevel(cfg.Log.Level),
				Format: logger.ParseFormat(cfg.Log.Format),
				App:    cfg.Log.App,
				Output: stderr,
			})

			return run(cmd.Context(), cfg, lg, stdout)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	fl := cmd.Flags()
	fl.StringVar(&f.configFile, "config", "", "YAML config file (default $PETDB_CONFIG)")
	fl.StringVar(&f.backend, "backend", "", "storage backend: mongodb|postgres|sqlite|memory")
	fl.StringVar(&f.mongoURI, "mongo-uri", "", "MongoDB connection URI")
	fl.StringVar(&f.database, "database", "", "MongoDB database name")
	fl.StringVar(&f.dsn, "dsn", "", "PostgreSQL DSN")
	fl.StringVar(&f.sqlitePath, "sqlite-path", "", "SQLite database file")

	return cmd
}

// applyFlags pisa la config solo con los flags que se pasaron.
func applyFlags(cmd *cobra.Command, cfg *config.Config, f flags) {
	fl := cmd.Flags()
	if fl.Changed("backend") {
		cfg.Storage.Backend = f.backend
	}
	if fl.Changed("mongo-uri") {
		cfg.Storage.MongoURI = f.mongoURI
	}
	if fl.Changed("database") {
		cfg.Storage.MongoDatabase = f.database
	}
	if fl.Changed("dsn") {
		cfg.Storage.PostgresDSN = f.dsn
	}
	if fl.Changed("sqlite-path") {
		cfg.Storage.SQLitePath = f.sqlitePath
	}
}

func run(ctx context.Context, cfg config.Config, lg logger.Logger, stdout io.Writer) error {
	backend, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() { _ = backend.Close(context.Background()) }()

	s := seed.New(backend.Target, lg.With(map[string]any{"backend": backend.Name}))
	s.SetOutput(stdout)
	return s.Seed(ctx)
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "seed failed:", err)
		os.Exit(1)
	}
}
