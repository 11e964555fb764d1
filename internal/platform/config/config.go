package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Backends de storage soportados.
const (
	BackendMemory   = "memory"
	BackendMongo    = "mongodb"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

type Config struct {
	HTTP    HTTP    `yaml:"http"`
	Storage Storage `yaml:"storage"`
	Log     Log     `yaml:"log"`

	// SeedOnStart corre el seeder al levantar la API (memory siempre lo hace).
	SeedOnStart bool `yaml:"seed_on_start"`
}

type HTTP struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type Storage struct {
	Backend string `yaml:"backend"`

	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`

	PostgresDSN string `yaml:"postgres_dsn"`
	SQLitePath  string `yaml:"sqlite_path"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

func Default() Config {
	return Config{
		HTTP: HTTP{
			Addr:         ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Storage: Storage{
			Backend:       BackendMemory,
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "petdb",
			SQLitePath:    "petdb.sqlite",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
			App:    "petdb",
		},
	}
}

// Load arma la config en capas:
// defaults -> archivo YAML (si path != "" o PETDB_CONFIG) -> env vars.
// No valida: el caller puede pisar valores (flags) y después llamar Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) == "" {
		path = os.Getenv("PETDB_CONFIG")
	}
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv pisa valores con env vars (PORT y DB_DSN se mantienen por compatibilidad).
func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		cfg.HTTP.Addr = ":" + v
	}
	if v := strings.TrimSpace(getenv("STORAGE_BACKEND")); v != "" {
		cfg.Storage.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv("MONGO_URI")); v != "" {
		cfg.Storage.MongoURI = v
	}
	if v := strings.TrimSpace(getenv("MONGO_DATABASE")); v != "" {
		cfg.Storage.MongoDatabase = v
	}
	if v := strings.TrimSpace(getenv("DB_DSN")); v != "" {
		cfg.Storage.PostgresDSN = v
	}
	if v := strings.TrimSpace(getenv("SQLITE_PATH")); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := strings.TrimSpace(getenv("SEED_ON_START")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: SEED_ON_START: %w", err)
		}
		cfg.SeedOnStart = b
	}
	if v := strings.TrimSpace(getenv("LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(getenv("LOG_FORMAT")); v != "" {
		cfg.Log.Format = v
	}
	if v := strings.TrimSpace(getenv("APP_NAME")); v != "" {
		cfg.Log.App = v
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendMongo:
		if strings.TrimSpace(c.Storage.MongoURI) == "" || strings.TrimSpace(c.Storage.MongoDatabase) == "" {
			return errors.New("config: mongodb backend requires mongo_uri and mongo_database")
		}
	case BackendPostgres:
		if strings.TrimSpace(c.Storage.PostgresDSN) == "" {
			return errors.New("config: postgres backend requires postgres_dsn (DB_DSN)")
		}
	case BackendSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return errors.New("config: sqlite backend requires sqlite_path")
		}
	default:
		return fmt.Errorf("config: %w: %q", ErrUnknownBackend, c.Storage.Backend)
	}
	return nil
}
