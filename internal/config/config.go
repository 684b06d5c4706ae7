package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Catalog CatalogConfig
	Log     LogConfig
}

type ServerConfig struct {
	Host      string
	Port      int
	StaticDir string
}

type StorageConfig struct {
	Backend     string
	DataDir     string
	HistoryFile string
}

type CatalogConfig struct {
	File string
}

type LogConfig struct {
	Level string
}

// Addr returns the host:port the server listens on.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// HistoryPath returns the JSON history file location, defaulting to
// history.json inside the data directory.
func (c Config) HistoryPath() string {
	if c.Storage.HistoryFile != "" {
		return c.Storage.HistoryFile
	}
	return filepath.Join(c.Storage.DataDir, "history.json")
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 3000,
		},
		Storage: StorageConfig{
			Backend: BackendFile,
			DataDir: defaultDataDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the JSON file backend and environment
// variables. A .env file in the working directory, if present, is loaded
// into the environment first; variables already set are not overridden.
//
// The file lives at $XDG_CONFIG_HOME/moviechat/config.json.
// Environment variables (MOVIECHAT_*, and PORT for the listen port)
// override file values.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "[WARN] could not load .env file: %v\n", err)
	}
	return loadWith(newDefaultBackend())
}

func loadWith(b ConfigBackend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("invalid storage.backend %q: must be %q or %q", c.Storage.Backend, BackendFile, BackendSQLite)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	return nil
}
