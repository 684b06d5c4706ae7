package config

import (
	"fmt"
	"os"
	"strconv"
)

type keyType int

const (
	kString keyType = iota
	kInt
)

type keySpec struct {
	key string
	typ keyType
	env string
	// fallbackEnv is consulted when env is unset.
	fallbackEnv string
	apply       func(cfg *Config, v any)
	extract     func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "server.host", typ: kString, env: "MOVIECHAT_SERVER_HOST",
		apply:   func(cfg *Config, v any) { cfg.Server.Host = v.(string) },
		extract: func(cfg Config) any { return cfg.Server.Host },
	},
	{
		key: "server.port", typ: kInt, env: "MOVIECHAT_SERVER_PORT", fallbackEnv: "PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "server.static_dir", typ: kString, env: "MOVIECHAT_SERVER_STATIC_DIR",
		apply:   func(cfg *Config, v any) { cfg.Server.StaticDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Server.StaticDir },
	},
	{
		key: "storage.backend", typ: kString, env: "MOVIECHAT_STORAGE_BACKEND",
		apply:   func(cfg *Config, v any) { cfg.Storage.Backend = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.Backend },
	},
	{
		key: "storage.data_dir", typ: kString, env: "MOVIECHAT_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "storage.history_file", typ: kString, env: "MOVIECHAT_STORAGE_HISTORY_FILE",
		apply:   func(cfg *Config, v any) { cfg.Storage.HistoryFile = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.HistoryFile },
	},
	{
		key: "catalog.file", typ: kString, env: "MOVIECHAT_CATALOG_FILE",
		apply:   func(cfg *Config, v any) { cfg.Catalog.File = v.(string) },
		extract: func(cfg Config) any { return cfg.Catalog.File },
	},
	{
		key: "log.level", typ: kString, env: "MOVIECHAT_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
}

func applyBackend(cfg *Config, b ConfigBackend) error {
	for _, s := range specs {
		switch s.typ {
		case kString:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kInt:
			v, ok, err := b.GetInt(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		name := s.env
		raw := os.Getenv(name)
		if raw == "" && s.fallbackEnv != "" {
			name = s.fallbackEnv
			raw = os.Getenv(name)
		}
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse integer from env var %s=%q: %v. Using default value.\n", name, raw, err)
			}
		}
	}
}
