package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

// xdgDir returns $env, or $HOME/fallback when env is unset, joined with
// "moviechat". ok is false when neither is available.
func xdgDir(env, fallback string) (string, bool) {
	dir := os.Getenv(env)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		dir = filepath.Join(home, fallback)
	}
	return filepath.Join(dir, "moviechat"), true
}

func defaultDataDir() string {
	if dir, ok := xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share")); ok {
		return dir
	}
	return "moviechat-data"
}

func configFilePath() string {
	dir, ok := xdgDir("XDG_CONFIG_HOME", ".config")
	if !ok {
		dir = "."
	}
	return filepath.Join(dir, "config.json")
}

func newDefaultBackend() ConfigBackend {
	return newFileBackend(configFilePath())
}

// fileBackend keeps settings as one flat JSON object keyed by dotted key
// names, e.g. {"server.port": 3000, "storage.backend": "sqlite"}.
type fileBackend struct {
	path   string
	values map[string]any
}

func newFileBackend(path string) *fileBackend {
	b := &fileBackend{path: path, values: map[string]any{}}
	if err := b.read(); err != nil {
		slog.Warn("ignoring config file, using defaults", "path", path, "error", err)
		b.values = map[string]any{}
	}
	return b
}

func (b *fileBackend) read() error {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&b.values); err != nil {
		return err
	}
	if b.values == nil {
		b.values = map[string]any{}
	}
	return nil
}

// write replaces the file through a temp file in the same directory so a
// crash never leaves half a config behind.
func (b *fileBackend) write() error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := json.MarshalIndent(b.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return os.Rename(tmp.Name(), b.path)
}

func (b *fileBackend) GetString(key string) (string, bool, error) {
	v, ok := b.values[key]
	if !ok {
		return "", false, nil
	}
	if s, isStr := v.(string); isStr {
		return s, true, nil
	}
	return fmt.Sprint(v), true, nil
}

func (b *fileBackend) GetInt(key string) (int, bool, error) {
	v, ok := b.values[key]
	if !ok {
		return 0, false, nil
	}
	var raw string
	switch val := v.(type) {
	case json.Number:
		raw = val.String()
	case string:
		raw = val
	default:
		return 0, true, fmt.Errorf("%s: expected an integer, got %T", key, v)
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, fmt.Errorf("%s: %q is not an integer", key, raw)
	}
	return i, true, nil
}

func (b *fileBackend) SetString(key, val string) error {
	b.values[key] = val
	return b.write()
}

func (b *fileBackend) SetInt(key string, val int) error {
	b.values[key] = json.Number(strconv.Itoa(val))
	return b.write()
}

// Delete removes key. Removing an absent key does not touch the file.
func (b *fileBackend) Delete(key string) error {
	if _, ok := b.values[key]; !ok {
		return nil
	}
	delete(b.values, key)
	return b.write()
}
