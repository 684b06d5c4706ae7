package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps the log in memory and mirrors it to a JSON file.
// Every Append rewrites the whole file, which is O(n) in the log size.
type FileStore struct {
	path    string
	mu      sync.Mutex
	entries []Entry
	logger  *slog.Logger
}

var _ Store = (*FileStore)(nil)

// Open loads the log at path. A missing file yields an empty log; so does
// a file that does not parse, after a warning. The file itself is created
// on the first Append.
func Open(path string) (*FileStore, error) {
	s := &FileStore{path: path, logger: slog.Default()}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.entries = []Entry{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading history file: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("could not parse history file, starting with empty history",
			"path", s.path, "error", err)
		s.entries = []Entry{}
		return nil
	}
	if entries == nil {
		entries = []Entry{}
	}
	s.entries = entries
	return nil
}

// Path returns the location of the history file.
func (s *FileStore) Path() string {
	return s.path
}

// Append adds entries and rewrites the file. If the write fails the
// in-memory log is rolled back and the file keeps its previous content.
func (s *FileStore) Append(entries ...Entry) error {
	if len(entries) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.entries)
	s.entries = append(s.entries, entries...)
	if err := s.persist(); err != nil {
		s.entries = s.entries[:n]
		return err
	}
	return nil
}

// All returns a copy of the log in insertion order.
func (s *FileStore) All() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Close is a no-op; every Append is already durable.
func (s *FileStore) Close() error {
	return nil
}

// persist writes the log to a temp file in the same directory and renames
// it over the target so readers never see a partial file.
func (s *FileStore) persist() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp history file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("setting history file mode: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing history: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing history file: %w", err)
	}
	return nil
}
