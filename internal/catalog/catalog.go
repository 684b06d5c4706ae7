// Package catalog holds the fixed set of movies and series the bot knows about.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed movies.yaml
var defaultCatalog []byte

// ErrDuplicateKey is returned when two movies normalize to the same key.
var ErrDuplicateKey = errors.New("duplicate catalog key")

// Movie is a single catalog record. Key is the lookup key; when empty the
// normalized title is used. The other fields are display strings.
type Movie struct {
	Key          string `yaml:"key,omitempty" json:"key,omitempty"`
	Title        string `yaml:"title" json:"title"`
	ReleaseDate  string `yaml:"release_date" json:"release_date"`
	Genre        string `yaml:"genre" json:"genre"`
	Runtime      string `yaml:"runtime" json:"runtime"`
	EpisodeCount string `yaml:"episode_count" json:"episode_count"`
	Platform     string `yaml:"platform" json:"platform"`
}

// Catalog maps normalized keys to movies and remembers definition order.
// It is immutable after construction and safe for concurrent use.
type Catalog struct {
	keys   []string
	movies map[string]Movie
}

// Normalize lowercases s and trims surrounding whitespace.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// New builds a catalog from movies in the given order. Explicit keys are
// normalized like titles so lookups stay case-insensitive.
func New(movies []Movie) (*Catalog, error) {
	c := &Catalog{
		keys:   make([]string, 0, len(movies)),
		movies: make(map[string]Movie, len(movies)),
	}
	for i, m := range movies {
		if strings.TrimSpace(m.Title) == "" {
			return nil, fmt.Errorf("movie %d has an empty title", i)
		}
		key := Normalize(m.Key)
		if key == "" {
			key = Normalize(m.Title)
		}
		m.Key = key
		if _, ok := c.movies[key]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
		}
		c.keys = append(c.keys, key)
		c.movies[key] = m
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return parse(defaultCatalog)
}

// LoadFile reads a YAML catalog (a list of movies) from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var movies []Movie
	if err := yaml.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return New(movies)
}

// Lookup returns the movie stored under key. The key must already be
// normalized; no fuzzy matching is done.
func (c *Catalog) Lookup(key string) (Movie, bool) {
	m, ok := c.movies[key]
	return m, ok
}

// Keys returns the catalog keys in definition order.
func (c *Catalog) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of movies.
func (c *Catalog) Len() int {
	return len(c.keys)
}
