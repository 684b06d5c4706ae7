// Package suggest offers title completions from the catalog.
package suggest

import (
	"strings"

	"github.com/kalambet/moviechat/internal/catalog"
)

// MaxSuggestions caps the number of titles returned.
const MaxSuggestions = 10

// Suggester filters catalog titles by substring.
type Suggester struct {
	catalog *catalog.Catalog
	limit   int
}

// New returns a Suggester capped at MaxSuggestions.
func New(c *catalog.Catalog) *Suggester {
	return &Suggester{catalog: c, limit: MaxSuggestions}
}

// Suggest returns, in catalog order, the titles whose key contains the
// lowercased query. An empty query matches every key. The result is never nil.
func (s *Suggester) Suggest(query string) []string {
	q := strings.ToLower(query)
	out := make([]string, 0, s.limit)
	for _, key := range s.catalog.Keys() {
		if len(out) == s.limit {
			break
		}
		if !strings.Contains(key, q) {
			continue
		}
		m, _ := s.catalog.Lookup(key)
		out = append(out, m.Title)
	}
	return out
}
