package suggest

import (
	"fmt"
	"testing"

	"github.com/kalambet/moviechat/internal/catalog"
)

func newCatalog(t *testing.T, titles ...string) *catalog.Catalog {
	t.Helper()
	movies := make([]catalog.Movie, len(titles))
	for i, title := range titles {
		movies[i] = catalog.Movie{Title: title}
	}
	c, err := catalog.New(movies)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func titlesN(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Movie %02d", i)
	}
	return out
}

func TestSuggest_EmptyQueryFirstTen(t *testing.T) {
	titles := titlesN(15)
	s := New(newCatalog(t, titles...))

	got := s.Suggest("")
	if len(got) != MaxSuggestions {
		t.Fatalf("len = %d, want %d", len(got), MaxSuggestions)
	}
	for i := range got {
		if got[i] != titles[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], titles[i])
		}
	}
}

func TestSuggest_CaseInsensitiveSubstring(t *testing.T) {
	s := New(newCatalog(t, "The Dark Knight", "Inception", "Dark", "Narcos"))

	got := s.Suggest("DARK")
	want := []string{"The Dark Knight", "Dark"}
	if len(got) != len(want) {
		t.Fatalf("Suggest(DARK) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSuggest_NoMatch(t *testing.T) {
	s := New(newCatalog(t, "Inception"))
	got := s.Suggest("zzz")
	if got == nil || len(got) != 0 {
		t.Errorf("Suggest(zzz) = %#v, want empty non-nil slice", got)
	}
}

func TestSuggest_CappedSubsequence(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	s := New(c)

	// Build the title list in catalog order.
	var all []string
	for _, k := range c.Keys() {
		m, _ := c.Lookup(k)
		all = append(all, m.Title)
	}

	for _, q := range []string{"", "a", "e", "the", "in", "xyz"} {
		got := s.Suggest(q)
		if len(got) > MaxSuggestions {
			t.Errorf("Suggest(%q) returned %d titles", q, len(got))
		}
		// got must be a subsequence of all.
		j := 0
		for _, title := range all {
			if j < len(got) && got[j] == title {
				j++
			}
		}
		if j != len(got) {
			t.Errorf("Suggest(%q) = %v is not a subsequence of catalog order", q, got)
		}
	}

	first := s.Suggest("")
	for i := range first {
		if first[i] != all[i] {
			t.Errorf("Suggest(\"\")[%d] = %q, want %q", i, first[i], all[i])
		}
	}
}

func TestSuggest_NoTrim(t *testing.T) {
	s := New(newCatalog(t, "Loki"))
	if got := s.Suggest(" loki"); len(got) != 0 {
		t.Errorf("Suggest(\" loki\") = %v, want no match", got)
	}
}

func TestSuggest_MatchesKeyReturnsTitle(t *testing.T) {
	c, err := catalog.New([]catalog.Movie{
		{Key: "avengers endgame", Title: "Avengers: Endgame"},
		{Title: "Inception"},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	s := New(c)

	if got := s.Suggest("gers end"); len(got) != 1 || got[0] != "Avengers: Endgame" {
		t.Errorf("Suggest(gers end) = %v, want [Avengers: Endgame]", got)
	}
	// The colon only appears in the title, which is never searched.
	if got := s.Suggest("avengers:"); len(got) != 0 {
		t.Errorf("Suggest(avengers:) = %v, want no match", got)
	}
}
