// Package greeting recognizes small talk and answers it.
package greeting

import (
	"math/rand/v2"
	"strings"
)

// Keywords trigger a greeting when found anywhere in a normalized message.
// Matching is plain substring containment, so "this" and "archive" match
// "hi" as well.
var Keywords = []string{"hi", "hello", "hey", "how are you", "greetings"}

var greetings = []string{
	"Hi there! Welcome to Movie Zone 🎬. Ask me about any movie or series!",
	"Hello! I'm your Movie Zone Bot. I can give you details about movies and series.",
	"Hey! Type the name of a movie or series and I’ll fetch its info.",
	"Hi! Ready to explore movies and series? Ask me anything.",
	"Greetings! Ask me about any movie or series and I'll tell you the details.",
}

// Responder matches greeting keywords and picks a reply.
type Responder struct {
	keywords  []string
	greetings []string
	intn      func(n int) int
}

// New returns a Responder with the built-in keywords and greetings.
func New() *Responder {
	return &Responder{
		keywords:  Keywords,
		greetings: greetings,
		intn:      rand.IntN,
	}
}

// NewWithSource is like New but draws indices from intn, which must return
// a value in [0, n).
func NewWithSource(intn func(n int) int) *Responder {
	r := New()
	r.intn = intn
	return r
}

// Matches reports whether the normalized message contains any keyword.
func (r *Responder) Matches(normalized string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// Pick returns one of the greetings, uniformly at random.
func (r *Responder) Pick() string {
	return r.greetings[r.intn(len(r.greetings))]
}

// Greetings returns a copy of the greeting set.
func (r *Responder) Greetings() []string {
	out := make([]string, len(r.greetings))
	copy(out, r.greetings)
	return out
}
