// Package reply decides what the bot says for an incoming message.
package reply

import (
	"github.com/kalambet/moviechat/internal/catalog"
	"github.com/kalambet/moviechat/internal/greeting"
)

// Fallback is returned when a message is neither a greeting nor a known title.
const Fallback = "Sorry, I don't have that movie info."

// Kind tells which rule produced a reply.
type Kind string

const (
	KindGreeting Kind = "greeting"
	KindMovie    Kind = "movie"
	KindFallback Kind = "fallback"
)

// Reply is a resolved answer.
type Reply struct {
	Kind Kind
	Text string
	// Movie is set when Kind is KindMovie.
	Movie *catalog.Movie
}

// Resolver maps messages to replies. Rules are checked in order and the
// first match wins: greeting, exact catalog title, fallback.
type Resolver struct {
	catalog  *catalog.Catalog
	greeting *greeting.Responder
}

// NewResolver creates a Resolver over the given catalog and greeter.
func NewResolver(c *catalog.Catalog, g *greeting.Responder) *Resolver {
	return &Resolver{catalog: c, greeting: g}
}

// Resolve returns the reply text for raw.
func (r *Resolver) Resolve(raw string) string {
	return r.Reply(raw).Text
}

// Reply resolves raw and reports which rule matched.
func (r *Resolver) Reply(raw string) Reply {
	msg := catalog.Normalize(raw)

	if r.greeting.Matches(msg) {
		return Reply{Kind: KindGreeting, Text: r.greeting.Pick()}
	}

	if m, ok := r.catalog.Lookup(msg); ok {
		return Reply{Kind: KindMovie, Text: FormatMovie(m), Movie: &m}
	}

	return Reply{Kind: KindFallback, Text: Fallback}
}
