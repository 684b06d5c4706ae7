// Package chat runs a single chat exchange: resolve a reply and record
// both sides of the conversation.
package chat

import (
	"fmt"
	"log/slog"

	"github.com/kalambet/moviechat/internal/history"
	"github.com/kalambet/moviechat/internal/reply"
)

// Resolver produces a reply for a raw message.
type Resolver interface {
	Reply(raw string) reply.Reply
}

// Response is returned to the caller of HandleChat.
type Response struct {
	Reply string `json:"reply"`
}

// Service owns the exchange flow. It is safe for concurrent use as long as
// its Store is.
type Service struct {
	resolver Resolver
	store    history.Store
	logger   *slog.Logger
}

// NewService creates a Service.
func NewService(resolver Resolver, store history.Store) *Service {
	return &Service{
		resolver: resolver,
		store:    store,
		logger:   slog.Default(),
	}
}

// HandleChat resolves message and records the user message and the reply
// before returning. An empty message gets the fallback reply. If the
// history cannot be written nothing is recorded and the error is returned.
func (s *Service) HandleChat(message string) (Response, error) {
	r := s.resolver.Reply(message)

	if err := s.store.Append(history.UserEntry(message), history.BotEntry(r.Text)); err != nil {
		return Response{}, fmt.Errorf("recording chat exchange: %w", err)
	}

	s.logger.Debug("chat exchange", "kind", r.Kind, "message_len", len(message))
	return Response{Reply: r.Text}, nil
}

// History returns the full conversation in insertion order.
func (s *Service) History() ([]history.Entry, error) {
	return s.store.All()
}
