package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kalambet/moviechat/internal/chat"
	"github.com/kalambet/moviechat/internal/history"
)

const maxRequestBodySize = 1 << 20 // 1MB

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// HistoryResponse is the body of GET /api/history.
type HistoryResponse struct {
	History []history.Entry `json:"history"`
}

// SuggestionsResponse is the body of GET /api/suggestions.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Suggester returns title completions for a query.
type Suggester interface {
	Suggest(query string) []string
}

// Deps holds the collaborators of the HTTP API.
type Deps struct {
	Chat      *chat.Service
	Suggester Suggester
	// StaticDir, when set, is served at / for the front-end bundle.
	StaticDir string
}

// NewHandler returns the HTTP API.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)
	r.Post("/api/chat", handleChat(deps))
	r.Get("/api/history", handleHistory(deps))
	r.Get("/api/suggestions", handleSuggestions(deps))

	if deps.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(deps.StaticDir)))
	}

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleChat(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		// An empty body is an empty message, not an error.
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		resp, err := deps.Chat.HandleChat(req.Message)
		if err != nil {
			slog.Error("chat request failed", "error", err)
			httpError(w, http.StatusInternalServerError, "api_error", "failed to record chat: %v", err)
			return
		}

		writeJSON(w, resp)
	}
}

func handleHistory(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := deps.Chat.History()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to load history: %v", err)
			return
		}
		if entries == nil {
			entries = []history.Entry{}
		}

		writeJSON(w, HistoryResponse{History: entries})
	}
}

func handleSuggestions(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suggestions := deps.Suggester.Suggest(r.URL.Query().Get("q"))
		if suggestions == nil {
			suggestions = []string{}
		}

		writeJSON(w, SuggestionsResponse{Suggestions: suggestions})
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("writing response", "error", err)
	}
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
