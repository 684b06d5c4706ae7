package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kalambet/moviechat/internal/catalog"
	"github.com/kalambet/moviechat/internal/config"
	"github.com/kalambet/moviechat/internal/history"
	"github.com/kalambet/moviechat/internal/reply"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

type testServer struct {
	server   *httptest.Server
	requests []recordedRequest
}

func newTestServer(t *testing.T, responses map[string]string) *testServer {
	t.Helper()
	ts := &testServer{}

	ts.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body bytes.Buffer
		body.ReadFrom(r.Body)

		ts.requests = append(ts.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.RequestURI(),
			Body:   body.String(),
		})

		key := r.Method + " " + r.URL.Path
		if resp, ok := responses[key]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(resp))
			return
		}

		w.WriteHeader(404)
		w.Write([]byte(`{"error":{"message":"not found","type":"not_found"}}`))
	}))

	t.Cleanup(ts.server.Close)
	return ts
}

func (ts *testServer) client() *apiClient {
	return &apiClient{
		baseURL:    ts.server.URL,
		httpClient: ts.server.Client(),
	}
}

var ctx = context.Background()

func TestAskMessage(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"POST /api/chat": `{"reply":"Sorry, I don't have that movie info."}`,
	})

	got, err := askMessage(ctx, ts.client(), "tenet")
	if err != nil {
		t.Fatalf("askMessage: %v", err)
	}
	if got != reply.Fallback {
		t.Errorf("reply = %q", got)
	}

	if len(ts.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(ts.requests))
	}
	var body map[string]string
	if err := json.Unmarshal([]byte(ts.requests[0].Body), &body); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if body["message"] != "tenet" {
		t.Errorf("message = %q, want tenet", body["message"])
	}
}

func TestAskMessage_ServerError(t *testing.T) {
	ts := newTestServer(t, nil)

	_, err := askMessage(ctx, ts.client(), "hello")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error = %v, want status code", err)
	}
}

func TestFetchHistory(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"GET /api/history": `{"history":[{"text":"hi","type":"user"},{"text":"Hello!","type":"bot"}]}`,
	})

	entries, err := fetchHistory(ctx, ts.client())
	if err != nil {
		t.Fatalf("fetchHistory: %v", err)
	}
	want := []history.Entry{history.UserEntry("hi"), history.BotEntry("Hello!")}
	if len(entries) != 2 || entries[0] != want[0] || entries[1] != want[1] {
		t.Errorf("entries = %v, want %v", entries, want)
	}
}

func TestFetchSuggestions_EscapesQuery(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"GET /api/suggestions": `{"suggestions":["The Dark Knight"]}`,
	})

	got, err := fetchSuggestions(ctx, ts.client(), "dark knight&x")
	if err != nil {
		t.Fatalf("fetchSuggestions: %v", err)
	}
	if len(got) != 1 || got[0] != "The Dark Knight" {
		t.Errorf("suggestions = %v", got)
	}
	if path := ts.requests[0].Path; path != "/api/suggestions?q=dark+knight%26x" {
		t.Errorf("path = %q", path)
	}
}

func TestPrintHistory(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()
	noColor = true

	var buf bytes.Buffer
	printHistory(&buf, nil)
	if !strings.Contains(buf.String(), "No messages yet.") {
		t.Errorf("empty output = %q", buf.String())
	}

	buf.Reset()
	printHistory(&buf, []history.Entry{history.UserEntry("hey"), history.BotEntry("Hi there!")})
	want := "you: hey\nbot: Hi there!\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPrintHistory_UserMarkupVerbatim(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()
	noColor = true

	var buf bytes.Buffer
	printHistory(&buf, []history.Entry{
		history.UserEntry("<b>x</b> and more"),
		history.BotEntry(reply.Fallback),
	})
	want := "you: <b>x</b> and more\nbot: " + reply.Fallback + "\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestRenderReply_DetailBlock(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()
	noColor = true

	block := reply.FormatMovie(catalog.Movie{
		Title:        "Tom & Jerry",
		ReleaseDate:  "1 Jan 2021",
		Genre:        "Comedy",
		Runtime:      "1h 41m",
		EpisodeCount: "1",
		Platform:     "Prime Video",
	})

	got := renderReply(block)
	want := strings.Join([]string{
		"Tom & Jerry",
		"  Release Date: 1 Jan 2021",
		"  Genre: Comedy",
		"  Length: 1h 41m",
		"  Episodes: 1",
		"  OTT Platform: Prime Video",
	}, "\n")
	if got != want {
		t.Errorf("renderReply =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderReply_PlainText(t *testing.T) {
	if got := renderReply(reply.Fallback); got != reply.Fallback {
		t.Errorf("renderReply changed plain text: %q", got)
	}
}

func TestServerURL(t *testing.T) {
	cfg := config.Config{Server: config.ServerConfig{Host: "0.0.0.0", Port: 3000}}
	if got := serverURL(cfg); got != "http://127.0.0.1:3000" {
		t.Errorf("serverURL = %q", got)
	}
	cfg.Server.Host = "localhost"
	if got := serverURL(cfg); got != "http://localhost:3000" {
		t.Errorf("serverURL = %q", got)
	}
}

func TestOpenHistory_Backends(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Config{Storage: config.StorageConfig{Backend: config.BackendFile, DataDir: dir}}
	s, err := openHistory(cfg)
	if err != nil {
		t.Fatalf("file backend: %v", err)
	}
	if _, ok := s.(*history.FileStore); !ok {
		t.Errorf("file backend returned %T", s)
	}
	s.Close()

	cfg.Storage.Backend = config.BackendSQLite
	s, err = openHistory(cfg)
	if err != nil {
		t.Fatalf("sqlite backend: %v", err)
	}
	defer s.Close()
	if err := s.Append(history.UserEntry("a"), history.BotEntry("b")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	all, _ := s.All()
	if len(all) != 2 {
		t.Errorf("len = %d, want 2", len(all))
	}
}

func TestLoadCatalog(t *testing.T) {
	c, err := loadCatalog(config.Config{})
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	if _, ok := c.Lookup("avengers endgame"); !ok {
		t.Error("default catalog missing avengers endgame")
	}

	_, err = loadCatalog(config.Config{Catalog: config.CatalogConfig{File: filepath.Join(t.TempDir(), "missing.yaml")}})
	if err == nil {
		t.Error("expected error for missing catalog file")
	}
}

func TestPIDFile(t *testing.T) {
	path := pidFilePath(filepath.Join(t.TempDir(), "data"))
	if err := writePIDFile(path); err != nil {
		t.Fatalf("writePIDFile: %v", err)
	}
	pid, err := readPIDFile(path)
	if err != nil {
		t.Fatalf("readPIDFile: %v", err)
	}
	if pid <= 0 {
		t.Errorf("pid = %d", pid)
	}
	removePIDFile(path)
	if _, err := readPIDFile(path); err == nil {
		t.Error("PID file still present after remove")
	}
}

func TestColorize_NoColor(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()

	noColor = true
	if result := colorize(colorRed, "test"); strings.Contains(result, "\033[") {
		t.Errorf("colorize with noColor=true should not contain ANSI codes, got %q", result)
	}

	noColor = false
	if result := colorize(colorRed, "test"); !strings.Contains(result, "\033[") {
		t.Errorf("colorize with noColor=false should contain ANSI codes, got %q", result)
	}
}

func TestNotify_WritesToDiag(t *testing.T) {
	oldColor, oldDiag := noColor, diag
	defer func() { noColor, diag = oldColor, oldDiag }()
	noColor = true
	var buf bytes.Buffer
	diag = &buf

	printWarning("port %d busy", 3000)
	printStatus("Backend", "%s", "sqlite")
	want := "⚠ port 3000 busy\n  Backend: sqlite\n"
	if buf.String() != want {
		t.Errorf("diag output = %q, want %q", buf.String(), want)
	}
}

func TestAskCommand_RequiresMessage(t *testing.T) {
	defer rootCmd.SetArgs(nil)

	rootCmd.SetArgs([]string{"ask"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error when no message is given")
	}
}
