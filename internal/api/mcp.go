package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kalambet/moviechat/internal/catalog"
	"github.com/kalambet/moviechat/internal/chat"
	"github.com/kalambet/moviechat/internal/history"
	"github.com/kalambet/moviechat/internal/reply"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Chat      *chat.Service
	Catalog   *catalog.Catalog
	Suggester Suggester
	Version   string
}

// NewMCPServer creates an MCP server exposing the movie bot as tools.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	s := server.NewMCPServer(
		"moviechat",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("moviechat answers questions about a fixed catalog of movies and series."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("ask",
			mcp.WithDescription("Send a chat message to the movie bot. The exchange is recorded in the shared history."),
			mcp.WithString("message", mcp.Description("Message text, e.g. a movie title or a greeting"), mcp.Required()),
		),
		mcpAsk(deps),
	)

	s.AddTool(
		mcp.NewTool("lookup_movie",
			mcp.WithDescription("Return the detail block for an exact catalog title. Not recorded in history."),
			mcp.WithString("title", mcp.Description("Movie or series title (case-insensitive)"), mcp.Required()),
		),
		mcpLookupMovie(deps),
	)

	s.AddTool(
		mcp.NewTool("suggest_titles",
			mcp.WithDescription("List up to 10 catalog titles containing the query."),
			mcp.WithString("query", mcp.Description("Partial title; empty lists the first titles")),
		),
		mcpSuggestTitles(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"history://all",
			"Conversation History",
			mcp.WithResourceDescription("Every recorded chat message in order, as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceHistory(deps),
	)

	return s
}

func mcpAsk(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		message, err := req.RequireString("message")
		if err != nil {
			return mcpError("message is required"), nil
		}

		resp, err := deps.Chat.HandleChat(message)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to record chat: %v", err)), nil
		}
		return mcpText(resp.Reply), nil
	}
}

func mcpLookupMovie(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := req.RequireString("title")
		if err != nil {
			return mcpError("title is required"), nil
		}

		m, ok := deps.Catalog.Lookup(catalog.Normalize(title))
		if !ok {
			return mcpText(reply.Fallback), nil
		}
		return mcpText(reply.FormatMovie(m)), nil
	}
}

func mcpSuggestTitles(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		titles := deps.Suggester.Suggest(req.GetString("query", ""))
		if len(titles) == 0 {
			return mcpText("No matching titles."), nil
		}
		return mcpText(strings.Join(titles, "\n")), nil
	}
}

func mcpResourceHistory(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		entries, err := deps.Chat.History()
		if err != nil {
			return nil, fmt.Errorf("failed to load history: %w", err)
		}
		if entries == nil {
			entries = []history.Entry{}
		}

		b, err := json.Marshal(entries)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal history: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
