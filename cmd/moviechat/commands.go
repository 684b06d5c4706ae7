package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kalambet/moviechat/internal/api"
	"github.com/kalambet/moviechat/internal/chat"
	"github.com/kalambet/moviechat/internal/config"
	"github.com/kalambet/moviechat/internal/history"
	"github.com/kalambet/moviechat/internal/storage"
)

// --- ask ---

var askCmd = &cobra.Command{
	Use:   "ask <message...>",
	Short: "Send a message to the running bot",
	Long: `Send a message to the running bot and print its reply.

Examples:
  moviechat ask inception
  moviechat ask "the dark knight"
  moviechat ask hello`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		text, err := askMessage(cmd.Context(), client, strings.Join(args, " "))
		if err != nil {
			return err
		}

		if !raw {
			text = renderReply(text)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	askCmd.Flags().Bool("raw", false, "print the reply exactly as returned, without rendering markup")
}

func askMessage(ctx context.Context, c *apiClient, message string) (string, error) {
	resp, err := c.post(ctx, "/api/chat", api.ChatRequest{Message: message})
	if err != nil {
		return "", err
	}

	var result chat.Response
	if err := decodeJSON(resp, &result); err != nil {
		return "", err
	}
	return result.Reply, nil
}

// --- history ---

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the conversation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		entries, err := fetchHistory(cmd.Context(), client)
		if err != nil {
			return err
		}

		printHistory(cmd.OutOrStdout(), entries)
		return nil
	},
}

var historyImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy a JSON history file into the SQLite backend",
	Long: `Copy a JSON history file into the SQLite database in the data directory.

Run it while the server is stopped, then switch backends with:
  moviechat config set storage.backend sqlite`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if from == "" {
			from = cfg.HistoryPath()
		}

		src, err := history.Open(from)
		if err != nil {
			return fmt.Errorf("opening %s: %w", from, err)
		}
		defer src.Close()

		dst, err := storage.Open(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer dst.Close()

		n, err := dst.Import(src)
		if err != nil {
			return err
		}

		printSuccess("Imported %d messages from %s", n, from)
		return nil
	},
}

func init() {
	historyImportCmd.Flags().String("from", "", "JSON history file (default: configured history file)")
	historyCmd.AddCommand(historyImportCmd)
}

func fetchHistory(ctx context.Context, c *apiClient) ([]history.Entry, error) {
	resp, err := c.get(ctx, "/api/history")
	if err != nil {
		return nil, err
	}

	var result api.HistoryResponse
	if err := decodeJSON(resp, &result); err != nil {
		return nil, err
	}
	return result.History, nil
}

func printHistory(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No messages yet.")
		return
	}

	for _, e := range entries {
		if e.Role != history.RoleBot {
			fmt.Fprintf(w, "%s: %s\n", speaker(false), e.Text)
			continue
		}
		label := speaker(true)
		text := renderReply(e.Text)
		if strings.Contains(text, "\n") {
			fmt.Fprintf(w, "%s:\n%s\n", label, text)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", label, text)
	}
}

// --- suggest ---

var suggestCmd = &cobra.Command{
	Use:   "suggest [query]",
	Short: "List catalog titles matching a partial query",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		titles, err := fetchSuggestions(cmd.Context(), client, query)
		if err != nil {
			return err
		}

		if len(titles) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No matching titles.")
			return nil
		}
		for _, t := range titles {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
		return nil
	},
}

func fetchSuggestions(ctx context.Context, c *apiClient, query string) ([]string, error) {
	path := "/api/suggestions?q=" + url.QueryEscape(query)
	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var result api.SuggestionsResponse
	if err := decodeJSON(resp, &result); err != nil {
		return nil, err
	}
	return result.Suggestions, nil
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		for _, k := range config.ShowAll(cfg) {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s  %s\n", colorize(colorBold, k.Key), k.Value, colorize(colorCyan, "($"+k.EnvVar+")"))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return fmt.Errorf("%w (valid keys: %s)", err, strings.Join(config.ValidKeys(), ", "))
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a configuration value so the default applies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.UnsetKey(args[0]); err != nil {
			return err
		}
		printSuccess("Unset %s", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
}

