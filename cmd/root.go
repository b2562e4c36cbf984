package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/varix/internal/skills"
	"github.com/abhisek/varix/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "varix",
	Short: "Question generation and correction service for BNCC-aligned math exams",
	Long: "Varix takes one original exam question, identifies the BNCC skills it\n" +
		"exercises, generates a validated set of new questions with an answer key,\n" +
		"and grades submitted answers into a diagnostic report.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides VARIX_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then VARIX_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	return store.DefaultDBPath()
}

// newLogger builds the process logger. VARIX_LOG_LEVEL selects the
// level; VARIX_LOG_FORMAT=json switches to JSON output.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch os.Getenv("VARIX_LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if os.Getenv("VARIX_LOG_FORMAT") == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// buildRetriever selects the skill retriever: the Weaviate index when
// VARIX_WEAVIATE_HOST is set, otherwise the static seed corpus.
func buildRetriever(logger *slog.Logger) (skills.Retriever, error) {
	host := os.Getenv("VARIX_WEAVIATE_HOST")
	if host == "" {
		return skills.NewStaticRetriever(nil), nil
	}

	scheme := os.Getenv("VARIX_WEAVIATE_SCHEME")
	if scheme == "" {
		scheme = "http"
	}
	return skills.NewWeaviateRetriever(skills.WeaviateConfig{Host: host, Scheme: scheme}, logger)
}
