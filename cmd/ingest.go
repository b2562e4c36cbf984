package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/varix/internal/skills"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load the BNCC skill corpus into the Weaviate index",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		ctx := cmd.Context()

		host := os.Getenv("VARIX_WEAVIATE_HOST")
		if host == "" {
			return fmt.Errorf("VARIX_WEAVIATE_HOST is required for ingest")
		}
		scheme := os.Getenv("VARIX_WEAVIATE_SCHEME")
		if scheme == "" {
			scheme = "http"
		}

		retriever, err := skills.NewWeaviateRetriever(
			skills.WeaviateConfig{Host: host, Scheme: scheme}, logger)
		if err != nil {
			return fmt.Errorf("connect to weaviate: %w", err)
		}

		records := skills.SeedCorpus()
		if file, _ := cmd.Flags().GetString("file"); file != "" {
			records, err = loadCorpus(file)
			if err != nil {
				return err
			}
		}

		if err := retriever.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		if err := retriever.Ingest(ctx, records); err != nil {
			return fmt.Errorf("ingest corpus: %w", err)
		}

		logger.Info("corpus ingested", "records", len(records), "host", host)
		return nil
	},
}

func init() {
	ingestCmd.Flags().String("file", "", "JSON file with skill records (defaults to the built-in seed corpus)")
}

// loadCorpus reads a JSON array of skill records.
func loadCorpus(path string) ([]skills.SkillRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}
	var records []skills.SkillRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("parse corpus file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("corpus file %s contains no records", path)
	}
	return skills.Dedup(records), nil
}
