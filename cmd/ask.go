package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/varix/internal/llm"
	"github.com/abhisek/varix/internal/questiongen"
)

var askCmd = &cobra.Command{
	Use:   "ask [question text]",
	Short: "Generate a validated question set for one question, without persistence",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")
		logger := newLogger()
		ctx := cmd.Context()

		cfg := llm.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			discovered, ok := llm.DiscoverConfig()
			if !ok {
				return fmt.Errorf("model provider configuration: %w", err)
			}
			cfg = discovered
		}
		provider, err := llm.NewProvider(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("initialize model provider: %w", err)
		}

		retriever, err := buildRetriever(logger)
		if err != nil {
			return fmt.Errorf("initialize skill retriever: %w", err)
		}

		genCfg := questiongen.DefaultConfig()
		identified, err := questiongen.NewInterpreter(provider, retriever, genCfg).Interpret(ctx, question)
		if err != nil {
			return err
		}

		pipeline := questiongen.NewPipeline(
			questiongen.NewCreator(provider, genCfg),
			questiongen.NewSolver(provider, genCfg),
			questiongen.NewValidator(provider, genCfg),
			genCfg,
			logger,
		)
		questions, key, err := pipeline.GenerateValidatedSet(ctx, identified)
		var degraded *questiongen.DegradedError
		if err != nil && !errors.As(err, &degraded) {
			return err
		}
		if degraded != nil {
			fmt.Fprintf(os.Stderr, "warning: generated %d of %d requested questions\n",
				degraded.Generated, degraded.Requested)
		}

		out := map[string]any{
			"identified_skills": identified,
			"questions":         questions,
			"answer_key":        key,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}
