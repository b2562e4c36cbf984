package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/varix/internal/correction"
	"github.com/abhisek/varix/internal/extract"
	"github.com/abhisek/varix/internal/llm"
	"github.com/abhisek/varix/internal/questiongen"
	"github.com/abhisek/varix/internal/server"
	"github.com/abhisek/varix/internal/session"
	"github.com/abhisek/varix/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
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
		logger.Info("skill retrieval ready", "mode", retriever.Mode())

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		genCfg := questiongen.DefaultConfig()
		svc := session.NewService(
			questiongen.NewInterpreter(provider, retriever, genCfg),
			questiongen.NewPipeline(
				questiongen.NewCreator(provider, genCfg),
				questiongen.NewSolver(provider, genCfg),
				questiongen.NewValidator(provider, genCfg),
				genCfg,
				logger,
			),
			correction.NewCorrector(provider, logger),
			st,
			logger,
		)

		srv := server.New(svc, extract.NewMock(), logger)
		logger.Info("listening", "addr", addr, "db", dbPath, "provider", cfg.Provider)
		return srv.Router().Run(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
}
