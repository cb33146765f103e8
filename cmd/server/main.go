package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"northwind-ai-api/internal/ai"
	"northwind-ai-api/internal/auth"
	"northwind-ai-api/internal/config"
	"northwind-ai-api/internal/database"
	"northwind-ai-api/internal/logging"
	"northwind-ai-api/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "northwind-api",
		Short:         "Northwind catalog API with OpenRouter-backed recipes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load if present")

	serve := newServeCmd()
	root.AddCommand(serve, newMigrateCmd())
	// Running the binary with no subcommand serves the API.
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())
	return root
}

func newServeCmd() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := logging.Setup(cfg.LogLevel, cfg.LogFormat)
			if log.GetLevel() > zerolog.DebugLevel {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := database.Connect(ctx, cfg.DBURL, log)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			if autoMigrate {
				if err := database.Migrate(db); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
				log.Info().Msg("database schema synced")
			}

			// One outbound client for the whole process.
			httpClient := &http.Client{Timeout: cfg.OpenRouterTimeout}

			router := server.NewRouter(server.Deps{
				Config: cfg,
				Logger: log,
				Store:  database.NewStore(db),
				AI:     ai.NewOpenRouterClient(httpClient),
				Tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL),
			})
			return server.Run(ctx, cfg.Port, router, log)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", true, "sync the schema before serving")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logging.Setup(cfg.LogLevel, cfg.LogFormat)
			if cfg.DBURL == "" {
				return fmt.Errorf("%w: DB_URL", config.ErrMissingSetting)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			db, err := database.Connect(ctx, cfg.DBURL, log)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Info().Msg("database schema synced")

			if !seed {
				return nil
			}
			var adminHash string
			if pw := os.Getenv("SEED_ADMIN_PASSWORD"); pw != "" {
				if adminHash, err = auth.HashPassword(pw); err != nil {
					return fmt.Errorf("hash admin password: %w", err)
				}
			} else {
				log.Warn().Msg("SEED_ADMIN_PASSWORD not set, no admin account created")
			}
			if err := database.Seed(ctx, db, adminHash); err != nil {
				return err
			}
			log.Info().Msg("sample data loaded")
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "load sample Northwind rows into empty tables")
	return cmd
}
