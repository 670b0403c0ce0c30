package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simaogato/partsdash-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/partsdash-backend/internal/config"
	"github.com/simaogato/partsdash-backend/internal/logger"
)

var (
	cfg *config.Config
	log *zap.Logger

	dbConnStr string
)

// Execute runs the partsdash operator CLI
func Execute() error {
	root := &cobra.Command{
		Use:          "partsdash",
		Short:        "Operator tooling for the parts dashboard backend",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			if dbConnStr != "" {
				loaded.DBConnStr = dbConnStr
			}
			cfg = loaded

			log, err = logger.New(logger.Config{Level: cfg.LogLevel, Stage: cfg.Stage, Service: "partsdash-cli"})
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&dbConnStr, "db", "", "database connection string (default from DB_CONN_STR or DB_* variables)")

	root.AddCommand(migrateCmd(), seedCmd(), panelsCmd(), exportCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return root.ExecuteContext(ctx)
}

// openDB connects to the configured database
func openDB(cmd *cobra.Command) (*postgres.DB, error) {
	return postgres.NewDB(cmd.Context(), cfg.DBConnStr)
}
