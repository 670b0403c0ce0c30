package commands

import (
	"github.com/spf13/cobra"

	"github.com/simaogato/partsdash-backend/internal/adapter/repository/postgres"
)

// migrate: create the dashboard tables if they do not exist.
func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgres.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			log.Info("schema is up to date")
			return nil
		},
	}
}
