package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simaogato/partsdash-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/partsdash-backend/internal/usecase/account"
	"github.com/simaogato/partsdash-backend/internal/usecase/seeder"
)

// seed: make sure the admin account exists.
func seedCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the admin account if it is missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				username = cfg.AdminUsername
			}
			if password == "" {
				password = cfg.AdminPassword
			}
			if password == "" {
				return fmt.Errorf("admin password required (--password or ADMIN_PASSWORD)")
			}

			db, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			userRepo := postgres.NewUserRepository(db)
			created, err := seeder.NewSystemSeeder(userRepo, account.NewAccountService(userRepo)).Seed(cmd.Context(), seeder.AdminCredentials{
				Username: username,
				Password: password,
			})
			if err != nil {
				return err
			}

			log.Info("admin account checked", zap.String("username", username), zap.Bool("created", created))
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "admin username (default ADMIN_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "admin password (default ADMIN_PASSWORD)")
	return cmd
}
