package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/simaogato/partsdash-backend/internal/domain"
	"github.com/simaogato/partsdash-backend/internal/usecase/account"
)

// AdminCredentials defines the account that must exist for the dashboard to be usable
type AdminCredentials struct {
	Username string
	Password string
}

// SystemSeeder handles seeding of required system records
type SystemSeeder struct {
	repo     domain.UserRepository
	accounts *account.AccountService
}

// NewSystemSeeder creates a new SystemSeeder instance
func NewSystemSeeder(repo domain.UserRepository, accounts *account.AccountService) *SystemSeeder {
	return &SystemSeeder{
		repo:     repo,
		accounts: accounts,
	}
}

// Seed ensures the admin user exists in the database.
// An existing admin is left untouched, including its password.
// Returns true when the admin was created by this call.
func (s *SystemSeeder) Seed(ctx context.Context, admin AdminCredentials) (bool, error) {
	_, err := s.repo.GetByUsername(ctx, account.NormalizeUsername(admin.Username))
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("failed to look up admin user: %w", err)
	}

	if _, err := s.accounts.CreateUser(ctx, account.CreateUserInput{
		Username: admin.Username,
		Password: admin.Password,
	}); err != nil {
		return false, fmt.Errorf("failed to create admin user: %w", err)
	}

	return true, nil
}
