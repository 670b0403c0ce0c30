package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/simaogato/partsdash-backend/internal/domain"
)

const minPasswordLength = 8

// ErrInvalidCredentials is returned when a username/password pair does not match
var ErrInvalidCredentials = errors.New("invalid credentials")

// CreateUserInput represents the input for creating a dashboard user
type CreateUserInput struct {
	Username string
	Password string
}

// AccountService handles dashboard user accounts
type AccountService struct {
	UserRepo domain.UserRepository
	cost     int
}

// NewAccountService creates a new AccountService instance
func NewAccountService(userRepo domain.UserRepository) *AccountService {
	return &AccountService{
		UserRepo: userRepo,
		cost:     bcrypt.DefaultCost,
	}
}

// CreateUser hashes the password and stores a new user.
// Usernames are stored trimmed and lower-cased.
func (s *AccountService) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("password must have at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     NormalizeUsername(input.Username),
		PasswordHash: string(hash),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate returns the user when the password matches its stored hash
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.UserRepo.GetByUsername(ctx, NormalizeUsername(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// NormalizeUsername trims and lower-cases a username the way it is stored
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
