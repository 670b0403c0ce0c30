package account

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/simaogato/partsdash-backend/internal/domain"
)

// MockUserRepository is a mock implementation of UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newTestService(repo domain.UserRepository) *AccountService {
	s := NewAccountService(repo)
	s.cost = bcrypt.MinCost
	return s
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	service := newTestService(repo)

	repo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Username == "ops-admin" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")) == nil
	})).Return(nil)

	user, err := service.CreateUser(ctx, CreateUserInput{Username: " Ops-Admin ", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "ops-admin", user.Username)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	repo.AssertExpectations(t)
}

func TestCreateUser_Validation(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	service := newTestService(repo)

	_, err := service.CreateUser(ctx, CreateUserInput{Username: "ops", Password: "short"})
	assert.EqualError(t, err, "password must have at least 8 characters")

	_, err = service.CreateUser(ctx, CreateUserInput{Username: "  ", Password: "long-enough"})
	assert.EqualError(t, err, "username cannot be empty")

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	service := newTestService(repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &domain.User{Username: "ops-admin", PasswordHash: string(hash)}

	repo.On("GetByUsername", ctx, "ops-admin").Return(stored, nil)
	repo.On("GetByUsername", ctx, "ghost").Return(nil, fmt.Errorf("user ghost: %w", domain.ErrNotFound))

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "correct password", username: "OPS-ADMIN", password: "s3cret-pass"},
		{name: "wrong password", username: "ops-admin", password: "guess", wantErr: ErrInvalidCredentials},
		{name: "unknown user", username: "ghost", password: "whatever", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := service.Authenticate(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, stored, user)
			}
		})
	}
}
