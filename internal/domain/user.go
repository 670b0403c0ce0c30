package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// User represents a dashboard account in the users table
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
}

// Validate ensures the user adheres to domain rules
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return errors.New("username cannot be empty")
	}
	if u.PasswordHash == "" {
		return errors.New("password hash cannot be empty")
	}
	return nil
}
