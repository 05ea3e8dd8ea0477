package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrNoCredentials      = errors.New("username and password hash must be configured")
)

const minPasswordLength = 8

// Ensure PasswordGate implements Authenticator
var _ Authenticator = (*PasswordGate)(nil)

// PasswordGate checks logins against one configured username and bcrypt hash.
type PasswordGate struct {
	username string
	hash     []byte
}

// NewPasswordGate creates a gate for the given username and bcrypt password hash.
func NewPasswordGate(username, passwordHash string) (*PasswordGate, error) {
	if username == "" || passwordHash == "" {
		return nil, ErrNoCredentials
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("invalid password hash: %w", err)
	}
	return &PasswordGate{username: username, hash: []byte(passwordHash)}, nil
}

// HashPassword returns a bcrypt hash suitable for the configuration file.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrWeakPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Authenticate verifies the username and password.
func (g *PasswordGate) Authenticate(ctx context.Context, username, credential string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1

	// Compare the hash even for a wrong username so both failures take the same time.
	passErr := bcrypt.CompareHashAndPassword(g.hash, []byte(credential))
	if !userOK || passErr != nil {
		return "", ErrInvalidCredentials
	}

	return g.username, nil
}
