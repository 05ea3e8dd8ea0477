// Package auth implements the login gate and the session tokens issued by it.
package auth

import "context"

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping the configured single-operator gate for
// another credential check without changing the service layer code.
type Authenticator interface {
	// Authenticate verifies the credentials and returns the canonical username.
	// Returns ErrInvalidCredentials if they do not match.
	Authenticate(ctx context.Context, username, credential string) (string, error)
}
