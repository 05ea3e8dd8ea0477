package middleware

import (
	"context"
	"crypto/subtle"
	"slices"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/attendance/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UsernameKey is the context key for storing the authenticated username.
	UsernameKey contextKey = "username"
	// SessionIDKey is the context key for storing the session id of the token.
	SessionIDKey contextKey = "session_id"
	// ClaimsKey is the context key for storing the validated token claims.
	ClaimsKey contextKey = "claims"
)

// GetUsername extracts the username from the context.
// Returns empty string if not found.
func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(UsernameKey).(string)
	return username
}

// GetSessionID extracts the session id from the context.
// Returns empty string if not found.
func GetSessionID(ctx context.Context) string {
	sessionID, _ := ctx.Value(SessionIDKey).(string)
	return sessionID
}

// GetClaims extracts the validated claims from the context.
func GetClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(ClaimsKey).(*auth.Claims)
	return claims
}

// WithSession returns a context carrying the given username and session id.
func WithSession(ctx context.Context, username, sessionID string) context.Context {
	ctx = context.WithValue(ctx, UsernameKey, username)
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

// RequireAuth returns a middleware that validates JWT tokens and requires authentication.
// It extracts the token from the Authorization header, validates it, and adds
// the username and session id to the request context. Procedures listed in
// public are passed through without a token.
func RequireAuth(jwtManager *auth.JWTManager, public ...string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if slices.Contains(public, req.Spec().Procedure) {
				return next(ctx, req)
			}

			tokenString, err := bearerToken(req.Header().Get("Authorization"))
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			ctx = WithSession(ctx, claims.Username, claims.SessionID)
			ctx = context.WithValue(ctx, ClaimsKey, claims)
			return next(ctx, req)
		}
	}
}

// RequireToken returns a middleware that accepts only requests carrying the
// given static bearer token. It guards the group store service used by other servers.
func RequireToken(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			got, err := bearerToken(req.Header().Get("Authorization"))
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}
			return next(ctx, req)
		}
	}
}

// bearerToken parses an "Authorization: Bearer <token>" header value.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingToken
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}
