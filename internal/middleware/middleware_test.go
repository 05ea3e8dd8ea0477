package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/attendance/internal/auth"
)

type ping struct{}

func callWith(t *testing.T, interceptor connect.UnaryInterceptorFunc, header string) (context.Context, error) {
	t.Helper()
	var seen context.Context
	next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		seen = ctx
		return connect.NewResponse(&ping{}), nil
	}

	req := connect.NewRequest(&ping{})
	if header != "" {
		req.Header().Set("Authorization", header)
	}
	_, err := interceptor(next)(context.Background(), req)
	return seen, err
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret-key-at-least-32-bytes!", time.Hour)
	token, claims, err := jwtManager.Generate("trener")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	t.Run("valid token", func(t *testing.T) {
		ctx, err := callWith(t, RequireAuth(jwtManager), "Bearer "+token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if GetUsername(ctx) != "trener" {
			t.Errorf("username = %q", GetUsername(ctx))
		}
		if GetSessionID(ctx) != claims.SessionID {
			t.Errorf("session id = %q, want %q", GetSessionID(ctx), claims.SessionID)
		}
		if GetClaims(ctx) == nil {
			t.Error("expected claims in context")
		}
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic " + token},
		{"garbage token", "Bearer nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := callWith(t, RequireAuth(jwtManager), tt.header)
			if connect.CodeOf(err) != connect.CodeUnauthenticated {
				t.Errorf("code = %v, want Unauthenticated", connect.CodeOf(err))
			}
		})
	}
}

func TestRequireToken(t *testing.T) {
	if _, err := callWith(t, RequireToken("sync-secret"), "Bearer sync-secret"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	_, err := callWith(t, RequireToken("sync-secret"), "Bearer other")
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) || connectErr.Code() != connect.CodeUnauthenticated {
		t.Errorf("expected Unauthenticated, got %v", err)
	}

	if _, err := callWith(t, RequireToken(""), "Bearer "); err == nil {
		t.Error("an unset token must reject every request")
	}
}
