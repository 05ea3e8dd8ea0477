package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/attendance/internal/app"
	"github.com/mmynk/attendance/internal/auth"
	"github.com/mmynk/attendance/internal/middleware"
	"github.com/mmynk/attendance/pkg/api"
)

// Ensure AuthService implements api.AuthServiceHandler
var _ api.AuthServiceHandler = (*AuthService)(nil)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	app           *app.App
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, a *app.App, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		app:           a,
		logger:        logger,
	}
}

// Login checks the operator credentials and starts a new session.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "username", req.Msg.Username)

	username, err := s.authenticator.Authenticate(ctx, req.Msg.Username, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "username", req.Msg.Username, "error", err)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, connect.NewError(connect.CodeUnauthenticated, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, claims, err := s.jwtManager.Generate(username)
	if err != nil {
		s.logger.Error("Failed to generate token", "username", username, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in successfully", "username", username, "session_id", claims.SessionID)
	return connect.NewResponse(&api.LoginResponse{
		Token:     token,
		Username:  username,
		ExpiresAt: claims.ExpiresAt.Time,
	}), nil
}

// Logout forgets the session's selection. The token itself stays valid
// until it expires.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	sessionID := middleware.GetSessionID(ctx)
	s.app.EndSession(sessionID)
	s.logger.Info("User logged out", "username", middleware.GetUsername(ctx), "session_id", sessionID)
	return connect.NewResponse(&api.LogoutResponse{}), nil
}

// GetSession returns the caller's identity and current selection.
func (s *AuthService) GetSession(ctx context.Context, req *connect.Request[api.GetSessionRequest]) (*connect.Response[api.GetSessionResponse], error) {
	session := s.app.Session(middleware.GetSessionID(ctx))

	resp := &api.GetSessionResponse{
		Username:     middleware.GetUsername(ctx),
		Group:        session.Group,
		ActiveDateID: session.ActiveDateID,
	}
	if claims := middleware.GetClaims(ctx); claims != nil && claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	return connect.NewResponse(resp), nil
}
