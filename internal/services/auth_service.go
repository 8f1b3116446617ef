package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/furnikart/api/internal/backend"
	"github.com/furnikart/api/internal/domain"
)

var errAuthBackendRequired = errors.New("auth service: backend is required")

// ErrAuthInvalidCredentials indicates a rejected login attempt.
var ErrAuthInvalidCredentials = errors.New("auth service: invalid credentials")

// ErrAuthInvalidData indicates a rejected signup attempt.
var ErrAuthInvalidData = errors.New("auth service: invalid data")

// ErrAuthUnavailable indicates the backend could not serve the request.
var ErrAuthUnavailable = errors.New("auth service: unavailable")

// AuthServiceDeps wires the backend for authentication operations.
type AuthServiceDeps struct {
	Backend backend.Client
	Logger  func(context.Context, string, map[string]any)
}

type authService struct {
	backend backend.Client
	logger  func(context.Context, string, map[string]any)

	mu       sync.Mutex
	sessions map[string]domain.User
}

// NewAuthService constructs an AuthService enforcing dependency validation.
func NewAuthService(deps AuthServiceDeps) (AuthService, error) {
	if deps.Backend == nil {
		return nil, errAuthBackendRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &authService{
		backend:  deps.Backend,
		logger:   logger,
		sessions: make(map[string]domain.User),
	}, nil
}

// Login authenticates against the backend and records the session's user. A
// failed attempt leaves the previous state untouched.
func (s *authService) Login(ctx context.Context, uid string, cmd LoginCommand) (AuthResult, error) {
	uid = strings.TrimSpace(uid)
	creds, err := s.backend.Login(ctx, cmd.Email, cmd.Password)
	if err != nil {
		if errors.Is(err, backend.ErrInvalidCredentials) {
			return AuthResult{State: s.State(ctx, uid)}, ErrAuthInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("%w: %v", ErrAuthUnavailable, err)
	}

	s.mu.Lock()
	s.sessions[uid] = creds.User
	s.mu.Unlock()

	s.logger(ctx, "auth.logged_in", map[string]any{"user_id": creds.User.ID})
	user := creds.User
	return AuthResult{
		State: domain.AuthState{User: &user, Authenticated: true},
		Token: creds.Token,
	}, nil
}

// Signup registers against the backend and records the session's user.
func (s *authService) Signup(ctx context.Context, uid string, cmd SignupCommand) (AuthResult, error) {
	uid = strings.TrimSpace(uid)
	creds, err := s.backend.Signup(ctx, cmd.Name, cmd.Email, cmd.Password)
	if err != nil {
		if errors.Is(err, backend.ErrInvalidData) {
			return AuthResult{State: s.State(ctx, uid)}, ErrAuthInvalidData
		}
		return AuthResult{}, fmt.Errorf("%w: %v", ErrAuthUnavailable, err)
	}

	s.mu.Lock()
	s.sessions[uid] = creds.User
	s.mu.Unlock()

	s.logger(ctx, "auth.signed_up", map[string]any{"user_id": creds.User.ID})
	user := creds.User
	return AuthResult{
		State: domain.AuthState{User: &user, Authenticated: true},
		Token: creds.Token,
	}, nil
}

// Logout drops the session's user. Logging out an anonymous session is a no-op.
func (s *authService) Logout(ctx context.Context, uid string) domain.AuthState {
	uid = strings.TrimSpace(uid)

	s.mu.Lock()
	delete(s.sessions, uid)
	s.mu.Unlock()

	s.logger(ctx, "auth.logged_out", nil)
	return domain.AuthState{}
}

// State returns the session's current authentication state.
func (s *authService) State(ctx context.Context, uid string) domain.AuthState {
	uid = strings.TrimSpace(uid)

	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.sessions[uid]
	if !ok {
		return domain.AuthState{}
	}
	return domain.AuthState{User: &user, Authenticated: true}
}
