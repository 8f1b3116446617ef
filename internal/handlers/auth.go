package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/furnikart/api/internal/domain"
	"github.com/furnikart/api/internal/platform/httpx"
	"github.com/furnikart/api/internal/platform/session"
	"github.com/furnikart/api/internal/services"
)

const maxAuthBodySize = 8 * 1024

// AuthHandlers exposes the login, signup and session endpoints.
type AuthHandlers struct {
	auth services.AuthService
}

// NewAuthHandlers constructs handlers backed by the auth service.
func NewAuthHandlers(auth services.AuthService) *AuthHandlers {
	return &AuthHandlers{auth: auth}
}

// Routes wires the /auth endpoints onto the provided router.
func (h *AuthHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/login", h.login)
	r.Post("/signup", h.signup)
	r.Post("/logout", h.logout)
	r.Get("/me", h.me)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User          *userPayload `json:"user"`
	Authenticated bool         `json:"authenticated"`
	Token         string       `json:"token,omitempty"`
}

func (h *AuthHandlers) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid, ok := h.sessionUID(ctx, w)
	if !ok {
		return
	}

	var req loginRequest
	if err := decodeJSONBody(r, maxAuthBodySize, &req); err != nil {
		writeAuthBodyError(ctx, w, err)
		return
	}

	result, err := h.auth.Login(ctx, uid, services.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeAuthError(ctx, w, err)
		return
	}
	writeSessionJSONResponse(w, http.StatusOK, buildAuthResponse(result.State, result.Token))
}

func (h *AuthHandlers) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid, ok := h.sessionUID(ctx, w)
	if !ok {
		return
	}

	var req signupRequest
	if err := decodeJSONBody(r, maxAuthBodySize, &req); err != nil {
		writeAuthBodyError(ctx, w, err)
		return
	}

	result, err := h.auth.Signup(ctx, uid, services.SignupCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeAuthError(ctx, w, err)
		return
	}
	writeSessionJSONResponse(w, http.StatusCreated, buildAuthResponse(result.State, result.Token))
}

func (h *AuthHandlers) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid, ok := h.sessionUID(ctx, w)
	if !ok {
		return
	}

	state := h.auth.Logout(ctx, uid)
	writeSessionJSONResponse(w, http.StatusOK, buildAuthResponse(state, ""))
}

func (h *AuthHandlers) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.auth == nil {
		httpx.WriteError(ctx, w, httpx.NewError("auth_unavailable", "auth service is unavailable", http.StatusServiceUnavailable))
		return
	}

	identity, ok := session.IdentityFromContext(ctx)
	if !ok || strings.TrimSpace(identity.UID) == "" {
		httpx.WriteError(ctx, w, httpx.NewError("session_required", "a session is required", http.StatusUnauthorized))
		return
	}

	// Bearer sessions carry the user in the token; cookie sessions may
	// have logged in earlier through the store.
	var state domain.AuthState
	if identity.Anonymous {
		state = h.auth.State(ctx, identity.UID)
	} else {
		state = domain.AuthState{
			User: &domain.User{
				ID:    identity.UID,
				Name:  identity.Name,
				Email: identity.Email,
			},
			Authenticated: true,
		}
	}
	writeSessionJSONResponse(w, http.StatusOK, buildAuthResponse(state, ""))
}

func (h *AuthHandlers) sessionUID(ctx context.Context, w http.ResponseWriter) (string, bool) {
	if h.auth == nil {
		httpx.WriteError(ctx, w, httpx.NewError("auth_unavailable", "auth service is unavailable", http.StatusServiceUnavailable))
		return "", false
	}
	uid := session.UID(ctx)
	if uid == "" {
		httpx.WriteError(ctx, w, httpx.NewError("session_required", "a session is required", http.StatusUnauthorized))
		return "", false
	}
	return uid, true
}

func (h *AuthHandlers) writeAuthError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrAuthInvalidCredentials):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_credentials", "email or password is incorrect", http.StatusUnauthorized))
	case errors.Is(err, services.ErrAuthInvalidData):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_data", "name, email and password are required", http.StatusBadRequest))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("auth_unavailable", "auth backend is unavailable", http.StatusServiceUnavailable))
	}
}

func writeAuthBodyError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errBodyTooLarge):
		httpx.WriteError(ctx, w, httpx.NewError("payload_too_large", "request body exceeds allowed size", http.StatusRequestEntityTooLarge))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	}
}

func buildAuthResponse(state domain.AuthState, token string) authResponse {
	resp := authResponse{Authenticated: state.Authenticated, Token: token}
	if state.User != nil {
		payload := buildUserPayload(*state.User)
		resp.User = &payload
	}
	return resp
}
