package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/furnikart/api/internal/domain"
)

func TestMiddlewareMintsAnonymousCookie(t *testing.T) {
	manager := newTestManager(t, time.Now)

	var captured *Identity
	handler := manager.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = IdentityFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if captured == nil || !captured.Anonymous {
		t.Fatalf("expected anonymous identity, got %+v", captured)
	}
	if !strings.HasPrefix(captured.UID, "anon-") {
		t.Fatalf("expected anon- session id, got %q", captured.UID)
	}

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != DefaultCookieName {
		t.Fatalf("expected %s cookie, got %+v", DefaultCookieName, cookies)
	}
	if cookies[0].Value != captured.UID {
		t.Fatalf("cookie value %q does not match identity %q", cookies[0].Value, captured.UID)
	}
	if !cookies[0].HttpOnly {
		t.Fatalf("expected HttpOnly cookie")
	}
}

func TestMiddlewareReusesExistingCookie(t *testing.T) {
	manager := newTestManager(t, time.Now)

	var captured *Identity
	handler := manager.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = IdentityFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "anon-existing"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if captured == nil || captured.UID != "anon-existing" {
		t.Fatalf("expected existing session id, got %+v", captured)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Fatalf("expected no new cookie for an existing session")
	}
}

func TestMiddlewareAcceptsBearerToken(t *testing.T) {
	manager := newTestManager(t, time.Now)
	token, err := manager.Issue(domain.User{ID: "1", Name: "John Doe", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	var captured *Identity
	handler := manager.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = IdentityFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if captured == nil || captured.Anonymous {
		t.Fatalf("expected authenticated identity, got %+v", captured)
	}
	if captured.UID != "1" || captured.Email != "jane@example.com" {
		t.Fatalf("unexpected identity: %+v", captured)
	}
}

func TestMiddlewareRejectsBadToken(t *testing.T) {
	manager := newTestManager(t, time.Now)

	handler := manager.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run for a rejected token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "token_invalid") {
		t.Fatalf("expected token_invalid code, got %s", rr.Body.String())
	}
}

func TestRequireAuthenticatedRejectsAnonymous(t *testing.T) {
	handler := RequireAuthenticated()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), &Identity{UID: "anon-1", Anonymous: true}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous identity, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), &Identity{UID: "1"}))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for authenticated identity, got %d", rr.Code)
	}
}
