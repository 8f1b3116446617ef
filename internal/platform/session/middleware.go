package session

import (
	"net/http"
	"strings"

	"github.com/furnikart/api/internal/platform/httpx"
)

const bearerPrefix = "Bearer "

// Middleware resolves the request identity: a valid bearer token yields an
// authenticated identity, otherwise the anonymous session cookie is used
// (minted on first sight). A malformed or expired token is rejected rather
// than silently downgraded to anonymous.
func (m *Manager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if authz := strings.TrimSpace(r.Header.Get("Authorization")); authz != "" {
				if !strings.HasPrefix(authz, bearerPrefix) {
					httpx.WriteError(ctx, w, httpx.NewError("unauthenticated", "authorization header must use Bearer scheme", http.StatusUnauthorized))
					return
				}
				identity, err := m.Verify(strings.TrimPrefix(authz, bearerPrefix))
				if err != nil {
					code := "token_invalid"
					if err == ErrTokenExpired {
						code = "token_expired"
					}
					httpx.WriteError(ctx, w, httpx.NewError(code, "session token rejected", http.StatusUnauthorized))
					return
				}
				ctx = WithIdentity(ctx, identity)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			uid := ""
			if cookie, err := r.Cookie(m.CookieName()); err == nil {
				uid = strings.TrimSpace(cookie.Value)
			}
			if uid == "" {
				uid = m.NewAnonymousID()
				http.SetCookie(w, &http.Cookie{
					Name:     m.CookieName(),
					Value:    uid,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx = WithIdentity(ctx, &Identity{UID: uid, Anonymous: true})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuthenticated rejects requests whose identity is anonymous.
func RequireAuthenticated() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			identity, ok := IdentityFromContext(ctx)
			if !ok || identity.Anonymous || strings.TrimSpace(identity.UID) == "" {
				httpx.WriteError(ctx, w, httpx.NewError("unauthenticated", "authentication required", http.StatusUnauthorized))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
