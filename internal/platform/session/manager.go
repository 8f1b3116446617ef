package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"

	"github.com/furnikart/api/internal/domain"
)

const (
	// DefaultCookieName is the anonymous session cookie set for browsers
	// that have not authenticated.
	DefaultCookieName = "fk_session"

	defaultTokenTTL = 24 * time.Hour
	issuerName      = "furnikart-api"
)

var (
	// ErrTokenInvalid signals that the presented session token failed verification.
	ErrTokenInvalid = errors.New("session: token invalid")
	// ErrTokenExpired signals that the presented session token has expired.
	ErrTokenExpired = errors.New("session: token expired")

	errSecretRequired = errors.New("session: signing secret is required")
)

// ManagerDeps wires the inputs for the session manager.
type ManagerDeps struct {
	Secret     string
	TokenTTL   time.Duration
	CookieName string
	Clock      func() time.Time
}

// Manager mints and verifies HS256 session tokens and generates anonymous
// session identifiers.
type Manager struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	now        func() time.Time
}

type sessionClaims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// NewManager constructs a Manager enforcing dependency validation.
func NewManager(deps ManagerDeps) (*Manager, error) {
	secret := strings.TrimSpace(deps.Secret)
	if secret == "" {
		return nil, errSecretRequired
	}
	ttl := deps.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	cookieName := strings.TrimSpace(deps.CookieName)
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Manager{
		secret:     []byte(secret),
		ttl:        ttl,
		cookieName: cookieName,
		now:        func() time.Time { return clock().UTC() },
	}, nil
}

// CookieName returns the configured anonymous session cookie name.
func (m *Manager) CookieName() string {
	if m == nil {
		return DefaultCookieName
	}
	return m.cookieName
}

// Issue mints a signed session token for the supplied user.
func (m *Manager) Issue(user domain.User) (string, error) {
	if m == nil {
		return "", errSecretRequired
	}
	uid := strings.TrimSpace(user.ID)
	if uid == "" {
		return "", fmt.Errorf("%w: user id is required", ErrTokenInvalid)
	}
	now := m.now()
	claims := sessionClaims{
		Name: strings.TrimSpace(user.Name),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuerName,
			Subject:   uid,
			Audience:  jwt.ClaimStrings{strings.TrimSpace(user.Email)},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses a session token and returns the authenticated identity.
func (m *Manager) Verify(tokenString string) (*Identity, error) {
	if m == nil {
		return nil, errSecretRequired
	}
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrTokenInvalid
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	var claims sessionClaims
	_, err := parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	uid := strings.TrimSpace(claims.Subject)
	if uid == "" {
		return nil, ErrTokenInvalid
	}
	email := ""
	if len(claims.Audience) > 0 {
		email = strings.TrimSpace(claims.Audience[0])
	}
	return &Identity{
		UID:   uid,
		Email: email,
		Name:  strings.TrimSpace(claims.Name),
	}, nil
}

// NewAnonymousID generates a fresh anonymous session identifier.
func (m *Manager) NewAnonymousID() string {
	return "anon-" + ulid.Make().String()
}
