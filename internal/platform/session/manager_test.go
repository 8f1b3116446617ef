package session

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/furnikart/api/internal/domain"
)

func newTestManager(t *testing.T, clock func() time.Time) *Manager {
	t.Helper()
	manager, err := NewManager(ManagerDeps{
		Secret: "test-secret",
		Clock:  clock,
	})
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}
	return manager
}

func TestManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager(ManagerDeps{Secret: "  "}); err == nil {
		t.Fatalf("expected error for blank secret")
	}
}

func TestManagerIssueVerifyRoundTrip(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	manager := newTestManager(t, func() time.Time { return now })

	token, err := manager.Issue(domain.User{ID: "1", Name: "John Doe", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	identity, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if identity.UID != "1" || identity.Name != "John Doe" || identity.Email != "jane@example.com" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if identity.Anonymous {
		t.Fatalf("expected token identity to be authenticated")
	}
}

func TestManagerVerifyExpiredToken(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	manager := newTestManager(t, clock)

	token, err := manager.Issue(domain.User{ID: "1"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	now = now.Add(25 * time.Hour)
	if _, err := manager.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestManagerVerifyRejectsForeignToken(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	manager := newTestManager(t, func() time.Time { return now })

	other, err := NewManager(ManagerDeps{Secret: "other-secret", Clock: func() time.Time { return now }})
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}
	token, err := other.Issue(domain.User{ID: "1"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := manager.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := manager.Verify("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for garbage, got %v", err)
	}
}

func TestManagerIssueRequiresUserID(t *testing.T) {
	manager := newTestManager(t, time.Now)
	if _, err := manager.Issue(domain.User{}); err == nil {
		t.Fatalf("expected error for blank user id")
	}
}

func TestManagerNewAnonymousID(t *testing.T) {
	manager := newTestManager(t, time.Now)

	first := manager.NewAnonymousID()
	second := manager.NewAnonymousID()
	if !strings.HasPrefix(first, "anon-") {
		t.Fatalf("expected anon- prefix, got %q", first)
	}
	if first == second {
		t.Fatalf("expected unique anonymous ids")
	}
}
