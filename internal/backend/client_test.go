package backend

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/furnikart/api/internal/domain"
)

func newTestSimulator(t *testing.T, deps SimulatorDeps) Client {
	t.Helper()
	deps.LatencyScaleSet = true
	return NewSimulator(deps)
}

func TestSimulatorGetProductByID(t *testing.T) {
	ctx := context.Background()
	client := newTestSimulator(t, SimulatorDeps{})

	product, err := client.GetProductByID(ctx, "1")
	if err != nil {
		t.Fatalf("GetProductByID returned error: %v", err)
	}
	if product.ID != "1" {
		t.Fatalf("expected product 1, got %q", product.ID)
	}
	if len(product.Images) == 0 {
		t.Fatalf("expected at least one image")
	}

	if _, err := client.GetProductByID(ctx, "does-not-exist"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSimulatorGetProductsByCategory(t *testing.T) {
	ctx := context.Background()
	client := newTestSimulator(t, SimulatorDeps{})

	products, err := client.GetProductsByCategory(ctx, "Bedroom")
	if err != nil {
		t.Fatalf("GetProductsByCategory returned error: %v", err)
	}
	if len(products) == 0 {
		t.Fatalf("expected bedroom products")
	}
	for _, product := range products {
		if product.Category != "Bedroom" {
			t.Fatalf("expected only Bedroom products, got %q", product.Category)
		}
	}

	none, err := client.GetProductsByCategory(ctx, "Garage")
	if err != nil {
		t.Fatalf("GetProductsByCategory returned error: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no products for unknown category, got %d", len(none))
	}
}

func TestSimulatorSearchProducts(t *testing.T) {
	ctx := context.Background()
	client := newTestSimulator(t, SimulatorDeps{
		Products: []domain.Product{
			{ID: "1", Name: "Aspen Sofa", Category: "Living Room", Description: "linen covers"},
			{ID: "2", Name: "Halvor Bed", Category: "Bedroom", Description: "queen platform"},
		},
	})

	cases := []struct {
		query string
		want  []string
	}{
		{query: "SOFA", want: []string{"1"}},
		{query: "bedroom", want: []string{"2"}},
		{query: "linen", want: []string{"1"}},
		{query: "treadmill", want: nil},
	}
	for _, tc := range cases {
		products, err := client.SearchProducts(ctx, tc.query)
		if err != nil {
			t.Fatalf("SearchProducts(%q) returned error: %v", tc.query, err)
		}
		if len(products) != len(tc.want) {
			t.Fatalf("SearchProducts(%q): expected %d results, got %d", tc.query, len(tc.want), len(products))
		}
		for i, id := range tc.want {
			if products[i].ID != id {
				t.Fatalf("SearchProducts(%q): expected %s at position %d, got %s", tc.query, id, i, products[i].ID)
			}
		}
	}
}

func TestSimulatorLogin(t *testing.T) {
	ctx := context.Background()
	client := newTestSimulator(t, SimulatorDeps{
		TokenIssuer: func(user domain.User) (string, error) {
			return "token-for-" + user.ID, nil
		},
	})

	if _, err := client.Login(ctx, "", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty email, got %v", err)
	}
	if _, err := client.Login(ctx, "jane@example.com", " "); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for blank password, got %v", err)
	}

	creds, err := client.Login(ctx, "jane@example.com", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if creds.User.ID != "1" || creds.User.Name != "John Doe" {
		t.Fatalf("unexpected canned user: %+v", creds.User)
	}
	if creds.User.Email != "jane@example.com" {
		t.Fatalf("expected echoed email, got %q", creds.User.Email)
	}
	if creds.Token != "token-for-1" {
		t.Fatalf("expected issued token, got %q", creds.Token)
	}
}

func TestSimulatorSignup(t *testing.T) {
	ctx := context.Background()
	client := newTestSimulator(t, SimulatorDeps{})

	if _, err := client.Signup(ctx, "", "jane@example.com", "secret"); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData for empty name, got %v", err)
	}
	if _, err := client.Signup(ctx, "Jane Roe", "", "secret"); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData for empty email, got %v", err)
	}

	creds, err := client.Signup(ctx, "Jane Roe", "jane@example.com", "secret")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if creds.User.Name != "Jane Roe" || creds.User.Email != "jane@example.com" {
		t.Fatalf("expected echoed signup details, got %+v", creds.User)
	}
}

func TestSimulatorCreateOrder(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1_700_000_012_345).UTC()
	client := newTestSimulator(t, SimulatorDeps{Clock: func() time.Time { return now }})

	order, err := client.CreateOrder(ctx, domain.OrderRequest{TotalAmount: 10_800})
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if order.OrderID != "FK-00012345" {
		t.Fatalf("expected order id FK-00012345, got %q", order.OrderID)
	}
	if !strings.HasPrefix(order.OrderID, "FK-") || len(order.OrderID) != 11 {
		t.Fatalf("order id format wrong: %q", order.OrderID)
	}
	if order.Status != "confirmed" {
		t.Fatalf("expected status confirmed, got %q", order.Status)
	}
	if want := now.Add(7 * 24 * time.Hour); !order.EstimatedDelivery.Equal(want) {
		t.Fatalf("expected delivery %v, got %v", want, order.EstimatedDelivery)
	}
}

func TestSimulatorWaitRespectsCancelledContext(t *testing.T) {
	client := NewSimulator(SimulatorDeps{LatencyScale: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := client.GetProducts(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("expected cancelled wait to return promptly, took %v", elapsed)
	}
}

func TestSimulatorResultsAreCopies(t *testing.T) {
	ctx := context.Background()
	client := newTestSimulator(t, SimulatorDeps{})

	first, err := client.GetProducts(ctx)
	if err != nil {
		t.Fatalf("GetProducts returned error: %v", err)
	}
	first[0].Name = "tampered"
	first[0].Images[0] = "tampered"

	second, err := client.GetProducts(ctx)
	if err != nil {
		t.Fatalf("GetProducts returned error: %v", err)
	}
	if second[0].Name == "tampered" || second[0].Images[0] == "tampered" {
		t.Fatalf("simulator leaked internal state")
	}
}

func TestFixturesCoverEveryCategory(t *testing.T) {
	want := map[string]bool{
		"Living Room": false,
		"Bedroom":     false,
		"Dining":      false,
		"Office":      false,
		"Outdoor":     false,
	}
	for _, product := range Fixtures() {
		if _, ok := want[product.Category]; !ok {
			t.Fatalf("unexpected category %q", product.Category)
		}
		want[product.Category] = true
		if product.Price <= 0 {
			t.Fatalf("product %s has non-positive price", product.ID)
		}
		if len(product.Images) == 0 {
			t.Fatalf("product %s has no images", product.ID)
		}
	}
	for category, seen := range want {
		if !seen {
			t.Fatalf("no products in category %q", category)
		}
	}
}
