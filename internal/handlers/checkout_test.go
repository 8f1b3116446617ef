package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/furnikart/api/internal/backend"
	"github.com/furnikart/api/internal/platform/session"
	"github.com/furnikart/api/internal/services"
)

func withLoginIdentity(uid string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := session.WithIdentity(r.Context(), &session.Identity{UID: uid})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newCheckoutTestRouter(t *testing.T) (chi.Router, services.CartService) {
	t.Helper()
	carts, err := services.NewCartService(services.CartServiceDeps{})
	if err != nil {
		t.Fatalf("NewCartService returned error: %v", err)
	}
	now := time.UnixMilli(1_700_000_012_345).UTC()
	client := backend.NewSimulator(backend.SimulatorDeps{
		Clock:           func() time.Time { return now },
		LatencyScaleSet: true,
	})
	checkout, err := services.NewCheckoutService(services.CheckoutServiceDeps{Backend: client, Cart: carts})
	if err != nil {
		t.Fatalf("NewCheckoutService returned error: %v", err)
	}
	router := NewRouter(
		WithMiddlewares(withLoginIdentity("1")),
		WithCartRoutes(NewCartHandlers(carts).Routes),
		WithCheckoutRoutes(NewCheckoutHandlers(checkout).Routes),
	)
	return router, carts
}

const checkoutBody = `{
	"shipping": {
		"firstName": "Jane",
		"lastName": "Roe",
		"email": "jane@example.com",
		"phone": "555-0100",
		"address": "1 Elm Street",
		"city": "Springfield",
		"state": "IL",
		"zipCode": "62704"
	}
}`

func TestCheckoutHandlersPlaceOrder(t *testing.T) {
	router, _ := newCheckoutTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"id":"1","name":"Aspen Sofa","price":10000}`)))
	if rr.Code != http.StatusOK {
		t.Fatalf("seed add failed: %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(checkoutBody)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp checkoutResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Subtotal != 10_000 || resp.Tax != 800 || resp.Total != 10_800 {
		t.Fatalf("unexpected totals: %+v", resp)
	}
	if resp.Order.OrderID != "FK-00012345" || resp.Order.Status != "confirmed" {
		t.Fatalf("unexpected order payload: %+v", resp.Order)
	}
	if resp.Order.EstimatedDelivery == "" {
		t.Fatalf("expected estimated delivery timestamp")
	}

	// The cart is cleared once the order is confirmed.
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	cart := decodeCartResponse(t, rr.Body.Bytes())
	if len(cart.Items) != 0 || cart.TotalQuantity != 0 {
		t.Fatalf("expected cleared cart after checkout, got %+v", cart)
	}
}

func TestCheckoutHandlersRejectAnonymousSession(t *testing.T) {
	carts, err := services.NewCartService(services.CartServiceDeps{})
	if err != nil {
		t.Fatalf("NewCartService returned error: %v", err)
	}
	client := backend.NewSimulator(backend.SimulatorDeps{LatencyScaleSet: true})
	checkout, err := services.NewCheckoutService(services.CheckoutServiceDeps{Backend: client, Cart: carts})
	if err != nil {
		t.Fatalf("NewCheckoutService returned error: %v", err)
	}
	router := NewRouter(
		WithMiddlewares(withTestIdentity("anon-visitor")),
		WithCheckoutRoutes(NewCheckoutHandlers(checkout).Routes),
	)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(checkoutBody)))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for anonymous checkout, got %d", rr.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	if body.Error != "unauthenticated" {
		t.Fatalf("expected unauthenticated, got %q", body.Error)
	}
}

func TestCheckoutHandlersEmptyCart(t *testing.T) {
	router, _ := newCheckoutTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(checkoutBody)))
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected status 409 for empty cart, got %d", rr.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	if body.Error != "cart_empty" {
		t.Fatalf("expected cart_empty, got %q", body.Error)
	}
}

func TestCheckoutHandlersMissingShippingField(t *testing.T) {
	router, carts := newCheckoutTestRouter(t)
	if _, err := carts.AddItem(context.Background(), "1", services.AddItemCommand{ID: "1", Price: 10_000}); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}

	body := `{"shipping":{"firstName":"Jane"}}`
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}
