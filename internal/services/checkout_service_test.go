package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/furnikart/api/internal/backend"
	"github.com/furnikart/api/internal/domain"
)

func validShipping() domain.ShippingInfo {
	return domain.ShippingInfo{
		FirstName: "Jane",
		LastName:  "Roe",
		Email:     "jane@example.com",
		Phone:     "555-0100",
		Address:   "1 Elm Street",
		City:      "Springfield",
		State:     "IL",
		ZipCode:   "62704",
	}
}

func newTestCheckoutService(t *testing.T, clock func() time.Time) (CheckoutService, CartService) {
	t.Helper()
	carts := newTestCartService(t)
	client := backend.NewSimulator(backend.SimulatorDeps{
		Clock:           clock,
		LatencyScaleSet: true,
	})
	svc, err := NewCheckoutService(CheckoutServiceDeps{Backend: client, Cart: carts})
	if err != nil {
		t.Fatalf("NewCheckoutService returned error: %v", err)
	}
	return svc, carts
}

func TestCheckoutPlaceOrderAppliesTaxAndClearsCart(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1_700_000_012_345).UTC()
	svc, carts := newTestCheckoutService(t, func() time.Time { return now })

	addTestItem(t, carts, "session-1", "A", 7_500)
	addTestItem(t, carts, "session-1", "B", 2_500)

	result, err := svc.PlaceOrder(ctx, "session-1", CheckoutCommand{Shipping: validShipping()})
	if err != nil {
		t.Fatalf("PlaceOrder returned error: %v", err)
	}

	if result.Subtotal != 10_000 {
		t.Fatalf("expected subtotal 10000, got %d", result.Subtotal)
	}
	if result.Tax != 800 {
		t.Fatalf("expected tax 800, got %d", result.Tax)
	}
	if result.GrandTotal != 10_800 {
		t.Fatalf("expected grand total 10800, got %d", result.GrandTotal)
	}
	if result.ItemsPlaced != 2 {
		t.Fatalf("expected 2 items placed, got %d", result.ItemsPlaced)
	}

	if result.Order.OrderID != "FK-00012345" {
		t.Fatalf("expected order id FK-00012345, got %q", result.Order.OrderID)
	}
	if result.Order.Status != "confirmed" {
		t.Fatalf("expected status confirmed, got %q", result.Order.Status)
	}
	if want := now.Add(7 * 24 * time.Hour); !result.Order.EstimatedDelivery.Equal(want) {
		t.Fatalf("expected delivery %v, got %v", want, result.Order.EstimatedDelivery)
	}

	cart, err := carts.Cart(ctx, "session-1")
	if err != nil {
		t.Fatalf("Cart returned error: %v", err)
	}
	if len(cart.Items) != 0 || cart.TotalAmount != 0 || cart.TotalQuantity != 0 {
		t.Fatalf("expected cart cleared after checkout, got %+v", cart)
	}
}

func TestCheckoutPlaceOrderEmptyCart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCheckoutService(t, time.Now)

	_, err := svc.PlaceOrder(ctx, "session-1", CheckoutCommand{Shipping: validShipping()})
	if !errors.Is(err, ErrCheckoutEmptyCart) {
		t.Fatalf("expected ErrCheckoutEmptyCart, got %v", err)
	}
}

func TestCheckoutPlaceOrderValidatesShipping(t *testing.T) {
	ctx := context.Background()
	svc, carts := newTestCheckoutService(t, time.Now)
	addTestItem(t, carts, "session-1", "A", 7_500)

	shipping := validShipping()
	shipping.ZipCode = "  "
	_, err := svc.PlaceOrder(ctx, "session-1", CheckoutCommand{Shipping: shipping})
	if !errors.Is(err, ErrCheckoutInvalidInput) {
		t.Fatalf("expected ErrCheckoutInvalidInput, got %v", err)
	}

	cart, err := carts.Cart(ctx, "session-1")
	if err != nil {
		t.Fatalf("Cart returned error: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected cart untouched after rejected checkout, got %+v", cart)
	}
}

func TestCheckoutPlaceOrderBackendFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	carts := newTestCartService(t)
	failing := &stubBackend{
		createOrder: func(context.Context, domain.OrderRequest) (domain.Order, error) {
			return domain.Order{}, errors.New("boom")
		},
	}
	svc, err := NewCheckoutService(CheckoutServiceDeps{Backend: failing, Cart: carts})
	if err != nil {
		t.Fatalf("NewCheckoutService returned error: %v", err)
	}
	addTestItem(t, carts, "session-1", "A", 7_500)

	if _, err := svc.PlaceOrder(ctx, "session-1", CheckoutCommand{Shipping: validShipping()}); !errors.Is(err, ErrCheckoutUnavailable) {
		t.Fatalf("expected ErrCheckoutUnavailable, got %v", err)
	}

	cart, err := carts.Cart(ctx, "session-1")
	if err != nil {
		t.Fatalf("Cart returned error: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected cart preserved after backend failure, got %+v", cart)
	}
}
