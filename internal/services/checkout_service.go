package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/furnikart/api/internal/backend"
	"github.com/furnikart/api/internal/domain"
)

var (
	errCheckoutBackendRequired = errors.New("checkout service: backend is required")
	errCheckoutCartRequired    = errors.New("checkout service: cart service is required")
)

// ErrCheckoutInvalidInput indicates the shipping details are incomplete.
var ErrCheckoutInvalidInput = errors.New("checkout service: invalid input")

// ErrCheckoutEmptyCart indicates there is nothing to order.
var ErrCheckoutEmptyCart = errors.New("checkout service: cart is empty")

// ErrCheckoutUnavailable indicates the order backend could not be reached.
var ErrCheckoutUnavailable = errors.New("checkout service: unavailable")

// Tax is applied at a flat 8% on the cart subtotal, rounded down to the cent.
const taxRatePercent = 8

// CheckoutServiceDeps wires the backend and cart dependencies.
type CheckoutServiceDeps struct {
	Backend backend.Client
	Cart    CartService
	Logger  func(context.Context, string, map[string]any)
}

type checkoutService struct {
	backend backend.Client
	cart    CartService
	logger  func(context.Context, string, map[string]any)
}

// NewCheckoutService constructs a CheckoutService enforcing dependency validation.
func NewCheckoutService(deps CheckoutServiceDeps) (CheckoutService, error) {
	if deps.Backend == nil {
		return nil, errCheckoutBackendRequired
	}
	if deps.Cart == nil {
		return nil, errCheckoutCartRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &checkoutService{
		backend: deps.Backend,
		cart:    deps.Cart,
		logger:  logger,
	}, nil
}

// PlaceOrder submits the session's cart with 8% tax on top and clears the
// cart once the backend confirms. The cart may have changed while the backend
// call was in flight, so the clear only happens if it still holds items.
func (s *checkoutService) PlaceOrder(ctx context.Context, uid string, cmd CheckoutCommand) (CheckoutResult, error) {
	if err := validateShipping(cmd.Shipping); err != nil {
		return CheckoutResult{}, err
	}

	cart, err := s.cart.Cart(ctx, uid)
	if err != nil {
		return CheckoutResult{}, err
	}
	if len(cart.Items) == 0 {
		return CheckoutResult{}, ErrCheckoutEmptyCart
	}

	subtotal := cart.TotalAmount
	tax := subtotal * taxRatePercent / 100
	grandTotal := subtotal + tax

	order, err := s.backend.CreateOrder(ctx, domain.OrderRequest{
		Items:       cart.Items,
		Shipping:    cmd.Shipping,
		TotalAmount: grandTotal,
	})
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("%w: %v", ErrCheckoutUnavailable, err)
	}

	current, err := s.cart.Cart(ctx, uid)
	if err == nil && len(current.Items) > 0 {
		if _, err := s.cart.ClearCart(ctx, uid); err != nil {
			s.logger(ctx, "checkout.clear_cart_failed", map[string]any{"error": err.Error()})
		}
	}

	s.logger(ctx, "checkout.order_placed", map[string]any{
		"order_id":    order.OrderID,
		"grand_total": grandTotal,
	})
	return CheckoutResult{
		Order:       order,
		Subtotal:    subtotal,
		Tax:         tax,
		GrandTotal:  grandTotal,
		ItemsPlaced: cart.TotalQuantity,
	}, nil
}

func validateShipping(info domain.ShippingInfo) error {
	fields := map[string]string{
		"firstName": info.FirstName,
		"lastName":  info.LastName,
		"email":     info.Email,
		"phone":     info.Phone,
		"address":   info.Address,
		"city":      info.City,
		"state":     info.State,
		"zipCode":   info.ZipCode,
	}
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", ErrCheckoutInvalidInput, name)
		}
	}
	return nil
}
