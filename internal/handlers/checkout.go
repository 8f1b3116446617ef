package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/furnikart/api/internal/domain"
	"github.com/furnikart/api/internal/platform/httpx"
	"github.com/furnikart/api/internal/platform/session"
	"github.com/furnikart/api/internal/services"
)

const maxCheckoutBodySize = 16 * 1024

// CheckoutHandlers exposes the order placement endpoint.
type CheckoutHandlers struct {
	checkout services.CheckoutService
}

// NewCheckoutHandlers constructs handlers backed by the checkout service.
func NewCheckoutHandlers(checkout services.CheckoutService) *CheckoutHandlers {
	return &CheckoutHandlers{checkout: checkout}
}

// Routes wires the /checkout endpoint onto the provided router. Orders can
// only be placed by a logged-in session; anonymous carts must authenticate
// first.
func (h *CheckoutHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Use(session.RequireAuthenticated())
	r.Post("/", h.placeOrder)
}

type shippingPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
}

type checkoutRequest struct {
	Shipping shippingPayload `json:"shipping"`
}

type orderPayload struct {
	OrderID           string `json:"orderId"`
	Status            string `json:"status"`
	EstimatedDelivery string `json:"estimatedDelivery"`
}

type checkoutResponse struct {
	Order      orderPayload `json:"order"`
	Subtotal   int64        `json:"subtotal"`
	Tax        int64        `json:"tax"`
	Total      int64        `json:"total"`
	ItemsCount int          `json:"itemsCount"`
}

func (h *CheckoutHandlers) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.checkout == nil {
		httpx.WriteError(ctx, w, httpx.NewError("checkout_unavailable", "checkout service is unavailable", http.StatusServiceUnavailable))
		return
	}
	uid := session.UID(ctx)
	if uid == "" {
		httpx.WriteError(ctx, w, httpx.NewError("session_required", "a session is required", http.StatusUnauthorized))
		return
	}

	var req checkoutRequest
	if err := decodeJSONBody(r, maxCheckoutBodySize, &req); err != nil {
		switch {
		case errors.Is(err, errBodyTooLarge):
			httpx.WriteError(ctx, w, httpx.NewError("payload_too_large", "request body exceeds allowed size", http.StatusRequestEntityTooLarge))
		default:
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		}
		return
	}

	result, err := h.checkout.PlaceOrder(ctx, uid, services.CheckoutCommand{
		Shipping: domain.ShippingInfo{
			FirstName: req.Shipping.FirstName,
			LastName:  req.Shipping.LastName,
			Email:     req.Shipping.Email,
			Phone:     req.Shipping.Phone,
			Address:   req.Shipping.Address,
			City:      req.Shipping.City,
			State:     req.Shipping.State,
			ZipCode:   req.Shipping.ZipCode,
		},
	})
	if err != nil {
		h.writeCheckoutError(ctx, w, err)
		return
	}

	writeSessionJSONResponse(w, http.StatusCreated, checkoutResponse{
		Order: orderPayload{
			OrderID:           result.Order.OrderID,
			Status:            result.Order.Status,
			EstimatedDelivery: formatTime(result.Order.EstimatedDelivery),
		},
		Subtotal:   result.Subtotal,
		Tax:        result.Tax,
		Total:      result.GrandTotal,
		ItemsCount: result.ItemsPlaced,
	})
}

func (h *CheckoutHandlers) writeCheckoutError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCheckoutInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrCheckoutEmptyCart):
		httpx.WriteError(ctx, w, httpx.NewError("cart_empty", "cannot place an order with an empty cart", http.StatusConflict))
	case errors.Is(err, services.ErrCartInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("checkout_unavailable", "order backend is unavailable", http.StatusServiceUnavailable))
	}
}
