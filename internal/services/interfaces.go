package services

import (
	"context"

	"github.com/furnikart/api/internal/domain"
)

// CatalogQuery narrows the catalog view before sorting.
type CatalogQuery struct {
	Category   string
	Search     string
	PriceRange domain.PriceRange
	SortBy     domain.SortKey
}

// CatalogState is a snapshot of the catalog store.
type CatalogState struct {
	Products         []domain.Product
	Categories       []string
	SelectedCategory string
	SearchQuery      string
}

// CatalogService owns the product catalog and its view state.
type CatalogService interface {
	LoadProducts(ctx context.Context) (CatalogState, error)
	LoadProductsByCategory(ctx context.Context, category string) (CatalogState, error)
	SearchProducts(ctx context.Context, query string) (CatalogState, error)
	Product(ctx context.Context, id string) (domain.Product, error)
	SetSelectedCategory(ctx context.Context, category string) CatalogState
	SetSearchQuery(ctx context.Context, query string) CatalogState
	State(ctx context.Context) CatalogState
	FilteredAndSorted(ctx context.Context, query CatalogQuery) []domain.Product
}

// AddItemCommand carries the full item payload so the cart never needs a
// catalog lookup to admit a line.
type AddItemCommand struct {
	ID       string
	Name     string
	Price    int64
	Image    string
	Category string
}

// CartService owns one cart per session and keeps its running totals.
type CartService interface {
	Cart(ctx context.Context, uid string) (domain.Cart, error)
	AddItem(ctx context.Context, uid string, cmd AddItemCommand) (domain.Cart, error)
	RemoveItem(ctx context.Context, uid, itemID string) (domain.Cart, error)
	UpdateQuantity(ctx context.Context, uid, itemID string, quantity int) (domain.Cart, error)
	ClearCart(ctx context.Context, uid string) (domain.Cart, error)
}

// LoginCommand carries login credentials.
type LoginCommand struct {
	Email    string
	Password string
}

// SignupCommand carries registration details.
type SignupCommand struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is the authenticated state plus the minted session token.
type AuthResult struct {
	State domain.AuthState
	Token string
}

// AuthService tracks per-session authentication state against the backend.
type AuthService interface {
	Login(ctx context.Context, uid string, cmd LoginCommand) (AuthResult, error)
	Signup(ctx context.Context, uid string, cmd SignupCommand) (AuthResult, error)
	Logout(ctx context.Context, uid string) domain.AuthState
	State(ctx context.Context, uid string) domain.AuthState
}

// CheckoutCommand carries the shipping details for order placement.
type CheckoutCommand struct {
	Shipping domain.ShippingInfo
}

// CheckoutResult pairs the confirmed order with the totals it was placed at.
type CheckoutResult struct {
	Order       domain.Order
	Subtotal    int64
	Tax         int64
	GrandTotal  int64
	ItemsPlaced int
}

// CheckoutService places orders from the session's cart and clears it on success.
type CheckoutService interface {
	PlaceOrder(ctx context.Context, uid string, cmd CheckoutCommand) (CheckoutResult, error)
}
