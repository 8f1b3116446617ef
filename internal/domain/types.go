package domain

import (
	"time"
)

// Product is a catalog entry. Products are immutable once loaded: the catalog
// replaces them wholesale and never mutates an individual entry.
type Product struct {
	ID          string
	Name        string
	Price       int64
	Image       string
	Category    string
	Description string
	Rating      float64
	InStock     bool
	Images      []string
}

// CartItem is a cart line aggregating one product id with a quantity. Price is
// snapshotted when the product is first added and never refreshed afterwards.
type CartItem struct {
	ID       string
	Name     string
	Price    int64
	Image    string
	Category string
	Quantity int
}

// Cart holds the line items for one session together with the running totals.
// TotalAmount and TotalQuantity are maintained incrementally on every
// operation rather than recomputed from the item list.
type Cart struct {
	Items         []CartItem
	TotalAmount   int64
	TotalQuantity int
}

// User identifies an authenticated shopper.
type User struct {
	ID    string
	Name  string
	Email string
}

// AuthState is the per-session authentication state: either anonymous
// (User nil) or authenticated with the stored user.
type AuthState struct {
	User          *User
	Authenticated bool
}

// PriceRange buckets products by price for list filtering. Monetary values
// are minor units (cents), so the bucket boundaries sit at $500 and $1000.
type PriceRange string

const (
	// PriceRangeAll applies no price filter.
	PriceRangeAll PriceRange = "all"
	// PriceRangeUnder500 matches products priced below $500.
	PriceRangeUnder500 PriceRange = "under-500"
	// PriceRange500To1000 matches products priced between $500 and $1000 inclusive.
	PriceRange500To1000 PriceRange = "500-1000"
	// PriceRangeOver1000 matches products priced above $1000.
	PriceRangeOver1000 PriceRange = "over-1000"
)

// Valid reports whether the range is one of the defined buckets.
func (r PriceRange) Valid() bool {
	switch r {
	case PriceRangeAll, PriceRangeUnder500, PriceRange500To1000, PriceRangeOver1000:
		return true
	}
	return false
}

// SortKey orders product listings.
type SortKey string

const (
	// SortByName orders by product name ascending with locale-aware collation.
	SortByName SortKey = "name"
	// SortByPriceLow orders by price ascending.
	SortByPriceLow SortKey = "price-low"
	// SortByPriceHigh orders by price descending.
	SortByPriceHigh SortKey = "price-high"
	// SortByRating orders by rating descending.
	SortByRating SortKey = "rating"
)

// Valid reports whether the key is one of the defined orderings.
func (k SortKey) Valid() bool {
	switch k {
	case SortByName, SortByPriceLow, SortByPriceHigh, SortByRating:
		return true
	}
	return false
}

// ShippingInfo is the delivery snapshot collected at checkout.
type ShippingInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string
}

// OrderRequest is the payload submitted to the order backend.
type OrderRequest struct {
	Items       []CartItem
	Shipping    ShippingInfo
	TotalAmount int64
}

// Order is the confirmation returned by the order backend. OrderID follows
// the FK- prefixed eight-digit format.
type Order struct {
	OrderID           string
	Status            string
	EstimatedDelivery time.Time
}
