// Package backend simulates the storefront's remote API: every call waits a
// canned latency and answers from bundled data. Nothing is persisted across
// calls beyond echoing input back in the response.
package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/furnikart/api/internal/domain"
)

var (
	// ErrInvalidCredentials indicates a login attempt with an empty email or password.
	ErrInvalidCredentials = errors.New("backend: invalid credentials")
	// ErrInvalidData indicates a signup attempt with a missing required field.
	ErrInvalidData = errors.New("backend: invalid data")
	// ErrNotFound indicates a product lookup miss.
	ErrNotFound = errors.New("backend: not found")
)

// Simulated latencies mirror the production API's observed response times.
const (
	latencyGetProducts           = 500 * time.Millisecond
	latencyGetProductByID        = 300 * time.Millisecond
	latencyGetProductsByCategory = 400 * time.Millisecond
	latencySearchProducts        = 600 * time.Millisecond
	latencyLogin                 = 1000 * time.Millisecond
	latencySignup                = 1200 * time.Millisecond
	latencyCreateOrder           = 2000 * time.Millisecond

	orderIDPrefix        = "FK-"
	orderStatusConfirmed = "confirmed"
	deliveryWindow       = 7 * 24 * time.Hour
)

// Credentials is the canned authentication response: the resolved user plus
// a signed session token.
type Credentials struct {
	User  domain.User
	Token string
}

// Client is the backend contract consumed by the services. All operations
// respect context cancellation while waiting out their simulated latency.
type Client interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
	Login(ctx context.Context, email, password string) (Credentials, error)
	Signup(ctx context.Context, name, email, password string) (Credentials, error)
	CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.Order, error)
}

// SimulatorDeps wires the inputs for the simulated backend.
type SimulatorDeps struct {
	// Products overrides the bundled catalog; nil keeps the fixtures.
	Products []domain.Product
	// TokenIssuer mints session tokens for login/signup responses.
	TokenIssuer func(domain.User) (string, error)
	Clock       func() time.Time
	// LatencyScale multiplies every canned latency. Zero disables waiting.
	LatencyScale float64
	// LatencyScaleSet distinguishes an explicit zero from the unset default.
	LatencyScaleSet bool
}

type simulator struct {
	products []domain.Product
	issue    func(domain.User) (string, error)
	now      func() time.Time
	scale    float64
}

// NewSimulator constructs the simulated backend client.
func NewSimulator(deps SimulatorDeps) Client {
	products := deps.Products
	if products == nil {
		products = Fixtures()
	}
	issue := deps.TokenIssuer
	if issue == nil {
		issue = func(domain.User) (string, error) { return "dummy-jwt-token", nil }
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	scale := deps.LatencyScale
	if !deps.LatencyScaleSet && scale == 0 {
		scale = 1
	}
	if scale < 0 {
		scale = 0
	}
	return &simulator{
		products: cloneProducts(products),
		issue:    issue,
		now:      func() time.Time { return clock().UTC() },
		scale:    scale,
	}
}

func (s *simulator) GetProducts(ctx context.Context) ([]domain.Product, error) {
	if err := s.wait(ctx, latencyGetProducts); err != nil {
		return nil, err
	}
	return cloneProducts(s.products), nil
}

func (s *simulator) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	if err := s.wait(ctx, latencyGetProductByID); err != nil {
		return domain.Product{}, err
	}
	id = strings.TrimSpace(id)
	for _, product := range s.products {
		if product.ID == id {
			return cloneProduct(product), nil
		}
	}
	return domain.Product{}, fmt.Errorf("%w: product %s", ErrNotFound, id)
}

func (s *simulator) GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	if err := s.wait(ctx, latencyGetProductsByCategory); err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	matches := make([]domain.Product, 0)
	for _, product := range s.products {
		if product.Category == category {
			matches = append(matches, cloneProduct(product))
		}
	}
	return matches, nil
}

func (s *simulator) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	if err := s.wait(ctx, latencySearchProducts); err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	matches := make([]domain.Product, 0)
	for _, product := range s.products {
		if strings.Contains(strings.ToLower(product.Name), needle) ||
			strings.Contains(strings.ToLower(product.Description), needle) ||
			strings.Contains(strings.ToLower(product.Category), needle) {
			matches = append(matches, cloneProduct(product))
		}
	}
	return matches, nil
}

func (s *simulator) Login(ctx context.Context, email, password string) (Credentials, error) {
	if err := s.wait(ctx, latencyLogin); err != nil {
		return Credentials{}, err
	}
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return Credentials{}, ErrInvalidCredentials
	}
	user := domain.User{
		ID:    "1",
		Name:  "John Doe",
		Email: email,
	}
	token, err := s.issue(user)
	if err != nil {
		return Credentials{}, fmt.Errorf("backend: issue token: %w", err)
	}
	return Credentials{User: user, Token: token}, nil
}

func (s *simulator) Signup(ctx context.Context, name, email, password string) (Credentials, error) {
	if err := s.wait(ctx, latencySignup); err != nil {
		return Credentials{}, err
	}
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		return Credentials{}, ErrInvalidData
	}
	user := domain.User{
		ID:    "1",
		Name:  name,
		Email: email,
	}
	token, err := s.issue(user)
	if err != nil {
		return Credentials{}, fmt.Errorf("backend: issue token: %w", err)
	}
	return Credentials{User: user, Token: token}, nil
}

func (s *simulator) CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.Order, error) {
	if err := s.wait(ctx, latencyCreateOrder); err != nil {
		return domain.Order{}, err
	}
	now := s.now()
	return domain.Order{
		OrderID:           fmt.Sprintf("%s%08d", orderIDPrefix, now.UnixMilli()%100_000_000),
		Status:            orderStatusConfirmed,
		EstimatedDelivery: now.Add(deliveryWindow),
	}, nil
}

// wait blocks for the scaled latency or until the context is cancelled.
func (s *simulator) wait(ctx context.Context, latency time.Duration) error {
	scaled := time.Duration(float64(latency) * s.scale)
	if scaled <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(scaled)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func cloneProducts(products []domain.Product) []domain.Product {
	if len(products) == 0 {
		return []domain.Product{}
	}
	dup := make([]domain.Product, len(products))
	copy(dup, products)
	for i := range dup {
		dup[i] = cloneProduct(dup[i])
	}
	return dup
}

func cloneProduct(product domain.Product) domain.Product {
	if len(product.Images) > 0 {
		images := make([]string, len(product.Images))
		copy(images, product.Images)
		product.Images = images
	}
	return product
}
