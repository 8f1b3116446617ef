package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/furnikart/api/internal/backend"
	"github.com/furnikart/api/internal/domain"
)

var errCatalogBackendRequired = errors.New("catalog service: backend is required")

// ErrCatalogUnavailable indicates the backend could not serve the catalog.
var ErrCatalogUnavailable = errors.New("catalog service: unavailable")

// ErrCatalogNotFound indicates the requested product does not exist.
var ErrCatalogNotFound = errors.New("catalog service: not found")

// CategoryAll is the pseudo-category matching every product.
const CategoryAll = "All"

// CatalogServiceDeps wires the backend and presentation dependencies.
type CatalogServiceDeps struct {
	Backend backend.Client
	// Locale selects the collation used for name ordering. Defaults to "en".
	Locale string
	Logger func(context.Context, string, map[string]any)
}

type catalogService struct {
	backend  backend.Client
	sanitize *bluemonday.Policy
	logger   func(context.Context, string, map[string]any)

	mu               sync.Mutex
	collator         *collate.Collator
	products         []domain.Product
	categories       []string
	selectedCategory string
	searchQuery      string
}

// NewCatalogService constructs a CatalogService enforcing dependency validation.
func NewCatalogService(deps CatalogServiceDeps) (CatalogService, error) {
	if deps.Backend == nil {
		return nil, errCatalogBackendRequired
	}

	locale := strings.TrimSpace(deps.Locale)
	if locale == "" {
		locale = "en"
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("catalog service: parse locale %q: %w", locale, err)
	}

	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	return &catalogService{
		backend:          deps.Backend,
		sanitize:         bluemonday.StrictPolicy(),
		logger:           logger,
		collator:         collate.New(tag, collate.IgnoreCase),
		products:         []domain.Product{},
		categories:       []string{},
		selectedCategory: CategoryAll,
	}, nil
}

// LoadProducts refreshes the full catalog from the backend.
func (s *catalogService) LoadProducts(ctx context.Context) (CatalogState, error) {
	products, err := s.backend.GetProducts(ctx)
	if err != nil {
		return CatalogState{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	products = s.cleanProducts(products)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.categories = deriveCategories(products)
	s.logger(ctx, "catalog.loaded", map[string]any{"count": len(products)})
	return s.stateLocked(), nil
}

// LoadProductsByCategory replaces the working set with the backend's view of
// one category and selects it.
func (s *catalogService) LoadProductsByCategory(ctx context.Context, category string) (CatalogState, error) {
	category = strings.TrimSpace(category)
	if category == "" || category == CategoryAll {
		return s.LoadProducts(ctx)
	}

	products, err := s.backend.GetProductsByCategory(ctx, category)
	if err != nil {
		return CatalogState{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	products = s.cleanProducts(products)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.categories = deriveCategories(products)
	s.selectedCategory = category
	return s.stateLocked(), nil
}

// SearchProducts replaces the working set with the backend's search result and
// records the query.
func (s *catalogService) SearchProducts(ctx context.Context, query string) (CatalogState, error) {
	products, err := s.backend.SearchProducts(ctx, query)
	if err != nil {
		return CatalogState{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	products = s.cleanProducts(products)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.categories = deriveCategories(products)
	s.searchQuery = strings.TrimSpace(query)
	return s.stateLocked(), nil
}

// Product looks up a single product by id without touching the view state.
func (s *catalogService) Product(ctx context.Context, id string) (domain.Product, error) {
	product, err := s.backend.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return domain.Product{}, fmt.Errorf("%w: product %s", ErrCatalogNotFound, strings.TrimSpace(id))
		}
		return domain.Product{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	product.Description = s.sanitize.Sanitize(product.Description)
	return product, nil
}

// SetSelectedCategory updates the view state without a backend round trip.
func (s *catalogService) SetSelectedCategory(ctx context.Context, category string) CatalogState {
	category = strings.TrimSpace(category)
	if category == "" {
		category = CategoryAll
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedCategory = category
	return s.stateLocked()
}

// SetSearchQuery updates the view state without a backend round trip.
func (s *catalogService) SetSearchQuery(ctx context.Context, query string) CatalogState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = strings.TrimSpace(query)
	return s.stateLocked()
}

// State returns a snapshot of the catalog store.
func (s *catalogService) State(ctx context.Context) CatalogState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// FilteredAndSorted narrows the working set by category, a case-insensitive
// substring match on the product name, and price range, then orders it. Filters commute, so the narrowing order never changes
// the result. Sorting is stable: products equal under the key keep their
// catalog order. An unknown price range applies no price filter and an
// unknown sort key falls back to the name ordering.
func (s *catalogService) FilteredAndSorted(ctx context.Context, query CatalogQuery) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	category := strings.TrimSpace(query.Category)
	search := strings.ToLower(strings.TrimSpace(query.Search))

	matches := make([]domain.Product, 0, len(s.products))
	for _, product := range s.products {
		if category != "" && category != CategoryAll && product.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(product.Name), search) {
			continue
		}
		if !priceRangeContains(query.PriceRange, product.Price) {
			continue
		}
		matches = append(matches, product)
	}

	switch query.SortBy {
	case domain.SortByPriceLow:
		sort.SliceStable(matches, func(i, j int) bool { return matches[i].Price < matches[j].Price })
	case domain.SortByPriceHigh:
		sort.SliceStable(matches, func(i, j int) bool { return matches[i].Price > matches[j].Price })
	case domain.SortByRating:
		sort.SliceStable(matches, func(i, j int) bool { return matches[i].Rating > matches[j].Rating })
	default:
		sort.SliceStable(matches, func(i, j int) bool {
			return s.collator.CompareString(matches[i].Name, matches[j].Name) < 0
		})
	}
	return matches
}

func (s *catalogService) stateLocked() CatalogState {
	products := make([]domain.Product, len(s.products))
	copy(products, s.products)
	categories := make([]string, len(s.categories))
	copy(categories, s.categories)
	return CatalogState{
		Products:         products,
		Categories:       categories,
		SelectedCategory: s.selectedCategory,
		SearchQuery:      s.searchQuery,
	}
}

func (s *catalogService) cleanProducts(products []domain.Product) []domain.Product {
	cleaned := make([]domain.Product, len(products))
	copy(cleaned, products)
	for i := range cleaned {
		cleaned[i].Description = s.sanitize.Sanitize(cleaned[i].Description)
	}
	return cleaned
}

// deriveCategories lists the distinct categories in first-seen order. The
// pseudo-category matching everything is a presentation concern and never
// enters the stored set.
func deriveCategories(products []domain.Product) []string {
	categories := make([]string, 0, len(products))
	seen := make(map[string]struct{}, len(products))
	for _, product := range products {
		if _, ok := seen[product.Category]; ok {
			continue
		}
		seen[product.Category] = struct{}{}
		categories = append(categories, product.Category)
	}
	return categories
}

func priceRangeContains(r domain.PriceRange, price int64) bool {
	switch r {
	case domain.PriceRangeUnder500:
		return price < 50_000
	case domain.PriceRange500To1000:
		return price >= 50_000 && price <= 100_000
	case domain.PriceRangeOver1000:
		return price > 100_000
	default:
		return true
	}
}
