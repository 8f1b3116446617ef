package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/furnikart/api/internal/domain"
	"github.com/furnikart/api/internal/platform/httpx"
	"github.com/furnikart/api/internal/services"
)

// ProductHandlers exposes the catalog read endpoints.
type ProductHandlers struct {
	catalog services.CatalogService
}

// NewProductHandlers constructs handlers backed by the catalog service.
func NewProductHandlers(catalog services.CatalogService) *ProductHandlers {
	return &ProductHandlers{catalog: catalog}
}

// Routes wires the /products endpoints onto the provided router.
func (h *ProductHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.listProducts)
	r.Get("/{productID}", h.getProduct)
}

// CategoryRoutes wires the /categories endpoint onto the provided router.
func (h *ProductHandlers) CategoryRoutes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.listCategories)
}

type productListResponse struct {
	Products []productPayload `json:"products"`
	Count    int              `json:"count"`
}

type categoryListResponse struct {
	Categories       []string `json:"categories"`
	SelectedCategory string   `json:"selectedCategory"`
}

func (h *ProductHandlers) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog service is unavailable", http.StatusServiceUnavailable))
		return
	}

	category := strings.TrimSpace(r.URL.Query().Get("category"))
	search := strings.TrimSpace(r.URL.Query().Get("q"))

	searched, err := h.refresh(ctx, category, search)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog backend is unavailable", http.StatusServiceUnavailable))
		return
	}

	query := services.CatalogQuery{
		Category:   category,
		Search:     search,
		PriceRange: domain.PriceRange(strings.TrimSpace(r.URL.Query().Get("price"))),
		SortBy:     domain.SortKey(strings.TrimSpace(r.URL.Query().Get("sort"))),
	}
	// The backend search already narrowed the working set, over name,
	// description and category. The name-only filter must not re-apply and
	// drop its description and category matches.
	if searched {
		query.Search = ""
	}

	products := h.catalog.FilteredAndSorted(ctx, query)

	writeJSONResponse(w, http.StatusOK, productListResponse{
		Products: buildProductListPayload(products),
		Count:    len(products),
	})
}

// refresh pulls the working set matching the request from the backend: a
// category or search request always round-trips, a plain listing only when
// nothing has been loaded yet. It reports whether the backend search produced
// the working set.
func (h *ProductHandlers) refresh(ctx context.Context, category, search string) (bool, error) {
	switch {
	case category != "" && category != services.CategoryAll:
		_, err := h.catalog.LoadProductsByCategory(ctx, category)
		return false, err
	case search != "":
		_, err := h.catalog.SearchProducts(ctx, search)
		return true, err
	default:
		if len(h.catalog.State(ctx).Products) > 0 {
			h.catalog.SetSelectedCategory(ctx, services.CategoryAll)
			return false, nil
		}
		_, err := h.catalog.LoadProducts(ctx)
		return false, err
	}
}

func (h *ProductHandlers) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog service is unavailable", http.StatusServiceUnavailable))
		return
	}

	productID := strings.TrimSpace(chi.URLParam(r, "productID"))
	product, err := h.catalog.Product(ctx, productID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCatalogNotFound):
			httpx.WriteError(ctx, w, httpx.NewError("product_not_found", "product "+productID+" not found", http.StatusNotFound))
		default:
			httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog backend is unavailable", http.StatusServiceUnavailable))
		}
		return
	}

	writeJSONResponse(w, http.StatusOK, buildProductPayload(product))
}

func (h *ProductHandlers) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog service is unavailable", http.StatusServiceUnavailable))
		return
	}

	state := h.catalog.State(ctx)
	if len(state.Products) == 0 {
		loaded, err := h.catalog.LoadProducts(ctx)
		if err != nil {
			httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog backend is unavailable", http.StatusServiceUnavailable))
			return
		}
		state = loaded
	}

	// The catch-all entry is a presentation affordance; the store keeps only
	// the derived categories.
	categories := append([]string{services.CategoryAll}, state.Categories...)

	writeJSONResponse(w, http.StatusOK, categoryListResponse{
		Categories:       categories,
		SelectedCategory: state.SelectedCategory,
	})
}
