package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jengamart/storefront/internal/backend"
	"github.com/jengamart/storefront/internal/domain"
	"github.com/jengamart/storefront/pkg/pagination"
)

// CatalogAPI is the slice of the backend client the catalog handler needs.
type CatalogAPI interface {
	ListProducts(ctx context.Context, q backend.ProductQuery) (*backend.ProductPage, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CatalogHandler proxies catalog browsing to the backend API.
type CatalogHandler struct {
	api    CatalogAPI
	logger *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(api CatalogAPI, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		api:    api,
		logger: logger,
	}
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)
	q := backend.ProductQuery{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Brand:    r.URL.Query().Get("brand"),
		Page:     params.Page,
		PerPage:  params.PerPage,
	}

	page, err := h.api.ListProducts(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: page})
}

// GetProduct handles GET /api/v1/products/{productID}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	product, err := h.api.GetProduct(r.Context(), productID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: product})
}

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.api.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: categories})
}
