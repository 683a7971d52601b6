package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jengamart/storefront/internal/domain"
	"github.com/jengamart/storefront/internal/store"
	"github.com/jengamart/storefront/pkg/validator"
)

// ProductFetcher resolves a product ID into the full catalog snapshot
// embedded in wishlist entries.
type ProductFetcher interface {
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
}

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	store   *store.WishlistStore
	catalog ProductFetcher
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(s *store.WishlistStore, catalog ProductFetcher, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		store:   s,
		catalog: catalog,
		logger:  logger,
	}
}

// AddRequest is the JSON request body for saving a product.
type AddRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Notes     string `json:"notes" validate:"max=500"`
}

// List handles GET /api/v1/wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	wl := h.store.List(r.Context(), userID)
	writeJSON(w, http.StatusOK, response{Data: wl})
}

// Add handles POST /api/v1/wishlist
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w, err)
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	// The wishlist embeds a product snapshot, so resolve it first.
	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item := h.store.Add(r.Context(), userID, *product, req.Notes)
	writeJSON(w, http.StatusCreated, response{Data: item})
}

// Contains handles GET /api/v1/wishlist/products/{productID}
func (h *WishlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	productID := chi.URLParam(r, "productID")

	result := struct {
		InWishlist bool `json:"in_wishlist"`
	}{InWishlist: h.store.Contains(r.Context(), userID, productID)}

	writeJSON(w, http.StatusOK, response{Data: result})
}

// RemoveByProduct handles DELETE /api/v1/wishlist/products/{productID}
func (h *WishlistHandler) RemoveByProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	productID := chi.URLParam(r, "productID")
	h.store.RemoveByProduct(r.Context(), userID, productID)

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"status": "removed"}})
}

// RemoveItem handles DELETE /api/v1/wishlist/items/{itemID}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "itemID")
	if err := h.store.RemoveItem(r.Context(), userID, itemID); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"status": "removed"}})
}

// MoveToCart handles POST /api/v1/wishlist/items/{itemID}/move-to-cart
func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "itemID")
	if err := h.store.MoveToCart(r.Context(), userID, itemID, nil); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"status": "moved"}})
}
