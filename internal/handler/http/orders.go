package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jengamart/storefront/internal/backend"
	"github.com/jengamart/storefront/internal/domain"
	apperrors "github.com/jengamart/storefront/pkg/errors"
	"github.com/jengamart/storefront/pkg/pagination"
)

// OrdersAPI is the slice of the backend client the orders handler needs.
type OrdersAPI interface {
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, userID string, page, perPage int) (*backend.OrderPage, error)
}

// OrdersHandler serves a user's order history from the backend API.
type OrdersHandler struct {
	api    OrdersAPI
	logger *slog.Logger
}

// NewOrdersHandler creates a new orders HTTP handler.
func NewOrdersHandler(api OrdersAPI, logger *slog.Logger) *OrdersHandler {
	return &OrdersHandler{
		api:    api,
		logger: logger,
	}
}

// List handles GET /api/v1/orders
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	params := pagination.FromRequest(r)
	page, err := h.api.ListOrders(r.Context(), userID, params.Page, params.PerPage)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: page})
}

// Get handles GET /api/v1/orders/{orderID}
func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	orderID := chi.URLParam(r, "orderID")
	order, err := h.api.GetOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Users can only see their own orders.
	if order.UserID != userID {
		writeError(w, r, apperrors.NotFound("order", orderID))
		return
	}

	writeJSON(w, http.StatusOK, response{Data: order})
}
