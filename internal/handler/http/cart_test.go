package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jengamart/storefront/internal/domain"
	"github.com/jengamart/storefront/internal/store"
	apperrors "github.com/jengamart/storefront/pkg/errors"
	"github.com/jengamart/storefront/pkg/middleware"
)

// ============================================================================
// Mock backend cart API
// ============================================================================

type mockCartAPI struct {
	mock.Mock
}

func (m *mockCartAPI) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartAPI) AddCartItem(ctx context.Context, userID, productID string, quantity int) error {
	args := m.Called(ctx, userID, productID, quantity)
	return args.Error(0)
}

func (m *mockCartAPI) UpdateCartItem(ctx context.Context, userID, itemID string, quantity int) error {
	args := m.Called(ctx, userID, itemID, quantity)
	return args.Error(0)
}

func (m *mockCartAPI) RemoveCartItem(ctx context.Context, userID, itemID string) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

func (m *mockCartAPI) ClearCart(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// asUser injects an authenticated user into the request context the
// same way the auth middleware does.
func asUser(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), userID)))
		})
	}
}

func setupCartRouter(h *CartHandler, userID string) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(asUser(userID))

		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Get("/summary", h.GetSummary)
		r.Post("/items", h.AddItem)
		r.Put("/items/{itemID}", h.UpdateItem)
		r.Delete("/items/{itemID}", h.RemoveItem)
	})
	return r
}

func backendCart(userID string) *domain.Cart {
	return &domain.Cart{
		ID:     "cart-1",
		UserID: userID,
		Items: []domain.CartItem{
			{ID: "line-1", ProductID: "prod-1", Name: "Claw Hammer", Price: 850_00, Quantity: 2},
		},
		Currency: "KES",
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// ============================================================================
// Tests
// ============================================================================

func TestCartHandler_GetCart(t *testing.T) {
	api := new(mockCartAPI)
	cartStore := store.NewCartStore(api, nil, testLogger(), "KES")
	router := setupCartRouter(NewCartHandler(cartStore, testLogger()), "user-1")

	api.On("GetCart", mock.Anything, "user-1").Return(backendCart("user-1"), nil)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/cart", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestCartHandler_AddItem_DefaultsQuantityToOne(t *testing.T) {
	api := new(mockCartAPI)
	cartStore := store.NewCartStore(api, nil, testLogger(), "KES")
	router := setupCartRouter(NewCartHandler(cartStore, testLogger()), "user-1")

	api.On("AddCartItem", mock.Anything, "user-1", "prod-1", 1).Return(nil)
	api.On("GetCart", mock.Anything, "user-1").Return(backendCart("user-1"), nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items",
		map[string]any{"product_id": "prod-1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	api.AssertExpectations(t)
}

func TestCartHandler_AddItem_MissingProductID(t *testing.T) {
	api := new(mockCartAPI)
	cartStore := store.NewCartStore(api, nil, testLogger(), "KES")
	router := setupCartRouter(NewCartHandler(cartStore, testLogger()), "user-1")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items",
		map[string]any{"quantity": 2})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	api.AssertNotCalled(t, "AddCartItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartHandler_UpdateItem_QuantityZeroRejected(t *testing.T) {
	api := new(mockCartAPI)
	cartStore := store.NewCartStore(api, nil, testLogger(), "KES")
	router := setupCartRouter(NewCartHandler(cartStore, testLogger()), "user-1")

	rec := doJSON(t, router, http.MethodPut, "/api/v1/cart/items/line-1",
		map[string]any{"quantity": 0})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	api.AssertNotCalled(t, "UpdateCartItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartHandler_BackendFailureSurfacesError(t *testing.T) {
	api := new(mockCartAPI)
	cartStore := store.NewCartStore(api, nil, testLogger(), "KES")
	router := setupCartRouter(NewCartHandler(cartStore, testLogger()), "user-1")

	api.On("AddCartItem", mock.Anything, "user-1", "prod-1", 1).
		Return(apperrors.ServiceUnavailable("backend is down"))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items",
		map[string]any{"product_id": "prod-1", "quantity": 1})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SERVICE_UNAVAILABLE", resp.Error.Code)
}

func TestCartHandler_ClearCart(t *testing.T) {
	api := new(mockCartAPI)
	cartStore := store.NewCartStore(api, nil, testLogger(), "KES")
	router := setupCartRouter(NewCartHandler(cartStore, testLogger()), "user-1")

	api.On("ClearCart", mock.Anything, "user-1").Return(nil)

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/cart", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	// Clear does not refetch from the backend.
	api.AssertNotCalled(t, "GetCart", mock.Anything, mock.Anything)
}

func TestCartHandler_Summary(t *testing.T) {
	api := new(mockCartAPI)
	cartStore := store.NewCartStore(api, nil, testLogger(), "KES")
	router := setupCartRouter(NewCartHandler(cartStore, testLogger()), "user-1")

	api.On("GetCart", mock.Anything, "user-1").Return(backendCart("user-1"), nil)
	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodGet, "/api/v1/cart", nil).Code)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/cart/summary", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			ItemCount int   `json:"item_count"`
			Total     int64 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Data.ItemCount)
	assert.Equal(t, int64(1700_00), resp.Data.Total)
}

func TestCartHandler_UnauthenticatedRejected(t *testing.T) {
	api := new(mockCartAPI)
	cartStore := store.NewCartStore(api, nil, testLogger(), "KES")
	h := NewCartHandler(cartStore, testLogger())

	// No auth middleware on this route at all.
	r := chi.NewRouter()
	r.Get("/api/v1/cart", h.GetCart)

	rec := doJSON(t, r, http.MethodGet, "/api/v1/cart", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestContentTypeJSON_RejectsOtherTypes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(ContentTypeJSON)
	r.Post("/", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("<xml/>"))
	req.Header.Set("Content-Type", "text/xml")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}
