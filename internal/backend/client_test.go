package backend

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengamart/storefront/internal/domain"
	apperrors "github.com/jengamart/storefront/pkg/errors"
	"github.com/jengamart/storefront/pkg/httpclient"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestClient points a real client at an httptest fake backend with
// retries disabled so error paths stay fast.
func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	return New(httpclient.New(cfg), srv.URL, testLogger())
}

func writeData(t *testing.T, w http.ResponseWriter, status int, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"data": data}))
}

func TestClient_GetCart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/carts/user-1", r.URL.Path)
		writeData(t, w, http.StatusOK, domain.Cart{
			ID:     "cart-1",
			UserID: "user-1",
			Items: []domain.CartItem{
				{ID: "line-1", ProductID: "prod-1", Name: "Claw Hammer", Price: 850_00, Quantity: 2},
			},
			Currency: "KES",
		})
	})

	cart, err := c.GetCart(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "cart-1", cart.ID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(850_00), cart.Items[0].Price)
}

func TestClient_GetCart_NotFoundMapsToTaxonomy(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"cart not found"}}`))
	})

	cart, err := c.GetCart(context.Background(), "user-1")

	assert.Nil(t, cart)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClient_AddCartItem_SendsBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/carts/user-1/items", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			ProductID string `json:"product_id"`
			Quantity  int    `json:"quantity"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "prod-1", body.ProductID)
		assert.Equal(t, 3, body.Quantity)

		w.WriteHeader(http.StatusNoContent)
	})

	err := c.AddCartItem(context.Background(), "user-1", "prod-1", 3)
	require.NoError(t, err)
}

func TestClient_PlaceOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)

		var req PlaceOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "user-1", req.UserID)
		assert.Equal(t, int64(5140_00), req.Total)

		writeData(t, w, http.StatusCreated, domain.Order{
			ID:     "order-1",
			UserID: "user-1",
			Total:  req.Total,
			Status: domain.OrderStatusPending,
		})
	})

	order, err := c.PlaceOrder(context.Background(), &PlaceOrderRequest{
		UserID: "user-1",
		Items: []domain.OrderItem{
			{ProductID: "prod-1", Name: "Claw Hammer", Price: 2000_00, Quantity: 2},
		},
		PaymentMethod: "mpesa",
		Subtotal:      4000_00,
		Shipping:      500_00,
		Tax:           640_00,
		Total:         5140_00,
		Currency:      "KES",
	})

	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
}

func TestClient_PlaceOrder_BackendErrorSurfacesMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"INVALID_INPUT","message":"insufficient stock for prod-1"}}`))
	})

	order, err := c.PlaceOrder(context.Background(), &PlaceOrderRequest{UserID: "user-1"})

	assert.Nil(t, order)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "insufficient stock")
}

func TestClient_ListProducts_QueryParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "drill", q.Get("search"))
		assert.Equal(t, "power-tools", q.Get("category"))
		assert.Equal(t, "2", q.Get("page"))

		writeData(t, w, http.StatusOK, ProductPage{
			Products: []domain.Product{{ID: "prod-1", Name: "Cordless Drill 18V"}},
			Total:    41,
			Page:     2,
			PerPage:  20,
		})
	})

	page, err := c.ListProducts(context.Background(), ProductQuery{
		Search:   "drill",
		Category: "power-tools",
		Page:     2,
		PerPage:  20,
	})

	require.NoError(t, err)
	assert.Equal(t, 41, page.Total)
	require.Len(t, page.Products, 1)
}

func TestClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		writeData(t, w, http.StatusOK, domain.AuthSession{
			User:  domain.User{ID: "user-1", Email: "fundi@jengamart.co.ke"},
			Token: "jwt-token",
		})
	})

	session, err := c.Login(context.Background(), &LoginInput{
		Email:    "fundi@jengamart.co.ke",
		Password: "hunter2hunter2",
	})

	require.NoError(t, err)
	assert.Equal(t, "user-1", session.User.ID)
	assert.Equal(t, "jwt-token", session.Token)
}

func TestClient_UploadProductImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/uploads", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "drill.jpg", header.Filename)

		writeData(t, w, http.StatusCreated, UploadResult{
			URL:      "https://cdn.jengamart.co.ke/products/drill.jpg",
			Filename: "drill.jpg",
			Size:     header.Size,
		})
	})

	result, err := c.UploadProductImage(context.Background(), "drill.jpg", strings.NewReader("fake-image-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "drill.jpg", result.Filename)
	assert.NotEmpty(t, result.URL)
}
