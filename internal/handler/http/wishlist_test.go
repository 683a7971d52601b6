package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jengamart/storefront/internal/domain"
	"github.com/jengamart/storefront/internal/store"
	apperrors "github.com/jengamart/storefront/pkg/errors"
)

type mockWishlistRepo struct {
	mock.Mock
}

func (m *mockWishlistRepo) Load(ctx context.Context, userID string) (*domain.Wishlist, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wishlist), args.Error(1)
}

func (m *mockWishlistRepo) Save(ctx context.Context, wishlist *domain.Wishlist) error {
	args := m.Called(ctx, wishlist)
	return args.Error(0)
}

func (m *mockWishlistRepo) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockProductFetcher struct {
	mock.Mock
}

func (m *mockProductFetcher) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func setupWishlistRouter(repo *mockWishlistRepo, catalog *mockProductFetcher, cart store.CartAdder) *chi.Mux {
	wl := store.NewWishlistStore(repo, cart, testLogger())
	h := NewWishlistHandler(wl, catalog, testLogger())

	r := chi.NewRouter()
	r.Route("/api/v1/wishlist", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(asUser("user-1"))

		r.Get("/", h.List)
		r.Post("/", h.Add)
		r.Get("/products/{productID}", h.Contains)
		r.Delete("/products/{productID}", h.RemoveByProduct)
		r.Delete("/items/{itemID}", h.RemoveItem)
		r.Post("/items/{itemID}/move-to-cart", h.MoveToCart)
	})
	return r
}

func stubEmptyWishlist(repo *mockWishlistRepo) {
	repo.On("Load", mock.Anything, "user-1").
		Return(nil, apperrors.NotFound("wishlist", "user-1")).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
}

func TestWishlistHandler_Add_EmbedsProductSnapshot(t *testing.T) {
	repo := new(mockWishlistRepo)
	catalog := new(mockProductFetcher)
	router := setupWishlistRouter(repo, catalog, nil)

	stubEmptyWishlist(repo)
	catalog.On("GetProduct", mock.Anything, "prod-1").Return(&domain.Product{
		ID:    "prod-1",
		Name:  "Cordless Drill 18V",
		Price: 12999_00,
		Stock: 14,
	}, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/wishlist",
		map[string]any{"product_id": "prod-1", "notes": "for the deck"})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data domain.WishlistItem `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Data.ID)
	assert.Equal(t, "Cordless Drill 18V", resp.Data.Product.Name)
	assert.Equal(t, "for the deck", resp.Data.Notes)
	catalog.AssertExpectations(t)
}

func TestWishlistHandler_Add_UnknownProduct(t *testing.T) {
	repo := new(mockWishlistRepo)
	catalog := new(mockProductFetcher)
	router := setupWishlistRouter(repo, catalog, nil)

	catalog.On("GetProduct", mock.Anything, "ghost").
		Return(nil, apperrors.NotFound("product", "ghost"))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/wishlist",
		map[string]any{"product_id": "ghost"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWishlistHandler_Contains(t *testing.T) {
	repo := new(mockWishlistRepo)
	catalog := new(mockProductFetcher)
	router := setupWishlistRouter(repo, catalog, nil)

	repo.On("Load", mock.Anything, "user-1").Return(&domain.Wishlist{
		UserID: "user-1",
		Items:  []domain.WishlistItem{{ID: "wl-1", Product: domain.Product{ID: "prod-1"}}},
	}, nil).Once()

	rec := doJSON(t, router, http.MethodGet, "/api/v1/wishlist/products/prod-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			InWishlist bool `json:"in_wishlist"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Data.InWishlist)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/wishlist/products/other", nil)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Data.InWishlist)
}

func TestWishlistHandler_MoveToCart(t *testing.T) {
	repo := new(mockWishlistRepo)
	catalog := new(mockProductFetcher)
	adder := new(mockCartAdder)
	router := setupWishlistRouter(repo, catalog, adder)

	repo.On("Load", mock.Anything, "user-1").Return(&domain.Wishlist{
		UserID: "user-1",
		Items:  []domain.WishlistItem{{ID: "wl-1", Product: domain.Product{ID: "prod-1"}}},
	}, nil).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	adder.On("AddItem", mock.Anything, "user-1", "prod-1", 1).
		Return(&domain.Cart{UserID: "user-1"}, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/wishlist/items/wl-1/move-to-cart", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	adder.AssertExpectations(t)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/wishlist/products/prod-1", nil)
	var resp struct {
		Data struct {
			InWishlist bool `json:"in_wishlist"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Data.InWishlist)
}

func TestWishlistHandler_RemoveItem_NotFound(t *testing.T) {
	repo := new(mockWishlistRepo)
	catalog := new(mockProductFetcher)
	router := setupWishlistRouter(repo, catalog, nil)

	repo.On("Load", mock.Anything, "user-1").
		Return(nil, apperrors.NotFound("wishlist", "user-1")).Once()

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/wishlist/items/ghost", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type mockCartAdder struct {
	mock.Mock
}

func (m *mockCartAdder) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}
