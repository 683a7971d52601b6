// Package store holds the storefront's session-facing state containers.
// The cart store mirrors the backend's authoritative cart; the wishlist
// store owns its data outright and persists it to Redis.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jengamart/storefront/internal/domain"
	"github.com/jengamart/storefront/internal/event"
	apperrors "github.com/jengamart/storefront/pkg/errors"
)

// CartAPI is the slice of the backend client the cart store needs.
type CartAPI interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	AddCartItem(ctx context.Context, userID, productID string, quantity int) error
	UpdateCartItem(ctx context.Context, userID, itemID string, quantity int) error
	RemoveCartItem(ctx context.Context, userID, itemID string) error
	ClearCart(ctx context.Context, userID string) error
}

// CartStore holds per-user cart snapshots. The backend owns the cart;
// every mutation round-trips to the API and then refetches the full
// cart, so the local snapshot is never mutated optimistically.
//
// Overlapping mutations for the same user are not serialized. Two
// concurrent AddItem calls can interleave at the API; the later refetch
// wins. The mutex only protects the snapshot map itself.
type CartStore struct {
	api      CartAPI
	producer *event.Producer
	logger   *slog.Logger
	currency string

	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

// NewCartStore creates a cart store backed by the given API client.
func NewCartStore(api CartAPI, producer *event.Producer, logger *slog.Logger, currency string) *CartStore {
	return &CartStore{
		api:      api,
		producer: producer,
		logger:   logger,
		currency: currency,
		carts:    make(map[string]*domain.Cart),
	}
}

// Snapshot returns the current in-memory cart for a user, or nil if no
// cart has been loaded yet.
func (s *CartStore) Snapshot(userID string) *domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.carts[userID]
}

// Load fetches the user's cart from the backend and replaces the local
// snapshot. A backend 404 is treated as an empty cart.
func (s *CartStore) Load(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.refetch(ctx, userID)
}

// AddItem adds quantity units of a product, then refetches the cart.
func (s *CartStore) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if quantity < 1 {
		return nil, apperrors.InvalidInput("quantity must be at least 1")
	}

	if err := s.api.AddCartItem(ctx, userID, productID, quantity); err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}

	cart, err := s.refetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.publishUpdated(ctx, cart)
	return cart, nil
}

// UpdateItem sets the quantity on an existing line, then refetches.
// Quantity zero is invalid input; removing a line is a distinct action.
func (s *CartStore) UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error) {
	if itemID == "" {
		return nil, apperrors.InvalidInput("item id is required")
	}
	if quantity < 1 {
		return nil, apperrors.InvalidInput("quantity must be at least 1, remove the item instead")
	}

	if err := s.api.UpdateCartItem(ctx, userID, itemID, quantity); err != nil {
		return nil, fmt.Errorf("update cart item: %w", err)
	}

	cart, err := s.refetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.publishUpdated(ctx, cart)
	return cart, nil
}

// RemoveItem deletes a line, then refetches.
func (s *CartStore) RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	if itemID == "" {
		return nil, apperrors.InvalidInput("item id is required")
	}

	if err := s.api.RemoveCartItem(ctx, userID, itemID); err != nil {
		return nil, fmt.Errorf("remove cart item: %w", err)
	}

	cart, err := s.refetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.publishUpdated(ctx, cart)
	return cart, nil
}

// Clear empties the cart at the backend and sets the local snapshot to
// an empty cart directly. The post-condition is known, so no refetch.
func (s *CartStore) Clear(ctx context.Context, userID string) (*domain.Cart, error) {
	if err := s.api.ClearCart(ctx, userID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	cart := &domain.Cart{
		UserID:   userID,
		Items:    []domain.CartItem{},
		Currency: s.currency,
	}

	s.mu.Lock()
	s.carts[userID] = cart
	s.mu.Unlock()

	s.publishUpdated(ctx, cart)
	return cart, nil
}

// ItemCount returns the unit count of the user's snapshot, zero when
// no cart is loaded. Recomputed on every access.
func (s *CartStore) ItemCount(userID string) int {
	cart := s.Snapshot(userID)
	if cart == nil {
		return 0
	}
	return cart.ItemCount()
}

// Total returns the subtotal of the user's snapshot in cents, zero
// when no cart is loaded. Recomputed on every access.
func (s *CartStore) Total(userID string) int64 {
	cart := s.Snapshot(userID)
	if cart == nil {
		return 0
	}
	return cart.TotalAmount()
}

// Forget drops the local snapshot without touching the backend. Used
// on logout.
func (s *CartStore) Forget(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// refetch pulls the authoritative cart from the backend and replaces
// the snapshot. The snapshot is left untouched when the fetch fails.
func (s *CartStore) refetch(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.api.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			cart = &domain.Cart{
				UserID:   userID,
				Items:    []domain.CartItem{},
				Currency: s.currency,
			}
		} else {
			return nil, fmt.Errorf("fetch cart: %w", err)
		}
	}
	if cart.Currency == "" {
		cart.Currency = s.currency
	}

	s.mu.Lock()
	s.carts[userID] = cart
	s.mu.Unlock()

	return cart, nil
}

// publishUpdated emits a cart.updated event, logging on failure.
func (s *CartStore) publishUpdated(ctx context.Context, cart *domain.Cart) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("user_id", cart.UserID),
			slog.String("error", err.Error()),
		)
	}
}
