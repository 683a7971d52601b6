package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jengamart/storefront/internal/domain"
	"github.com/jengamart/storefront/internal/repository"
	apperrors "github.com/jengamart/storefront/pkg/errors"
)

// CartAdder is the strategy used by MoveToCart to complete the cart
// half of the transfer. CartStore satisfies this; callers may supply
// their own.
type CartAdder interface {
	AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
}

// WishlistStore owns saved-product lists. In-memory state is
// authoritative for the session; every mutation serializes the whole
// collection to the repository as a side effect. Persistence failures
// are logged, never surfaced, so a failed write risks silent loss at
// the next reload. That trade-off is accepted for wishlist data.
type WishlistStore struct {
	repo   repository.WishlistRepository
	cart   CartAdder
	logger *slog.Logger

	mu    sync.Mutex
	lists map[string]*domain.Wishlist
}

// NewWishlistStore creates a wishlist store. cart is the default
// MoveToCart strategy and may be nil if MoveToCart is never used
// without an explicit adder.
func NewWishlistStore(repo repository.WishlistRepository, cart CartAdder, logger *slog.Logger) *WishlistStore {
	return &WishlistStore{
		repo:   repo,
		cart:   cart,
		logger: logger,
		lists:  make(map[string]*domain.Wishlist),
	}
}

// List returns a copy of the user's wishlist, loading it from the
// repository on first access.
func (s *WishlistStore) List(ctx context.Context, userID string) *domain.Wishlist {
	s.mu.Lock()
	defer s.mu.Unlock()

	wl := s.load(ctx, userID)
	out := &domain.Wishlist{
		UserID: userID,
		Items:  make([]domain.WishlistItem, len(wl.Items)),
	}
	copy(out.Items, wl.Items)
	return out
}

// Add saves a product. If the product is already on the list, its
// timestamp and notes are updated in place instead of appending a
// duplicate.
func (s *WishlistStore) Add(ctx context.Context, userID string, product domain.Product, notes string) domain.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	wl := s.load(ctx, userID)
	now := time.Now().UTC()

	if existing := wl.FindByProduct(product.ID); existing != nil {
		existing.AddedAt = now
		existing.Notes = notes
		existing.Product = product
		item := *existing
		s.persist(ctx, wl)
		return item
	}

	item := domain.WishlistItem{
		ID:      uuid.New().String(),
		Product: product,
		Notes:   notes,
		AddedAt: now,
	}
	wl.Items = append(wl.Items, item)
	s.persist(ctx, wl)
	return item
}

// RemoveByProduct drops every entry for a product.
func (s *WishlistStore) RemoveByProduct(ctx context.Context, userID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wl := s.load(ctx, userID)
	kept := wl.Items[:0]
	for _, item := range wl.Items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	wl.Items = kept
	s.persist(ctx, wl)
}

// RemoveItem drops one entry by its own identifier. This removes a
// specific entry even if the same product somehow appears twice.
func (s *WishlistStore) RemoveItem(ctx context.Context, userID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wl := s.load(ctx, userID)
	kept := wl.Items[:0]
	found := false
	for _, item := range wl.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return apperrors.NotFound("wishlist item", itemID)
	}
	wl.Items = kept
	s.persist(ctx, wl)
	return nil
}

// Contains reports whether a product is on the user's list.
func (s *WishlistStore) Contains(ctx context.Context, userID, productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, userID).Contains(productID)
}

// MoveToCart transfers a wishlist entry into the cart and removes it
// from the wishlist. The cart add runs first; the entry is only
// removed once the add succeeds, so a failed transfer leaves the
// wishlist intact. A nil adder falls back to the store's default.
func (s *WishlistStore) MoveToCart(ctx context.Context, userID, itemID string, adder CartAdder) error {
	if adder == nil {
		adder = s.cart
	}
	if adder == nil {
		return fmt.Errorf("move to cart: no cart adder configured")
	}

	s.mu.Lock()
	wl := s.load(ctx, userID)
	entry := (*domain.WishlistItem)(nil)
	for i := range wl.Items {
		if wl.Items[i].ID == itemID {
			entry = &wl.Items[i]
			break
		}
	}
	if entry == nil {
		s.mu.Unlock()
		return apperrors.NotFound("wishlist item", itemID)
	}
	productID := entry.Product.ID
	s.mu.Unlock()

	// The cart add round-trips to the backend, so it runs outside the
	// store lock.
	if _, err := adder.AddItem(ctx, userID, productID, 1); err != nil {
		return fmt.Errorf("move to cart: %w", err)
	}

	return s.RemoveItem(ctx, userID, itemID)
}

// load returns the in-memory list for a user, reading it from the
// repository on first access. Repository failures leave the user with
// an empty in-memory list for the session.
func (s *WishlistStore) load(ctx context.Context, userID string) *domain.Wishlist {
	if wl, ok := s.lists[userID]; ok {
		return wl
	}

	wl, err := s.repo.Load(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.ErrorContext(ctx, "failed to load wishlist, starting empty",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
		wl = &domain.Wishlist{UserID: userID, Items: []domain.WishlistItem{}}
	}

	s.lists[userID] = wl
	return wl
}

// persist writes the whole collection back. Failures are logged only;
// in-memory state stays authoritative for the session.
func (s *WishlistStore) persist(ctx context.Context, wl *domain.Wishlist) {
	if err := s.repo.Save(ctx, wl); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist wishlist",
			slog.String("user_id", wl.UserID),
			slog.Int("items", len(wl.Items)),
			slog.String("error", err.Error()),
		)
	}
}
