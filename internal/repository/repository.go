package repository

import (
	"context"

	"github.com/jengamart/storefront/internal/domain"
)

// WishlistRepository defines the interface for wishlist persistence.
// The whole collection is written and read as a unit; there is no
// incremental persistence.
type WishlistRepository interface {
	// Load retrieves a user's full wishlist.
	Load(ctx context.Context, userID string) (*domain.Wishlist, error)

	// Save persists a user's full wishlist, overwriting any existing one.
	Save(ctx context.Context, wishlist *domain.Wishlist) error

	// Delete removes a user's wishlist.
	Delete(ctx context.Context, userID string) error
}
