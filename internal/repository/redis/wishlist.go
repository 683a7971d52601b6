package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jengamart/storefront/internal/domain"
	apperrors "github.com/jengamart/storefront/pkg/errors"
)

const keyPrefix = "wishlist:"

// WishlistRepository implements repository.WishlistRepository using
// Redis. Each user's wishlist is one JSON array under a fixed key with
// no TTL; saved items outlive sessions.
type WishlistRepository struct {
	client *redis.Client
}

// NewWishlistRepository creates a new Redis-backed wishlist repository.
func NewWishlistRepository(client *redis.Client) *WishlistRepository {
	return &WishlistRepository{client: client}
}

// Load retrieves a wishlist by user ID from Redis.
func (r *WishlistRepository) Load(ctx context.Context, userID string) (*domain.Wishlist, error) {
	key := keyPrefix + userID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("wishlist", userID)
		}
		return nil, fmt.Errorf("redis get wishlist: %w", err)
	}

	var items []domain.WishlistItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal wishlist: %w", err)
	}

	return &domain.Wishlist{UserID: userID, Items: items}, nil
}

// Save persists the full wishlist to Redis as one JSON array.
func (r *WishlistRepository) Save(ctx context.Context, wishlist *domain.Wishlist) error {
	key := keyPrefix + wishlist.UserID

	data, err := json.Marshal(wishlist.Items)
	if err != nil {
		return fmt.Errorf("marshal wishlist: %w", err)
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set wishlist: %w", err)
	}

	return nil
}

// Delete removes a wishlist from Redis by user ID.
func (r *WishlistRepository) Delete(ctx context.Context, userID string) error {
	key := keyPrefix + userID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del wishlist: %w", err)
	}

	return nil
}
