package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengamart/storefront/internal/domain"
	apperrors "github.com/jengamart/storefront/pkg/errors"
)

func setupTestRedis(t *testing.T) (*WishlistRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewWishlistRepository(client), mr
}

func sampleWishlist() *domain.Wishlist {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domain.Wishlist{
		UserID: "user-001",
		Items: []domain.WishlistItem{
			{
				ID: "wl-1",
				Product: domain.Product{
					ID:       "prod-1",
					Name:     "Cordless Drill 18V",
					Price:    12999_00,
					Stock:    14,
					Category: "power-tools",
					Brand:    "Makita",
					Rating:   4.6,
				},
				Notes:   "for the deck project",
				AddedAt: now,
			},
		},
	}
}

func TestWishlistRepository_Load_Success(t *testing.T) {
	repo, mr := setupTestRedis(t)

	wl := sampleWishlist()
	data, err := json.Marshal(wl.Items)
	require.NoError(t, err)

	// Set data directly in miniredis.
	require.NoError(t, mr.Set("wishlist:"+wl.UserID, string(data)))

	got, err := repo.Load(context.Background(), wl.UserID)
	require.NoError(t, err)
	assert.Equal(t, wl.UserID, got.UserID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "wl-1", got.Items[0].ID)
	assert.Equal(t, "prod-1", got.Items[0].Product.ID)
	assert.Equal(t, "Cordless Drill 18V", got.Items[0].Product.Name)
	assert.Equal(t, "for the deck project", got.Items[0].Notes)
}

func TestWishlistRepository_Load_NotFound(t *testing.T) {
	repo, _ := setupTestRedis(t)

	got, err := repo.Load(context.Background(), "nonexistent-user")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWishlistRepository_Load_InvalidJSON(t *testing.T) {
	repo, mr := setupTestRedis(t)

	require.NoError(t, mr.Set("wishlist:user-bad", "{{not-valid-json"))

	got, err := repo.Load(context.Background(), "user-bad")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal wishlist")
}

func TestWishlistRepository_Save_Success(t *testing.T) {
	repo, mr := setupTestRedis(t)

	wl := sampleWishlist()
	err := repo.Save(context.Background(), wl)
	require.NoError(t, err)

	assert.True(t, mr.Exists("wishlist:"+wl.UserID))

	raw, err := mr.Get("wishlist:" + wl.UserID)
	require.NoError(t, err)

	var stored []domain.WishlistItem
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, "wl-1", stored[0].ID)
	assert.Equal(t, "prod-1", stored[0].Product.ID)
}

func TestWishlistRepository_Save_NoTTL(t *testing.T) {
	repo, mr := setupTestRedis(t)

	wl := sampleWishlist()
	require.NoError(t, repo.Save(context.Background(), wl))

	// Wishlists are durable and must not expire.
	assert.Equal(t, time.Duration(0), mr.TTL("wishlist:"+wl.UserID))
}

func TestWishlistRepository_Save_Overwrites(t *testing.T) {
	repo, _ := setupTestRedis(t)

	wl := sampleWishlist()
	require.NoError(t, repo.Save(context.Background(), wl))

	wl.Items = nil
	require.NoError(t, repo.Save(context.Background(), wl))

	got, err := repo.Load(context.Background(), wl.UserID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestWishlistRepository_Delete_Success(t *testing.T) {
	repo, mr := setupTestRedis(t)

	wl := sampleWishlist()
	require.NoError(t, repo.Save(context.Background(), wl))
	assert.True(t, mr.Exists("wishlist:"+wl.UserID))

	require.NoError(t, repo.Delete(context.Background(), wl.UserID))
	assert.False(t, mr.Exists("wishlist:"+wl.UserID))
}

func TestWishlistRepository_Delete_NonExistent(t *testing.T) {
	repo, _ := setupTestRedis(t)

	assert.NoError(t, repo.Delete(context.Background(), "nonexistent-user"))
}
