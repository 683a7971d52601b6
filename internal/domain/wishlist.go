package domain

import "time"

// WishlistItem is a saved product with an optional shopper note.
type WishlistItem struct {
	ID      string    `json:"id"`
	Product Product   `json:"product"`
	Notes   string    `json:"notes,omitempty"`
	AddedAt time.Time `json:"added_at"`
}

// Wishlist is the full saved-items list for one user, newest last.
type Wishlist struct {
	UserID string         `json:"user_id"`
	Items  []WishlistItem `json:"items"`
}

// Contains reports whether a product is already on the list.
func (w *Wishlist) Contains(productID string) bool {
	for i := range w.Items {
		if w.Items[i].Product.ID == productID {
			return true
		}
	}
	return false
}

// FindByProduct returns the item for a product, or nil.
func (w *Wishlist) FindByProduct(productID string) *WishlistItem {
	for i := range w.Items {
		if w.Items[i].Product.ID == productID {
			return &w.Items[i]
		}
	}
	return nil
}
