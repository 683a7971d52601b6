package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jengamart/storefront/internal/domain"
)

// GetCart fetches the user's full cart.
func (c *Client) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	path := fmt.Sprintf("/api/carts/%s", url.PathEscape(userID))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem adds quantity units of a product to the user's cart.
func (c *Client) AddCartItem(ctx context.Context, userID, productID string, quantity int) error {
	req := struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}{ProductID: productID, Quantity: quantity}

	path := fmt.Sprintf("/api/carts/%s/items", url.PathEscape(userID))
	return c.doJSON(ctx, http.MethodPost, path, req, nil)
}

// UpdateCartItem sets the quantity on an existing cart line.
func (c *Client) UpdateCartItem(ctx context.Context, userID, itemID string, quantity int) error {
	req := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}

	path := fmt.Sprintf("/api/carts/%s/items/%s", url.PathEscape(userID), url.PathEscape(itemID))
	return c.doJSON(ctx, http.MethodPut, path, req, nil)
}

// RemoveCartItem deletes a cart line.
func (c *Client) RemoveCartItem(ctx context.Context, userID, itemID string) error {
	path := fmt.Sprintf("/api/carts/%s/items/%s", url.PathEscape(userID), url.PathEscape(itemID))
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// ClearCart empties the user's cart.
func (c *Client) ClearCart(ctx context.Context, userID string) error {
	path := fmt.Sprintf("/api/carts/%s", url.PathEscape(userID))
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}
