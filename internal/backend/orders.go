package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jengamart/storefront/internal/domain"
)

// PlaceOrderRequest is the assembled order sent to the backend at the
// end of checkout.
type PlaceOrderRequest struct {
	UserID         string                 `json:"user_id"`
	Items          []domain.OrderItem     `json:"items"`
	Address        domain.Address         `json:"address"`
	ServiceRequest *domain.ServiceRequest `json:"service_request,omitempty"`
	PaymentMethod  string                 `json:"payment_method"`
	Subtotal       int64                  `json:"subtotal"`
	Shipping       int64                  `json:"shipping"`
	ServiceCharge  int64                  `json:"service_charge"`
	Tax            int64                  `json:"tax"`
	Total          int64                  `json:"total"`
	Currency       string                 `json:"currency"`
}

// PlaceOrder submits an order. The backend owns order persistence; the
// returned order carries the authoritative ID and status.
func (c *Client) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.doJSON(ctx, http.MethodPost, "/api/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder fetches a single order by ID.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	path := fmt.Sprintf("/api/orders/%s", url.PathEscape(orderID))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderPage is one page of a user's order history.
type OrderPage struct {
	Orders     []domain.Order `json:"orders"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalPages int            `json:"total_pages"`
}

// ListOrders fetches a page of the user's orders, newest first.
func (c *Client) ListOrders(ctx context.Context, userID string, page, perPage int) (*OrderPage, error) {
	params := url.Values{}
	params.Set("user_id", userID)
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		params.Set("per_page", strconv.Itoa(perPage))
	}

	var result OrderPage
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders?"+params.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
