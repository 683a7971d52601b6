package domain

import "time"

// Order statuses as reported by the backend API.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderItem is a purchased line captured at placement time.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Order is a placed order as returned by the backend API.
type Order struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Items          []OrderItem     `json:"items"`
	Address        Address         `json:"address"`
	ServiceRequest *ServiceRequest `json:"service_request,omitempty"`
	PaymentMethod  string          `json:"payment_method"`
	Subtotal       int64           `json:"subtotal"`
	Shipping       int64           `json:"shipping"`
	ServiceCharge  int64           `json:"service_charge"`
	Tax            int64           `json:"tax"`
	Total          int64           `json:"total"`
	Currency       string          `json:"currency"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// OrderConfirmation is the minimal view surfaced after a successful
// placement.
type OrderConfirmation struct {
	OrderID  string    `json:"order_id"`
	Total    int64     `json:"total"`
	Currency string    `json:"currency"`
	Status   string    `json:"status"`
	PlacedAt time.Time `json:"placed_at"`
}
