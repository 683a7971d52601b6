// Package checkout drives the linear four step order flow: address,
// services, payment, review. A session accumulates the shopper's
// selections; placing the order is the terminal action and is only
// reachable from the review step.
package checkout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jengamart/storefront/internal/backend"
	"github.com/jengamart/storefront/internal/domain"
	"github.com/jengamart/storefront/internal/event"
	"github.com/jengamart/storefront/internal/pricing"
	apperrors "github.com/jengamart/storefront/pkg/errors"
)

// CartSource is the slice of the cart store the checkout flow needs.
type CartSource interface {
	Snapshot(userID string) *domain.Cart
	Load(ctx context.Context, userID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) (*domain.Cart, error)
}

// OrderPlacer submits assembled orders to the backend.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req *backend.PlaceOrderRequest) (*domain.Order, error)
}

// Service implements the checkout flow.
type Service struct {
	sessions *SessionStore
	cart     CartSource
	orders   OrderPlacer
	producer *event.Producer
	logger   *slog.Logger
	currency string
}

// NewService creates a checkout service.
func NewService(
	sessions *SessionStore,
	cart CartSource,
	orders OrderPlacer,
	producer *event.Producer,
	logger *slog.Logger,
	currency string,
) *Service {
	return &Service{
		sessions: sessions,
		cart:     cart,
		orders:   orders,
		producer: producer,
		logger:   logger,
		currency: currency,
	}
}

// Start begins a checkout for the user, replacing any session already
// in flight. The cart must not be empty.
func (s *Service) Start(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	cart, err := s.currentCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, apperrors.InvalidInput("cannot start checkout with an empty cart")
	}

	session := NewSession(userID)
	s.sessions.Put(session)

	s.logger.InfoContext(ctx, "checkout started",
		slog.String("checkout_id", session.ID),
		slog.String("user_id", userID),
		slog.Int("item_count", cart.ItemCount()),
	)

	return session, nil
}

// Get returns the user's active session.
func (s *Service) Get(userID string) (*Session, error) {
	return s.sessions.Get(userID)
}

// SetAddress records the delivery address on the session. Field level
// requirements are enforced when advancing past the address step, so a
// partial address can be saved mid-edit.
func (s *Service) SetAddress(ctx context.Context, userID string, address domain.Address) (*Session, error) {
	session, err := s.sessions.Get(userID)
	if err != nil {
		return nil, err
	}

	session.Address = address
	s.sessions.Put(session)
	return session, nil
}

// SetServices records the add-on service selections. Zero services is
// valid; unknown service or urgency identifiers are rejected.
func (s *Service) SetServices(ctx context.Context, userID string, req domain.ServiceRequest) (*Session, error) {
	for _, id := range req.Services {
		if !domain.ValidService(id) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("unknown service %q", id))
		}
	}
	if req.Urgency != "" && !domain.ValidUrgency(req.Urgency) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown urgency %q", req.Urgency))
	}

	session, err := s.sessions.Get(userID)
	if err != nil {
		return nil, err
	}

	session.ServiceRequest = req
	s.sessions.Put(session)
	return session, nil
}

// SetPayment records the payment method.
func (s *Service) SetPayment(ctx context.Context, userID, method string) (*Session, error) {
	if method == "" {
		return nil, apperrors.InvalidInput("payment method is required")
	}

	session, err := s.sessions.Get(userID)
	if err != nil {
		return nil, err
	}

	session.PaymentMethod = method
	s.sessions.Put(session)
	return session, nil
}

// Next advances the session one step when the current step validates.
// A blocked advance is not an error; the session simply stays put and
// the second return value reports it.
func (s *Service) Next(ctx context.Context, userID string) (*Session, bool, error) {
	session, err := s.sessions.Get(userID)
	if err != nil {
		return nil, false, err
	}

	moved := session.Next()
	if moved {
		s.sessions.Put(session)
	}
	return session, moved, nil
}

// Back moves the session one step earlier, floored at the address
// step.
func (s *Service) Back(ctx context.Context, userID string) (*Session, bool, error) {
	session, err := s.sessions.Get(userID)
	if err != nil {
		return nil, false, err
	}

	moved := session.Back()
	if moved {
		s.sessions.Put(session)
	}
	return session, moved, nil
}

// Quote prices the current cart against the session's service
// selections. It recomputes from scratch on every call.
func (s *Service) Quote(ctx context.Context, userID string) (*pricing.Quote, error) {
	session, err := s.sessions.Get(userID)
	if err != nil {
		return nil, err
	}

	cart, err := s.currentCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	q := pricing.Calculate(cart.TotalAmount(), session.ServiceRequest.Requested())
	return &q, nil
}

// PlaceOrder is the terminal checkout action. It requires the session
// to be on the review step with address and payment set and the cart
// non-empty. On success the cart is cleared and the session discarded;
// on failure the session stays on review so the shopper can retry.
func (s *Service) PlaceOrder(ctx context.Context, userID string) (*domain.Order, error) {
	session, err := s.sessions.Get(userID)
	if err != nil {
		return nil, err
	}

	if session.Step != domain.StepReview {
		return nil, apperrors.InvalidInput("order can only be placed from the review step")
	}
	if !session.ReadyToPlace() {
		return nil, apperrors.InvalidInput("address and payment method must be set before placing an order")
	}

	cart, err := s.currentCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, apperrors.InvalidInput("cannot place an order with an empty cart")
	}

	quote := pricing.Calculate(cart.TotalAmount(), session.ServiceRequest.Requested())

	items := make([]domain.OrderItem, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	req := &backend.PlaceOrderRequest{
		UserID:        userID,
		Items:         items,
		Address:       session.Address,
		PaymentMethod: session.PaymentMethod,
		Subtotal:      quote.Subtotal,
		Shipping:      quote.Shipping,
		ServiceCharge: quote.ServiceCharge,
		Tax:           quote.Tax,
		Total:         quote.Total,
		Currency:      s.currency,
	}
	if session.ServiceRequest.Requested() {
		sr := session.ServiceRequest
		req.ServiceRequest = &sr
	}

	order, err := s.orders.PlaceOrder(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	// The order exists at the backend now. Cleanup failures are logged
	// and do not undo a placed order.
	if _, err := s.cart.Clear(ctx, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart after order placement",
			slog.String("order_id", order.ID),
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
	s.sessions.Delete(userID)

	if s.producer != nil {
		if err := s.producer.PublishOrderPlaced(ctx, order); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish order.placed event",
				slog.String("order_id", order.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("user_id", userID),
		slog.Int64("total", order.Total),
	)

	return order, nil
}

// currentCart returns the cart snapshot, loading it when this user has
// none yet.
func (s *Service) currentCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if cart := s.cart.Snapshot(userID); cart != nil {
		return cart, nil
	}
	cart, err := s.cart.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return cart, nil
}
