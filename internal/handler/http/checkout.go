package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jengamart/storefront/internal/checkout"
	"github.com/jengamart/storefront/internal/domain"
	"github.com/jengamart/storefront/pkg/validator"
)

// CheckoutHandler handles HTTP requests for the checkout flow.
type CheckoutHandler struct {
	service *checkout.Service
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *checkout.Service, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddressRequest is the JSON request body for the delivery address.
type AddressRequest struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// ServicesRequest is the JSON request body for add-on service selection.
type ServicesRequest struct {
	Services    []string `json:"services" validate:"dive,oneof=installation delivery consultation maintenance"`
	Description string   `json:"description" validate:"max=1000"`
	Urgency     string   `json:"urgency" validate:"omitempty,oneof=low normal high"`
}

// PaymentRequest is the JSON request body for the payment method.
type PaymentRequest struct {
	Method string `json:"method" validate:"required"`
}

// stepView is the session shape returned to the client. The step name
// rides along so clients need not map ordinals.
type stepView struct {
	*checkout.Session
	StepName string `json:"step_name"`
	Moved    *bool  `json:"moved,omitempty"`
}

func sessionView(s *checkout.Session) stepView {
	return stepView{Session: s, StepName: s.Step.String()}
}

func navView(s *checkout.Session, moved bool) stepView {
	v := sessionView(s)
	v.Moved = &moved
	return v
}

// --- Handlers ---

// Start handles POST /api/v1/checkout
func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	session, err := h.service.Start(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: sessionView(session)})
}

// Get handles GET /api/v1/checkout
func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	session, err := h.service.Get(userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: sessionView(session)})
}

// SetAddress handles PUT /api/v1/checkout/address
func (h *CheckoutHandler) SetAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w, err)
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	session, err := h.service.SetAddress(r.Context(), userID, domain.Address{
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: sessionView(session)})
}

// SetServices handles PUT /api/v1/checkout/services
func (h *CheckoutHandler) SetServices(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ServicesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w, err)
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	session, err := h.service.SetServices(r.Context(), userID, domain.ServiceRequest{
		Services:    req.Services,
		Description: req.Description,
		Urgency:     req.Urgency,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: sessionView(session)})
}

// SetPayment handles PUT /api/v1/checkout/payment
func (h *CheckoutHandler) SetPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w, err)
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	session, err := h.service.SetPayment(r.Context(), userID, req.Method)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: sessionView(session)})
}

// Next handles POST /api/v1/checkout/next
func (h *CheckoutHandler) Next(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	session, moved, err := h.service.Next(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// A blocked advance is 200 with moved=false, not an error.
	writeJSON(w, http.StatusOK, response{Data: navView(session, moved)})
}

// Back handles POST /api/v1/checkout/back
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	session, moved, err := h.service.Back(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: navView(session, moved)})
}

// Quote handles GET /api/v1/checkout/quote
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	quote, err := h.service.Quote(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: quote})
}

// PlaceOrder handles POST /api/v1/checkout/order
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	confirmation := domain.OrderConfirmation{
		OrderID:  order.ID,
		Total:    order.Total,
		Currency: order.Currency,
		Status:   order.Status,
		PlacedAt: order.CreatedAt,
	}

	writeJSON(w, http.StatusCreated, response{Data: confirmation})
}
