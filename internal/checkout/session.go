package checkout

import (
	"time"

	"github.com/google/uuid"

	"github.com/jengamart/storefront/internal/domain"
)

const (
	// sessionExpiry is how long a checkout session remains valid.
	sessionExpiry = 30 * time.Minute
)

// Session is one in-progress checkout. It is transient state: it lives
// in memory for at most sessionExpiry and is discarded after order
// placement. The address and service selections are never persisted
// beyond the order they end up on.
type Session struct {
	ID             string                `json:"id"`
	UserID         string                `json:"user_id"`
	Step           domain.Step           `json:"step"`
	Address        domain.Address        `json:"address"`
	ServiceRequest domain.ServiceRequest `json:"service_request"`
	PaymentMethod  string                `json:"payment_method"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	ExpiresAt      time.Time             `json:"expires_at"`
}

// NewSession starts a checkout on the address step.
func NewSession(userID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Step:      domain.StepAddress,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(sessionExpiry),
	}
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().UTC().After(s.ExpiresAt)
}

// stepComplete reports whether the current step's required fields are
// present. The services step has no hard requirement, and the review
// step has nothing left to validate.
func (s *Session) stepComplete() bool {
	switch s.Step {
	case domain.StepAddress:
		return s.Address.Complete()
	case domain.StepServices:
		return true
	case domain.StepPayment:
		return s.PaymentMethod != ""
	default:
		return true
	}
}

// Next advances to the following step if the current step validates.
// It reports whether the step changed: a validation failure or an
// attempt to advance past the review step leaves the session where it
// is, with no error state.
func (s *Session) Next() bool {
	if s.Step >= domain.StepMax {
		return false
	}
	if !s.stepComplete() {
		return false
	}
	s.Step++
	s.UpdatedAt = time.Now().UTC()
	return true
}

// Back moves one step earlier, floored at the address step. Backward
// navigation is always permitted.
func (s *Session) Back() bool {
	if s.Step <= domain.StepMin {
		return false
	}
	s.Step--
	s.UpdatedAt = time.Now().UTC()
	return true
}

// ReadyToPlace reports whether the session satisfies the order
// placement preconditions, cart contents aside.
func (s *Session) ReadyToPlace() bool {
	return s.Address.Complete() && s.PaymentMethod != ""
}
