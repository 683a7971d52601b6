package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengamart/storefront/internal/domain"
)

func completeAddress() domain.Address {
	return domain.Address{
		Street:     "Moi Avenue 14",
		City:       "Nairobi",
		State:      "Nairobi County",
		PostalCode: "00100",
		Country:    "KE",
	}
}

func TestNewSession_StartsAtAddress(t *testing.T) {
	s := NewSession("user-1")

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "user-1", s.UserID)
	assert.Equal(t, domain.StepAddress, s.Step)
	assert.False(t, s.IsExpired())
	assert.Equal(t, sessionExpiry, s.ExpiresAt.Sub(s.CreatedAt))
}

func TestSession_Next_BlockedByIncompleteAddress(t *testing.T) {
	addr := completeAddress()

	// Blanking any single field blocks the advance.
	blank := []func(*domain.Address){
		func(a *domain.Address) { a.Street = "" },
		func(a *domain.Address) { a.City = "" },
		func(a *domain.Address) { a.State = "" },
		func(a *domain.Address) { a.PostalCode = "" },
		func(a *domain.Address) { a.Country = "" },
	}

	for _, clear := range blank {
		s := NewSession("user-1")
		s.Address = addr
		clear(&s.Address)

		assert.False(t, s.Next())
		assert.Equal(t, domain.StepAddress, s.Step)
	}
}

func TestSession_Next_AdvancesWithCompleteAddress(t *testing.T) {
	s := NewSession("user-1")
	s.Address = completeAddress()

	assert.True(t, s.Next())
	assert.Equal(t, domain.StepServices, s.Step)
}

func TestSession_Next_ServicesStepHasNoRequirement(t *testing.T) {
	s := NewSession("user-1")
	s.Address = completeAddress()
	require.True(t, s.Next())

	// Zero selected services is valid.
	assert.True(t, s.Next())
	assert.Equal(t, domain.StepPayment, s.Step)
}

func TestSession_Next_PaymentRequiresMethod(t *testing.T) {
	s := NewSession("user-1")
	s.Address = completeAddress()
	require.True(t, s.Next())
	require.True(t, s.Next())

	assert.False(t, s.Next())
	assert.Equal(t, domain.StepPayment, s.Step)

	s.PaymentMethod = "mpesa"
	assert.True(t, s.Next())
	assert.Equal(t, domain.StepReview, s.Step)
}

func TestSession_Next_ClampedAtReview(t *testing.T) {
	s := NewSession("user-1")
	s.Step = domain.StepReview

	assert.False(t, s.Next())
	assert.Equal(t, domain.StepReview, s.Step)
}

func TestSession_Back_FlooredAtAddress(t *testing.T) {
	s := NewSession("user-1")

	assert.False(t, s.Back())
	assert.Equal(t, domain.StepAddress, s.Step)
}

func TestSession_Back_AlwaysPermitted(t *testing.T) {
	s := NewSession("user-1")
	s.Step = domain.StepReview

	// Backward navigation needs no validation at all.
	assert.True(t, s.Back())
	assert.Equal(t, domain.StepPayment, s.Step)
	assert.True(t, s.Back())
	assert.Equal(t, domain.StepServices, s.Step)
	assert.True(t, s.Back())
	assert.Equal(t, domain.StepAddress, s.Step)
	assert.False(t, s.Back())
}

func TestSession_ReadyToPlace(t *testing.T) {
	s := NewSession("user-1")
	assert.False(t, s.ReadyToPlace())

	s.Address = completeAddress()
	assert.False(t, s.ReadyToPlace())

	s.PaymentMethod = "mpesa"
	assert.True(t, s.ReadyToPlace())
}
