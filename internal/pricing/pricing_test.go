package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShipping_BelowThreshold(t *testing.T) {
	assert.Equal(t, FlatShippingFee, Shipping(0))
	assert.Equal(t, FlatShippingFee, Shipping(4000_00))
	assert.Equal(t, FlatShippingFee, Shipping(FreeShippingThreshold-1))
}

func TestShipping_AtOrAboveThreshold(t *testing.T) {
	assert.Equal(t, int64(0), Shipping(FreeShippingThreshold))
	assert.Equal(t, int64(0), Shipping(6000_00))
}

func TestCalculate_NoService(t *testing.T) {
	// 4000 subtotal: flat shipping, 16% VAT on subtotal only.
	q := Calculate(4000_00, false)

	assert.Equal(t, int64(4000_00), q.Subtotal)
	assert.Equal(t, int64(500_00), q.Shipping)
	assert.Equal(t, int64(0), q.ServiceCharge)
	assert.Equal(t, int64(640_00), q.Tax)
	assert.Equal(t, int64(5140_00), q.Total)
}

func TestCalculate_WithService(t *testing.T) {
	// 6000 subtotal with a service: free shipping, VAT on subtotal plus charge.
	q := Calculate(6000_00, true)

	assert.Equal(t, int64(6000_00), q.Subtotal)
	assert.Equal(t, int64(0), q.Shipping)
	assert.Equal(t, int64(1000_00), q.ServiceCharge)
	assert.Equal(t, int64(1120_00), q.Tax)
	assert.Equal(t, int64(8120_00), q.Total)
}

func TestCalculate_ZeroSubtotal(t *testing.T) {
	q := Calculate(0, false)

	assert.Equal(t, int64(0), q.Subtotal)
	assert.Equal(t, FlatShippingFee, q.Shipping)
	assert.Equal(t, int64(0), q.Tax)
	assert.Equal(t, FlatShippingFee, q.Total)
}

func TestCalculate_TotalIsSumOfParts(t *testing.T) {
	for _, subtotal := range []int64{0, 1_00, 499_99, 5000_00, 123456_78} {
		for _, service := range []bool{false, true} {
			q := Calculate(subtotal, service)
			assert.Equal(t, q.Subtotal+q.Shipping+q.ServiceCharge+q.Tax, q.Total)
		}
	}
}
