// Package pricing derives order totals from cart contents and checkout
// selections. All amounts are in cents (KES).
package pricing

// Policy constants. Thresholds and fees are expressed in cents.
const (
	// FreeShippingThreshold is the subtotal at or above which shipping is free.
	FreeShippingThreshold int64 = 5000_00

	// FlatShippingFee applies below the free-shipping threshold.
	FlatShippingFee int64 = 500_00

	// ServiceCharge is the flat fee added when any add-on service is requested.
	ServiceCharge int64 = 1000_00

	// VATRatePercent is the tax rate applied to subtotal plus service charge.
	VATRatePercent int64 = 16
)

// Quote is a full price breakdown for an order.
type Quote struct {
	Subtotal      int64 `json:"subtotal"`
	Shipping      int64 `json:"shipping"`
	ServiceCharge int64 `json:"service_charge"`
	Tax           int64 `json:"tax"`
	Total         int64 `json:"total"`
}

// Shipping returns the shipping fee for a subtotal.
func Shipping(subtotal int64) int64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// Calculate produces the price breakdown for a subtotal and whether any
// add-on service was requested. It is pure and must be re-run whenever
// the cart or service selection changes; results are never cached.
func Calculate(subtotal int64, serviceRequested bool) Quote {
	var serviceCharge int64
	if serviceRequested {
		serviceCharge = ServiceCharge
	}

	shipping := Shipping(subtotal)
	tax := (subtotal + serviceCharge) * VATRatePercent / 100

	return Quote{
		Subtotal:      subtotal,
		Shipping:      shipping,
		ServiceCharge: serviceCharge,
		Tax:           tax,
		Total:         subtotal + shipping + serviceCharge + tax,
	}
}
