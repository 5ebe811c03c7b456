// Package pricing holds the storefront-wide pricing policy shared by the
// checkout client and the server-side order templates.
package pricing

const (
	// ShippingFee is the flat delivery fee in ALL.
	ShippingFee = 200
	// FreeShippingThreshold is the pre-shipping total above which delivery
	// is free. A total of exactly 1500 still pays the fee.
	FreeShippingThreshold = 1500
)

// ShippingFor returns the delivery fee owed for a pre-shipping total.
func ShippingFor(subtotal float64) float64 {
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return ShippingFee
}

// TotalWithShipping is the amount the customer pays at the door.
func TotalWithShipping(subtotal float64) float64 {
	return subtotal + ShippingFor(subtotal)
}
