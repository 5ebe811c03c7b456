package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingFor(t *testing.T) {
	assert.Equal(t, 200.0, ShippingFor(0))
	assert.Equal(t, 200.0, ShippingFor(1499))
	// Exactly the threshold still pays the fee.
	assert.Equal(t, 200.0, ShippingFor(1500))
	assert.Equal(t, 0.0, ShippingFor(1501))
	assert.Equal(t, 0.0, ShippingFor(10000))
}

func TestTotalWithShipping(t *testing.T) {
	assert.Equal(t, 1700.0, TotalWithShipping(1500))
	assert.Equal(t, 1501.0, TotalWithShipping(1501))
}
