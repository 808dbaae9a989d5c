package shipping_test

import (
	"testing"

	"lanari/internal/models"
	"lanari/internal/shipping"

	"github.com/stretchr/testify/assert"
)

func TestRates_Cost(t *testing.T) {
	rates := shipping.DefaultRates()

	tests := []struct {
		name     string
		subtotal int64
		method   models.ShippingMethod
		want     int64
	}{
		{"locker below threshold", 1000, models.ShippingInPostLocker, 1499},
		{"courier below threshold", 19999, models.ShippingCourier, 1999},
		{"locker at threshold", 20000, models.ShippingInPostLocker, 0},
		{"courier above threshold", 21000, models.ShippingCourier, 0},
		{"pickup small", 100, models.ShippingPickup, 0},
		{"pickup large", 50000, models.ShippingPickup, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rates.Cost(tt.subtotal, tt.method)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRates_CostUnknownMethod(t *testing.T) {
	_, err := shipping.DefaultRates().Cost(1000, models.ShippingMethod("DRONE"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown shipping method")
}

func TestRates_Quote(t *testing.T) {
	rates := shipping.DefaultRates()

	quotes := rates.Quote(21000)
	assert.Len(t, quotes, 3)
	for _, q := range quotes {
		assert.Zero(t, q.CostPLN, q.Method)
		assert.True(t, q.IsFree)
	}

	quotes = rates.Quote(1000)
	assert.Equal(t, models.ShippingInPostLocker, quotes[0].Method)
	assert.Equal(t, int64(1499), quotes[0].CostPLN)
	assert.False(t, quotes[0].IsFree)
	assert.True(t, quotes[2].IsFree)
}

func TestRates_CustomThreshold(t *testing.T) {
	rates := shipping.DefaultRates()
	rates.FreeThreshold = 5000

	cost, err := rates.Cost(5000, models.ShippingCourier)
	assert.NoError(t, err)
	assert.Zero(t, cost)
}

func TestSubtotal(t *testing.T) {
	items := []models.CartItem{
		{Qty: 3, UnitPricePLN: 6990},
		{Qty: 1, UnitPricePLN: 1000},
	}
	assert.Equal(t, int64(21970), shipping.Subtotal(items))
	assert.Zero(t, shipping.Subtotal(nil))
}
