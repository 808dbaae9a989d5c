// Package shipping holds the shipping cost rule: a per-method price table plus
// a free-shipping threshold. Everything here is a pure function of its inputs.
package shipping

import (
	"fmt"

	"lanari/internal/models"
)

// DefaultFreeThreshold is 200 PLN in grosze.
const DefaultFreeThreshold int64 = 20000

// Rates configures the rule.
type Rates struct {
	Prices        map[models.ShippingMethod]int64
	FreeThreshold int64
}

// MethodCost is the quoted cost of one method.
type MethodCost struct {
	Method  models.ShippingMethod `json:"method"`
	CostPLN int64                 `json:"cost_pln"`
	IsFree  bool                  `json:"is_free"`
}

// DefaultRates returns the shop's standard price table.
func DefaultRates() Rates {
	return Rates{
		Prices: map[models.ShippingMethod]int64{
			models.ShippingInPostLocker: 1499,
			models.ShippingCourier:      1999,
			models.ShippingPickup:       0,
		},
		FreeThreshold: DefaultFreeThreshold,
	}
}

// Cost returns the shipping cost for a subtotal. Pickup is always free and every
// method is free once the subtotal reaches the threshold.
func (r Rates) Cost(subtotal int64, method models.ShippingMethod) (int64, error) {
	price, ok := r.Prices[method]
	if !ok {
		return 0, fmt.Errorf("unknown shipping method %q", method)
	}
	if method == models.ShippingPickup {
		return 0, nil
	}
	if subtotal >= r.FreeThreshold {
		return 0, nil
	}
	return price, nil
}

// Quote prices every known method for the subtotal.
func (r Rates) Quote(subtotal int64) []MethodCost {
	quotes := make([]MethodCost, 0, len(models.ShippingMethods))
	for _, m := range models.ShippingMethods {
		cost, err := r.Cost(subtotal, m)
		if err != nil {
			continue
		}
		quotes = append(quotes, MethodCost{Method: m, CostPLN: cost, IsFree: cost == 0})
	}
	return quotes
}

// Subtotal sums the line totals of the cart items.
func Subtotal(items []models.CartItem) int64 {
	var total int64
	for _, it := range items {
		total += it.LineTotal()
	}
	return total
}
