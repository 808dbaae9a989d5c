package models

// ShippingMethod is one of the delivery options offered at checkout.
type ShippingMethod string

const (
	ShippingInPostLocker ShippingMethod = "INPOST_LOCKER"
	ShippingCourier      ShippingMethod = "COURIER"
	ShippingPickup       ShippingMethod = "PICKUP"
)

// ShippingMethods lists the methods in display order.
var ShippingMethods = []ShippingMethod{ShippingInPostLocker, ShippingCourier, ShippingPickup}

// ParseShippingMethod returns the method named by s and whether it is known.
func ParseShippingMethod(s string) (ShippingMethod, bool) {
	for _, m := range ShippingMethods {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}
