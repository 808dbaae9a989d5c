package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusNew           OrderStatus = "NEW"
	OrderStatusInPreparation OrderStatus = "IN_PREPARATION"
	OrderStatusPaid          OrderStatus = "PAID"
	OrderStatusShipped       OrderStatus = "SHIPPED"
	OrderStatusCanceled      OrderStatus = "CANCELED"
)

// OrderStatuses lists every allowed status.
var OrderStatuses = []OrderStatus{
	OrderStatusNew, OrderStatusInPreparation, OrderStatusPaid, OrderStatusShipped, OrderStatusCanceled,
}

// ParseOrderStatus returns the status named by s and whether it is known.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Order represents a customer order. Buyer, shipping and item fields are snapshots
// taken at checkout and are never rewritten; only Status changes afterwards.
type Order struct {
	ID             string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID         string      `json:"cart_id" gorm:"type:varchar(36);not null;uniqueIndex:uq_orders_cart_id"`
	UserID         string      `json:"user_id" gorm:"type:varchar(36);index"`
	Status         OrderStatus `json:"status" gorm:"type:varchar(32);not null;default:NEW"`
	IdempotencyKey *string     `json:"-" gorm:"type:varchar(128);uniqueIndex"`

	Email    string `json:"email" gorm:"type:varchar(255);not null;index"`
	FullName string `json:"full_name" gorm:"type:varchar(255);not null"`

	BuyerFirstName string `json:"buyer_first_name" gorm:"type:varchar(60);not null"`
	BuyerLastName  string `json:"buyer_last_name" gorm:"type:varchar(80);not null"`
	BuyerPhone     string `json:"buyer_phone" gorm:"type:varchar(20);not null"`
	BuyerEmail     string `json:"buyer_email" gorm:"type:varchar(255);not null"`

	ShippingAddressLine1 string         `json:"shipping_address_line1" gorm:"type:varchar(120);not null"`
	ShippingAddressLine2 string         `json:"shipping_address_line2" gorm:"type:varchar(120)"`
	ShippingCity         string         `json:"shipping_city" gorm:"type:varchar(80);not null"`
	ShippingPostalCode   string         `json:"shipping_postal_code" gorm:"type:varchar(10);not null"`
	ShippingCountry      string         `json:"shipping_country" gorm:"type:varchar(2);not null"`
	ShippingMethod       ShippingMethod `json:"shipping_method" gorm:"type:varchar(32);not null"`
	ShippingCostPLN      int64          `json:"shipping_cost_pln" gorm:"not null"`

	SubtotalPLN int64       `json:"subtotal_pln" gorm:"not null"`
	TotalPLN    int64       `json:"total_pln" gorm:"not null"`
	Items       []OrderItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time   `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// OrderItem is an immutable snapshot of one purchased line.
type OrderItem struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID      string `json:"order_id" gorm:"type:varchar(36);not null;index"`
	ProductID    string `json:"product_id" gorm:"type:varchar(36);not null;index"`
	Name         string `json:"name" gorm:"type:varchar(255);not null"`
	Qty          int    `json:"qty" gorm:"not null"`
	UnitPricePLN int64  `json:"unit_price_pln" gorm:"not null"`
	LineTotalPLN int64  `json:"line_total_pln" gorm:"not null"`
}
