package models

import "time"

// Cart is the pre-order container. It is converted into at most one order.
type Cart struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Token           string          `json:"-" gorm:"uniqueIndex;type:varchar(64)"`
	IsCheckedOut    bool            `json:"is_checked_out" gorm:"not null;default:false"`
	ShippingMethod  *ShippingMethod `json:"shipping_method" gorm:"type:varchar(32)"`
	ShippingCostPLN int64           `json:"shipping_cost_pln" gorm:"not null;default:0"`
	Items           []CartItem      `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CartItem is one cart line. UnitPricePLN is the product price at the time it was added.
type CartItem struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID       string    `json:"cart_id" gorm:"type:varchar(36);not null;uniqueIndex:uq_cart_product"`
	ProductID    string    `json:"product_id" gorm:"type:varchar(36);not null;uniqueIndex:uq_cart_product"`
	Qty          int       `json:"qty" gorm:"not null;default:1"`
	UnitPricePLN int64     `json:"unit_price_pln" gorm:"not null"`
	Product      *Product  `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// LineTotal returns qty times the price snapshot.
func (i CartItem) LineTotal() int64 {
	return int64(i.Qty) * i.UnitPricePLN
}
