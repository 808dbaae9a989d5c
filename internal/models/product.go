package models

import "time"

// Product represents a catalog entry. Prices are stored in grosze.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(120);not null"`
	Description string    `json:"description" gorm:"type:text"`
	PricePLN    int64     `json:"price_pln" gorm:"not null"`
	IsActive    bool      `json:"is_active" gorm:"not null;index"`
	ImageURL    string    `json:"image_url" gorm:"type:varchar(512)"`
	StockQty    int       `json:"stock_qty" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
