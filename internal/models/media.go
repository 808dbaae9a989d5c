package models

import "time"

// Media is an uploaded image.
type Media struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID   *string   `json:"owner_id" gorm:"type:varchar(36);index"`
	Filename  string    `json:"filename" gorm:"type:varchar(255);not null"`
	URL       string    `json:"url" gorm:"type:varchar(512);not null"`
	Caption   string    `json:"caption" gorm:"type:varchar(500)"`
	IsPublic  bool      `json:"is_public" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// All returns every model for auto-migration.
func All() []interface{} {
	return []interface{}{
		&User{}, &Product{}, &Cart{}, &CartItem{}, &Order{}, &OrderItem{},
		&PaymentAttempt{}, &CustomerProfile{}, &Media{},
	}
}
