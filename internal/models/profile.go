package models

import "time"

// CustomerProfile holds the reusable shipping details of a user, overwritten on every checkout.
type CustomerProfile struct {
	ID           string    `json:"-" gorm:"primaryKey;type:varchar(36)"`
	UserID       string    `json:"-" gorm:"type:varchar(36);not null;uniqueIndex"`
	FirstName    string    `json:"first_name" gorm:"type:varchar(60);not null"`
	LastName     string    `json:"last_name" gorm:"type:varchar(80);not null"`
	Phone        string    `json:"phone" gorm:"type:varchar(20);not null"`
	AddressLine1 string    `json:"address_line1" gorm:"type:varchar(120);not null"`
	AddressLine2 string    `json:"address_line2" gorm:"type:varchar(120)"`
	City         string    `json:"city" gorm:"type:varchar(80);not null"`
	PostalCode   string    `json:"postal_code" gorm:"type:varchar(10);not null"`
	Country      string    `json:"country" gorm:"type:varchar(2);not null;default:PL"`
	UpdatedAt    time.Time `json:"updated_at"`
}
