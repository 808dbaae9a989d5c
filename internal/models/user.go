package models

import "time"

// User represents a registered customer or shop administrator.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"` // Never serialized
	FullName     string    `json:"full_name" gorm:"type:varchar(255)"`
	IsActive     bool      `json:"is_active" gorm:"not null"`
	IsAdmin      bool      `json:"is_admin" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
}
