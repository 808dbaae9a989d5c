package models

import "time"

// PaymentStatus is the state of a payment attempt.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusSucceeded PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// ProviderMock is the only payment provider wired so far.
const ProviderMock = "mock"

// PaymentAttempt is created once per idempotency key and points at exactly one order.
type PaymentAttempt struct {
	ID             string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID        string        `json:"order_id" gorm:"type:varchar(36);not null;index"`
	Provider       string        `json:"provider" gorm:"type:varchar(50);not null;default:mock"`
	Status         PaymentStatus `json:"status" gorm:"type:varchar(32);not null;default:PENDING"`
	IdempotencyKey string        `json:"-" gorm:"type:varchar(128);not null;uniqueIndex"`
	CreatedAt      time.Time     `json:"created_at"`
}
