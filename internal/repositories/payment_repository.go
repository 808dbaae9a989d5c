package repositories

import (
	"fmt"

	"lanari/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentRepository defines the interface for payment attempt data access.
type PaymentRepository interface {
	GetByIdempotencyKey(key string) (*models.PaymentAttempt, error)
	GetByOrderID(orderID, provider string) (*models.PaymentAttempt, error)
	Create(attempt *models.PaymentAttempt) error
	UpdateStatus(id string, status models.PaymentStatus) error
}

// GORMPaymentRepository is a GORM implementation of PaymentRepository.
type GORMPaymentRepository struct {
	db *gorm.DB
}

// NewGORMPaymentRepository creates a new instance of GORMPaymentRepository.
func NewGORMPaymentRepository(db *gorm.DB) *GORMPaymentRepository {
	return &GORMPaymentRepository{db: db}
}

func (r *GORMPaymentRepository) GetByIdempotencyKey(key string) (*models.PaymentAttempt, error) {
	var attempt models.PaymentAttempt
	if err := r.db.First(&attempt, "idempotency_key = ?", key).Error; err != nil {
		return nil, notFoundOr(err, "payment attempt for idempotency key")
	}
	return &attempt, nil
}

func (r *GORMPaymentRepository) GetByOrderID(orderID, provider string) (*models.PaymentAttempt, error) {
	var attempt models.PaymentAttempt
	if err := r.db.First(&attempt, "order_id = ? AND provider = ?", orderID, provider).Error; err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("payment attempt for order %s", orderID))
	}
	return &attempt, nil
}

func (r *GORMPaymentRepository) Create(attempt *models.PaymentAttempt) error {
	if attempt.ID == "" {
		attempt.ID = uuid.New().String()
	}
	if err := r.db.Create(attempt).Error; err != nil {
		return fmt.Errorf("failed to create payment attempt: %w", err)
	}
	return nil
}

func (r *GORMPaymentRepository) UpdateStatus(id string, status models.PaymentStatus) error {
	res := r.db.Model(&models.PaymentAttempt{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update payment attempt %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("payment attempt %s: %w", id, ErrNotFound)
	}
	return nil
}
