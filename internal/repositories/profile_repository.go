package repositories

import (
	"errors"
	"fmt"
	"time"

	"lanari/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for customer profile data access.
type ProfileRepository interface {
	GetByUserID(userID string) (*models.CustomerProfile, error)
	Upsert(profile *models.CustomerProfile) error
}

// GORMProfileRepository is a GORM implementation of ProfileRepository.
type GORMProfileRepository struct {
	db *gorm.DB
}

// NewGORMProfileRepository creates a new instance of GORMProfileRepository.
func NewGORMProfileRepository(db *gorm.DB) *GORMProfileRepository {
	return &GORMProfileRepository{db: db}
}

// GetByUserID retrieves the profile of a user.
func (r *GORMProfileRepository) GetByUserID(userID string) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	if err := r.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("profile of user %s", userID))
	}
	return &profile, nil
}

// Upsert overwrites the user's profile, creating it on first checkout.
func (r *GORMProfileRepository) Upsert(profile *models.CustomerProfile) error {
	profile.UpdatedAt = time.Now()

	existing, err := r.GetByUserID(profile.UserID)
	switch {
	case errors.Is(err, ErrNotFound):
		if profile.ID == "" {
			profile.ID = uuid.New().String()
		}
		if err := r.db.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		return nil
	case err != nil:
		return err
	}

	profile.ID = existing.ID
	if err := r.db.Model(profile).Select("*").Updates(profile).Error; err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}
