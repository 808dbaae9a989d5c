package repositories

import (
	"fmt"

	"lanari/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MediaRepository defines the interface for uploaded media records.
type MediaRepository interface {
	GetAll() ([]models.Media, error)
	GetByID(id string) (*models.Media, error)
	Create(media *models.Media) error
	Delete(id string) error
}

// GORMMediaRepository is a GORM implementation of MediaRepository.
type GORMMediaRepository struct {
	db *gorm.DB
}

// NewGORMMediaRepository creates a new instance of GORMMediaRepository.
func NewGORMMediaRepository(db *gorm.DB) *GORMMediaRepository {
	return &GORMMediaRepository{db: db}
}

func (r *GORMMediaRepository) GetAll() ([]models.Media, error) {
	var media []models.Media
	if err := r.db.Order("created_at DESC").Find(&media).Error; err != nil {
		return nil, fmt.Errorf("failed to get media: %w", err)
	}
	return media, nil
}

func (r *GORMMediaRepository) GetByID(id string) (*models.Media, error) {
	var media models.Media
	if err := r.db.First(&media, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("media with ID %s", id))
	}
	return &media, nil
}

func (r *GORMMediaRepository) Create(media *models.Media) error {
	if media.ID == "" {
		media.ID = uuid.New().String()
	}
	if err := r.db.Create(media).Error; err != nil {
		return fmt.Errorf("failed to create media: %w", err)
	}
	return nil
}

func (r *GORMMediaRepository) Delete(id string) error {
	res := r.db.Delete(&models.Media{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete media: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("media with ID %s for deletion: %w", id, ErrNotFound)
	}
	return nil
}
