package services

import (
	"errors"

	"lanari/internal/models"
	"lanari/internal/repositories"
)

// ProfileService exposes the checkout profile saved for a user.
type ProfileService struct {
	repo repositories.ProfileRepository
}

func NewProfileService(repo repositories.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// GetCheckoutProfile returns nil without error when the user never checked out.
func (s *ProfileService) GetCheckoutProfile(userID string) (*models.CustomerProfile, error) {
	profile, err := s.repo.GetByUserID(userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}
