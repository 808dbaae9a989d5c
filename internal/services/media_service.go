package services

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"strings"

	"lanari/internal/models"
	"lanari/internal/repositories"
	"lanari/pkg/storage"

	"github.com/google/uuid"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Upload describes one file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// MediaService stores uploaded images and keeps their records.
type MediaService struct {
	repo    repositories.MediaRepository
	store   storage.Storage
	maxSize int64
}

// NewMediaService creates a new MediaService. Uploads larger than maxSize bytes are rejected.
func NewMediaService(repo repositories.MediaRepository, store storage.Storage, maxSize int64) *MediaService {
	return &MediaService{repo: repo, store: store, maxSize: maxSize}
}

// Upload validates the file, saves it under a fresh name and records it.
// ownerID is nil for anonymous uploads.
func (s *MediaService) Upload(ctx context.Context, ownerID *string, up Upload, caption string) (*models.Media, error) {
	if !strings.HasPrefix(up.ContentType, "image/") {
		return nil, invalid("only images are allowed")
	}
	if up.Size <= 0 {
		return nil, invalid("file is empty")
	}
	if s.maxSize > 0 && up.Size > s.maxSize {
		return nil, invalid("file too large, max %d bytes", s.maxSize)
	}
	if len(caption) > 500 {
		return nil, invalid("caption must be at most 500 characters")
	}

	ext := strings.ToLower(filepath.Ext(up.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	if !allowedImageExts[ext] {
		return nil, invalid("unsupported file extension %s", ext)
	}

	name := uuid.New().String() + ext
	url, err := s.store.Save(ctx, name, up.Body)
	if err != nil {
		return nil, err
	}

	media := &models.Media{
		OwnerID:  ownerID,
		Filename: name,
		URL:      url,
		Caption:  strings.TrimSpace(caption),
		IsPublic: true,
	}
	if err := s.repo.Create(media); err != nil {
		if delErr := s.store.Delete(ctx, name); delErr != nil {
			log.Printf("Failed to remove orphaned upload %s: %v", name, delErr)
		}
		return nil, err
	}
	return media, nil
}

// ListMedia returns every record, newest first.
func (s *MediaService) ListMedia() ([]models.Media, error) {
	return s.repo.GetAll()
}

// DeleteMedia removes the record; the stored file is removed best effort.
func (s *MediaService) DeleteMedia(ctx context.Context, id string) error {
	media, err := s.repo.GetByID(id)
	if err != nil {
		return translateNotFound(err, "media not found")
	}
	if err := s.repo.Delete(id); err != nil {
		return translateNotFound(err, "media not found")
	}
	if err := s.store.Delete(ctx, media.Filename); err != nil {
		log.Printf("Warning: failed to remove stored file %s: %v", media.Filename, err)
	}
	return nil
}
