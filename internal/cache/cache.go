package cache

import (
	"context"
	"errors"

	"lanari/internal/models"
)

// ProductCache stores the public list of active products.
type ProductCache interface {
	GetActiveProducts(ctx context.Context) ([]models.Product, error)
	SetActiveProducts(ctx context.Context, products []models.Product) error
	Invalidate(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
