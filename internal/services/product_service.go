package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"lanari/internal/cache"
	"lanari/internal/models"
	"lanari/internal/repositories"
)

// ProductService handles business logic related to the catalog.
type ProductService struct {
	repo  repositories.ProductRepository
	cache cache.ProductCache // optional
}

// ProductPatch carries the fields of a partial product update; nil means unchanged.
type ProductPatch struct {
	Name        *string
	Description *string
	PricePLN    *int64
	IsActive    *bool
	ImageURL    *string
	StockQty    *int
}

// NewProductService creates a new ProductService. productCache may be nil.
func NewProductService(repo repositories.ProductRepository, productCache cache.ProductCache) *ProductService {
	return &ProductService{
		repo:  repo,
		cache: productCache,
	}
}

// GetProducts lists the catalog. The active list is served from cache when possible.
func (s *ProductService) GetProducts(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	if !activeOnly || s.cache == nil {
		return s.repo.GetAll(activeOnly)
	}

	products, err := s.cache.GetActiveProducts(ctx)
	if err == nil {
		return products, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("Product cache read failed: %v", err)
	}

	products, err = s.repo.GetAll(true)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetActiveProducts(ctx, products); err != nil {
		log.Printf("Product cache write failed: %v", err)
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, translateNotFound(err, "product not found")
	}
	return product, nil
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return invalid("name cannot be empty")
	}
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// UpdateProduct applies a partial update. Only the fields set in patch are written,
// so a stock decrement committed by a checkout in the meantime is kept.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*models.Product, error) {
	fields, err := patch.columns()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return s.GetProductByID(id)
	}

	if err := s.repo.Update(id, fields); err != nil {
		return nil, translateNotFound(err, "product not found")
	}
	s.invalidate(ctx)
	return s.GetProductByID(id)
}

// columns validates the patch and maps its set fields to column names.
func (p ProductPatch) columns() (map[string]interface{}, error) {
	fields := make(map[string]interface{})
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, invalid("name cannot be empty")
		}
		fields["name"] = name
	}
	if p.PricePLN != nil {
		if *p.PricePLN < 1 {
			return nil, invalid("price_pln must be >= 1")
		}
		fields["price_pln"] = *p.PricePLN
	}
	if p.StockQty != nil {
		if *p.StockQty < 0 {
			return nil, invalid("stock_qty must be >= 0")
		}
		fields["stock_qty"] = *p.StockQty
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.IsActive != nil {
		fields["is_active"] = *p.IsActive
	}
	if p.ImageURL != nil {
		fields["image_url"] = *p.ImageURL
	}
	return fields, nil
}

// DeactivateProduct hides a product from the catalog. Orders keep referencing it,
// so products are never hard deleted.
func (s *ProductService) DeactivateProduct(ctx context.Context, id string) error {
	active := false
	_, err := s.UpdateProduct(ctx, id, ProductPatch{IsActive: &active})
	return err
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("Product cache invalidation failed: %v", err)
	}
}
