package repositories

import (
	"fmt"

	"lanari/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartRepository defines the interface for cart and cart line data access.
type CartRepository interface {
	Create(cart *models.Cart) error
	GetByID(id string) (*models.Cart, error)
	GetByToken(token string) (*models.Cart, error)
	SetShipping(cartID string, method models.ShippingMethod, costPLN int64) error
	MarkCheckedOut(cartID string) error

	GetItem(cartID, itemID string) (*models.CartItem, error)
	FindItemByProduct(cartID, productID string) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItemQty(itemID string, qty int) error
	DeleteItem(itemID string) error
	ClearItems(cartID string) error
}

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

func (r *GORMCartRepository) withItems() *gorm.DB {
	return r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Items.Product")
}

// Create creates an empty cart.
func (r *GORMCartRepository) Create(cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	if err := r.db.Omit("Items").Create(cart).Error; err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// GetByID retrieves a cart with its lines and their products.
func (r *GORMCartRepository) GetByID(id string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.withItems().First(&cart, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("cart with ID %s", id))
	}
	return &cart, nil
}

// GetByToken retrieves the cart bound to a session token.
func (r *GORMCartRepository) GetByToken(token string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.withItems().First(&cart, "token = ?", token).Error; err != nil {
		return nil, notFoundOr(err, "cart for session token")
	}
	return &cart, nil
}

// SetShipping stores the selected shipping method and its cost.
func (r *GORMCartRepository) SetShipping(cartID string, method models.ShippingMethod, costPLN int64) error {
	res := r.db.Model(&models.Cart{}).Where("id = ?", cartID).Updates(map[string]interface{}{
		"shipping_method":   method,
		"shipping_cost_pln": costPLN,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to set shipping for cart %s: %w", cartID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart with ID %s: %w", cartID, ErrNotFound)
	}
	return nil
}

// MarkCheckedOut flags the cart as converted.
func (r *GORMCartRepository) MarkCheckedOut(cartID string) error {
	res := r.db.Model(&models.Cart{}).Where("id = ?", cartID).Update("is_checked_out", true)
	if res.Error != nil {
		return fmt.Errorf("failed to check out cart %s: %w", cartID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart with ID %s: %w", cartID, ErrNotFound)
	}
	return nil
}

// GetItem retrieves one line of a cart.
func (r *GORMCartRepository) GetItem(cartID, itemID string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.First(&item, "id = ? AND cart_id = ?", itemID, cartID).Error; err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("item %s in cart %s", itemID, cartID))
	}
	return &item, nil
}

// FindItemByProduct retrieves the line holding productID, if any.
func (r *GORMCartRepository) FindItemByProduct(cartID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.First(&item, "cart_id = ? AND product_id = ?", cartID, productID).Error; err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("product %s in cart %s", productID, cartID))
	}
	return &item, nil
}

// CreateItem adds a line to a cart.
func (r *GORMCartRepository) CreateItem(item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Omit("Product").Create(item).Error; err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	return nil
}

// UpdateItemQty changes the quantity of a line.
func (r *GORMCartRepository) UpdateItemQty(itemID string, qty int) error {
	res := r.db.Model(&models.CartItem{}).Where("id = ?", itemID).Update("qty", qty)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item %s: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
	}
	return nil
}

// DeleteItem removes a line.
func (r *GORMCartRepository) DeleteItem(itemID string) error {
	res := r.db.Delete(&models.CartItem{}, "id = ?", itemID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item %s: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
	}
	return nil
}

// ClearItems removes every line of a cart.
func (r *GORMCartRepository) ClearItems(cartID string) error {
	if err := r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart %s: %w", cartID, err)
	}
	return nil
}
