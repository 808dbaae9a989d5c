package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"lanari/internal/models"
	"lanari/internal/repositories"
	"lanari/internal/shipping"
)

// MaxLineQty is the largest quantity accepted in one add or update.
const MaxLineQty = 100

// CartLine is the presentation of one cart item.
type CartLine struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	Qty          int    `json:"qty"`
	UnitPricePLN int64  `json:"unit_price_pln"`
	LineTotalPLN int64  `json:"line_total_pln"`
}

// CartView is a cart with priced lines.
type CartView struct {
	ID       string     `json:"id"`
	Items    []CartLine `json:"items"`
	TotalPLN int64      `json:"total_pln"`
}

// ShippingOptions quotes every method for a cart.
type ShippingOptions struct {
	CartID                   string                 `json:"cart_id"`
	Currency                 string                 `json:"currency"`
	SubtotalPLN              int64                  `json:"subtotal_pln"`
	FreeShippingThresholdPLN int64                  `json:"free_shipping_threshold_pln"`
	Methods                  []shipping.MethodCost  `json:"methods"`
	Selected                 *shipping.MethodCost   `json:"selected"`
}

// ShippingSummary is the cart total once a method is chosen.
type ShippingSummary struct {
	CartID          string                `json:"cart_id"`
	SubtotalPLN     int64                 `json:"subtotal_pln"`
	ShippingMethod  models.ShippingMethod `json:"shipping_method"`
	ShippingCostPLN int64                 `json:"shipping_cost_pln"`
	TotalPLN        int64                 `json:"total_pln"`
}

// CartService handles business logic related to carts.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
	rates    shipping.Rates
}

// NewCartService creates a new CartService.
func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository, rates shipping.Rates) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		rates:    rates,
	}
}

func newCartToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate cart token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// CreateCart creates an empty cart with a fresh session token.
func (s *CartService) CreateCart() (*models.Cart, error) {
	token, err := newCartToken()
	if err != nil {
		return nil, err
	}
	cart := &models.Cart{Token: token}
	if err := s.carts.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SessionCart returns the open cart bound to token, or a new cart when the token
// is empty, unknown or belongs to a checked-out cart. Callers must hand the
// returned cart's Token back to the client.
func (s *CartService) SessionCart(token string) (*models.Cart, error) {
	if token != "" {
		cart, err := s.carts.GetByToken(token)
		if err == nil && !cart.IsCheckedOut {
			return cart, nil
		}
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
	}
	return s.CreateCart()
}

func (s *CartService) getCart(id string) (*models.Cart, error) {
	cart, err := s.carts.GetByID(id)
	if err != nil {
		return nil, translateNotFound(err, "cart not found")
	}
	return cart, nil
}

// GetCart returns the cart with its priced lines.
func (s *CartService) GetCart(id string) (*CartView, error) {
	cart, err := s.getCart(id)
	if err != nil {
		return nil, err
	}
	return NewCartView(cart), nil
}

// AddItem puts qty of a product into the cart. Adding a product that is already
// in the cart increases the quantity of the existing line.
func (s *CartService) AddItem(cartID, productID string, qty int) (*CartView, error) {
	if qty < 1 || qty > MaxLineQty {
		return nil, invalid("qty must be between 1 and %d", MaxLineQty)
	}

	cart, err := s.getCart(cartID)
	if err != nil {
		return nil, err
	}
	if cart.IsCheckedOut {
		return nil, invalid("cart already checked out")
	}

	product, err := s.products.GetByID(productID)
	if err != nil {
		return nil, translateNotFound(err, "product not found")
	}
	if !product.IsActive {
		return nil, notFound("product not found")
	}

	item, err := s.carts.FindItemByProduct(cartID, productID)
	switch {
	case err == nil:
		if item.Qty+qty > MaxLineQty {
			return nil, invalid("line qty cannot exceed %d, cart already holds %d", MaxLineQty, item.Qty)
		}
		if err := s.carts.UpdateItemQty(item.ID, item.Qty+qty); err != nil {
			return nil, err
		}
	case errors.Is(err, repositories.ErrNotFound):
		err := s.carts.CreateItem(&models.CartItem{
			CartID:       cartID,
			ProductID:    productID,
			Qty:          qty,
			UnitPricePLN: product.PricePLN,
		})
		if repositories.IsDuplicate(err) {
			return nil, conflict("product was added to the cart concurrently, retry")
		}
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.GetCart(cartID)
}

// UpdateItem sets the quantity of a line; zero removes it.
func (s *CartService) UpdateItem(cartID, itemID string, qty int) (*CartView, error) {
	if qty < 0 || qty > MaxLineQty {
		return nil, invalid("qty must be between 0 and %d", MaxLineQty)
	}
	if _, err := s.carts.GetItem(cartID, itemID); err != nil {
		return nil, translateNotFound(err, "item not found")
	}

	if qty == 0 {
		if err := s.carts.DeleteItem(itemID); err != nil {
			return nil, translateNotFound(err, "item not found")
		}
	} else if err := s.carts.UpdateItemQty(itemID, qty); err != nil {
		return nil, translateNotFound(err, "item not found")
	}
	return s.GetCart(cartID)
}

// RemoveItem deletes a line from the cart.
func (s *CartService) RemoveItem(cartID, itemID string) error {
	if _, err := s.carts.GetItem(cartID, itemID); err != nil {
		return translateNotFound(err, "item not found")
	}
	return translateNotFound(s.carts.DeleteItem(itemID), "item not found")
}

// SetShipping stores the chosen method on the cart and prices it.
func (s *CartService) SetShipping(cartID, method string) (*ShippingSummary, error) {
	cart, err := s.getCart(cartID)
	if err != nil {
		return nil, err
	}
	m, ok := models.ParseShippingMethod(method)
	if !ok {
		return nil, invalid("unknown shipping method")
	}

	subtotal := shipping.Subtotal(cart.Items)
	cost, err := s.rates.Cost(subtotal, m)
	if err != nil {
		return nil, invalid("unknown shipping method")
	}
	if err := s.carts.SetShipping(cart.ID, m, cost); err != nil {
		return nil, err
	}

	return &ShippingSummary{
		CartID:          cart.ID,
		SubtotalPLN:     subtotal,
		ShippingMethod:  m,
		ShippingCostPLN: cost,
		TotalPLN:        subtotal + cost,
	}, nil
}

// ShippingOptions quotes every method for the cart's current subtotal.
func (s *CartService) ShippingOptions(cartID string) (*ShippingOptions, error) {
	cart, err := s.getCart(cartID)
	if err != nil {
		return nil, err
	}

	subtotal := shipping.Subtotal(cart.Items)
	opts := &ShippingOptions{
		CartID:                   cart.ID,
		Currency:                 "PLN",
		SubtotalPLN:              subtotal,
		FreeShippingThresholdPLN: s.rates.FreeThreshold,
		Methods:                  s.rates.Quote(subtotal),
	}
	if cart.ShippingMethod != nil {
		if cost, err := s.rates.Cost(subtotal, *cart.ShippingMethod); err == nil {
			opts.Selected = &shipping.MethodCost{Method: *cart.ShippingMethod, CostPLN: cost, IsFree: cost == 0}
		}
	}
	return opts, nil
}

// NewCartView prices the lines of a loaded cart.
func NewCartView(cart *models.Cart) *CartView {
	view := &CartView{ID: cart.ID, Items: make([]CartLine, 0, len(cart.Items))}
	for _, it := range cart.Items {
		name := fmt.Sprintf("Product %s", it.ProductID)
		if it.Product != nil {
			name = it.Product.Name
		}
		line := CartLine{
			ID:           it.ID,
			ProductID:    it.ProductID,
			Name:         name,
			Qty:          it.Qty,
			UnitPricePLN: it.UnitPricePLN,
			LineTotalPLN: it.LineTotal(),
		}
		view.TotalPLN += line.LineTotalPLN
		view.Items = append(view.Items, line)
	}
	return view
}
