package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"lanari/internal/models"
	"lanari/internal/repositories"
	"lanari/internal/shipping"
)

// MaxIdempotencyKeyLen matches the width of the idempotency_key columns.
const MaxIdempotencyKeyLen = 128

// SupportedCountry is the only country the shop ships to.
const SupportedCountry = "PL"

// errCartConverted aborts a transaction that finds its cart converted by a concurrent checkout.
var errCartConverted = errors.New("cart converted concurrently")

// CheckoutRequest carries the buyer and shipping details of one checkout.
type CheckoutRequest struct {
	CartID         string
	FirstName      string
	LastName       string
	Phone          string
	AddressLine1   string
	AddressLine2   string
	City           string
	PostalCode     string
	Country        string
	ShippingMethod string
}

// CheckoutResult is the order a checkout produced. Replayed is set when the order
// already existed, either for the idempotency key or for the cart.
type CheckoutResult struct {
	Order    *models.Order
	Replayed bool
}

// CheckoutService converts a cart into an order.
type CheckoutService struct {
	repos     *repositories.Repositories
	tx        repositories.Transactor
	rates     shipping.Rates
	publisher EventPublisher // optional
}

// NewCheckoutService creates a new CheckoutService. publisher may be nil.
func NewCheckoutService(repos *repositories.Repositories, tx repositories.Transactor, rates shipping.Rates, publisher EventPublisher) *CheckoutService {
	return &CheckoutService{
		repos:     repos,
		tx:        tx,
		rates:     rates,
		publisher: publisher,
	}
}

// Checkout places an order for buyer. The cart is req.CartID, or the cart bound to
// sessionToken when no id is given. An empty idempotencyKey disables key-based replay;
// a cart that was already converted is replayed regardless.
//
// Everything between the product re-read and marking the cart checked out runs in
// one transaction and leaves no trace when it fails.
func (s *CheckoutService) Checkout(ctx context.Context, buyer *models.User, req CheckoutRequest, sessionToken, idempotencyKey string) (*CheckoutResult, error) {
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	if len(idempotencyKey) > MaxIdempotencyKeyLen {
		return nil, invalid("Idempotency-Key must be at most %d characters", MaxIdempotencyKeyLen)
	}

	if idempotencyKey != "" {
		order, err := s.orderForKey(idempotencyKey)
		if err != nil {
			return nil, err
		}
		if order != nil {
			return replayFor(buyer, order, "idempotency key")
		}
	}

	cart, err := s.resolveCart(req.CartID, sessionToken)
	if err != nil {
		return nil, err
	}

	existing, err := s.repos.Orders.GetByCartID(cart.ID)
	if err == nil {
		return replayFor(buyer, existing, "cart")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	if cart.IsCheckedOut {
		return nil, invalid("cart already checked out")
	}
	if len(cart.Items) == 0 {
		return nil, invalid("cart is empty")
	}

	country := strings.ToUpper(strings.TrimSpace(req.Country))
	if country == "" {
		country = SupportedCountry
	}
	if country != SupportedCountry {
		return nil, invalid("only shipping to %s is supported", SupportedCountry)
	}

	method, err := shippingMethod(req.ShippingMethod, cart)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		CartID:               cart.ID,
		UserID:               buyer.ID,
		Status:               models.OrderStatusNew,
		Email:                buyer.Email,
		FullName:             buyerFullName(req),
		BuyerFirstName:       strings.TrimSpace(req.FirstName),
		BuyerLastName:        strings.TrimSpace(req.LastName),
		BuyerPhone:           strings.TrimSpace(req.Phone),
		BuyerEmail:           buyer.Email,
		ShippingAddressLine1: strings.TrimSpace(req.AddressLine1),
		ShippingAddressLine2: strings.TrimSpace(req.AddressLine2),
		ShippingCity:         strings.TrimSpace(req.City),
		ShippingPostalCode:   strings.TrimSpace(req.PostalCode),
		ShippingCountry:      country,
		ShippingMethod:       method,
	}
	if idempotencyKey != "" {
		order.IdempotencyKey = &idempotencyKey
	}

	err = s.tx.WithinTransaction(ctx, func(repos *repositories.Repositories) error {
		return s.placeOrder(repos, cart.ID, order, idempotencyKey)
	})
	if err != nil {
		if repositories.IsDuplicate(err) || errors.Is(err, errCartConverted) {
			return s.concurrentWinner(buyer, idempotencyKey, cart.ID)
		}
		return nil, err
	}

	log.Printf("Order %s created from cart %s for user %s (total %d)", order.ID, cart.ID, buyer.ID, order.TotalPLN)
	publishOrderEvent(s.publisher, EventOrderCreated, order)
	return &CheckoutResult{Order: order}, nil
}

func (s *CheckoutService) placeOrder(repos *repositories.Repositories, cartID string, order *models.Order, idempotencyKey string) error {
	cart, err := repos.Carts.GetByID(cartID)
	if err != nil {
		return translateNotFound(err, "cart not found")
	}
	if cart.IsCheckedOut {
		return errCartConverted
	}
	if len(cart.Items) == 0 {
		return invalid("cart is empty")
	}

	order.Items = make([]models.OrderItem, 0, len(cart.Items))
	var subtotal int64
	for _, it := range cart.Items {
		product, err := repos.Products.GetByID(it.ProductID)
		if errors.Is(err, repositories.ErrNotFound) {
			return invalid("product %s is unavailable", it.ProductID)
		}
		if err != nil {
			return err
		}
		if !product.IsActive {
			return invalid("product %s is unavailable", product.Name)
		}
		if product.StockQty < it.Qty {
			return conflict("not enough stock for %s", product.Name)
		}

		line := it.LineTotal()
		subtotal += line
		order.Items = append(order.Items, models.OrderItem{
			ProductID:    product.ID,
			Name:         product.Name,
			Qty:          it.Qty,
			UnitPricePLN: it.UnitPricePLN,
			LineTotalPLN: line,
		})
	}

	cost, err := s.rates.Cost(subtotal, order.ShippingMethod)
	if err != nil {
		return invalid("unknown shipping method")
	}
	order.SubtotalPLN = subtotal
	order.ShippingCostPLN = cost
	order.TotalPLN = subtotal + cost

	if err := repos.Orders.Create(order); err != nil {
		return err
	}

	if idempotencyKey != "" {
		if err := repos.Payments.Create(&models.PaymentAttempt{
			OrderID:        order.ID,
			Provider:       models.ProviderMock,
			Status:         models.PaymentStatusPending,
			IdempotencyKey: idempotencyKey,
		}); err != nil {
			return err
		}
	}

	for _, item := range order.Items {
		if err := repos.Products.DecrementStock(item.ProductID, item.Qty); err != nil {
			if errors.Is(err, repositories.ErrStockExhausted) {
				return conflict("oversell detected for %s", item.Name)
			}
			return err
		}
	}

	if order.UserID != "" {
		if err := repos.Profiles.Upsert(&models.CustomerProfile{
			UserID:       order.UserID,
			FirstName:    order.BuyerFirstName,
			LastName:     order.BuyerLastName,
			Phone:        order.BuyerPhone,
			AddressLine1: order.ShippingAddressLine1,
			AddressLine2: order.ShippingAddressLine2,
			City:         order.ShippingCity,
			PostalCode:   order.ShippingPostalCode,
			Country:      order.ShippingCountry,
		}); err != nil {
			return err
		}
	}

	if err := repos.Carts.ClearItems(cart.ID); err != nil {
		return err
	}
	if err := repos.Carts.SetShipping(cart.ID, order.ShippingMethod, order.ShippingCostPLN); err != nil {
		return err
	}
	return repos.Carts.MarkCheckedOut(cart.ID)
}

// orderForKey returns the order already placed under key, or nil.
func (s *CheckoutService) orderForKey(key string) (*models.Order, error) {
	attempt, err := s.repos.Payments.GetByIdempotencyKey(key)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	order, err := s.repos.Orders.GetByID(attempt.OrderID)
	if err != nil {
		return nil, fmt.Errorf("payment attempt %s points at a missing order: %w", attempt.ID, err)
	}
	return order, nil
}

func (s *CheckoutService) resolveCart(cartID, sessionToken string) (*models.Cart, error) {
	var (
		cart *models.Cart
		err  error
	)
	switch {
	case cartID != "":
		cart, err = s.repos.Carts.GetByID(cartID)
	case sessionToken != "":
		cart, err = s.repos.Carts.GetByToken(sessionToken)
	default:
		return nil, notFound("cart not found")
	}
	if err != nil {
		return nil, translateNotFound(err, "cart not found")
	}
	return cart, nil
}

// shippingMethod picks the method already stored on the cart; the requested one is
// only used when the cart has none.
func shippingMethod(requested string, cart *models.Cart) (models.ShippingMethod, error) {
	name := strings.TrimSpace(requested)
	if cart.ShippingMethod != nil {
		name = string(*cart.ShippingMethod)
	}
	if name == "" {
		return "", invalid("shipping method is required")
	}
	m, ok := models.ParseShippingMethod(name)
	if !ok {
		return "", invalid("unknown shipping method")
	}
	return m, nil
}

// concurrentWinner resolves a checkout that lost a race for the same cart or key.
// The committed order is returned as a replay.
func (s *CheckoutService) concurrentWinner(buyer *models.User, idempotencyKey, cartID string) (*CheckoutResult, error) {
	if idempotencyKey != "" {
		order, err := s.orderForKey(idempotencyKey)
		if err != nil {
			return nil, err
		}
		if order != nil {
			return replayFor(buyer, order, "idempotency key")
		}
	}
	order, err := s.repos.Orders.GetByCartID(cartID)
	if err == nil {
		return replayFor(buyer, order, "cart")
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, conflict("checkout conflicted with a concurrent request, retry")
	}
	return nil, err
}

// replayFor hands order back only to the buyer who placed it.
func replayFor(buyer *models.User, order *models.Order, reused string) (*CheckoutResult, error) {
	if order.UserID != buyer.ID {
		return nil, conflict("%s already used by another buyer", reused)
	}
	return &CheckoutResult{Order: order, Replayed: true}, nil
}

// buyerFullName is the name sent with this checkout, not the account name.
func buyerFullName(req CheckoutRequest) string {
	return strings.TrimSpace(strings.TrimSpace(req.FirstName) + " " + strings.TrimSpace(req.LastName))
}
