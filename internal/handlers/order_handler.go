package handlers

import (
	"log"

	"lanari/internal/middleware"
	"lanari/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// IdempotencyKeyHeader names the header carrying the checkout idempotency key.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderHandler handles HTTP requests for checkout and orders.
type OrderHandler struct {
	checkout *services.CheckoutService
	orders   *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(checkout *services.CheckoutService, orders *services.OrderService) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		orders:   orders,
		validate: NewValidator(),
	}
}

// RegisterRoutes registers the customer order routes. auth must authenticate the caller.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/checkout", auth, h.HandleCheckout)

	orderRoutes := router.Group("/orders", auth)
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
}

// RegisterAdminRoutes registers order management on an admin-only router.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleAdminGetOrders)
	orderRoutes.Get("/:id", h.HandleAdminGetOrder)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// CheckoutRequest is the checkout body. Without cart_id the session cart is used.
type CheckoutRequest struct {
	CartID         string `json:"cart_id"`
	FirstName      string `json:"first_name" validate:"required,max=60"`
	LastName       string `json:"last_name" validate:"required,max=80"`
	Phone          string `json:"phone" validate:"required,pl_phone"`
	AddressLine1   string `json:"address_line1" validate:"required,max=120"`
	AddressLine2   string `json:"address_line2" validate:"max=120"`
	City           string `json:"city" validate:"required,max=80"`
	PostalCode     string `json:"postal_code" validate:"required,pl_postal_code"`
	Country        string `json:"country" validate:"omitempty,len=2"`
	ShippingMethod string `json:"shipping_method"`
}

func (h *OrderHandler) placeOrder(c *fiber.Ctx, idempotencyKey string) error {
	var req CheckoutRequest
	if handled, err := parseAndValidate(c, h.validate, &req); handled {
		return err
	}

	user := middleware.CurrentUser(c)
	res, err := h.checkout.Checkout(c.UserContext(), user, services.CheckoutRequest{
		CartID:         req.CartID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		AddressLine1:   req.AddressLine1,
		AddressLine2:   req.AddressLine2,
		City:           req.City,
		PostalCode:     req.PostalCode,
		Country:        req.Country,
		ShippingMethod: req.ShippingMethod,
	}, SessionToken(c), idempotencyKey)
	if err != nil {
		log.Printf("Checkout failed for user %s: %v", user.ID, err)
		return respondError(c, err, "Checkout failed")
	}

	if res.Replayed {
		return c.Status(fiber.StatusOK).JSON(res.Order)
	}
	return c.Status(fiber.StatusCreated).JSON(res.Order)
}

// HandleCheckout converts a cart into an order. Retries carrying the same
// Idempotency-Key get the original order back with 200.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	return h.placeOrder(c, c.Get(IdempotencyKeyHeader))
}

// HandleCreateOrder is the older checkout entry point; it takes no idempotency key.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	return h.placeOrder(c, "")
}

// HandleGetOrders lists the caller's orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.orders.GetOrdersForUser(middleware.CurrentUser(c).ID)
	if err != nil {
		return respondError(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves one of the caller's orders.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.orders.GetOrderForUser(middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve order")
	}
	return c.JSON(order)
}

func (h *OrderHandler) HandleAdminGetOrders(c *fiber.Ctx) error {
	orders, err := h.orders.GetRecentOrders()
	if err != nil {
		return respondError(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

func (h *OrderHandler) HandleAdminGetOrder(c *fiber.Ctx) error {
	order, err := h.orders.GetOrderByID(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve order")
	}
	return c.JSON(order)
}

// StatusRequest is the body of an order status change.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus updates the status of an existing order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req StatusRequest
	if handled, err := parseAndValidate(c, h.validate, &req); handled {
		return err
	}

	order, err := h.orders.UpdateOrderStatus(c.Params("id"), req.Status)
	if err != nil {
		log.Printf("Error updating order status for order %s: %v", c.Params("id"), err)
		return respondError(c, err, "Could not update order status")
	}
	return c.JSON(order)
}
