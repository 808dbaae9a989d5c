package handlers

import (
	"time"

	"lanari/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	// CartCookie carries the session cart token.
	CartCookie = "cart_token"
	// CartTokenHeader is accepted in place of the cookie by API clients.
	CartTokenHeader = "X-Cart-Token"

	cartCookieMaxAge = 30 * 24 * time.Hour
)

// CartHandler handles HTTP requests for carts and shipping selection.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
	secure   bool
}

// NewCartHandler creates a new CartHandler. secureCookie marks the session cookie Secure.
func NewCartHandler(service *services.CartService, secureCookie bool) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: NewValidator(),
		secure:   secureCookie,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	carts := router.Group("/carts")
	carts.Post("/", h.HandleCreateCart)
	carts.Get("/:id", h.HandleGetCart)
	carts.Post("/:id/items", h.HandleAddItem)
	carts.Patch("/:id/items/:item_id", h.HandleUpdateItem)
	carts.Delete("/:id/items/:item_id", h.HandleRemoveItem)

	session := router.Group("/cart")
	session.Get("/", h.HandleSessionCart)
	session.Post("/items", h.HandleSessionAddItem)
	session.Post("/shipping", h.HandleSetShipping)

	router.Get("/shipping/methods", h.HandleShippingMethods)
}

// SessionToken reads the cart token from the cookie or, failing that, the header.
func SessionToken(c *fiber.Ctx) string {
	if token := c.Cookies(CartCookie); token != "" {
		return token
	}
	return c.Get(CartTokenHeader)
}

func (h *CartHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CartCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cartCookieMaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Set(CartTokenHeader, token)
}

// HandleCreateCart creates an empty cart.
func (h *CartHandler) HandleCreateCart(c *fiber.Ctx) error {
	cart, err := h.service.CreateCart()
	if err != nil {
		return respondError(c, err, "Could not create cart")
	}
	return c.Status(fiber.StatusCreated).JSON(services.NewCartView(cart))
}

// HandleGetCart returns a cart with its lines.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	view, err := h.service.GetCart(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve cart")
	}
	return c.JSON(view)
}

// AddItemRequest is the body of an add-to-cart call. Qty defaults to 1.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Qty       int    `json:"qty" validate:"min=0,max=100"`
}

func (h *CartHandler) addItem(c *fiber.Ctx, cartID string) error {
	var req AddItemRequest
	if handled, err := parseAndValidate(c, h.validate, &req); handled {
		return err
	}
	if req.Qty == 0 {
		req.Qty = 1
	}

	view, err := h.service.AddItem(cartID, req.ProductID, req.Qty)
	if err != nil {
		return respondError(c, err, "Could not add item")
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// HandleAddItem adds a product to the cart named in the path.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	return h.addItem(c, c.Params("id"))
}

// UpdateItemRequest is the body of a quantity change; zero removes the line.
type UpdateItemRequest struct {
	Qty int `json:"qty" validate:"min=0,max=100"`
}

// HandleUpdateItem changes the quantity of a line.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req UpdateItemRequest
	if handled, err := parseAndValidate(c, h.validate, &req); handled {
		return err
	}

	view, err := h.service.UpdateItem(c.Params("id"), c.Params("item_id"), req.Qty)
	if err != nil {
		return respondError(c, err, "Could not update item")
	}
	return c.JSON(view)
}

// HandleRemoveItem deletes a line.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	if err := h.service.RemoveItem(c.Params("id"), c.Params("item_id")); err != nil {
		return respondError(c, err, "Could not remove item")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleSessionCart returns the session cart, creating one when needed.
func (h *CartHandler) HandleSessionCart(c *fiber.Ctx) error {
	cart, err := h.service.SessionCart(SessionToken(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve cart")
	}
	h.setSessionCookie(c, cart.Token)
	return c.JSON(services.NewCartView(cart))
}

// HandleSessionAddItem adds a product to the session cart.
func (h *CartHandler) HandleSessionAddItem(c *fiber.Ctx) error {
	cart, err := h.service.SessionCart(SessionToken(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve cart")
	}
	h.setSessionCookie(c, cart.Token)
	return h.addItem(c, cart.ID)
}

// cartID resolves the cart_id query parameter, falling back to the session cart.
func (h *CartHandler) cartID(c *fiber.Ctx) (string, error) {
	if id := c.Query("cart_id"); id != "" {
		return id, nil
	}
	cart, err := h.service.SessionCart(SessionToken(c))
	if err != nil {
		return "", err
	}
	h.setSessionCookie(c, cart.Token)
	return cart.ID, nil
}

// HandleShippingMethods quotes every shipping method for a cart.
func (h *CartHandler) HandleShippingMethods(c *fiber.Ctx) error {
	id, err := h.cartID(c)
	if err != nil {
		return respondError(c, err, "Could not retrieve cart")
	}
	opts, err := h.service.ShippingOptions(id)
	if err != nil {
		return respondError(c, err, "Could not quote shipping")
	}
	return c.JSON(opts)
}

// ShippingRequest selects a shipping method for a cart.
type ShippingRequest struct {
	ShippingMethod string `json:"shipping_method" validate:"required"`
}

// HandleSetShipping stores the shipping method on a cart.
func (h *CartHandler) HandleSetShipping(c *fiber.Ctx) error {
	var req ShippingRequest
	if handled, err := parseAndValidate(c, h.validate, &req); handled {
		return err
	}
	id, err := h.cartID(c)
	if err != nil {
		return respondError(c, err, "Could not retrieve cart")
	}

	summary, err := h.service.SetShipping(id, req.ShippingMethod)
	if err != nil {
		return respondError(c, err, "Could not set shipping method")
	}
	return c.JSON(summary)
}
