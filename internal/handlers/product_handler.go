package handlers

import (
	"lanari/internal/models"
	"lanari/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: NewValidator(),
	}
}

// RegisterRoutes registers the public catalog routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
}

// RegisterAdminRoutes registers catalog management on an admin-only router.
func (h *ProductHandler) RegisterAdminRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleAdminGetProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeactivateProduct)
}

// HandleGetProducts lists active products; active_only=false lists everything.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	activeOnly := c.Query("active_only", "true") != "false"
	products, err := h.service.GetProducts(c.UserContext(), activeOnly)
	if err != nil {
		return respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve product")
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleAdminGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetProducts(c.UserContext(), false)
	if err != nil {
		return respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(products)
}

// ProductCreateRequest is the body of an admin product creation.
type ProductCreateRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Description string `json:"description" validate:"max=2000"`
	PricePLN    int64  `json:"price_pln" validate:"required,min=1,max=1000000"`
	IsActive    *bool  `json:"is_active"`
	ImageURL    string `json:"image_url" validate:"max=512"`
	StockQty    int    `json:"stock_qty" validate:"min=0"`
}

// HandleCreateProduct creates a product. New products are active unless told otherwise.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductCreateRequest
	if handled, err := parseAndValidate(c, h.validate, &req); handled {
		return err
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		PricePLN:    req.PricePLN,
		IsActive:    req.IsActive == nil || *req.IsActive,
		ImageURL:    req.ImageURL,
		StockQty:    req.StockQty,
	}
	if err := h.service.CreateProduct(c.UserContext(), product); err != nil {
		return respondError(c, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// ProductUpdateRequest is the body of a partial product update.
type ProductUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=120"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	PricePLN    *int64  `json:"price_pln" validate:"omitempty,min=1,max=1000000"`
	IsActive    *bool   `json:"is_active"`
	ImageURL    *string `json:"image_url" validate:"omitempty,max=512"`
	StockQty    *int    `json:"stock_qty" validate:"omitempty,min=0"`
}

// HandleUpdateProduct applies a partial update.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req ProductUpdateRequest
	if handled, err := parseAndValidate(c, h.validate, &req); handled {
		return err
	}

	product, err := h.service.UpdateProduct(c.UserContext(), c.Params("id"), services.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		PricePLN:    req.PricePLN,
		IsActive:    req.IsActive,
		ImageURL:    req.ImageURL,
		StockQty:    req.StockQty,
	})
	if err != nil {
		return respondError(c, err, "Could not update product")
	}
	return c.JSON(product)
}

// HandleDeactivateProduct hides a product; it stays referenced by past orders.
func (h *ProductHandler) HandleDeactivateProduct(c *fiber.Ctx) error {
	if err := h.service.DeactivateProduct(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "Could not deactivate product")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
