package handlers

import (
	"lanari/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PaymentHandler exposes the mock payment provider.
type PaymentHandler struct {
	service  *services.PaymentService
	validate *validator.Validate
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service, validate: NewValidator()}
}

func (h *PaymentHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/payments/mock/confirm", h.HandleConfirmMock)
}

// ConfirmRequest names the order whose mock payment succeeded.
type ConfirmRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

// HandleConfirmMock marks the order paid.
func (h *PaymentHandler) HandleConfirmMock(c *fiber.Ctx) error {
	var req ConfirmRequest
	if handled, err := parseAndValidate(c, h.validate, &req); handled {
		return err
	}

	order, err := h.service.ConfirmMockPayment(c.UserContext(), req.OrderID)
	if err != nil {
		return respondError(c, err, "Payment confirmation failed")
	}
	return c.JSON(fiber.Map{
		"ok":       true,
		"order_id": order.ID,
		"status":   order.Status,
	})
}
