package handlers

import (
	"lanari/internal/middleware"
	"lanari/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler serves the caller's saved checkout details.
type ProfileHandler struct {
	service *services.ProfileService
}

func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// RegisterRoutes registers the profile routes. auth must authenticate the caller.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/me/checkout-profile", auth, h.HandleGetCheckoutProfile)
}

// HandleGetCheckoutProfile answers null when the caller never checked out.
func (h *ProfileHandler) HandleGetCheckoutProfile(c *fiber.Ctx) error {
	profile, err := h.service.GetCheckoutProfile(middleware.CurrentUser(c).ID)
	if err != nil {
		return respondError(c, err, "Could not retrieve checkout profile")
	}
	return c.JSON(profile)
}
