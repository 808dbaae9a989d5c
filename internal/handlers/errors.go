package handlers

import (
	"errors"
	"fmt"
	"log"
	"regexp"

	"lanari/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var (
	phonePattern      = regexp.MustCompile(`^\+?\d{9,15}$`)
	postalCodePattern = regexp.MustCompile(`^\d{2}-\d{3}$`)
)

// NewValidator returns a validator with the shop's custom rules registered:
// pl_phone (9 to 15 digits, optional leading +) and pl_postal_code (NN-NNN).
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("pl_phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("pl_postal_code", func(fl validator.FieldLevel) bool {
		return postalCodePattern.MatchString(fl.Field().String())
	})
	return v
}

// parseAndValidate binds the JSON body into req and validates it. On failure the
// error response has already been written and handled is true.
func parseAndValidate(c *fiber.Ctx, v *validator.Validate, req interface{}) (handled bool, err error) {
	if err := c.BodyParser(req); err != nil {
		log.Printf("Error parsing request body for %s: %v", c.Path(), err)
		return true, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := v.Struct(req); err != nil {
		return true, validationFailed(c, err)
	}
	return false, nil
}

func validationFailed(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// respondError maps a service error onto its HTTP status. Unexpected errors are
// logged and answered with 500 without their details.
func respondError(c *fiber.Ctx, err error, message string) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrUnauthorized):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
	}

	if status == fiber.StatusInternalServerError {
		log.Printf("%s: %v", message, err)
		return c.Status(status).JSON(fiber.Map{
			"message": message,
			"error":   "internal server error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
