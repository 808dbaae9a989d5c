package handlers

import (
	"log"

	"lanari/internal/middleware"
	"lanari/internal/services"

	"github.com/gofiber/fiber/v2"
)

// MediaHandler handles image uploads.
type MediaHandler struct {
	service *services.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(service *services.MediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

// RegisterRoutes registers the media routes. optionalAuth identifies the uploader
// when a token is sent; deletion runs behind auth and then admin.
func (h *MediaHandler) RegisterRoutes(router fiber.Router, optionalAuth, auth, admin fiber.Handler) {
	mediaRoutes := router.Group("/media")
	mediaRoutes.Post("/", optionalAuth, h.HandleUpload)
	mediaRoutes.Get("/", h.HandleList)
	mediaRoutes.Delete("/:id", auth, admin, h.HandleDelete)
}

// HandleUpload stores a multipart "file" with an optional "caption".
func (h *MediaHandler) HandleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid upload",
			"error":   "multipart field 'file' is required",
		})
	}

	f, err := fh.Open()
	if err != nil {
		return respondError(c, err, "Could not read upload")
	}
	defer f.Close()

	var ownerID *string
	if user := middleware.CurrentUser(c); user != nil {
		ownerID = &user.ID
	}

	media, err := h.service.Upload(c.UserContext(), ownerID, services.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, c.FormValue("caption"))
	if err != nil {
		log.Printf("Upload of %s failed: %v", fh.Filename, err)
		return respondError(c, err, "Upload failed")
	}
	return c.Status(fiber.StatusCreated).JSON(media)
}

// HandleList returns every uploaded file, newest first.
func (h *MediaHandler) HandleList(c *fiber.Ctx) error {
	media, err := h.service.ListMedia()
	if err != nil {
		return respondError(c, err, "Could not retrieve media")
	}
	return c.JSON(media)
}

// HandleDelete removes an upload.
func (h *MediaHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.DeleteMedia(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "Could not delete media")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
