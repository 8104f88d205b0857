package sync

import (
	"lr2immich/core/logger"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the sync scheduler.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Get("/status", h.HandleStatus)
	group.Post("/trigger", h.HandleTrigger)
}

// HandleStatus reports whether a pass is running and the outcome of
// the most recent one.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}

// HandleTrigger queues an immediate sync pass. Responds 409 when one
// is already queued.
func (h *Handler) HandleTrigger(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if !h.service.Trigger() {
		l.Info("Sync trigger rejected, pass already queued")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "busy"})
	}
	l.Info("Sync pass triggered")
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "triggered"})
}
