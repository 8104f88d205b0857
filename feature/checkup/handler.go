package checkup

import (
	"lr2immich/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for dependency checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the checkup routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/checkup")
	group.Get("/", h.HandleCheckup)
}

// HandleCheckup runs every dependency check and reports the results.
// Responds 503 when any dependency is unusable so monitors can alert
// on the status code alone.
func (h *Handler) HandleCheckup(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Running dependency checks")

	results := h.service.RunAll(c.Context())

	status := fiber.StatusOK
	report := make(map[string]any, len(results))
	for _, r := range results {
		report[r.Name] = r
		if !r.OK {
			status = fiber.StatusServiceUnavailable
			l.Warn("Dependency check failed",
				zap.String("check", r.Name),
				zap.String("error", r.Error),
			)
		}
	}
	return c.Status(status).JSON(report)
}
