package checkup

import (
	"lr2immich/core/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature exposes the dependency checks over HTTP.
type Feature struct {
	service *Service
}

// NewFeature creates the checkup feature.
func NewFeature(cfg *config.Config, logger *zap.Logger) *Feature {
	return &Feature{service: NewService(cfg, logger)}
}

// Name returns the unique feature name.
func (f *Feature) Name() string { return "checkup" }

// IsEnabled reports whether the feature should load.
func (f *Feature) IsEnabled() bool { return true }

// Load registers the feature's routes on the router.
func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.service).RegisterRoutes(app)
	return nil
}
