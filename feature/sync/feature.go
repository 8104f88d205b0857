package sync

import "github.com/gofiber/fiber/v2"

// Feature exposes the sync scheduler over HTTP.
type Feature struct {
	service *Service
}

// NewFeature creates the sync feature around an existing service. The
// serve command owns the service so it can also drive the schedule
// loop.
func NewFeature(service *Service) *Feature {
	return &Feature{service: service}
}

// Name returns the unique feature name.
func (f *Feature) Name() string { return "sync" }

// IsEnabled reports whether the feature should load.
func (f *Feature) IsEnabled() bool { return true }

// Load registers the feature's routes on the router.
func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.service).RegisterRoutes(app)
	return nil
}
