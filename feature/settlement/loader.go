package settlement

import (
	"loot-splitter/core/pricing"
	"loot-splitter/core/validate"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Settlement feature.
func NewFeature(prices *pricing.Cache, validator *validate.Validator, logger *zap.Logger) *Feature {
	svc := NewService(prices, logger)
	return &Feature{service: svc, handler: NewHandler(svc, validator)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "settlement"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the settlement service to features that settle on its behalf.
func (f *Feature) Service() *Service {
	return f.service
}
