package share

import (
	"loot-splitter/core/validate"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Share feature.
func NewFeature(cfg Config, settler Settler, validator *validate.Validator, logger *zap.Logger) (*Feature, error) {
	codec, err := NewCodec(cfg.Compression)
	if err != nil {
		return nil, err
	}
	store, err := NewStore(cfg)
	if err != nil {
		return nil, err
	}

	svc := NewService(codec, store, settler, cfg.TTL(), logger)
	return &Feature{service: svc, handler: NewHandler(svc, validator)}, nil
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "share"
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
