package session

import (
	"loot-splitter/core/logger"
	"loot-splitter/core/notify"
	"loot-splitter/core/validate"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service  *Service
	handler  *Handler
	realtime *Realtime
}

// NewFeature creates a new Session feature. origins configures the realtime listener.
func NewFeature(cfg Config, settler Settler, notifier notify.Publisher, validator *validate.Validator, origins []string, log *zap.Logger) (*Feature, error) {
	tokens, err := NewTokens(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		log.Warn("No session JWT secret configured; member tokens will not survive a restart")
	}

	svc := NewService(cfg, NewStore(cfg), NewHub(), tokens, settler, notifier, log)
	return &Feature{
		service:  svc,
		handler:  NewHandler(svc, validator),
		realtime: NewRealtime(svc, origins, logger.Named(log, "realtime")),
	}, nil
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "session"
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

// Realtime returns the websocket server to mount on the realtime listener.
func (f *Feature) Realtime() *Realtime {
	return f.realtime
}
