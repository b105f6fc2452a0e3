package cmd

import (
	"fmt"

	"loot-splitter/core/config"
	"loot-splitter/core/database"
	"loot-splitter/core/logger"
	"loot-splitter/core/pricing"
	"loot-splitter/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime bundles the dependencies shared by every command.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	store  storage.Client
	prices *pricing.Cache
}

// loadRuntime reads the configuration, builds the logger and connects the optional
// database and storage backends. The database is only dialed when withDatabase is set
// or the price table lives there. Connection failures are logged, not returned,
// unless the configured price source depends on the failed backend.
// Overrides run after loading, typically to apply command flags.
func loadRuntime(withDatabase bool, overrides ...func(*config.Config)) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	for _, override := range overrides {
		override(cfg)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	rt := &runtime{cfg: cfg, logger: logg}

	if withDatabase || cfg.Pricing.Source == pricing.SourceDatabase {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			rt.db = conn
			logg.Info("Connected to price database", zap.String("driver", cfg.Database.Driver))
		}
	}

	if client, err := storage.NewClient(cfg.Storage); err != nil {
		logg.Warn("Optional storage client failed", zap.Error(err))
	} else {
		rt.store = client
	}

	if !cfg.Pricing.IsValidSource() {
		return nil, fmt.Errorf("invalid pricing source: %s", cfg.Pricing.Source)
	}
	source, err := pricing.NewSource(cfg.Pricing, rt.db, rt.store, cfg.Storage.Bucket)
	if err != nil {
		return nil, err
	}
	rt.prices = pricing.NewCache(source, cfg.Pricing.CacheTTL())

	return rt, nil
}
