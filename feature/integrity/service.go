package integrity

import (
	"context"
	"fmt"

	"loot-splitter/core/pricing"
	"loot-splitter/core/storage"
	"loot-splitter/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks of the price table backends.
type Service struct {
	client storage.Client
	bucket string
	object string
	db     *gorm.DB
	prices *pricing.Cache
	logger *zap.Logger
}

// NewService creates a new integrity service. client and db may be nil when the
// corresponding backend is not configured.
func NewService(client storage.Client, bucket, object string, db *gorm.DB, prices *pricing.Cache, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		object: object,
		db:     db,
		prices: prices,
		logger: logger,
	}
}

// CheckPrices compares the served price table with the built-in one.
func (s *Service) CheckPrices(ctx context.Context) (*checks.PriceReport, error) {
	return checks.CheckPriceTable(ctx, s.prices)
}

// CheckStorage reports whether the price table object exists.
func (s *Service) CheckStorage(ctx context.Context) (*checks.ObjectReport, error) {
	return checks.CheckPriceObject(ctx, s.client, s.bucket, s.object)
}

// FixStorage uploads the built-in price table as the storage object.
func (s *Service) FixStorage(ctx context.Context) error {
	table, err := pricing.Default()
	if err != nil {
		return err
	}
	return checks.FixPriceObject(ctx, s.client, s.bucket, s.object, table, s.logger)
}

// CheckSchema validates the item_prices table.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, pricing.ItemPrice{})
}

// FixSchema creates the item_prices table and seeds it with the built-in prices.
func (s *Service) FixSchema(ctx context.Context) (int, error) {
	table, err := pricing.Default()
	if err != nil {
		return 0, err
	}
	n, err := pricing.Seed(ctx, s.db, table)
	if err != nil {
		return 0, fmt.Errorf("failed to seed item_prices: %w", err)
	}
	s.logger.Info("Seeded item_prices", zap.Int("items", n))
	return n, nil
}

// Report runs every check and collects the results by name.
func (s *Service) Report(ctx context.Context) map[string]interface{} {
	report := make(map[string]interface{})

	if r, err := s.CheckPrices(ctx); err != nil {
		report["prices"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["prices"] = r
	}

	if r, err := s.CheckStorage(ctx); err != nil {
		report["storage"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["storage"] = r
	}

	if r, err := s.CheckSchema(); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = r
	}

	return report
}
