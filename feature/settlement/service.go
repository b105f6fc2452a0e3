package settlement

import (
	"context"
	"fmt"
	"time"

	"loot-splitter/core/pricing"
	"loot-splitter/core/settlement"

	"go.uber.org/zap"
)

// Service runs settlements against the configured reference price table.
type Service struct {
	prices *pricing.Cache
	logger *zap.Logger
}

// NewService creates a new settlement service.
func NewService(prices *pricing.Cache, logger *zap.Logger) *Service {
	return &Service{
		prices: prices,
		logger: logger,
	}
}

// Settle computes the settlement plan for a party.
func (s *Service) Settle(ctx context.Context, partyLog string, players []settlement.PlayerInput) (*settlement.Result, error) {
	table, err := s.prices.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load price table: %w", err)
	}

	start := time.Now()
	result, err := settlement.NewCalculator(table).Calculate(partyLog, players)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Settlement computed",
		zap.Int("players", len(players)),
		zap.Int("participants", len(result.Financials)),
		zap.Int("item_batches", len(result.ItemTransfers)),
		zap.Int("gold_transfers", len(result.GoldTransfers)),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// Prices returns every reference item.
func (s *Service) Prices(ctx context.Context) ([]pricing.Item, error) {
	table, err := s.prices.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load price table: %w", err)
	}
	return table.Items(), nil
}

// Price looks up a single reference item.
func (s *Service) Price(ctx context.Context, name string) (pricing.Item, bool, error) {
	table, err := s.prices.Get(ctx)
	if err != nil {
		return pricing.Item{}, false, fmt.Errorf("failed to load price table: %w", err)
	}
	item, ok := table.Lookup(name)
	return item, ok, nil
}

// SourceName identifies the backend serving the price table.
func (s *Service) SourceName() string {
	return s.prices.SourceName()
}
