package checks

import (
	"context"
	"fmt"

	"loot-splitter/core/pricing"
)

// PriceReport describes the price table currently served.
type PriceReport struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
	// Missing lists reference items of the built-in table absent from the served one.
	Missing []string `json:"missing"`
	// Changed lists items whose served price differs from the built-in table.
	Changed []string `json:"changed"`
}

// CheckPriceTable loads the served table and compares it with the built-in reference.
func CheckPriceTable(ctx context.Context, cache *pricing.Cache) (*PriceReport, error) {
	table, err := cache.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load price table: %w", err)
	}
	reference, err := pricing.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in price table: %w", err)
	}

	report := &PriceReport{
		Source:  cache.SourceName(),
		Count:   table.Len(),
		Missing: []string{},
		Changed: []string{},
	}
	for _, ref := range reference.Items() {
		item, ok := table.Lookup(ref.Name)
		if !ok {
			report.Missing = append(report.Missing, ref.Name)
			continue
		}
		if item.Price != ref.Price {
			report.Changed = append(report.Changed, fmt.Sprintf("%s: %d -> %d", ref.Name, ref.Price, item.Price))
		}
	}
	return report, nil
}
