package pricing

import (
	"fmt"
	"strings"

	"loot-splitter/core/utils"

	"gopkg.in/yaml.v3"
)

// document is the on-disk shape of a price table.
type document struct {
	Items map[string]any `yaml:"items"`
}

// ParseYAML decodes a price table document.
// Prices may be written as integers or as strings with thousands separators ("1,200").
func ParseYAML(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode price table: %w", err)
	}
	if doc.Items == nil {
		return nil, fmt.Errorf("price table has no items section")
	}

	prices := make(map[string]int64, len(doc.Items))
	for name, raw := range doc.Items {
		if strings.TrimSpace(name) == "" {
			continue
		}
		price := utils.ToInt64(raw)
		if price < 0 {
			return nil, fmt.Errorf("invalid price for %q: %d", name, price)
		}
		prices[name] = price
	}

	return NewTable(prices), nil
}

// MarshalYAML encodes a table in the same document shape ParseYAML reads.
func MarshalYAML(t *Table) ([]byte, error) {
	return yaml.Marshal(struct {
		Items map[string]int64 `yaml:"items"`
	}{Items: t.Prices()})
}
