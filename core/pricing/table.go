package pricing

import (
	"sort"
	"strings"
)

// Item is a priced reference item.
type Item struct {
	// Name is the canonical display name.
	Name string `json:"name" yaml:"name"`
	// Price is the unit value in gold.
	Price int64 `json:"price" yaml:"price"`
}

// Table is an immutable lookup from item name to unit price.
// Lookups are case-insensitive; the canonical casing is preserved in returned items.
// A Table is safe for concurrent use because it is never mutated after construction.
type Table struct {
	items map[string]Item
}

// NewTable builds a table from canonical name -> price pairs.
// Entries whose name is blank are ignored. When two names normalize to the same key,
// the lexically smaller canonical name wins so construction is deterministic.
func NewTable(prices map[string]int64) *Table {
	items := make(map[string]Item, len(prices))
	for name, price := range prices {
		key := NormalizeName(name)
		if key == "" {
			continue
		}
		canonical := strings.TrimSpace(name)
		if existing, ok := items[key]; ok && existing.Name < canonical {
			continue
		}
		items[key] = Item{Name: canonical, Price: price}
	}
	return &Table{items: items}
}

// NormalizeName returns the lookup key for an item name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup returns the reference item for name, matching case-insensitively.
func (t *Table) Lookup(name string) (Item, bool) {
	if t == nil {
		return Item{}, false
	}
	item, ok := t.items[NormalizeName(name)]
	return item, ok
}

// Price returns the unit price of name, or 0 if the item is unknown.
func (t *Table) Price(name string) int64 {
	item, _ := t.Lookup(name)
	return item.Price
}

// Len returns the number of items in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.items)
}

// Items returns every item sorted by canonical name.
func (t *Table) Items() []Item {
	if t == nil {
		return []Item{}
	}
	out := make([]Item, 0, len(t.items))
	for _, item := range t.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Prices returns a copy of the table as canonical name -> price.
func (t *Table) Prices() map[string]int64 {
	out := make(map[string]int64, t.Len())
	if t == nil {
		return out
	}
	for _, item := range t.items {
		out[item.Name] = item.Price
	}
	return out
}
