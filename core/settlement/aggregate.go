package settlement

import (
	"sort"

	"loot-splitter/core/pricing"
)

// participant is one identity taking part in a settlement.
type participant struct {
	key       string
	name      string
	balance   int64
	holdings  map[string]int64
	heldValue int64
}

// aggregate is the party-wide view built fresh for every settlement.
type aggregate struct {
	participants []*participant
	totals       map[string]int64
	totalValue   int64
}

// sessionLog is a session log keyed by identity, with the name it was supplied under.
type sessionLog struct {
	key  string
	name string
	text string
}

// buildAggregate unifies identities from the party log and the session logs, parses each
// session log and sums holdings and values across the party.
//
// Identities are ordered party log first (by first appearance), then session logs in
// input order.
func buildAggregate(party *PartyLog, logs []sessionLog, table *pricing.Table) *aggregate {
	agg := &aggregate{totals: make(map[string]int64)}
	byKey := make(map[string]*participant)

	add := func(key string) *participant {
		if p, ok := byKey[key]; ok {
			return p
		}
		p := &participant{key: key, name: key, holdings: map[string]int64{}}
		byKey[key] = p
		agg.participants = append(agg.participants, p)
		return p
	}

	for _, key := range party.Order {
		p := add(key)
		entry := party.Entries[key]
		p.name = entry.Name
		p.balance = entry.Balance
	}

	for _, l := range logs {
		p := add(l.key)
		if _, inParty := party.Lookup(l.key); !inParty {
			p.name = l.name
		}
		p.holdings = ParseSessionLog(l.text, table)
	}

	for _, p := range agg.participants {
		for _, item := range sortedItems(p.holdings) {
			qty := p.holdings[item]
			agg.totals[item] += qty
			p.heldValue += qty * table.Price(item)
		}
		agg.totalValue += p.heldValue
	}

	return agg
}

// names maps identity key to display name.
func (a *aggregate) names() map[string]string {
	out := make(map[string]string, len(a.participants))
	for _, p := range a.participants {
		out[p.key] = p.name
	}
	return out
}

func sortedItems(m map[string]int64) []string {
	items := make([]string, 0, len(m))
	for item := range m {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}
