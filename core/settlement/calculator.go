package settlement

import (
	"errors"
	"sort"
	"strings"

	"loot-splitter/core/pricing"
)

// ErrNoPriceTable is returned when a Calculator has no reference price table.
var ErrNoPriceTable = errors.New("settlement: reference price table is required")

// Calculator computes settlements against one reference price table.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	table *pricing.Table
}

// NewCalculator creates a calculator bound to table.
func NewCalculator(table *pricing.Table) *Calculator {
	return &Calculator{table: table}
}

// Calculate parses the party summary and every player's session log and returns the
// settlement plan. Players with a blank name or blank log are dropped entirely. Display
// names come from the party log, then from the name supplied with a usable log.
func (c *Calculator) Calculate(partyLog string, players []PlayerInput) (*Result, error) {
	if c == nil || c.table == nil {
		return nil, ErrNoPriceTable
	}

	party := ParsePartyLog(partyLog)
	return c.Settle(party, players)
}

// Settle computes the plan from an already parsed party log.
func (c *Calculator) Settle(party *PartyLog, players []PlayerInput) (*Result, error) {
	if c == nil || c.table == nil {
		return nil, ErrNoPriceTable
	}
	if party == nil {
		party = &PartyLog{Entries: map[string]PartyEntry{}}
	}

	agg := buildAggregate(party, sessionLogs(players), c.table)
	if len(agg.participants) == 0 {
		return EmptyResult(), nil
	}

	names := agg.names()
	itemTransfers, remainder := settleItems(agg)
	financials, goldTransfers, partyBalance := settleGold(agg, names)

	return &Result{
		TotalLoot:     totalLoot(agg.totals),
		TotalValue:    agg.totalValue,
		Remainder:     remainder,
		ItemTransfers: groupItemTransfers(itemTransfers, names),
		GoldTransfers: goldTransfers,
		Financials:    financials,
		PartyBalance:  partyBalance,
	}, nil
}

// sessionLogs keeps the usable inputs, keyed by identity. A later log for the same
// identity replaces an earlier one, while the first supplied name is kept for display.
func sessionLogs(players []PlayerInput) []sessionLog {
	var logs []sessionLog
	index := make(map[string]int)

	for _, p := range players {
		name := strings.TrimSpace(p.Name)
		if name == "" || strings.TrimSpace(p.Log) == "" {
			continue
		}
		key := NormalizeKey(name)
		if i, ok := index[key]; ok {
			logs[i].text = p.Log
			continue
		}
		index[key] = len(logs)
		logs = append(logs, sessionLog{key: key, name: name, text: p.Log})
	}

	return logs
}

// totalLoot lists party totals by descending quantity, ties by name.
func totalLoot(totals map[string]int64) []ItemAmount {
	out := make([]ItemAmount, 0, len(totals))
	for name, amount := range totals {
		out = append(out, ItemAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Name < out[j].Name
	})
	return out
}
