package settlement

// PlayerInput is one participant as supplied by a caller: a display name and the raw
// text of that player's session log.
type PlayerInput struct {
	Name string `json:"name"`
	Log  string `json:"log"`
}

// PartyEntry is a player found in the party summary log.
type PartyEntry struct {
	// Key is the normalized identity (lowercased, trimmed name).
	Key string `json:"key"`
	// Name is the player name with its original casing.
	Name string `json:"name"`
	// Balance is the declared balance, 0 when unparseable.
	Balance int64 `json:"balance"`
}

// PartyLog is the parsed party summary log.
type PartyLog struct {
	// Entries maps identity key to the player's entry.
	Entries map[string]PartyEntry
	// Order lists identity keys in order of first appearance.
	Order []string
}

// Lookup returns the entry for key.
func (p *PartyLog) Lookup(key string) (PartyEntry, bool) {
	if p == nil {
		return PartyEntry{}, false
	}
	e, ok := p.Entries[key]
	return e, ok
}

// Balance is a signed surplus (positive) or deficit (negative) held by an identity.
// The same shape serves item quantities and currency.
type Balance struct {
	ID    string
	Value int64
}

// Transfer moves Amount from one identity to another.
type Transfer struct {
	From   string
	To     string
	Amount int64
}

// ItemAmount is a quantity of one item.
type ItemAmount struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// Instruction is a transfer decorated with display names. Item is empty for currency.
type Instruction struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
	Item   string `json:"item,omitempty"`
}

// ItemTransferGroup is every item moved from one player to another.
type ItemTransferGroup struct {
	From  string       `json:"from"`
	To    string       `json:"to"`
	Items []ItemAmount `json:"items"`
}

// Financial is a player's currency breakdown.
type Financial struct {
	Name                 string `json:"name"`
	OriginalBalance      int64  `json:"original_balance"`
	ProductValueDeducted int64  `json:"product_value_deducted"`
	FinalLiquidBalance   int64  `json:"final_liquid_balance"`
}

// Result is the complete settlement plan. Slices are never nil.
type Result struct {
	// TotalLoot lists party-wide quantities, largest first.
	TotalLoot []ItemAmount `json:"total_loot"`
	// TotalValue is the summed value of all looted items.
	TotalValue int64 `json:"total_value"`
	// Remainder lists the units of each item that cannot be divided evenly.
	Remainder []ItemAmount `json:"remainder"`
	// ItemTransfers groups item movements by giver/receiver pair.
	ItemTransfers []ItemTransferGroup `json:"item_transfers"`
	// GoldTransfers lists currency movements.
	GoldTransfers []Instruction `json:"gold_transfers"`
	// Financials is the per-player currency breakdown.
	Financials []Financial `json:"financials"`
	// PartyBalance is the sum of every player's liquid balance.
	PartyBalance int64 `json:"party_balance"`
}

// EmptyResult returns a fully populated result with nothing to report.
func EmptyResult() *Result {
	return &Result{
		TotalLoot:     []ItemAmount{},
		Remainder:     []ItemAmount{},
		ItemTransfers: []ItemTransferGroup{},
		GoldTransfers: []Instruction{},
		Financials:    []Financial{},
	}
}
