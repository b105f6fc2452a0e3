// Package settlement is the loot splitting engine.
//
// Given a party hunt summary (each player's declared balance) and every player's own
// session log (the creature products they looted), it computes the transfers that leave
// every player holding an equal share of items and of liquid gold.
//
// # Pipeline
//
//  1. ParsePartyLog extracts balances; ParseSessionLog extracts priced loot.
//  2. The aggregator unifies identities and sums quantities and values.
//  3. Item settlement runs Solve per item with tolerance 0 and groups the transfers
//     by giver/receiver pair. Undividable units are reported as remainder.
//  4. Gold settlement runs Solve once on liquid balances with tolerance 1.
//
// The engine is synchronous and pure: identical inputs always produce an identical
// Result, and no state is shared between calls.
//
// # Usage
//
//	table, _ := pricing.Default()
//	result, err := settlement.NewCalculator(table).Calculate(partyLog, []settlement.PlayerInput{
//	    {Name: "Knight", Log: knightLog},
//	    {Name: "Druid", Log: druidLog},
//	})
package settlement
