package settlement

// itemTransfer is a solver transfer tagged with the item it moves.
type itemTransfer struct {
	Transfer
	item string
}

// settleItems equalizes physical loot item by item.
//
// Each player's target is floor(total/n); the undividable total mod n units are
// reported as remainder and never moved. Items whose target is 0 produce no transfers.
func settleItems(agg *aggregate) (transfers []itemTransfer, remainder []ItemAmount) {
	n := int64(len(agg.participants))
	remainder = []ItemAmount{}
	if n == 0 {
		return nil, remainder
	}

	for _, item := range sortedItems(agg.totals) {
		total := agg.totals[item]
		target := total / n
		if left := total % n; left > 0 {
			remainder = append(remainder, ItemAmount{Name: item, Amount: left})
		}
		if target == 0 {
			continue
		}

		balances := make([]Balance, 0, n)
		for _, p := range agg.participants {
			balances = append(balances, Balance{ID: p.key, Value: p.holdings[item] - target})
		}

		for _, t := range Solve(balances, 0) {
			transfers = append(transfers, itemTransfer{Transfer: t, item: item})
		}
	}

	return transfers, remainder
}

// groupItemTransfers merges transfers sharing a giver and receiver into one batch.
// Batches appear in the order their pair was first seen.
func groupItemTransfers(transfers []itemTransfer, names map[string]string) []ItemTransferGroup {
	type pair struct{ from, to string }

	groups := []ItemTransferGroup{}
	index := make(map[pair]int)

	for _, t := range transfers {
		k := pair{t.From, t.To}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, ItemTransferGroup{
				From:  names[t.From],
				To:    names[t.To],
				Items: []ItemAmount{},
			})
		}
		groups[i].Items = append(groups[i].Items, ItemAmount{Name: t.item, Amount: t.Amount})
	}

	return groups
}
