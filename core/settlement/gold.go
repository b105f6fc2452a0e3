package settlement

import "loot-splitter/core/utils"

// GoldTolerance is the currency difference treated as settled.
const GoldTolerance = 1

// settleGold equalizes liquid balances: declared balance minus the value of held items.
func settleGold(agg *aggregate, names map[string]string) (financials []Financial, transfers []Instruction, partyBalance int64) {
	financials = []Financial{}
	transfers = []Instruction{}
	if len(agg.participants) == 0 {
		return financials, transfers, 0
	}

	liquid := make([]Balance, 0, len(agg.participants))
	for _, p := range agg.participants {
		final := p.balance - p.heldValue
		partyBalance += final

		financials = append(financials, Financial{
			Name:                 p.name,
			OriginalBalance:      p.balance,
			ProductValueDeducted: p.heldValue,
			FinalLiquidBalance:   final,
		})
		liquid = append(liquid, Balance{ID: p.key, Value: final})
	}

	target := utils.FloorDiv(partyBalance, int64(len(agg.participants)))
	for i := range liquid {
		liquid[i].Value -= target
	}

	for _, t := range Solve(liquid, GoldTolerance) {
		transfers = append(transfers, Instruction{
			From:   names[t.From],
			To:     names[t.To],
			Amount: t.Amount,
		})
	}

	return financials, transfers, partyBalance
}
