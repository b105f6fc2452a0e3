package settlement

import "sort"

// Solve computes transfers that bring every balance within tolerance of zero.
//
// Givers (value > tolerance) are sorted by surplus and receivers (value < -tolerance) by
// deficit, largest first. The largest giver repeatedly pays the largest receiver
// min(surplus, deficit), and a party leaves its list once its remaining magnitude is
// within tolerance. Sorting is stable, so equal magnitudes keep input order.
// The input slice is not modified.
func Solve(balances []Balance, tolerance int64) []Transfer {
	if tolerance < 0 {
		tolerance = 0
	}

	var givers, receivers []Balance
	for _, b := range balances {
		switch {
		case b.Value > tolerance:
			givers = append(givers, b)
		case b.Value < -tolerance:
			receivers = append(receivers, b)
		}
	}

	sort.SliceStable(givers, func(i, j int) bool {
		return givers[i].Value > givers[j].Value
	})
	sort.SliceStable(receivers, func(i, j int) bool {
		return receivers[i].Value < receivers[j].Value
	})

	transfers := []Transfer{}
	g, r := 0, 0
	for g < len(givers) && r < len(receivers) {
		giver := &givers[g]
		receiver := &receivers[r]

		amount := min(giver.Value, -receiver.Value)
		transfers = append(transfers, Transfer{From: giver.ID, To: receiver.ID, Amount: amount})

		giver.Value -= amount
		receiver.Value += amount

		if giver.Value <= tolerance {
			g++
		}
		if -receiver.Value <= tolerance {
			r++
		}
	}

	return transfers
}
