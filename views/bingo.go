package views

import "giftsleuth/models"

// CardSize is the number of squares on the fixed 3x3 card.
const CardSize = 9

// lines are the eight winning lines: three rows, three columns, two
// diagonals, as positions into the 3x3 grid.
var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// CardChecked reduces the raw stamp log to player's current card state,
// keeping the newest stamp per square. Squares outside the grid are
// ignored.
func CardChecked(stamps []models.BingoStamp, player string) [CardSize]bool {
	var checked [CardSize]bool
	var latest [CardSize]models.BingoStamp
	var seen [CardSize]bool

	for _, s := range stamps {
		if s.Player != player || s.Square < 0 || s.Square >= CardSize {
			continue
		}
		if seen[s.Square] && s.Timestamp.Before(latest[s.Square].Timestamp) {
			continue
		}
		latest[s.Square] = s
		seen[s.Square] = true
		checked[s.Square] = s.Checked
	}

	return checked
}

// HasBingo reports whether any line of the card is fully stamped. Always
// recomputed from current state, never cached as a flag, so unstamping a
// square removes a win on the next evaluation.
func HasBingo(checked [CardSize]bool) bool {
	for _, line := range lines {
		if checked[line[0]] && checked[line[1]] && checked[line[2]] {
			return true
		}
	}
	return false
}
