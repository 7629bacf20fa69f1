package views

import (
	"sort"

	"giftsleuth/models"
)

// PlayerScore is one leaderboard line.
type PlayerScore struct {
	Player   string  `json:"player"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"`
	Rank     int     `json:"rank"` // 1-indexed
}

// Scores folds current guesses against the true assignments. A guess is
// scorable iff its receiver has a known assignment, and correct iff the
// guessed giver matches it. Roster players with no guesses appear with
// zeros. Ranking is descending by correct, ties broken by descending
// accuracy, stable beyond that.
func Scores(guesses []models.Guess, assignments []models.Assignment, roster []string) []PlayerScore {
	truth := make(map[string]string, len(assignments))
	for _, a := range assignments {
		if _, ok := truth[a.Receiver]; !ok {
			truth[a.Receiver] = a.Giver
		}
	}

	scores := make(map[string]*PlayerScore, len(roster))
	var order []string
	add := func(name string) *PlayerScore {
		if s, ok := scores[name]; ok {
			return s
		}
		s := &PlayerScore{Player: name}
		scores[name] = s
		order = append(order, name)
		return s
	}
	for _, name := range roster {
		add(name)
	}

	for _, g := range CurrentGuesses(guesses) {
		s := add(g.Player)
		giver, known := truth[g.Receiver]
		if !known {
			continue // receiver has no true assignment: not scorable
		}
		s.Total++
		if g.Giver == giver {
			s.Correct++
		}
	}

	out := make([]PlayerScore, 0, len(order))
	for _, name := range order {
		s := scores[name]
		if s.Total > 0 {
			s.Accuracy = float64(s.Correct) / float64(s.Total)
		}
		out = append(out, *s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Correct != out[j].Correct {
			return out[i].Correct > out[j].Correct
		}
		return out[i].Accuracy > out[j].Accuracy
	})
	for i := range out {
		out[i].Rank = i + 1
	}

	return out
}

// CurrentGuesses reduces the raw guess log to the newest row per
// (player, receiver). The upsert engine already overwrites in place; this
// read-side pass guards against residual duplicates left by concurrent
// appends. Timestamp ties resolve to the later row.
func CurrentGuesses(guesses []models.Guess) []models.Guess {
	type key struct{ player, receiver string }

	idx := make(map[key]int)
	out := make([]models.Guess, 0, len(guesses))
	for _, g := range guesses {
		k := key{g.Player, g.Receiver}
		if i, ok := idx[k]; ok {
			if !g.Timestamp.Before(out[i].Timestamp) {
				out[i] = g
			}
			continue
		}
		idx[k] = len(out)
		out = append(out, g)
	}
	return out
}
