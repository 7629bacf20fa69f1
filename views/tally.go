package views

import (
	"sort"

	"giftsleuth/models"
)

// VoteCount is the number of current votes for one nominee in one
// category.
type VoteCount struct {
	Category string `json:"category"`
	Nominee  string `json:"nominee"`
	Count    int    `json:"count"`
}

// CategoryWinner is the top nominee of one category.
type CategoryWinner struct {
	Category string `json:"category"`
	Nominee  string `json:"nominee"`
	Count    int    `json:"count"`
}

// CurrentVotes reduces the raw vote log to each voter's newest vote per
// category, so a changed vote moves rather than counting twice.
func CurrentVotes(votes []models.Vote) []models.Vote {
	type key struct{ voter, category string }

	idx := make(map[key]int)
	out := make([]models.Vote, 0, len(votes))
	for _, v := range votes {
		k := key{v.Voter, v.Category}
		if i, ok := idx[k]; ok {
			if !v.Timestamp.Before(out[i].Timestamp) {
				out[i] = v
			}
			continue
		}
		idx[k] = len(out)
		out = append(out, v)
	}
	return out
}

// Tally groups current votes by (category, nominee) and counts distinct
// voters, in first-seen order.
func Tally(votes []models.Vote) []VoteCount {
	type key struct{ category, nominee string }

	idx := make(map[key]int)
	out := []VoteCount{}
	for _, v := range CurrentVotes(votes) {
		k := key{v.Category, v.Nominee}
		if i, ok := idx[k]; ok {
			out[i].Count++
			continue
		}
		idx[k] = len(out)
		out = append(out, VoteCount{Category: v.Category, Nominee: v.Nominee, Count: 1})
	}
	return out
}

// Winners reduces a tally to the top nominee per category: a stable sort
// by descending count, first-seen breaking ties. Categories keep their
// first-seen order.
func Winners(counts []VoteCount) []CategoryWinner {
	sorted := make([]VoteCount, len(counts))
	copy(sorted, counts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})

	var categories []string
	seen := make(map[string]bool)
	for _, c := range counts {
		if !seen[c.Category] {
			seen[c.Category] = true
			categories = append(categories, c.Category)
		}
	}

	winners := make([]CategoryWinner, 0, len(categories))
	for _, category := range categories {
		for _, c := range sorted {
			if c.Category == category {
				winners = append(winners, CategoryWinner{Category: c.Category, Nominee: c.Nominee, Count: c.Count})
				break
			}
		}
	}
	return winners
}
