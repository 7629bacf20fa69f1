package models

import (
	"strconv"
	"strings"
	"time"

	"giftsleuth/store"
)

// Tab names.
const (
	TabPlayers      = "players"
	TabGuesses      = "guesses"
	TabBingo        = "bingo"
	TabPosts        = "posts"
	TabVotes        = "votes"
	TabAppState     = "app_state"
	TabAssignments  = "assignments"
	TabSuperlatives = "superlatives"
)

// App-state keys. Keys are matched case-insensitively on read and written
// exactly as these constants.
const (
	StateLocked             = "locked"
	StateRevealScores       = "reveal_scores"
	StateRevealSuperlatives = "reveal_superlatives"
)

// Flag values as stored. Read case-insensitively via IsTrue.
const (
	FlagTrue  = "TRUE"
	FlagFalse = "FALSE"
)

// Column offsets used as upsert keys.
const (
	GuessColPlayer   = 1
	GuessColReceiver = 3

	BingoColPlayer = 1
	BingoColSquare = 2

	VoteColVoter    = 1
	VoteColCategory = 2

	StateColKey = 0

	AssignmentColReceiver = 0

	SuperlativeColCategory = 0
)

// Tabs returns the full tab catalog: every tab the app persists, with its
// column layout. Passed to the store backends at startup.
func Tabs() []store.Tab {
	return []store.Tab{
		{Name: TabPlayers, Columns: []string{"name", "passcode"}},
		{Name: TabGuesses, Columns: []string{"timestamp", "player", "giver_guess", "receiver_guess", "confidence", "reason"}},
		{Name: TabBingo, Columns: []string{"timestamp", "player", "square_id", "checked"}},
		{Name: TabPosts, Columns: []string{"timestamp", "player", "content"}},
		{Name: TabVotes, Columns: []string{"timestamp", "voter", "category", "nominee"}},
		{Name: TabAppState, Columns: []string{"key", "value"}},
		{Name: TabAssignments, Columns: []string{"receiver", "giver"}},
		{Name: TabSuperlatives, Columns: []string{"category", "prompt", "active"}},
	}
}

// cell returns the trimmed cell at index i, or "" for rows narrower than
// the tab. Trimming on read matches the key-match semantics everywhere.
func cell(r store.Row, i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

// IsTrue reports whether a stored flag value means TRUE. Flags are written
// as "TRUE"/"FALSE" but read case-insensitively.
func IsTrue(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), FlagTrue)
}

// FlagValue returns the value of the first app_state row whose key matches
// (case-insensitive). First match wins, consistent with the upsert scan.
func FlagValue(rows []store.Row, key string) string {
	for _, r := range rows {
		if strings.EqualFold(cell(r, 0), key) {
			return cell(r, 1)
		}
	}
	return ""
}

func parseTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseInt(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
