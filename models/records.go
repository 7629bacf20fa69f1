package models

import (
	"strconv"
	"time"

	"giftsleuth/store"
)

// Row records: typed views of the raw string rows of each tab. FromRow
// parsing is tolerant of malformed or short rows (zero values), since the
// store enforces nothing beyond tab width on append.

type Player struct {
	Name     string `json:"name"`
	Passcode string `json:"-"`
}

func PlayerFromRow(r store.Row) Player {
	return Player{Name: cell(r, 0), Passcode: cell(r, 1)}
}

func (p Player) Row() store.Row {
	return store.Row{p.Name, p.Passcode}
}

type Guess struct {
	Timestamp  time.Time `json:"timestamp"`
	Player     string    `json:"player"`
	Giver      string    `json:"giver"`
	Receiver   string    `json:"receiver"`
	Confidence int       `json:"confidence"`
	Reason     string    `json:"reason"`
}

func GuessFromRow(r store.Row) Guess {
	return Guess{
		Timestamp:  parseTime(cell(r, 0)),
		Player:     cell(r, 1),
		Giver:      cell(r, 2),
		Receiver:   cell(r, 3),
		Confidence: parseInt(cell(r, 4)),
		Reason:     cell(r, 5),
	}
}

func (g Guess) Row() store.Row {
	return store.Row{formatTime(g.Timestamp), g.Player, g.Giver, g.Receiver, strconv.Itoa(g.Confidence), g.Reason}
}

type BingoStamp struct {
	Timestamp time.Time `json:"timestamp"`
	Player    string    `json:"player"`
	Square    int       `json:"square"`
	Checked   bool      `json:"checked"`
}

func BingoStampFromRow(r store.Row) BingoStamp {
	return BingoStamp{
		Timestamp: parseTime(cell(r, 0)),
		Player:    cell(r, 1),
		Square:    parseInt(cell(r, 2)),
		Checked:   IsTrue(cell(r, 3)),
	}
}

func (b BingoStamp) Row() store.Row {
	checked := FlagFalse
	if b.Checked {
		checked = FlagTrue
	}
	return store.Row{formatTime(b.Timestamp), b.Player, strconv.Itoa(b.Square), checked}
}

type Post struct {
	Timestamp time.Time `json:"timestamp"`
	Player    string    `json:"player"`
	Content   string    `json:"content"`
}

func PostFromRow(r store.Row) Post {
	return Post{Timestamp: parseTime(cell(r, 0)), Player: cell(r, 1), Content: cell(r, 2)}
}

func (p Post) Row() store.Row {
	return store.Row{formatTime(p.Timestamp), p.Player, p.Content}
}

type Vote struct {
	Timestamp time.Time `json:"timestamp"`
	Voter     string    `json:"voter"`
	Category  string    `json:"category"`
	Nominee   string    `json:"nominee"`
}

func VoteFromRow(r store.Row) Vote {
	return Vote{
		Timestamp: parseTime(cell(r, 0)),
		Voter:     cell(r, 1),
		Category:  cell(r, 2),
		Nominee:   cell(r, 3),
	}
}

func (v Vote) Row() store.Row {
	return store.Row{formatTime(v.Timestamp), v.Voter, v.Category, v.Nominee}
}

type Assignment struct {
	Receiver string `json:"receiver"`
	Giver    string `json:"giver"`
}

func AssignmentFromRow(r store.Row) Assignment {
	return Assignment{Receiver: cell(r, 0), Giver: cell(r, 1)}
}

func (a Assignment) Row() store.Row {
	return store.Row{a.Receiver, a.Giver}
}

type Superlative struct {
	Category string `json:"category"`
	Prompt   string `json:"prompt"`
	Active   bool   `json:"active"`
}

func SuperlativeFromRow(r store.Row) Superlative {
	return Superlative{Category: cell(r, 0), Prompt: cell(r, 1), Active: IsTrue(cell(r, 2))}
}

func (s Superlative) Row() store.Row {
	active := FlagFalse
	if s.Active {
		active = FlagTrue
	}
	return store.Row{s.Category, s.Prompt, active}
}
