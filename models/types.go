package models

import "time"

// Request types

type LoginRequest struct {
	Name     string `json:"name"`
	Passcode string `json:"passcode"`
}

type SubmitGuessRequest struct {
	Receiver   string `json:"receiver"`
	Giver      string `json:"giver"`
	Confidence int    `json:"confidence"`
	Reason     string `json:"reason"`
}

type StampRequest struct {
	Checked bool `json:"checked"`
}

type CreatePostRequest struct {
	Content string `json:"content"`
}

type SubmitVoteRequest struct {
	Category string `json:"category"`
	Nominee  string `json:"nominee"`
}

type AdminLoginRequest struct {
	Code string `json:"code"`
}

type SetStateRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type SetAssignmentRequest struct {
	Receiver string `json:"receiver"`
	Giver    string `json:"giver"`
}

type SetSuperlativeRequest struct {
	Category string `json:"category"`
	Prompt   string `json:"prompt"`
	Active   bool   `json:"active"`
}

// Response types

type LoginResponse struct {
	Token  string `json:"token"`
	Player string `json:"player"`
}

type RosterResponse struct {
	Players []string `json:"players"`
}

type GuessListResponse struct {
	Guesses []Guess `json:"guesses"`
}

type BingoSquare struct {
	ID      int    `json:"id"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

type BingoCardResponse struct {
	Squares []BingoSquare `json:"squares"`
	Win     bool          `json:"win"`
}

// PostView is a feed entry: the stored post plus a humanized age for
// display.
type PostView struct {
	Timestamp time.Time `json:"timestamp"`
	Player    string    `json:"player"`
	Content   string    `json:"content"`
	Age       string    `json:"age"`
}

type FeedResponse struct {
	Posts []PostView `json:"posts"`
}

type SuperlativesResponse struct {
	Categories []Superlative `json:"categories"`
}

type StateResponse struct {
	Locked             bool `json:"locked"`
	RevealScores       bool `json:"reveal_scores"`
	RevealSuperlatives bool `json:"reveal_superlatives"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
