package handlers

import (
	"log/slog"
	"net/http"

	"giftsleuth/cache"
	"giftsleuth/config"
	"giftsleuth/middleware"
	"giftsleuth/models"
	"giftsleuth/views"
)

type LeaderboardHandler struct {
	cache *cache.Cache
	cfg   config.Config
}

func NewLeaderboardHandler(c *cache.Cache, cfg config.Config) *LeaderboardHandler {
	return &LeaderboardHandler{cache: c, cfg: cfg}
}

// Get handles GET /leaderboard
// Hidden until the host flips reveal_scores. With no assignments entered
// yet, every player scores zero; that is a valid state, not an error.
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	revealed, err := stateFlag(h.cache, models.StateRevealScores)
	if err != nil {
		slog.Error("failed to read app state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}
	if !revealed {
		middleware.ErrorResponse(w, http.StatusForbidden, "Scores are hidden until the host reveals them")
		return
	}

	guessRows, err := h.cache.ReadAll(models.TabGuesses)
	if err != nil {
		slog.Error("failed to read guesses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}
	assignmentRows, err := h.cache.ReadAll(models.TabAssignments)
	if err != nil {
		slog.Error("failed to read assignments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	guesses := make([]models.Guess, 0, len(guessRows))
	for _, row := range guessRows {
		guesses = append(guesses, models.GuessFromRow(row))
	}
	assignments := make([]models.Assignment, 0, len(assignmentRows))
	for _, row := range assignmentRows {
		assignments = append(assignments, models.AssignmentFromRow(row))
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"scores": views.Scores(guesses, assignments, h.cfg.Game.Roster),
	})
}
