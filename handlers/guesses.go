package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"giftsleuth/cache"
	"giftsleuth/config"
	"giftsleuth/middleware"
	"giftsleuth/models"
	"giftsleuth/upsert"
	"giftsleuth/views"
)

type GuessHandler struct {
	engine *upsert.Engine
	cache  *cache.Cache
	cfg    config.Config
}

func NewGuessHandler(engine *upsert.Engine, c *cache.Cache, cfg config.Config) *GuessHandler {
	return &GuessHandler{engine: engine, cache: c, cfg: cfg}
}

// Submit handles POST /guesses
// One current guess per (player, receiver); submitting again overwrites.
func (h *GuessHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r)

	var req models.SubmitGuessRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Receiver = strings.TrimSpace(req.Receiver)
	req.Giver = strings.TrimSpace(req.Giver)

	if !h.cfg.Game.InRoster(req.Receiver) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "receiver is not in the roster")
		return
	}
	if !h.cfg.Game.InRoster(req.Giver) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "giver is not in the roster")
		return
	}
	if req.Confidence < 1 || req.Confidence > 5 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "confidence must be between 1 and 5")
		return
	}

	// The lock gates the write before the upsert engine is ever reached.
	locked, err := stateFlag(h.cache, models.StateLocked)
	if err != nil {
		slog.Error("failed to read app state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}
	if locked {
		middleware.ErrorResponse(w, http.StatusConflict, "The guess board is locked")
		return
	}

	guess := models.Guess{
		Timestamp:  time.Now().UTC(),
		Player:     sess.Player,
		Giver:      req.Giver,
		Receiver:   req.Receiver,
		Confidence: req.Confidence,
		Reason:     strings.TrimSpace(req.Reason),
	}

	key := upsert.Key{
		Columns: []int{models.GuessColPlayer, models.GuessColReceiver},
		Values:  []string{sess.Player, req.Receiver},
	}
	if err := h.engine.Upsert(models.TabGuesses, key, guess.Row()); err != nil {
		slog.Error("failed to upsert guess", "error", err, "player", sess.Player)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	slog.Info("guess saved", "player", sess.Player, "receiver", req.Receiver)

	middleware.JSONResponse(w, http.StatusCreated, guess)
}

// List handles GET /guesses
// Returns the caller's current guesses, newest row per receiver.
func (h *GuessHandler) List(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r)

	rows, err := h.cache.ReadAll(models.TabGuesses)
	if err != nil {
		slog.Error("failed to read guesses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	var mine []models.Guess
	for _, row := range rows {
		if g := models.GuessFromRow(row); g.Player == sess.Player {
			mine = append(mine, g)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.GuessListResponse{
		Guesses: views.CurrentGuesses(mine),
	})
}
