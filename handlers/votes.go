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

type VoteHandler struct {
	engine *upsert.Engine
	cache  *cache.Cache
	cfg    config.Config
}

func NewVoteHandler(engine *upsert.Engine, c *cache.Cache, cfg config.Config) *VoteHandler {
	return &VoteHandler{engine: engine, cache: c, cfg: cfg}
}

// Categories handles GET /superlatives
// Returns the active categories. None defined is a valid state.
func (h *VoteHandler) Categories(w http.ResponseWriter, r *http.Request) {
	active, err := h.activeCategories()
	if err != nil {
		slog.Error("failed to read superlatives", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuperlativesResponse{Categories: active})
}

// Submit handles POST /votes
// One current vote per (voter, category); voting again moves the vote.
func (h *VoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r)

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	req.Nominee = strings.TrimSpace(req.Nominee)

	active, err := h.activeCategories()
	if err != nil {
		slog.Error("failed to read superlatives", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	known := false
	for _, c := range active {
		if c.Category == req.Category {
			known = true
			break
		}
	}
	if !known {
		middleware.ErrorResponse(w, http.StatusBadRequest, "unknown or inactive category")
		return
	}
	if !h.cfg.Game.InRoster(req.Nominee) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nominee is not in the roster")
		return
	}

	vote := models.Vote{
		Timestamp: time.Now().UTC(),
		Voter:     sess.Player,
		Category:  req.Category,
		Nominee:   req.Nominee,
	}

	key := upsert.Key{
		Columns: []int{models.VoteColVoter, models.VoteColCategory},
		Values:  []string{sess.Player, req.Category},
	}
	if err := h.engine.Upsert(models.TabVotes, key, vote.Row()); err != nil {
		slog.Error("failed to upsert vote", "error", err, "voter", sess.Player)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	slog.Info("vote saved", "voter", sess.Player, "category", req.Category)

	middleware.JSONResponse(w, http.StatusCreated, vote)
}

// Results handles GET /superlatives/results
// Hidden until the host flips reveal_superlatives.
func (h *VoteHandler) Results(w http.ResponseWriter, r *http.Request) {
	revealed, err := stateFlag(h.cache, models.StateRevealSuperlatives)
	if err != nil {
		slog.Error("failed to read app state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}
	if !revealed {
		middleware.ErrorResponse(w, http.StatusForbidden, "Results are hidden until the host reveals them")
		return
	}

	rows, err := h.cache.ReadAll(models.TabVotes)
	if err != nil {
		slog.Error("failed to read votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	votes := make([]models.Vote, 0, len(rows))
	for _, row := range rows {
		votes = append(votes, models.VoteFromRow(row))
	}

	tally := views.Tally(votes)

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"tally":   tally,
		"winners": views.Winners(tally),
	})
}

func (h *VoteHandler) activeCategories() ([]models.Superlative, error) {
	rows, err := h.cache.ReadAll(models.TabSuperlatives)
	if err != nil {
		return nil, err
	}

	active := []models.Superlative{}
	for _, row := range rows {
		if s := models.SuperlativeFromRow(row); s.Active {
			active = append(active, s)
		}
	}
	return active, nil
}
