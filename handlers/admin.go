package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"giftsleuth/auth"
	"giftsleuth/cache"
	"giftsleuth/config"
	"giftsleuth/middleware"
	"giftsleuth/models"
	"giftsleuth/upsert"
)

type AdminHandler struct {
	engine   *upsert.Engine
	cache    *cache.Cache
	cfg      config.Config
	sessions *auth.Sessions
}

func NewAdminHandler(engine *upsert.Engine, c *cache.Cache, cfg config.Config, sessions *auth.Sessions) *AdminHandler {
	return &AdminHandler{engine: engine, cache: c, cfg: cfg, sessions: sessions}
}

// Login handles POST /admin/login
// Elevates the caller's session after an exact admin code match.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !auth.VerifyAdminCode(req.Code, h.cfg.AdminCode) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin code")
		return
	}

	token := r.Header.Get("X-Session-Token")
	if !h.sessions.Elevate(token) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid session token")
		return
	}

	slog.Info("admin unlocked", "player", middleware.SessionFrom(r).Player)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Admin tools unlocked"})
}

// GetState handles GET /admin/state
func (h *AdminHandler) GetState(w http.ResponseWriter, r *http.Request) {
	rows, err := h.cache.ReadAll(models.TabAppState)
	if err != nil {
		slog.Error("failed to read app state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StateResponse{
		Locked:             models.IsTrue(models.FlagValue(rows, models.StateLocked)),
		RevealScores:       models.IsTrue(models.FlagValue(rows, models.StateRevealScores)),
		RevealSuperlatives: models.IsTrue(models.FlagValue(rows, models.StateRevealSuperlatives)),
	})
}

// SetState handles POST /admin/state
// Flags are read case-insensitively but always written canonically as
// TRUE/FALSE.
func (h *AdminHandler) SetState(w http.ResponseWriter, r *http.Request) {
	var req models.SetStateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	key := strings.ToLower(strings.TrimSpace(req.Key))
	switch key {
	case models.StateLocked, models.StateRevealScores, models.StateRevealSuperlatives:
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "key must be locked, reveal_scores, or reveal_superlatives")
		return
	}

	var value string
	switch strings.ToUpper(strings.TrimSpace(req.Value)) {
	case models.FlagTrue:
		value = models.FlagTrue
	case models.FlagFalse:
		value = models.FlagFalse
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "value must be TRUE or FALSE")
		return
	}

	upsertKey := upsert.Key{
		Columns:  []int{models.StateColKey},
		Values:   []string{key},
		FoldCase: true, // app_state keys match case-insensitively
	}
	if err := h.engine.Upsert(models.TabAppState, upsertKey, []string{key, value}); err != nil {
		slog.Error("failed to upsert app state", "error", err, "key", key)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	slog.Info("app state changed", "key", key, "value", value, "admin", middleware.SessionFrom(r).Player)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: key + " set to " + value})
}

// SetAssignment handles POST /admin/assignments
// Maintains the ground truth the leaderboard scores against, one row per
// receiver.
func (h *AdminHandler) SetAssignment(w http.ResponseWriter, r *http.Request) {
	var req models.SetAssignmentRequest
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

	assignment := models.Assignment{Receiver: req.Receiver, Giver: req.Giver}

	key := upsert.Key{
		Columns: []int{models.AssignmentColReceiver},
		Values:  []string{req.Receiver},
	}
	if err := h.engine.Upsert(models.TabAssignments, key, assignment.Row()); err != nil {
		slog.Error("failed to upsert assignment", "error", err, "receiver", req.Receiver)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	slog.Info("assignment saved", "receiver", req.Receiver, "admin", middleware.SessionFrom(r).Player)

	middleware.JSONResponse(w, http.StatusCreated, assignment)
}

// SetSuperlative handles POST /admin/superlatives
// Creates or updates a voting category, one row per category name.
func (h *AdminHandler) SetSuperlative(w http.ResponseWriter, r *http.Request) {
	var req models.SetSuperlativeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category is required")
		return
	}

	superlative := models.Superlative{
		Category: req.Category,
		Prompt:   strings.TrimSpace(req.Prompt),
		Active:   req.Active,
	}

	key := upsert.Key{
		Columns: []int{models.SuperlativeColCategory},
		Values:  []string{req.Category},
	}
	if err := h.engine.Upsert(models.TabSuperlatives, key, superlative.Row()); err != nil {
		slog.Error("failed to upsert superlative", "error", err, "category", req.Category)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	slog.Info("superlative saved", "category", req.Category, "active", req.Active, "admin", middleware.SessionFrom(r).Player)

	middleware.JSONResponse(w, http.StatusCreated, superlative)
}
