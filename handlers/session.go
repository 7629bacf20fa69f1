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
)

type SessionHandler struct {
	cache    *cache.Cache
	cfg      config.Config
	sessions *auth.Sessions
}

func NewSessionHandler(c *cache.Cache, cfg config.Config, sessions *auth.Sessions) *SessionHandler {
	return &SessionHandler{cache: c, cfg: cfg, sessions: sessions}
}

// Roster handles GET /roster
func (h *SessionHandler) Roster(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.RosterResponse{
		Players: h.cfg.Game.Roster,
	})
}

// Login handles POST /login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || req.Passcode == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name and passcode are required")
		return
	}

	rows, err := h.cache.ReadAll(models.TabPlayers)
	if err != nil {
		slog.Error("failed to read players", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	players := make([]models.Player, 0, len(rows))
	for _, row := range rows {
		players = append(players, models.PlayerFromRow(row))
	}

	if !auth.VerifyPasscode(players, name, req.Passcode) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unknown player or wrong passcode")
		return
	}

	sess := h.sessions.Create(name)

	slog.Info("player logged in", "player", name)

	middleware.JSONResponse(w, http.StatusCreated, models.LoginResponse{
		Token:  sess.Token,
		Player: sess.Player,
	})
}
