package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"giftsleuth/cache"
	"giftsleuth/config"
	"giftsleuth/middleware"
	"giftsleuth/models"
	"giftsleuth/upsert"
	"giftsleuth/views"
)

type BingoHandler struct {
	engine *upsert.Engine
	cache  *cache.Cache
	cfg    config.Config
}

func NewBingoHandler(engine *upsert.Engine, c *cache.Cache, cfg config.Config) *BingoHandler {
	return &BingoHandler{engine: engine, cache: c, cfg: cfg}
}

// Card handles GET /bingo
func (h *BingoHandler) Card(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r)

	card, err := h.card(sess.Player)
	if err != nil {
		slog.Error("failed to read bingo card", "error", err, "player", sess.Player)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, card)
}

// Stamp handles POST /bingo/{square}
// One current state per (player, square); stamping again overwrites, so
// unchecking removes a win on the next evaluation.
func (h *BingoHandler) Stamp(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r)

	square, err := strconv.Atoi(r.PathValue("square"))
	if err != nil || square < 0 || square >= views.CardSize {
		middleware.ErrorResponse(w, http.StatusBadRequest, "square must be an integer between 0 and 8")
		return
	}

	var req models.StampRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	stamp := models.BingoStamp{
		Timestamp: time.Now().UTC(),
		Player:    sess.Player,
		Square:    square,
		Checked:   req.Checked,
	}

	key := upsert.Key{
		Columns: []int{models.BingoColPlayer, models.BingoColSquare},
		Values:  []string{sess.Player, strconv.Itoa(square)},
	}
	if err := h.engine.Upsert(models.TabBingo, key, stamp.Row()); err != nil {
		slog.Error("failed to upsert bingo stamp", "error", err, "player", sess.Player)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	card, err := h.card(sess.Player)
	if err != nil {
		slog.Error("failed to re-read bingo card", "error", err, "player", sess.Player)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	slog.Info("bingo square stamped", "player", sess.Player, "square", square, "checked", req.Checked, "win", card.Win)

	middleware.JSONResponse(w, http.StatusOK, card)
}

// card builds player's current card and win state from the stamp log.
func (h *BingoHandler) card(player string) (models.BingoCardResponse, error) {
	rows, err := h.cache.ReadAll(models.TabBingo)
	if err != nil {
		return models.BingoCardResponse{}, err
	}

	stamps := make([]models.BingoStamp, 0, len(rows))
	for _, row := range rows {
		stamps = append(stamps, models.BingoStampFromRow(row))
	}

	checked := views.CardChecked(stamps, player)

	squares := make([]models.BingoSquare, views.CardSize)
	for i, label := range h.cfg.Game.Squares {
		squares[i] = models.BingoSquare{ID: i, Label: label, Checked: checked[i]}
	}

	return models.BingoCardResponse{
		Squares: squares,
		Win:     views.HasBingo(checked),
	}, nil
}
