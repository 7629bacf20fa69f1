package handlers

import (
	"log/slog"
	"net/http"

	qrcode "github.com/skip2/go-qrcode"

	"giftsleuth/config"
	"giftsleuth/middleware"
)

type ShareHandler struct {
	cfg config.Config
}

func NewShareHandler(cfg config.Config) *ShareHandler {
	return &ShareHandler{cfg: cfg}
}

// QR handles GET /share/qr
// Serves a PNG QR code of the game URL for passing phones around the
// room. Falls back to the request host when no public URL is configured.
func (h *ShareHandler) QR(w http.ResponseWriter, r *http.Request) {
	target := h.cfg.PublicURL
	if target == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		target = scheme + "://" + r.Host
	}

	png, err := qrcode.Encode(target, qrcode.Medium, 256)
	if err != nil {
		slog.Error("failed to encode QR code", "error", err, "target", target)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		slog.Error("failed to write QR code response", "error", err)
	}
}
