package router

import (
	"net/http"

	"giftsleuth/auth"
	"giftsleuth/cache"
	"giftsleuth/config"
	"giftsleuth/handlers"
	"giftsleuth/middleware"
	"giftsleuth/upsert"
)

func New(engine *upsert.Engine, c *cache.Cache, cfg config.Config, sessions *auth.Sessions) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(c, cfg, sessions)
	guessHandler := handlers.NewGuessHandler(engine, c, cfg)
	bingoHandler := handlers.NewBingoHandler(engine, c, cfg)
	postHandler := handlers.NewPostHandler(engine, c)
	voteHandler := handlers.NewVoteHandler(engine, c, cfg)
	leaderboardHandler := handlers.NewLeaderboardHandler(c, cfg)
	adminHandler := handlers.NewAdminHandler(engine, c, cfg, sessions)
	shareHandler := handlers.NewShareHandler(cfg)

	player := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireSession(sessions, h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(sessions, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public
	mux.HandleFunc("GET /roster", middleware.WithLogging(sessionHandler.Roster))
	mux.HandleFunc("POST /login", middleware.WithLogging(sessionHandler.Login))
	mux.HandleFunc("GET /share/qr", middleware.WithLogging(shareHandler.QR))

	// Guess board
	mux.HandleFunc("GET /guesses", player(guessHandler.List))
	mux.HandleFunc("POST /guesses", player(guessHandler.Submit))

	// Bingo card
	mux.HandleFunc("GET /bingo", player(bingoHandler.Card))
	mux.HandleFunc("POST /bingo/{square}", player(bingoHandler.Stamp))

	// Clue wall
	mux.HandleFunc("GET /posts", player(postHandler.Feed))
	mux.HandleFunc("POST /posts", player(postHandler.Create))

	// Superlatives
	mux.HandleFunc("GET /superlatives", player(voteHandler.Categories))
	mux.HandleFunc("POST /votes", player(voteHandler.Submit))
	mux.HandleFunc("GET /superlatives/results", player(voteHandler.Results))

	// Leaderboard
	mux.HandleFunc("GET /leaderboard", player(leaderboardHandler.Get))

	// Admin
	mux.HandleFunc("POST /admin/login", player(adminHandler.Login))
	mux.HandleFunc("GET /admin/state", admin(adminHandler.GetState))
	mux.HandleFunc("POST /admin/state", admin(adminHandler.SetState))
	mux.HandleFunc("POST /admin/assignments", admin(adminHandler.SetAssignment))
	mux.HandleFunc("POST /admin/superlatives", admin(adminHandler.SetSuperlative))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("giftsleuth API v1"))
	})

	return mux
}
