package handlers

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"giftsleuth/cache"
	"giftsleuth/middleware"
	"giftsleuth/models"
	"giftsleuth/upsert"
)

// minClueLen is the validation floor for clue text, counted in runes
// after trimming.
const minClueLen = 3

type PostHandler struct {
	engine *upsert.Engine
	cache  *cache.Cache
}

func NewPostHandler(engine *upsert.Engine, c *cache.Cache) *PostHandler {
	return &PostHandler{engine: engine, cache: c}
}

// Create handles POST /posts
// The clue wall is a pure log: no key, no overwrite, every post is one
// new row.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r)

	var req models.CreatePostRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	content := strings.TrimSpace(req.Content)
	if utf8.RuneCountInString(content) < minClueLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "clue must be at least 3 characters")
		return
	}

	post := models.Post{
		Timestamp: time.Now().UTC(),
		Player:    sess.Player,
		Content:   content,
	}

	if err := h.engine.Append(models.TabPosts, post.Row()); err != nil {
		slog.Error("failed to append post", "error", err, "player", sess.Player)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	slog.Info("clue posted", "player", sess.Player)

	middleware.JSONResponse(w, http.StatusCreated, post)
}

// Feed handles GET /posts
// Returns the clue wall newest-first with humanized ages. An empty wall
// is a valid state: an empty feed, not an error.
func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	rows, err := h.cache.ReadAll(models.TabPosts)
	if err != nil {
		slog.Error("failed to read posts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	posts := make([]models.PostView, 0, len(rows))
	for _, row := range rows {
		p := models.PostFromRow(row)
		posts = append(posts, models.PostView{
			Timestamp: p.Timestamp,
			Player:    p.Player,
			Content:   p.Content,
			Age:       humanize.Time(p.Timestamp),
		})
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Timestamp.After(posts[j].Timestamp)
	})

	middleware.JSONResponse(w, http.StatusOK, models.FeedResponse{Posts: posts})
}
