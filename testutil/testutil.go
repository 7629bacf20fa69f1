package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"giftsleuth/auth"
	"giftsleuth/cache"
	"giftsleuth/config"
	"giftsleuth/models"
	"giftsleuth/router"
	"giftsleuth/store"
	"giftsleuth/upsert"
)

// Env is a fully wired test environment over the in-memory store: the
// same dependency graph main builds, minus the HTTP server.
type Env struct {
	Store    *store.Memory
	Cache    *cache.Cache
	Engine   *upsert.Engine
	Sessions *auth.Sessions
	Cfg      config.Config
}

func NewEnv(t *testing.T) *Env {
	t.Helper()

	st := store.NewMemory(models.Tabs())
	c := cache.New(st, time.Minute)

	return &Env{
		Store:    st,
		Cache:    c,
		Engine:   upsert.New(st, c),
		Sessions: auth.NewSessions(),
		Cfg:      TestConfig(),
	}
}

// TestConfig returns a standard test configuration with a nine-player
// roster and the stock bingo card.
func TestConfig() config.Config {
	game := config.DefaultGame()
	game.Roster = []string{
		"Alice", "Bob", "Carol",
		"Dave", "Erin", "Frank",
		"Grace", "Heidi", "Ivan",
	}

	return config.Config{
		Bind:         "127.0.0.1",
		Port:         3319,
		DatabaseType: "memory",
		AdminCode:    "test-admin-code",
		CacheTTL:     time.Minute,
		Game:         game,
	}
}

// Router builds the full route table over the environment.
func (e *Env) Router() *http.ServeMux {
	return router.New(e.Engine, e.Cache, e.Cfg, e.Sessions)
}

// SeedPlayer adds a row to the players tab.
func (e *Env) SeedPlayer(t *testing.T, name, passcode string) {
	t.Helper()
	if err := e.Engine.Append(models.TabPlayers, models.Player{Name: name, Passcode: passcode}.Row()); err != nil {
		t.Fatalf("Failed to seed player %s: %v", name, err)
	}
}

// SeedAssignment adds a ground-truth row to the assignments tab.
func (e *Env) SeedAssignment(t *testing.T, receiver, giver string) {
	t.Helper()
	if err := e.Engine.Append(models.TabAssignments, models.Assignment{Receiver: receiver, Giver: giver}.Row()); err != nil {
		t.Fatalf("Failed to seed assignment for %s: %v", receiver, err)
	}
}

// SeedSuperlative adds a voting category to the superlatives tab.
func (e *Env) SeedSuperlative(t *testing.T, category, prompt string, active bool) {
	t.Helper()
	row := models.Superlative{Category: category, Prompt: prompt, Active: active}.Row()
	if err := e.Engine.Append(models.TabSuperlatives, row); err != nil {
		t.Fatalf("Failed to seed superlative %s: %v", category, err)
	}
}

// SetFlag upserts an app_state flag.
func (e *Env) SetFlag(t *testing.T, key, value string) {
	t.Helper()
	k := upsert.Key{Columns: []int{models.StateColKey}, Values: []string{key}, FoldCase: true}
	if err := e.Engine.Upsert(models.TabAppState, k, []string{key, value}); err != nil {
		t.Fatalf("Failed to set flag %s: %v", key, err)
	}
}

// Login issues a session for name and returns its token.
func (e *Env) Login(t *testing.T, name string) string {
	t.Helper()
	return e.Sessions.Create(name).Token
}

// AdminLogin issues an elevated session for name and returns its token.
func (e *Env) AdminLogin(t *testing.T, name string) string {
	t.Helper()
	token := e.Sessions.Create(name).Token
	if !e.Sessions.Elevate(token) {
		t.Fatalf("Failed to elevate session for %s", name)
	}
	return token
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
