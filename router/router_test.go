package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"giftsleuth/testutil"
)

func TestHealthCheck(t *testing.T) {
	env := testutil.NewEnv(t)
	mux := env.Router()

	req := testutil.MakeRequest("GET", "/health", nil, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	if rec.Body.String() != "OK" {
		t.Errorf("Expected body OK, got %q", rec.Body.String())
	}
}

func TestRootBanner(t *testing.T) {
	env := testutil.NewEnv(t)
	mux := env.Router()

	req := testutil.MakeRequest("GET", "/", nil, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	if rec.Body.String() != "giftsleuth API v1" {
		t.Errorf("Expected API banner, got %q", rec.Body.String())
	}
}

func TestPlayerRoutesRejectAnonymous(t *testing.T) {
	env := testutil.NewEnv(t)
	mux := env.Router()

	routes := []struct{ method, path string }{
		{"GET", "/guesses"},
		{"POST", "/guesses"},
		{"GET", "/bingo"},
		{"POST", "/bingo/0"},
		{"GET", "/posts"},
		{"POST", "/posts"},
		{"GET", "/superlatives"},
		{"POST", "/votes"},
		{"GET", "/superlatives/results"},
		{"GET", "/leaderboard"},
		{"POST", "/admin/login"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			req := testutil.MakeRequest(rt.method, rt.path, nil, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			testutil.AssertStatus(t, rec, http.StatusUnauthorized)
		})
	}
}

func TestAdminRoutesRejectPlainPlayers(t *testing.T) {
	env := testutil.NewEnv(t)
	mux := env.Router()
	token := env.Login(t, "Alice")

	routes := []struct{ method, path string }{
		{"GET", "/admin/state"},
		{"POST", "/admin/state"},
		{"POST", "/admin/assignments"},
		{"POST", "/admin/superlatives"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			req := testutil.MakeRequest(rt.method, rt.path, nil, map[string]string{"X-Session-Token": token})
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			testutil.AssertStatus(t, rec, http.StatusForbidden)
		})
	}
}

func TestShareQR(t *testing.T) {
	env := testutil.NewEnv(t)
	mux := env.Router()

	req := testutil.MakeRequest("GET", "/share/qr", nil, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("Expected a non-empty PNG body")
	}
}
