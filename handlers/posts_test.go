package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"giftsleuth/models"
	"giftsleuth/testutil"
)

func TestCreatePost(t *testing.T) {
	env := testutil.NewEnv(t)
	mux := env.Router()
	token := env.Login(t, "Alice")

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{"Valid clue", models.CreatePostRequest{Content: "Check the wrapping paper"}, http.StatusCreated},
		{"Exactly three runes", models.CreatePostRequest{Content: "abc"}, http.StatusCreated},
		{"Three runes after trim", models.CreatePostRequest{Content: "  abc  "}, http.StatusCreated},
		{"Too short", models.CreatePostRequest{Content: "ab"}, http.StatusBadRequest},
		{"Whitespace only", models.CreatePostRequest{Content: "   "}, http.StatusBadRequest},
		{"Invalid JSON", "nope", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/posts", tt.body, map[string]string{"X-Session-Token": token})
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			testutil.AssertStatus(t, rec, tt.wantStatus)

			if tt.wantStatus == http.StatusCreated {
				var resp models.Post
				testutil.AssertJSON(t, rec, &resp)
				if resp.Player != "Alice" {
					t.Errorf("Expected the post attributed to the session player, got %q", resp.Player)
				}
			}
		})
	}
}

func TestPostsAppendNotOverwrite(t *testing.T) {
	env := testutil.NewEnv(t)
	mux := env.Router()
	token := env.Login(t, "Alice")
	headers := map[string]string{"X-Session-Token": token}

	// The same player posting repeatedly grows the wall, unlike guesses.
	for i := 0; i < 4; i++ {
		body := models.CreatePostRequest{Content: fmt.Sprintf("clue number %d", i)}
		req := testutil.MakeRequest("POST", "/posts", body, headers)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		testutil.AssertStatus(t, rec, http.StatusCreated)
	}

	rows, err := env.Store.ReadAll(models.TabPosts)
	if err != nil {
		t.Fatalf("Failed to read posts: %v", err)
	}
	if len(rows) != 4 {
		t.Errorf("Expected 4 rows after 4 posts, got %d", len(rows))
	}
}

func TestFeedNewestFirst(t *testing.T) {
	env := testutil.NewEnv(t)
	mux := env.Router()
	token := env.Login(t, "Alice")
	headers := map[string]string{"X-Session-Token": token}

	for _, content := range []string{"first clue", "second clue", "third clue"} {
		req := testutil.MakeRequest("POST", "/posts", models.CreatePostRequest{Content: content}, headers)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		testutil.AssertStatus(t, rec, http.StatusCreated)
	}

	req := testutil.MakeRequest("GET", "/posts", nil, headers)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp models.FeedResponse
	testutil.AssertJSON(t, rec, &resp)
	if len(resp.Posts) != 3 {
		t.Fatalf("Expected 3 posts, got %d", len(resp.Posts))
	}
	for i := 1; i < len(resp.Posts); i++ {
		if resp.Posts[i].Timestamp.After(resp.Posts[i-1].Timestamp) {
			t.Errorf("Expected newest-first ordering, got %v before %v", resp.Posts[i-1].Timestamp, resp.Posts[i].Timestamp)
		}
	}
	for _, p := range resp.Posts {
		if p.Age == "" {
			t.Errorf("Expected a humanized age on post %q", p.Content)
		}
	}
}

func TestEmptyFeed(t *testing.T) {
	env := testutil.NewEnv(t)
	mux := env.Router()
	token := env.Login(t, "Alice")

	req := testutil.MakeRequest("GET", "/posts", nil, map[string]string{"X-Session-Token": token})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp models.FeedResponse
	testutil.AssertJSON(t, rec, &resp)
	if len(resp.Posts) != 0 {
		t.Errorf("Expected an empty feed, got %v", resp.Posts)
	}
}
