package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:         3319,
		DatabaseURL:  "game.db",
		DatabaseType: "sqlite",
		AdminCode:    "hunter2",
		CacheTTL:     20 * time.Second,
		Game:         DefaultGame(),
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"Valid config", func(c *Config) {}, ""},
		{"Memory needs no URL", func(c *Config) { c.DatabaseType = "memory"; c.DatabaseURL = "" }, ""},
		{"Port too low", func(c *Config) { c.Port = 0 }, "invalid port"},
		{"Port too high", func(c *Config) { c.Port = 70000 }, "invalid port"},
		{"Unknown database type", func(c *Config) { c.DatabaseType = "mysql" }, "invalid database type"},
		{"Missing database URL", func(c *Config) { c.DatabaseURL = "" }, "database URL required"},
		{"Missing admin code", func(c *Config) { c.AdminCode = "" }, "admin code required"},
		{"Roster too small", func(c *Config) { c.Game.Roster = []string{"Solo"} }, "at least 2 players"},
		{"Wrong square count", func(c *Config) { c.Game.Squares = c.Game.Squares[:5] }, "exactly 9 squares"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err)
			}
		})
	}
}

func TestLoadGameDefaults(t *testing.T) {
	game, err := LoadGame("")
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}
	if len(game.Roster) != 9 || len(game.Squares) != 9 {
		t.Errorf("Expected stock 9-player 9-square game, got %d/%d", len(game.Roster), len(game.Squares))
	}
}

func TestLoadGameFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	content := "roster:\n  - Alice\n  - Bob\n  - Carol\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write game file: %v", err)
	}

	game, err := LoadGame(path)
	if err != nil {
		t.Fatalf("Failed to load game file: %v", err)
	}
	if len(game.Roster) != 3 || game.Roster[0] != "Alice" {
		t.Errorf("Expected roster from file, got %v", game.Roster)
	}
	// Squares were not in the file, so the defaults survive.
	if len(game.Squares) != 9 {
		t.Errorf("Expected default squares kept, got %d", len(game.Squares))
	}
}

func TestLoadGameBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	if err := os.WriteFile(path, []byte("roster: [unclosed"), 0o644); err != nil {
		t.Fatalf("Failed to write game file: %v", err)
	}

	if _, err := LoadGame(path); err == nil {
		t.Error("Expected an error for malformed YAML")
	}
}

func TestLoadGameMissingFile(t *testing.T) {
	if _, err := LoadGame(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestInRoster(t *testing.T) {
	game := Game{Roster: []string{"Alice", "Bob"}}

	if !game.InRoster("Alice") {
		t.Error("Expected Alice in roster")
	}
	if game.InRoster("alice") {
		t.Error("Expected roster match to be case sensitive")
	}
	if game.InRoster("Mallory") {
		t.Error("Expected Mallory not in roster")
	}
}
