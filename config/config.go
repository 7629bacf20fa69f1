package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"giftsleuth/views"
)

// Config is the full server configuration, populated from flags and
// SLEUTH_-prefixed environment variables.
type Config struct {
	Bind         string
	Port         int
	DatabaseURL  string
	DatabaseType string // sqlite, postgres, or memory
	AdminCode    string
	PublicURL    string
	CacheTTL     time.Duration
	GameFile     string
	Verbose      bool

	Game Game
}

// Game is the per-deployment game definition: who is playing and what the
// bingo card says. Loaded from YAML, with the stock card as default.
type Game struct {
	Roster  []string `yaml:"roster"`
	Squares []string `yaml:"squares"`
}

// DefaultGame returns the stock nine-player game with the original bingo
// card.
func DefaultGame() Game {
	return Game{
		Roster: []string{
			"Player 1", "Player 2", "Player 3",
			"Player 4", "Player 5", "Player 6",
			"Player 7", "Player 8", "Player 9",
		},
		Squares: []string{
			"Accused an innocent person",
			"Changed a guess 3+ times",
			"Used \"evidence\" in a reason",
			"Posted a clue",
			"Got baited by a fake clue",
			"Guessed your own Santa",
			"Confidence 5 and still wrong",
			"Called someone \"too obvious\"",
			"Made a guess in under 10 seconds",
		},
	}
}

// LoadGame reads a YAML game definition from path. Fields the file leaves
// out keep their defaults; an empty path returns the defaults untouched.
func LoadGame(path string) (Game, error) {
	game := DefaultGame()
	if path == "" {
		return game, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Game{}, fmt.Errorf("read game file: %w", err)
	}
	if err := yaml.Unmarshal(data, &game); err != nil {
		return Game{}, fmt.Errorf("parse game file %s: %w", path, err)
	}
	return game, nil
}

// InRoster reports whether name is a configured player.
func (g Game) InRoster(name string) bool {
	for _, n := range g.Roster {
		if n == name {
			return true
		}
	}
	return false
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}

	switch c.DatabaseType {
	case "sqlite", "postgres", "memory":
	default:
		return fmt.Errorf("invalid database type (must be sqlite, postgres, or memory): %q", c.DatabaseType)
	}
	if c.DatabaseType != "memory" && c.DatabaseURL == "" {
		return errors.New("database URL required (use --database-url or SLEUTH_DATABASE_URL)")
	}

	if c.AdminCode == "" {
		return errors.New("admin code required (use --admin-code or SLEUTH_ADMIN_CODE)")
	}

	if len(c.Game.Roster) < 2 {
		return fmt.Errorf("game roster needs at least 2 players, got %d", len(c.Game.Roster))
	}
	if len(c.Game.Squares) != views.CardSize {
		return fmt.Errorf("bingo card needs exactly %d squares, got %d", views.CardSize, len(c.Game.Squares))
	}

	return nil
}
