package auth

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/google/uuid"

	"giftsleuth/models"
)

// VerifyPasscode checks name's passcode against the players tab. The
// scheme is a shared plaintext passcode per player, kept as-is from the
// original game; the comparison is constant-time so a wrong code is all a
// caller can learn. The first roster row for a name wins, consistent with
// every other keyed read.
func VerifyPasscode(players []models.Player, name, passcode string) bool {
	for _, p := range players {
		if p.Name != name {
			continue
		}
		return subtle.ConstantTimeCompare([]byte(p.Passcode), []byte(passcode)) == 1
	}
	return false
}

// VerifyAdminCode compares the submitted admin code against the
// configured one. An empty configured code never matches.
func VerifyAdminCode(got, want string) bool {
	return want != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// Session is one logged-in player. Admin is set after a successful admin
// code entry.
type Session struct {
	Token     string    `json:"-"`
	Player    string    `json:"player"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Sessions is the in-process session registry, shared by all requests.
// Constructed once at startup and injected, never a package-level
// singleton.
type Sessions struct {
	mu      sync.RWMutex
	byToken map[string]Session
}

func NewSessions() *Sessions {
	return &Sessions{byToken: make(map[string]Session)}
}

// Create issues a new session for player and returns it with a fresh
// token.
func (s *Sessions) Create(player string) Session {
	sess := Session{
		Token:     uuid.NewString(),
		Player:    player,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.byToken[sess.Token] = sess
	s.mu.Unlock()

	return sess
}

// Get resolves a token to its session.
func (s *Sessions) Get(token string) (Session, bool) {
	s.mu.RLock()
	sess, ok := s.byToken[token]
	s.mu.RUnlock()
	return sess, ok
}

// Elevate marks the session for token as admin. Reports whether the token
// was known.
func (s *Sessions) Elevate(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byToken[token]
	if !ok {
		return false
	}
	sess.Admin = true
	s.byToken[token] = sess
	return true
}
