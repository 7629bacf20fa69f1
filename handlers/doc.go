/*
Package handlers contains the HTTP request handlers for the giftsleuth
API.

# Handler Types

Each handler is a struct built from its dependencies (upsert engine, read
cache, config, sessions) via a constructor:

	guessHandler := handlers.NewGuessHandler(engine, cache, cfg)

  - SessionHandler: roster and login
  - GuessHandler: submitting and listing gift-exchange guesses
  - BingoHandler: the 3x3 card and square stamping
  - PostHandler: the append-only clue wall
  - VoteHandler: superlative categories, voting, and revealed results
  - LeaderboardHandler: the revealed score table
  - AdminHandler: admin unlock, app-state flags, assignments, categories
  - ShareHandler: the join QR code

# Player Flow

Players log in with their name and passcode and carry the issued token:

	POST /login              -> {token}
	POST /guesses            -> upsert keyed on (player, receiver)
	POST /bingo/{square}     -> upsert keyed on (player, square)
	POST /posts              -> pure append
	POST /votes              -> upsert keyed on (voter, category)

Player operations require the X-Session-Token header.

# Reveal Gates

The leaderboard and superlative results return 403 until the host flips
reveal_scores / reveal_superlatives in app_state; the guess board rejects
writes while locked=TRUE, before the upsert engine is reached.
*/
package handlers
