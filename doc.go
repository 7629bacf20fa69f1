/*
Package main provides the entry point for the giftsleuth API server.

Giftsleuth runs a secret-santa guessing game for one room of people:
everyone guesses who drew whom, posts clues, stamps a bingo card of party
moments, and votes on superlatives; the host reveals the leaderboard at
the end.

# Starting the Server

The server reads flags, SLEUTH_-prefixed environment variables, and a
local .env file:

	SLEUTH_ADMIN_CODE=opensesame go run .

Or with flags:

	go run . -p 3319 -t sqlite -d santa.db --admin-code opensesame

# Configuration

Required settings:

  - SLEUTH_ADMIN_CODE (--admin-code): code that unlocks the admin tools

Optional settings:

  - SLEUTH_PORT (-p): server port (default: 3319)
  - SLEUTH_DATABASE_TYPE (-t): sqlite, postgres, or memory
  - SLEUTH_DATABASE_URL (-d): database file or connection string
  - SLEUTH_GAME (--game): YAML roster and bingo card definition
  - SLEUTH_PUBLIC_URL (--public-url): URL encoded in the join QR code

# Architecture

All state lives in an append-only tabular store behind a thin data-access
stack, wired once at startup and injected:

  - store: tabular backends (sqlite, postgres, in-memory)
  - cache: process-wide TTL read cache, invalidated per tab on write
  - upsert: row-keyed upsert engine over store + cache
  - views: derived views (scores, bingo wins, vote tallies)
  - models: tab catalog, row records, API types
  - handlers, router, middleware, auth: the HTTP layer

See package documentation for each component.
*/
package main
