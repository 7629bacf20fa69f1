/*
Package views computes the derived views of the game: the score table,
bingo-win detection, and the superlative vote tally.

Everything here is a pure function over rows the caller has already read;
nothing caches its result, so every render reflects the freshest data the
read cache will serve. Each computer starts with a read-side deduplication
pass (newest row per logical key), a second layer of defense on top of the
upsert engine's in-place overwrites.
*/
package views
