/*
Package store is the tabular persistence layer: named tabs of ordered
string rows, supporting whole-tab reads, row appends, and blind in-place
range overwrites.

Three backends implement the same Store interface:

  - SQLStore over sqlite (modernc.org/sqlite), the default
  - SQLStore over postgres (lib/pq)
  - Memory, for tests and throwaway games

The SQL backends share one generic schema: a tabs catalog plus a
(tab, pos, cells) log with rows JSON-encoded per cell list. No store call
is ever retried here; failures propagate to the caller.
*/
package store
