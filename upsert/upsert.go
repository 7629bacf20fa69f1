package upsert

import (
	"errors"
	"fmt"
	"strings"

	"giftsleuth/cache"
	"giftsleuth/store"
)

// Policy names the behavior when the key scan finds rows that already
// duplicate the logical key.
type Policy int

const (
	// FirstMatch overwrites the first matching row in stored order; later
	// duplicates are left orphaned and unreachable. This is the default.
	FirstMatch Policy = iota
	// RejectDuplicate fails the write when more than one row already
	// matches the key, surfacing the corruption instead of hiding it.
	RejectDuplicate
)

var ErrDuplicateKey = errors.New("duplicate rows for logical key")

// Key identifies the logical record within a tab: ordered column offsets
// and the values to match. Cell comparison trims surrounding whitespace;
// FoldCase additionally compares case-insensitively (app_state keys).
type Key struct {
	Columns  []int
	Values   []string
	FoldCase bool
}

// Matches reports whether row carries this key.
func (k Key) Matches(row store.Row) bool {
	for i, col := range k.Columns {
		var c string
		if col >= 0 && col < len(row) {
			c = strings.TrimSpace(row[col])
		}
		want := strings.TrimSpace(k.Values[i])
		if k.FoldCase {
			if !strings.EqualFold(c, want) {
				return false
			}
		} else if c != want {
			return false
		}
	}
	return true
}

// Writer is the write side of the tabular store.
type Writer interface {
	Append(tab string, row store.Row) error
	UpdateRange(tab string, pos, startCol int, values []string) error
}

// Engine performs keyed upserts against the store and keeps the read
// cache consistent with its writes. Construct one at startup and inject
// it wherever writes happen.
type Engine struct {
	store Writer
	cache *cache.Cache
}

func New(st Writer, c *cache.Cache) *Engine {
	return &Engine{store: st, cache: c}
}

// Upsert writes row under key with the FirstMatch policy.
func (e *Engine) Upsert(tab string, key Key, row store.Row) error {
	return e.UpsertPolicy(tab, key, row, FirstMatch)
}

// UpsertPolicy scans every row of tab for the first one matching key and
// blindly overwrites it in place, or appends row when no match exists,
// then invalidates the tab's cache entry. The scan is O(rows) per write,
// which is fine at the tens-of-rows sizes this app sees; do not "fix" it
// without keeping first-match-wins and the per-tab case rules.
//
// The read may be stale up to the cache TTL, and the read-then-write
// sequence is not atomic: two uncoordinated writers can both miss and
// both append, leaving a duplicate that only scan order resolves. The
// store offers no conditional write, so that race is documented rather
// than closed.
func (e *Engine) UpsertPolicy(tab string, key Key, row store.Row, p Policy) error {
	rows, err := e.cache.ReadAll(tab)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", tab, err)
	}

	pos := -1
	matches := 0
	for i, r := range rows {
		if key.Matches(r) {
			matches++
			if pos < 0 {
				pos = i
			}
		}
	}

	if p == RejectDuplicate && matches > 1 {
		return fmt.Errorf("upsert %s: %w", tab, ErrDuplicateKey)
	}

	if pos >= 0 {
		err = e.store.UpdateRange(tab, pos, 0, row)
	} else {
		err = e.store.Append(tab, row)
	}
	if err != nil {
		return fmt.Errorf("upsert %s: %w", tab, err)
	}

	e.cache.Invalidate(tab)
	return nil
}

// Append adds row with no key scan (pure-log tabs like posts) and keeps
// the cache consistent with the write.
func (e *Engine) Append(tab string, row store.Row) error {
	if err := e.store.Append(tab, row); err != nil {
		return fmt.Errorf("append %s: %w", tab, err)
	}
	e.cache.Invalidate(tab)
	return nil
}
