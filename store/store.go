package store

import "errors"

// Row is one data row of a tab: ordered cell values, one per column.
type Row []string

// Tab describes one named table in the store: a fixed ordered column set
// over an append-only log of rows.
type Tab struct {
	Name    string
	Columns []string
}

var (
	ErrNoSuchTab = errors.New("no such tab")
	ErrRowRange  = errors.New("row index out of range")
	ErrCellRange = errors.New("cell range exceeds tab width")
)

// Store is the tabular store the rest of the app writes through. The
// contract is deliberately small: whole-tab reads, row appends, and blind
// in-place range overwrites addressed by 0-based data-row position. There
// are no transactions spanning calls, no compare-and-swap, and no row
// locking; each individual call is atomic and that is all.
//
// Errors from the backing store propagate to the caller unchanged in
// meaning. Nothing in this package retries.
type Store interface {
	// ReadAll returns every data row of tab in stored order.
	ReadAll(tab string) ([]Row, error)

	// Append adds row at the end of tab. The row must be exactly as wide
	// as the tab.
	Append(tab string, row Row) error

	// UpdateRange overwrites cells [startCol, startCol+len(values)) of the
	// data row at pos. Old cell values are not inspected.
	UpdateRange(tab string, pos, startCol int, values []string) error

	Close() error
}
