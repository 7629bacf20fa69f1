package store

import (
	"fmt"
	"sync"
)

// Memory is an in-process store with the same semantics as the SQL
// backends. Used by tests and for throwaway games.
type Memory struct {
	mu      sync.Mutex
	columns map[string][]string
	rows    map[string][]Row
}

func NewMemory(tabs []Tab) *Memory {
	m := &Memory{
		columns: make(map[string][]string, len(tabs)),
		rows:    make(map[string][]Row, len(tabs)),
	}
	for _, t := range tabs {
		m.columns[t.Name] = t.Columns
		m.rows[t.Name] = nil
	}
	return m
}

func (m *Memory) ReadAll(tab string) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.rows[tab]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", tab, ErrNoSuchTab)
	}

	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = append(Row(nil), r...)
	}
	return out, nil
}

func (m *Memory) Append(tab string, row Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	columns, ok := m.columns[tab]
	if !ok {
		return fmt.Errorf("append %s: %w", tab, ErrNoSuchTab)
	}
	if len(row) != len(columns) {
		return fmt.Errorf("append %s: row has %d cells, tab has %d columns: %w", tab, len(row), len(columns), ErrCellRange)
	}

	m.rows[tab] = append(m.rows[tab], append(Row(nil), row...))
	return nil
}

func (m *Memory) UpdateRange(tab string, pos, startCol int, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	columns, ok := m.columns[tab]
	if !ok {
		return fmt.Errorf("update %s: %w", tab, ErrNoSuchTab)
	}
	if startCol < 0 || startCol+len(values) > len(columns) {
		return fmt.Errorf("update %s: cols [%d,%d) of %d: %w", tab, startCol, startCol+len(values), len(columns), ErrCellRange)
	}
	if pos < 0 || pos >= len(m.rows[tab]) {
		return fmt.Errorf("update %s row %d: %w", tab, pos, ErrRowRange)
	}

	row := m.rows[tab][pos]
	for len(row) < len(columns) {
		row = append(row, "")
	}
	copy(row[startCol:], values)
	m.rows[tab][pos] = row
	return nil
}

func (m *Memory) Close() error {
	return nil
}
