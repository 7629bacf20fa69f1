package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Driver names accepted by OpenSQL.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// SQLStore keeps every tab in one generic pair of SQL tables: a catalog of
// tab names and a (tab, pos, cells) log where cells is the JSON-encoded
// row. The same statements serve both sqlite and postgres; only the
// placeholder style differs.
type SQLStore struct {
	db     *sql.DB
	driver string
	tabs   map[string][]string
}

// OpenSQL opens (or creates) a SQL-backed store and makes sure the schema
// and the tab catalog exist. Safe to call against an existing database.
func OpenSQL(driver, dsn string, tabs []Tab) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s store: %w", driver, err)
	}

	s := &SQLStore{db: db, driver: driver, tabs: make(map[string][]string, len(tabs))}
	for _, t := range tabs {
		s.tabs[t.Name] = t.Columns
	}

	if err := s.ensureSchema(tabs); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) ensureSchema(tabs []Tab) error {
	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	insert := s.rebind(`INSERT INTO tabs (name, columns) VALUES (?, ?) ON CONFLICT (name) DO NOTHING`)
	for _, t := range tabs {
		columns, err := json.Marshal(t.Columns)
		if err != nil {
			return fmt.Errorf("failed to encode columns for %s: %w", t.Name, err)
		}
		if _, err := s.db.Exec(insert, t.Name, string(columns)); err != nil {
			return fmt.Errorf("failed to register tab %s: %w", t.Name, err)
		}
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS tabs (
    name TEXT PRIMARY KEY,
    columns TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tab_rows (
    tab TEXT NOT NULL REFERENCES tabs(name),
    pos INTEGER NOT NULL,
    cells TEXT NOT NULL,
    PRIMARY KEY (tab, pos)
);
`

// ReadAll returns every data row of tab in stored order.
func (s *SQLStore) ReadAll(tab string) ([]Row, error) {
	if _, ok := s.tabs[tab]; !ok {
		return nil, fmt.Errorf("read %s: %w", tab, ErrNoSuchTab)
	}

	rows, err := s.db.Query(s.rebind(`SELECT cells FROM tab_rows WHERE tab = ? ORDER BY pos`), tab)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", tab, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var cells string
		if err := rows.Scan(&cells); err != nil {
			return nil, fmt.Errorf("read %s: %w", tab, err)
		}
		var row Row
		if err := json.Unmarshal([]byte(cells), &row); err != nil {
			return nil, fmt.Errorf("read %s: decode row: %w", tab, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Append adds row at the end of tab. Position assignment and insertion
// happen in one statement, so a single append is atomic.
func (s *SQLStore) Append(tab string, row Row) error {
	columns, ok := s.tabs[tab]
	if !ok {
		return fmt.Errorf("append %s: %w", tab, ErrNoSuchTab)
	}
	if len(row) != len(columns) {
		return fmt.Errorf("append %s: row has %d cells, tab has %d columns: %w", tab, len(row), len(columns), ErrCellRange)
	}

	cells, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("append %s: %w", tab, err)
	}

	_, err = s.db.Exec(s.rebind(`
		INSERT INTO tab_rows (tab, pos, cells)
		SELECT ?, COALESCE(MAX(pos) + 1, 0), ? FROM tab_rows WHERE tab = ?
	`), tab, string(cells), tab)
	if err != nil {
		return fmt.Errorf("append %s: %w", tab, err)
	}
	return nil
}

// UpdateRange overwrites cells [startCol, startCol+len(values)) of the row
// at pos. Read-modify-write of the one row runs in a transaction so the
// call is atomic, matching the single-call guarantee of a remote range
// update.
func (s *SQLStore) UpdateRange(tab string, pos, startCol int, values []string) error {
	columns, ok := s.tabs[tab]
	if !ok {
		return fmt.Errorf("update %s: %w", tab, ErrNoSuchTab)
	}
	if startCol < 0 || startCol+len(values) > len(columns) {
		return fmt.Errorf("update %s: cols [%d,%d) of %d: %w", tab, startCol, startCol+len(values), len(columns), ErrCellRange)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("update %s: %w", tab, err)
	}
	defer tx.Rollback()

	var cells string
	err = tx.QueryRow(s.rebind(`SELECT cells FROM tab_rows WHERE tab = ? AND pos = ?`), tab, pos).Scan(&cells)
	if err == sql.ErrNoRows {
		return fmt.Errorf("update %s row %d: %w", tab, pos, ErrRowRange)
	}
	if err != nil {
		return fmt.Errorf("update %s: %w", tab, err)
	}

	var row Row
	if err := json.Unmarshal([]byte(cells), &row); err != nil {
		return fmt.Errorf("update %s: decode row: %w", tab, err)
	}
	for len(row) < len(columns) {
		row = append(row, "")
	}
	copy(row[startCol:], values)

	updated, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("update %s: %w", tab, err)
	}
	_, err = tx.Exec(s.rebind(`UPDATE tab_rows SET cells = ? WHERE tab = ? AND pos = ?`), string(updated), tab, pos)
	if err != nil {
		return fmt.Errorf("update %s: %w", tab, err)
	}

	return tx.Commit()
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders to $n for postgres. sqlite takes ? as-is.
func (s *SQLStore) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
