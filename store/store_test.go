package store

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func testTabs() []Tab {
	return []Tab{
		{Name: "posts", Columns: []string{"timestamp", "player", "content"}},
		{Name: "app_state", Columns: []string{"key", "value"}},
	}
}

// openBackends returns one of each backend over the same tab catalog.
func openBackends(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := OpenSQL(DriverSQLite, filepath.Join(t.TempDir(), "test.db"), testTabs())
	if err != nil {
		t.Fatalf("Failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"memory": NewMemory(testTabs()),
		"sqlite": sqlite,
	}
}

func TestAppendAndReadAll(t *testing.T) {
	for name, st := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			rows, err := st.ReadAll("posts")
			if err != nil {
				t.Fatalf("Failed to read empty tab: %v", err)
			}
			if len(rows) != 0 {
				t.Errorf("Expected empty tab, got %d rows", len(rows))
			}

			want := []Row{
				{"2026-01-01T10:00:00Z", "Alice", "first clue"},
				{"2026-01-01T10:05:00Z", "Bob", "second clue"},
				{"2026-01-01T10:10:00Z", "Alice", "third clue"},
			}
			for _, row := range want {
				if err := st.Append("posts", row); err != nil {
					t.Fatalf("Failed to append: %v", err)
				}
			}

			rows, err = st.ReadAll("posts")
			if err != nil {
				t.Fatalf("Failed to read tab: %v", err)
			}
			if !reflect.DeepEqual(rows, want) {
				t.Errorf("Expected rows %v, got %v", want, rows)
			}
		})
	}
}

func TestAppendValidatesWidth(t *testing.T) {
	for name, st := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			err := st.Append("app_state", Row{"locked", "TRUE", "extra"})
			if !errors.Is(err, ErrCellRange) {
				t.Errorf("Expected ErrCellRange for wide row, got %v", err)
			}

			err = st.Append("app_state", Row{"locked"})
			if !errors.Is(err, ErrCellRange) {
				t.Errorf("Expected ErrCellRange for narrow row, got %v", err)
			}
		})
	}
}

func TestUpdateRange(t *testing.T) {
	for name, st := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			seed := []Row{
				{"locked", "FALSE"},
				{"reveal_scores", "FALSE"},
			}
			for _, row := range seed {
				if err := st.Append("app_state", row); err != nil {
					t.Fatalf("Failed to append: %v", err)
				}
			}

			// Full-row overwrite at position 1.
			if err := st.UpdateRange("app_state", 1, 0, []string{"reveal_scores", "TRUE"}); err != nil {
				t.Fatalf("Failed to update full row: %v", err)
			}

			// Sub-range overwrite of the value cell only.
			if err := st.UpdateRange("app_state", 0, 1, []string{"TRUE"}); err != nil {
				t.Fatalf("Failed to update sub-range: %v", err)
			}

			rows, err := st.ReadAll("app_state")
			if err != nil {
				t.Fatalf("Failed to read tab: %v", err)
			}
			want := []Row{
				{"locked", "TRUE"},
				{"reveal_scores", "TRUE"},
			}
			if !reflect.DeepEqual(rows, want) {
				t.Errorf("Expected rows %v, got %v", want, rows)
			}
		})
	}
}

func TestUpdateRangeErrors(t *testing.T) {
	for name, st := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			if err := st.Append("app_state", Row{"locked", "FALSE"}); err != nil {
				t.Fatalf("Failed to append: %v", err)
			}

			if err := st.UpdateRange("app_state", 5, 0, []string{"locked", "TRUE"}); !errors.Is(err, ErrRowRange) {
				t.Errorf("Expected ErrRowRange, got %v", err)
			}

			if err := st.UpdateRange("app_state", 0, 1, []string{"TRUE", "extra"}); !errors.Is(err, ErrCellRange) {
				t.Errorf("Expected ErrCellRange, got %v", err)
			}

			if err := st.UpdateRange("nope", 0, 0, []string{"x"}); !errors.Is(err, ErrNoSuchTab) {
				t.Errorf("Expected ErrNoSuchTab, got %v", err)
			}
		})
	}
}

func TestReadUnknownTab(t *testing.T) {
	for name, st := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := st.ReadAll("nope"); !errors.Is(err, ErrNoSuchTab) {
				t.Errorf("Expected ErrNoSuchTab, got %v", err)
			}
		})
	}
}

func TestSQLiteReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	st, err := OpenSQL(DriverSQLite, path, testTabs())
	if err != nil {
		t.Fatalf("Failed to open sqlite store: %v", err)
	}
	if err := st.Append("posts", Row{"2026-01-01T10:00:00Z", "Alice", "persisted clue"}); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Failed to close store: %v", err)
	}

	st, err = OpenSQL(DriverSQLite, path, testTabs())
	if err != nil {
		t.Fatalf("Failed to reopen sqlite store: %v", err)
	}
	defer st.Close()

	rows, err := st.ReadAll("posts")
	if err != nil {
		t.Fatalf("Failed to read tab: %v", err)
	}
	if len(rows) != 1 || rows[0][2] != "persisted clue" {
		t.Errorf("Expected persisted row, got %v", rows)
	}
}

func TestRebind(t *testing.T) {
	pg := &SQLStore{driver: DriverPostgres}
	got := pg.rebind(`SELECT cells FROM tab_rows WHERE tab = ? AND pos = ?`)
	want := `SELECT cells FROM tab_rows WHERE tab = $1 AND pos = $2`
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	lite := &SQLStore{driver: DriverSQLite}
	q := `SELECT cells FROM tab_rows WHERE tab = ?`
	if got := lite.rebind(q); got != q {
		t.Errorf("Expected sqlite query unchanged, got %q", got)
	}
}
