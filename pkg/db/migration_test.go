package db

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// TestInitDBCreatesSchema verifies InitDB creates the books table with the
// expected columns so fresh DBs are usable immediately.
func TestInitDBCreatesSchema(t *testing.T) {
	dbConn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer dbConn.Close()

	if err := InitDB(dbConn); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	// Verify `books` table exists
	var name string
	if err := dbConn.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='books'").Scan(&name); err != nil {
		t.Fatalf("books table missing: %v", err)
	}

	rows, err := dbConn.Query("PRAGMA table_info(books)")
	if err != nil {
		t.Fatalf("pragmas: %v", err)
	}
	defer rows.Close()
	cols := map[string]bool{}
	for rows.Next() {
		var cid int
		var colName, ctype string
		var notnull, pk int
		var dfltVal interface{}
		if err := rows.Scan(&cid, &colName, &ctype, &notnull, &dfltVal, &pk); err != nil {
			t.Fatalf("scan col: %v", err)
		}
		cols[colName] = true
	}
	for _, want := range []string{"id", "title", "word", "frequency"} {
		if !cols[want] {
			t.Fatalf("expected column %q in books, got %v", want, cols)
		}
	}
}

// TestInitDBIdempotent verifies that running migrations twice on the same
// connection succeeds.
func TestInitDBIdempotent(t *testing.T) {
	dbConn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer dbConn.Close()

	if err := InitDB(dbConn); err != nil {
		t.Fatalf("first InitDB: %v", err)
	}
	if err := InitDB(dbConn); err != nil {
		t.Fatalf("second InitDB: %v", err)
	}
}
