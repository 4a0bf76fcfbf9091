package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/japaniel/booksearch/pkg/textanalyzer"
)

// Store persists ranked word lists keyed by title in a SQLite database.
// Writes run inside a single transaction per call, so each operation either
// applies completely or not at all. Close releases the connection; callers
// own the Store's lifetime (open on startup, defer Close).
type Store struct {
	db *sql.DB
}

// Open creates the parent directory if needed, opens (or creates) the SQLite
// database at path and runs migrations. Safe to call on every startup.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, storageErr("init", err)
		}
	}
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, storageErr("open", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, storageErr("open", err)
	}
	s, err := OpenDB(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// OpenDB wraps an existing connection and runs migrations on it. Used by
// tests with an in-memory database; the Store takes ownership and Close
// closes the connection.
func OpenDB(conn *sql.DB) (*Store, error) {
	if err := InitDB(conn); err != nil {
		return nil, storageErr("migrate", err)
	}
	return &Store{db: conn}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts one row per word under the given title, all in one
// transaction. An empty word list succeeds and writes nothing. Save does not
// enforce title uniqueness; see SaveIfAbsent.
func (s *Store) Save(title string, words []textanalyzer.WordCount) error {
	tx, err := s.db.Begin()
	if err != nil {
		return storageErr("save", err)
	}
	defer tx.Rollback() // no-op after commit

	if err := insertWords(tx, title, words); err != nil {
		return storageErr("save", err)
	}
	if err := tx.Commit(); err != nil {
		return storageErr("save", err)
	}
	return nil
}

// SaveIfAbsent inserts the words only when no rows exist for the title,
// compared case-insensitively. The existence check and the inserts share one
// transaction, so the check-then-insert cannot race with another Save on the
// same connection pool. Returns ErrTitleExists on conflict.
func (s *Store) SaveIfAbsent(title string, words []textanalyzer.WordCount) error {
	tx, err := s.db.Begin()
	if err != nil {
		return storageErr("save", err)
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRow(
		`SELECT COUNT(*) FROM books WHERE LOWER(title) = LOWER(?)`, title,
	).Scan(&n); err != nil {
		return storageErr("save", err)
	}
	if n > 0 {
		return fmt.Errorf("save %q: %w", title, ErrTitleExists)
	}
	if err := insertWords(tx, title, words); err != nil {
		return storageErr("save", err)
	}
	if err := tx.Commit(); err != nil {
		return storageErr("save", err)
	}
	return nil
}

func insertWords(tx *sql.Tx, title string, words []textanalyzer.WordCount) error {
	if len(words) == 0 {
		return nil
	}
	stmt, err := tx.Prepare(`INSERT INTO books (title, word, frequency) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, wc := range words {
		if _, err := stmt.Exec(title, wc.Word, wc.Frequency); err != nil {
			return fmt.Errorf("insert %q: %w", wc.Word, err)
		}
	}
	return nil
}

// DeleteByTitle removes every row whose title exactly equals the given
// string. Case-insensitivity applies only on reads. Zero matched rows is not
// an error.
func (s *Store) DeleteByTitle(title string) error {
	if _, err := s.db.Exec(`DELETE FROM books WHERE title = ?`, title); err != nil {
		return storageErr("delete", err)
	}
	return nil
}

// DeleteAll removes every stored row.
func (s *Store) DeleteAll() error {
	if _, err := s.db.Exec(`DELETE FROM books`); err != nil {
		return storageErr("delete all", err)
	}
	return nil
}

// FetchByTitle returns the words stored under the title, matched
// case-insensitively, highest frequency first (ties keep insertion order,
// which is the analyzer's ranking order). No match yields an empty slice,
// not an error.
func (s *Store) FetchByTitle(title string) ([]textanalyzer.WordCount, error) {
	rows, err := s.db.Query(
		`SELECT word, frequency FROM books WHERE LOWER(title) = LOWER(?) ORDER BY frequency DESC, id ASC`,
		title,
	)
	if err != nil {
		return nil, storageErr("fetch", err)
	}
	defer rows.Close()

	var out []textanalyzer.WordCount
	for rows.Next() {
		var wc textanalyzer.WordCount
		if err := rows.Scan(&wc.Word, &wc.Frequency); err != nil {
			return nil, storageErr("fetch", err)
		}
		out = append(out, wc)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("fetch", err)
	}
	return out, nil
}

// ListTitles returns the distinct stored titles, most recently inserted
// first.
func (s *Store) ListTitles() ([]string, error) {
	rows, err := s.db.Query(`SELECT title FROM books GROUP BY title ORDER BY MAX(id) DESC`)
	if err != nil {
		return nil, storageErr("list titles", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, storageErr("list titles", err)
		}
		titles = append(titles, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list titles", err)
	}
	return titles, nil
}
