// Package export writes a tally snapshot to a SQLite database so other tools
// can query purchase counts. The source file stays the source of truth; a
// SHA256 of its content records which version a snapshot was taken from.
package export

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"

	"github.com/leeovery/grocer/internal/tally"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS items (
  position INTEGER PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT
);
`

// DB wraps a SQLite database holding one tally snapshot.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens or creates the snapshot database at dbPath and initializes the
// schema if not present.
func Open(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening export database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing export schema: %w", err)
	}

	return &DB{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Write replaces the snapshot with the entries of t inside a single
// transaction and stores the hash of the raw source content.
func (d *DB) Write(ctx context.Context, t *tally.Tally, sourceData []byte) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning export transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return fmt.Errorf("clearing items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM metadata"); err != nil {
		return fmt.Errorf("clearing metadata: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO items (position, name, count) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing item insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range t.Entries() {
		if _, err := stmt.ExecContext(ctx, i, e.Name, e.Count); err != nil {
			return fmt.Errorf("inserting item %q: %w", e.Name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO metadata (key, value) VALUES ('source_hash', ?)`, computeHash(sourceData)); err != nil {
		return fmt.Errorf("storing source hash: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export transaction: %w", err)
	}
	return nil
}

// IsCurrent reports whether the stored snapshot was taken from sourceData.
func (d *DB) IsCurrent(ctx context.Context, sourceData []byte) (bool, error) {
	var storedHash string
	err := d.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key='source_hash'").Scan(&storedHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("querying source hash: %w", err)
	}
	return storedHash == computeHash(sourceData), nil
}

// Entries reads the snapshot back in first-seen order.
func (d *DB) Entries(ctx context.Context) ([]tally.Entry, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT name, count FROM items ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	entries := []tally.Entry{}
	for rows.Next() {
		var e tally.Entry
		if err := rows.Scan(&e.Name, &e.Count); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// computeHash returns the hex-encoded SHA256 hash of the given data.
func computeHash(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h)
}
