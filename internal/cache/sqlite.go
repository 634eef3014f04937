package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/steven-jacovitch/506-Final/internal/record"
)

// SQLiteSink persists the cache store in a SQLite database, one row per
// fingerprint. It suits long-running or repeated pipeline runs where
// rewriting a monolithic JSON document gets expensive.
type SQLiteSink struct {
	db *sql.DB
}

// NewSQLiteSink opens or creates the cache database at the given path.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheLoad, err)
	}

	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)

	sink := &SQLiteSink{db: db}

	if err := sink.migrate(); err != nil {
		db.Close()

		return nil, err
	}

	return sink, nil
}

func (s *SQLiteSink) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS cache_entries (
	fingerprint TEXT PRIMARY KEY,
	resource    TEXT NOT NULL
);`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheLoad, err)
	}

	return nil
}

// Load reads every persisted entry, decoding each resource document with
// key order preserved.
func (s *SQLiteSink) Load() (map[string]any, error) {
	rows, err := s.db.Query(`SELECT fingerprint, resource FROM cache_entries`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheLoad, err)
	}

	defer rows.Close()

	entries := map[string]any{}

	for rows.Next() {
		var fingerprint, payload string

		if err := rows.Scan(&fingerprint, &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCacheLoad, err)
		}

		value, err := record.DecodeValue([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("%w: entry %s: %v", ErrCacheLoad, fingerprint, err)
		}

		entries[fingerprint] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheLoad, err)
	}

	return entries, nil
}

// Save upserts every entry of the store inside one transaction.
func (s *SQLiteSink) Save(entries map[string]any) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCachePersist, err)
	}

	stmt, err := tx.Prepare(`
INSERT INTO cache_entries (fingerprint, resource) VALUES (?, ?)
ON CONFLICT(fingerprint) DO UPDATE SET resource = excluded.resource`)
	if err != nil {
		tx.Rollback()

		return fmt.Errorf("%w: %v", ErrCachePersist, err)
	}

	defer stmt.Close()

	for fingerprint, value := range entries {
		payload, err := json.Marshal(value)
		if err != nil {
			tx.Rollback()

			return fmt.Errorf("%w: entry %s: %v", ErrCachePersist, fingerprint, err)
		}

		if _, err := stmt.Exec(fingerprint, string(payload)); err != nil {
			tx.Rollback()

			return fmt.Errorf("%w: entry %s: %v", ErrCachePersist, fingerprint, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrCachePersist, err)
	}

	return nil
}

// Close releases the database handle.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
