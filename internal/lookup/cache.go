// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const defaultCacheTTL = 7 * 24 * time.Hour

// Cache is an optional on-disk store of raw lookup responses keyed by
// (service, query). It exists to spare API quota across runs; conversion
// jobs keep no state of their own here. A nil *Cache is valid and always
// misses, so callers never branch on whether caching is enabled.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// OpenCache opens or creates the cache database at path. A ttl of zero uses
// the 7-day default.
func OpenCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS lookups (
		service TEXT NOT NULL,
		query TEXT NOT NULL,
		payload BLOB NOT NULL,
		fetched_at TEXT NOT NULL,
		PRIMARY KEY (service, query)
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{db: db, ttl: ttl}, nil
}

// Close releases the database connection. Safe on a nil cache.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the cached payload for (service, query) if present and fresh.
func (c *Cache) Get(service, query string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	var payload []byte
	var fetchedAt string
	err := c.db.QueryRow(
		`SELECT payload, fetched_at FROM lookups WHERE service = ? AND query = ?`,
		service, query,
	).Scan(&payload, &fetchedAt)
	if err != nil {
		return nil, false
	}

	t, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil || time.Since(t) > c.ttl {
		return nil, false
	}
	return payload, true
}

// Put stores a payload for (service, query), replacing any previous entry.
// Failures are ignored; the cache is strictly an optimization.
func (c *Cache) Put(service, query string, payload []byte) {
	if c == nil || len(payload) == 0 {
		return
	}
	c.db.Exec(
		`INSERT OR REPLACE INTO lookups (service, query, payload, fetched_at) VALUES (?, ?, ?, ?)`,
		service, query, payload, time.Now().UTC().Format(time.RFC3339),
	)
}
