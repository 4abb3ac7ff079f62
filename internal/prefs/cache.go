package prefs

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Cache is the local SQLite mirror of view preferences. It makes the
// last known column layout available when the back office is offline.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (and if needed creates) the cache database at path.
func OpenCache(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout helps avoid
	// "database is locked" flakiness when two sessions share a cache.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS view_prefs (
		view_key   TEXT PRIMARY KEY,
		prefs_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Get returns the cached blob for a view key; ok is false on a miss.
func (c *Cache) Get(viewKey string) (json.RawMessage, bool, error) {
	var raw string
	err := c.db.QueryRow(`SELECT prefs_json FROM view_prefs WHERE view_key = ?`, viewKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return json.RawMessage(raw), true, nil
}

// Put upserts the cached blob for a view key.
func (c *Cache) Put(viewKey string, prefs json.RawMessage) error {
	_, err := c.db.Exec(`INSERT INTO view_prefs (view_key, prefs_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(view_key) DO UPDATE SET
			prefs_json = excluded.prefs_json,
			updated_at = excluded.updated_at`,
		viewKey, string(prefs), time.Now().UTC().Format(time.RFC3339))
	return err
}

// Delete removes one key from the cache.
func (c *Cache) Delete(viewKey string) error {
	_, err := c.db.Exec(`DELETE FROM view_prefs WHERE view_key = ?`, viewKey)
	return err
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
