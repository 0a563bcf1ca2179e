// Package taskcache stores fetched task records in a local SQLite database so
// repeated CLI invocations can avoid re-hitting the API and its rate limits.
package taskcache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cuekit/cuekit/pkg/cuekit"
)

// ErrMiss indicates the cache holds no fresh record for the requested key.
var ErrMiss = errors.New("task cache miss")

const schema = `
-- Enable WAL mode for better concurrent read performance
PRAGMA journal_mode=WAL;

CREATE TABLE IF NOT EXISTS tasks (
    id         TEXT PRIMARY KEY,
    record     TEXT NOT NULL,
    fetched_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS list_tasks (
    list_id    TEXT PRIMARY KEY,
    records    TEXT NOT NULL,
    fetched_at INTEGER NOT NULL
);

-- Index for purging stale entries
CREATE INDEX IF NOT EXISTS idx_tasks_fetched_at ON tasks(fetched_at);
CREATE INDEX IF NOT EXISTS idx_list_tasks_fetched_at ON list_tasks(fetched_at);
`

// Cache is a SQLite-backed store of raw task records keyed by task or list ID.
// Entries older than the max age passed to the getters count as misses.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if necessary) the cache database at path.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// GetTask returns the cached record for a task ID if it is younger than maxAge.
func (c *Cache) GetTask(id string, maxAge time.Duration) (*cuekit.RawTask, error) {
	var record string
	var fetchedAt int64
	err := c.db.QueryRow(`SELECT record, fetched_at FROM tasks WHERE id = ?`, id).Scan(&record, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached task: %w", err)
	}
	if stale(fetchedAt, maxAge) {
		return nil, ErrMiss
	}

	var raw cuekit.RawTask
	if err := json.Unmarshal([]byte(record), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode cached task %s: %w", id, err)
	}
	return &raw, nil
}

// PutTask stores a task record.
func (c *Cache) PutTask(raw *cuekit.RawTask) error {
	record, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to encode task %s: %w", raw.ID, err)
	}

	_, err = c.db.Exec(
		`INSERT INTO tasks (id, record, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET record = excluded.record, fetched_at = excluded.fetched_at`,
		raw.ID, string(record), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to store task %s: %w", raw.ID, err)
	}
	return nil
}

// GetList returns the cached records for a list ID if they are younger than
// maxAge.
func (c *Cache) GetList(listID string, maxAge time.Duration) ([]cuekit.RawTask, error) {
	var records string
	var fetchedAt int64
	err := c.db.QueryRow(`SELECT records, fetched_at FROM list_tasks WHERE list_id = ?`, listID).Scan(&records, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached list: %w", err)
	}
	if stale(fetchedAt, maxAge) {
		return nil, ErrMiss
	}

	var raws []cuekit.RawTask
	if err := json.Unmarshal([]byte(records), &raws); err != nil {
		return nil, fmt.Errorf("failed to decode cached list %s: %w", listID, err)
	}
	return raws, nil
}

// PutList stores a list's task records.
func (c *Cache) PutList(listID string, raws []cuekit.RawTask) error {
	records, err := json.Marshal(raws)
	if err != nil {
		return fmt.Errorf("failed to encode list %s: %w", listID, err)
	}

	_, err = c.db.Exec(
		`INSERT INTO list_tasks (list_id, records, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(list_id) DO UPDATE SET records = excluded.records, fetched_at = excluded.fetched_at`,
		listID, string(records), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to store list %s: %w", listID, err)
	}
	return nil
}

// Purge removes every cached entry.
func (c *Cache) Purge() error {
	if _, err := c.db.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to purge task cache: %w", err)
	}
	if _, err := c.db.Exec(`DELETE FROM list_tasks`); err != nil {
		return fmt.Errorf("failed to purge list cache: %w", err)
	}
	return nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func stale(fetchedAtUnix int64, maxAge time.Duration) bool {
	return time.Since(time.Unix(fetchedAtUnix, 0)) > maxAge
}
