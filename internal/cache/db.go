package cache

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database holding recently fetched HN items.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite cache database and runs migrations.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Purge drops every row older than the given unix time.
func (d *DB) Purge(before int64) error {
	if _, err := d.db.Exec(`DELETE FROM items WHERE fetched_at < ?`, before); err != nil {
		return fmt.Errorf("purging items: %w", err)
	}
	if _, err := d.db.Exec(`DELETE FROM story_lists WHERE fetched_at < ?`, before); err != nil {
		return fmt.Errorf("purging story lists: %w", err)
	}
	return nil
}

func migrate(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY,
			type TEXT NOT NULL,
			by_user TEXT,
			time_unix INTEGER,
			text TEXT,
			parent_id INTEGER,
			url TEXT,
			title TEXT,
			score INTEGER DEFAULT 0,
			descendants INTEGER DEFAULT 0,
			kids TEXT,
			dead INTEGER DEFAULT 0,
			deleted INTEGER DEFAULT 0,
			fetched_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_fetched_at ON items(fetched_at)`,

		`CREATE TABLE IF NOT EXISTS story_lists (
			list_type TEXT PRIMARY KEY,
			item_ids TEXT NOT NULL,
			fetched_at INTEGER NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("executing migration: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
