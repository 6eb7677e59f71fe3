// Package storage provides the SQLite-backed browser profile snapshot.
// It implements every read-only collaborator interface of the query
// engine plus the bookmark and tab mutations the action sink needs.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// schema is the snapshot layout. A bookmark row with an empty url is a
// folder, matching the bookmark tree model.
const schema = `
CREATE TABLE IF NOT EXISTS bookmarks (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	parent_id INTEGER,
	title     TEXT NOT NULL DEFAULT '',
	url       TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS bookmark_tags (
	tag         TEXT    NOT NULL,
	bookmark_id INTEGER NOT NULL,
	PRIMARY KEY (tag, bookmark_id)
);

CREATE TABLE IF NOT EXISTS history (
	url                TEXT PRIMARY KEY,
	title              TEXT NOT NULL DEFAULT '',
	last_visit_unix_ms INTEGER NOT NULL,
	visit_count        INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS tabs (
	id        INTEGER PRIMARY KEY,
	window_id INTEGER NOT NULL DEFAULT 1,
	title     TEXT NOT NULL DEFAULT '',
	url       TEXT NOT NULL DEFAULT '',
	active    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS downloads (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	filename  TEXT NOT NULL DEFAULT '',
	url       TEXT NOT NULL DEFAULT '',
	file_size INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS extensions (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	enabled     INTEGER NOT NULL DEFAULT 1,
	type        TEXT NOT NULL DEFAULT 'extension'
);
`

// Store is the SQLite snapshot database. Interface-shaped views over it
// are returned by Bookmarks, Tags, History, Tabs, Downloads and
// Extensions.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the snapshot database at path.
// The database is opened in WAL mode with a busy timeout.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// modernc.org/sqlite uses _pragma=name(value) DSN syntax.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite behaves best with a single writer connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Bookmarks returns the browser.BookmarkStore view.
func (s *Store) Bookmarks() *BookmarkView { return &BookmarkView{db: s.db} }

// Tags returns the browser.TagIndex view.
func (s *Store) Tags() *TagView { return &TagView{db: s.db} }

// History returns the browser.HistoryProvider view.
func (s *Store) History() *HistoryView { return &HistoryView{db: s.db} }

// Tabs returns the browser.TabProvider view.
func (s *Store) Tabs() *TabView { return &TabView{db: s.db} }

// Downloads returns the browser.DownloadProvider view.
func (s *Store) Downloads() *DownloadView { return &DownloadView{db: s.db} }

// Extensions returns the browser.ExtensionProvider view.
func (s *Store) Extensions() *ExtensionView { return &ExtensionView{db: s.db} }

// likePattern builds a case-insensitive substring LIKE pattern, escaping
// the LIKE wildcards in the user's text.
func likePattern(substring string) string {
	escaped := ""
	for _, r := range substring {
		switch r {
		case '%', '_', '\\':
			escaped += `\` + string(r)
		default:
			escaped += string(r)
		}
	}
	return "%" + escaped + "%"
}

func execContext(ctx context.Context, db *sql.DB, query string, args ...any) error {
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("exec failed: %w", err)
	}
	return nil
}
