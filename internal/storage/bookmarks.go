package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/runger/omnibar/internal/browser"
)

// BookmarkView implements browser.BookmarkStore over the snapshot.
type BookmarkView struct {
	db *sql.DB
}

// Search returns nodes whose title or URL contains the substring,
// case-insensitively. Folder nodes are included; callers filter them.
func (v *BookmarkView) Search(ctx context.Context, substring string) ([]browser.BookmarkNode, error) {
	rows, err := v.db.QueryContext(ctx, `
		SELECT id, COALESCE(parent_id, 0), title, url
		FROM bookmarks
		WHERE title LIKE ? ESCAPE '\' COLLATE NOCASE
		   OR url   LIKE ? ESCAPE '\' COLLATE NOCASE
		ORDER BY id
	`, likePattern(substring), likePattern(substring))
	if err != nil {
		return nil, fmt.Errorf("bookmark search failed: %w", err)
	}
	defer rows.Close()
	return scanBookmarks(rows)
}

// Get returns the node with the given id, or ErrNotFound.
func (v *BookmarkView) Get(ctx context.Context, id string) (browser.BookmarkNode, error) {
	numericID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return browser.BookmarkNode{}, fmt.Errorf("bad bookmark id %q: %w", id, err)
	}

	row := v.db.QueryRowContext(ctx, `
		SELECT id, COALESCE(parent_id, 0), title, url
		FROM bookmarks WHERE id = ?
	`, numericID)

	node, err := scanBookmark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return browser.BookmarkNode{}, ErrNotFound
	}
	return node, err
}

// FindByURL returns all leaf bookmarks pointing at exactly url.
func (v *BookmarkView) FindByURL(ctx context.Context, url string) ([]browser.BookmarkNode, error) {
	if url == "" {
		return nil, nil
	}
	rows, err := v.db.QueryContext(ctx, `
		SELECT id, COALESCE(parent_id, 0), title, url
		FROM bookmarks WHERE url = ? ORDER BY id
	`, url)
	if err != nil {
		return nil, fmt.Errorf("bookmark lookup failed: %w", err)
	}
	defer rows.Close()
	return scanBookmarks(rows)
}

// Create inserts a leaf bookmark and returns its id.
func (v *BookmarkView) Create(ctx context.Context, title, url string) (string, error) {
	res, err := v.db.ExecContext(ctx,
		`INSERT INTO bookmarks (title, url) VALUES (?, ?)`, title, url)
	if err != nil {
		return "", fmt.Errorf("bookmark create failed: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("bookmark create failed: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

// Remove deletes a bookmark and its tag associations.
func (v *BookmarkView) Remove(ctx context.Context, id string) error {
	numericID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return fmt.Errorf("bad bookmark id %q: %w", id, err)
	}
	if err := execContext(ctx, v.db, `DELETE FROM bookmark_tags WHERE bookmark_id = ?`, numericID); err != nil {
		return err
	}
	return execContext(ctx, v.db, `DELETE FROM bookmarks WHERE id = ?`, numericID)
}

// CreateFolder inserts a folder node (empty URL) and returns its id.
func (v *BookmarkView) CreateFolder(ctx context.Context, title string) (string, error) {
	return v.Create(ctx, title, "")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookmark(row rowScanner) (browser.BookmarkNode, error) {
	var id, parentID int64
	var node browser.BookmarkNode
	if err := row.Scan(&id, &parentID, &node.Title, &node.URL); err != nil {
		return browser.BookmarkNode{}, err
	}
	node.ID = strconv.FormatInt(id, 10)
	if parentID != 0 {
		node.ParentID = strconv.FormatInt(parentID, 10)
	}
	return node, nil
}

func scanBookmarks(rows *sql.Rows) ([]browser.BookmarkNode, error) {
	var nodes []browser.BookmarkNode
	for rows.Next() {
		node, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("bookmark scan failed: %w", err)
		}
		nodes = append(nodes, node)
	}
	return nodes, rows.Err()
}

// TagView implements browser.TagIndex over the snapshot.
type TagView struct {
	db *sql.DB
}

// AllTags returns the distinct tag names, sorted.
func (v *TagView) AllTags(ctx context.Context) ([]string, error) {
	rows, err := v.db.QueryContext(ctx, `SELECT DISTINCT tag FROM bookmark_tags ORDER BY tag`)
	if err != nil {
		return nil, fmt.Errorf("tag list failed: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("tag scan failed: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// FindByTag returns the bookmark ids carrying the tag.
func (v *TagView) FindByTag(ctx context.Context, tag string) ([]string, error) {
	rows, err := v.db.QueryContext(ctx,
		`SELECT bookmark_id FROM bookmark_tags WHERE tag = ? ORDER BY bookmark_id`, tag)
	if err != nil {
		return nil, fmt.Errorf("tag lookup failed: %w", err)
	}
	defer rows.Close()
	return scanIDs(rows)
}

// TagsFor returns the tags on a bookmark, sorted.
func (v *TagView) TagsFor(ctx context.Context, bookmarkID string) ([]string, error) {
	numericID, err := strconv.ParseInt(bookmarkID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad bookmark id %q: %w", bookmarkID, err)
	}
	rows, err := v.db.QueryContext(ctx,
		`SELECT tag FROM bookmark_tags WHERE bookmark_id = ? ORDER BY tag`, numericID)
	if err != nil {
		return nil, fmt.Errorf("tag lookup failed: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("tag scan failed: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// Tag associates a tag with a bookmark; tagging twice is a no-op.
func (v *TagView) Tag(ctx context.Context, bookmarkID, tag string) error {
	numericID, err := strconv.ParseInt(bookmarkID, 10, 64)
	if err != nil {
		return fmt.Errorf("bad bookmark id %q: %w", bookmarkID, err)
	}
	return execContext(ctx, v.db,
		`INSERT OR IGNORE INTO bookmark_tags (tag, bookmark_id) VALUES (?, ?)`, tag, numericID)
}

func scanIDs(rows *sql.Rows) ([]string, error) {
	var ids []string
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("id scan failed: %w", err)
		}
		ids = append(ids, strconv.FormatInt(id, 10))
	}
	return ids, rows.Err()
}
