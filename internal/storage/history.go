package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/runger/omnibar/internal/browser"
)

// HistoryView implements browser.HistoryProvider over the snapshot.
type HistoryView struct {
	db *sql.DB
}

// Search returns history entries matching the query, most recent first.
// An empty Text matches everything; a zero Start means no lower bound.
func (v *HistoryView) Search(ctx context.Context, q browser.HistoryQuery) ([]browser.HistoryEntry, error) {
	limit := q.MaxResults
	if limit <= 0 {
		limit = -1 // no LIMIT
	}

	rows, err := v.db.QueryContext(ctx, `
		SELECT url, title, last_visit_unix_ms, visit_count
		FROM history
		WHERE (title LIKE ? ESCAPE '\' COLLATE NOCASE
		    OR url   LIKE ? ESCAPE '\' COLLATE NOCASE)
		  AND last_visit_unix_ms >= ?
		ORDER BY last_visit_unix_ms DESC
		LIMIT ?
	`, likePattern(q.Text), likePattern(q.Text), unixMilli(q.Start), limit)
	if err != nil {
		return nil, fmt.Errorf("history search failed: %w", err)
	}
	defer rows.Close()

	var entries []browser.HistoryEntry
	for rows.Next() {
		var entry browser.HistoryEntry
		var visitedMs int64
		if err := rows.Scan(&entry.URL, &entry.Title, &visitedMs, &entry.VisitCount); err != nil {
			return nil, fmt.Errorf("history scan failed: %w", err)
		}
		entry.LastVisitTime = time.UnixMilli(visitedMs)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// RecordVisit upserts a history row, bumping the visit count.
func (v *HistoryView) RecordVisit(ctx context.Context, url, title string, at time.Time) error {
	return execContext(ctx, v.db, `
		INSERT INTO history (url, title, last_visit_unix_ms, visit_count)
		VALUES (?, ?, ?, 1)
		ON CONFLICT (url) DO UPDATE SET
			title              = excluded.title,
			last_visit_unix_ms = excluded.last_visit_unix_ms,
			visit_count        = visit_count + 1
	`, url, title, at.UnixMilli())
}

func unixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
