package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/runger/omnibar/internal/browser"
)

// TabView implements browser.TabProvider over the snapshot, plus the tab
// mutations the action sink needs.
type TabView struct {
	db *sql.DB
}

// QueryAll returns every open tab, active tab first within each window.
func (v *TabView) QueryAll(ctx context.Context) ([]browser.Tab, error) {
	rows, err := v.db.QueryContext(ctx, `
		SELECT id, window_id, title, url, active
		FROM tabs
		ORDER BY window_id, active DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("tab query failed: %w", err)
	}
	defer rows.Close()

	var tabs []browser.Tab
	for rows.Next() {
		var tab browser.Tab
		if err := rows.Scan(&tab.ID, &tab.WindowID, &tab.Title, &tab.URL, &tab.Active); err != nil {
			return nil, fmt.Errorf("tab scan failed: %w", err)
		}
		tabs = append(tabs, tab)
	}
	return tabs, rows.Err()
}

// Activate marks the tab active and deactivates the rest of its window.
func (v *TabView) Activate(ctx context.Context, tabID, windowID int) error {
	if err := execContext(ctx, v.db,
		`UPDATE tabs SET active = 0 WHERE window_id = ?`, windowID); err != nil {
		return err
	}
	return execContext(ctx, v.db,
		`UPDATE tabs SET active = 1 WHERE id = ?`, tabID)
}

// Remove closes a tab.
func (v *TabView) Remove(ctx context.Context, tabID int) error {
	return execContext(ctx, v.db, `DELETE FROM tabs WHERE id = ?`, tabID)
}

// Add records a newly opened tab.
func (v *TabView) Add(ctx context.Context, tab browser.Tab) error {
	return execContext(ctx, v.db, `
		INSERT OR REPLACE INTO tabs (id, window_id, title, url, active)
		VALUES (?, ?, ?, ?, ?)
	`, tab.ID, tab.WindowID, tab.Title, tab.URL, tab.Active)
}
