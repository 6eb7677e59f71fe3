package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/runger/omnibar/internal/browser"
)

// ExtensionView implements browser.ExtensionProvider over the snapshot.
type ExtensionView struct {
	db *sql.DB
}

// ListAll returns every installed extension, enabled or not, sorted by name.
func (v *ExtensionView) ListAll(ctx context.Context) ([]browser.Extension, error) {
	rows, err := v.db.QueryContext(ctx, `
		SELECT id, name, description, enabled, type
		FROM extensions
		ORDER BY name COLLATE NOCASE
	`)
	if err != nil {
		return nil, fmt.Errorf("extension query failed: %w", err)
	}
	defer rows.Close()

	var extensions []browser.Extension
	for rows.Next() {
		var ext browser.Extension
		if err := rows.Scan(&ext.ID, &ext.Name, &ext.Description, &ext.Enabled, &ext.Type); err != nil {
			return nil, fmt.Errorf("extension scan failed: %w", err)
		}
		extensions = append(extensions, ext)
	}
	return extensions, rows.Err()
}

// Add records an installed extension.
func (v *ExtensionView) Add(ctx context.Context, ext browser.Extension) error {
	return execContext(ctx, v.db, `
		INSERT OR REPLACE INTO extensions (id, name, description, enabled, type)
		VALUES (?, ?, ?, ?, ?)
	`, ext.ID, ext.Name, ext.Description, ext.Enabled, ext.Type)
}
