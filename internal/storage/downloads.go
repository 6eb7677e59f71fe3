package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/runger/omnibar/internal/browser"
)

// DownloadView implements browser.DownloadProvider over the snapshot.
type DownloadView struct {
	db *sql.DB
}

// Search returns downloads whose filename or URL contains the substring.
func (v *DownloadView) Search(ctx context.Context, substring string) ([]browser.Download, error) {
	rows, err := v.db.QueryContext(ctx, `
		SELECT id, filename, url, file_size
		FROM downloads
		WHERE filename LIKE ? ESCAPE '\' COLLATE NOCASE
		   OR url      LIKE ? ESCAPE '\' COLLATE NOCASE
		ORDER BY id DESC
	`, likePattern(substring), likePattern(substring))
	if err != nil {
		return nil, fmt.Errorf("download search failed: %w", err)
	}
	defer rows.Close()

	var downloads []browser.Download
	for rows.Next() {
		var d browser.Download
		if err := rows.Scan(&d.ID, &d.Filename, &d.URL, &d.FileSize); err != nil {
			return nil, fmt.Errorf("download scan failed: %w", err)
		}
		downloads = append(downloads, d)
	}
	return downloads, rows.Err()
}

// Add records a finished download.
func (v *DownloadView) Add(ctx context.Context, filename, url string, size int64) error {
	return execContext(ctx, v.db,
		`INSERT INTO downloads (filename, url, file_size) VALUES (?, ?, ?)`,
		filename, url, size)
}
