package sources

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/runger/omnibar/internal/browser"
	"github.com/runger/omnibar/internal/query"
)

const downloadIcon = "↓"

// Downloads adapts download history: filename/URL substring search, the
// bare filename as the title.
type Downloads struct {
	provider browser.DownloadProvider
	limit    int
}

// NewDownloads creates the downloads adapter. limit <= 0 uses the default
// cap.
func NewDownloads(provider browser.DownloadProvider, limit int) *Downloads {
	return &Downloads{provider: provider, limit: orDefault(limit, defaultDownloadLimit)}
}

// Category implements query.Source.
func (d *Downloads) Category() query.Category {
	return query.CategoryDownloads
}

// Search implements query.Source.
func (d *Downloads) Search(ctx context.Context, q string) ([]query.Item, error) {
	downloads, err := d.provider.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("downloads: %w", err)
	}

	items := make([]query.Item, 0, d.limit)
	for _, dl := range downloads {
		if len(items) >= d.limit {
			break
		}
		name := filepath.Base(dl.Filename)
		items = append(items, query.Item{
			ID:          fmt.Sprintf("download-%d", dl.ID),
			Type:        query.TypeDownload,
			Title:       titleOrFallback(name, dl.URL),
			Description: dl.Filename,
			Icon:        downloadIcon,
			URL:         dl.URL,
			Metadata: query.Metadata{
				Action: query.VerbOpenURL,
				URL:    dl.URL,
			},
		})
	}
	return items, nil
}
