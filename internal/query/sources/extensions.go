package sources

import (
	"context"
	"fmt"

	"github.com/runger/omnibar/internal/browser"
	"github.com/runger/omnibar/internal/query"
)

const extensionIcon = "◆"

// Extensions adapts the installed-extension listing: enabled extensions
// matched by name/description substring. The listing is identical for
// every query, so the raw list is memoized when a cache is injected.
type Extensions struct {
	provider browser.ExtensionProvider
	limit    int
	cache    Cache
}

// NewExtensions creates the extensions adapter. cache may be nil.
func NewExtensions(provider browser.ExtensionProvider, limit int, cache Cache) *Extensions {
	return &Extensions{
		provider: provider,
		limit:    orDefault(limit, defaultExtensionLimit),
		cache:    cache,
	}
}

// Category implements query.Source.
func (e *Extensions) Category() query.Category {
	return query.CategoryExtensions
}

// Search implements query.Source.
func (e *Extensions) Search(ctx context.Context, q string) ([]query.Item, error) {
	all, ok := cacheGet(e.cache, "extensions:all")
	if !ok {
		listed, err := e.provider.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("extensions: %w", err)
		}
		all = make([]query.Item, 0, len(listed))
		for _, ext := range listed {
			if !ext.Enabled {
				continue
			}
			all = append(all, query.Item{
				ID:          fmt.Sprintf("extension-%s", ext.ID),
				Type:        query.TypeExtension,
				Title:       titleOrFallback(ext.Name, ext.ID),
				Description: ext.Description,
				Icon:        extensionIcon,
				URL:         "chrome://extensions/?id=" + ext.ID,
				Metadata: query.Metadata{
					Action: query.VerbOpenURL,
					URL:    "chrome://extensions/?id=" + ext.ID,
				},
			})
		}
		cacheSet(e.cache, "extensions:all", all)
	}

	items := make([]query.Item, 0, e.limit)
	for _, item := range all {
		if !matches(q, item.Title, item.Description) {
			continue
		}
		items = append(items, item)
		if len(items) >= e.limit {
			break
		}
	}
	return items, nil
}
