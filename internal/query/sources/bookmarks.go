package sources

import (
	"context"
	"fmt"

	"github.com/runger/omnibar/internal/browser"
	"github.com/runger/omnibar/internal/query"
)

const bookmarkIcon = "★"

// Bookmarks adapts the bookmark store: substring matches over title and
// URL, folder nodes excluded.
type Bookmarks struct {
	store browser.BookmarkStore
	limit int
}

// NewBookmarks creates the bookmarks adapter. limit <= 0 uses the default
// cap.
func NewBookmarks(store browser.BookmarkStore, limit int) *Bookmarks {
	return &Bookmarks{store: store, limit: orDefault(limit, defaultBookmarkLimit)}
}

// Category implements query.Source.
func (b *Bookmarks) Category() query.Category {
	return query.CategoryBookmarks
}

// Search implements query.Source.
func (b *Bookmarks) Search(ctx context.Context, q string) ([]query.Item, error) {
	nodes, err := b.store.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("bookmarks: %w", err)
	}

	items := make([]query.Item, 0, b.limit)
	for _, n := range nodes {
		if n.IsFolder() {
			continue
		}
		items = append(items, bookmarkItem(n, nil))
		if len(items) >= b.limit {
			break
		}
	}
	return items, nil
}

// bookmarkItem maps a leaf bookmark node to a result item. tags may be
// nil; the tags adapter passes the node's full tag list.
func bookmarkItem(n browser.BookmarkNode, tags []string) query.Item {
	return query.Item{
		ID:          fmt.Sprintf("bookmark-%s", n.ID),
		Type:        query.TypeBookmark,
		Title:       titleOrFallback(n.Title, n.URL),
		Description: n.URL,
		Icon:        bookmarkIcon,
		URL:         n.URL,
		Tags:        tags,
		Metadata: query.Metadata{
			Action:     query.VerbOpenURL,
			URL:        n.URL,
			BookmarkID: n.ID,
		},
	}
}
