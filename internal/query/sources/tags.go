package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/runger/omnibar/internal/browser"
	"github.com/runger/omnibar/internal/query"
)

// Tags adapts the bookmark-tag cross index: tags whose name contains the
// query select the union of their bookmarks, each decorated with its full
// tag list.
//
// A single keystroke fans out into AllTags + FindByTag per match + Get and
// TagsFor per bookmark, so this adapter benefits most from the optional
// memo cache.
type Tags struct {
	index browser.TagIndex
	store browser.BookmarkStore
	limit int
	cache Cache
}

// NewTags creates the tags adapter. cache may be nil.
func NewTags(index browser.TagIndex, store browser.BookmarkStore, limit int, cache Cache) *Tags {
	return &Tags{
		index: index,
		store: store,
		limit: orDefault(limit, defaultTagLimit),
		cache: cache,
	}
}

// Category implements query.Source.
func (t *Tags) Category() query.Category {
	return query.CategoryTags
}

// Search implements query.Source.
func (t *Tags) Search(ctx context.Context, q string) ([]query.Item, error) {
	cacheKey := "tags:" + q
	if items, ok := cacheGet(t.cache, cacheKey); ok {
		return items, nil
	}

	all, err := t.index.AllTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("tags: list: %w", err)
	}

	// Union of bookmark ids across matching tags, first occurrence wins.
	seen := make(map[string]bool)
	var ids []string
	for _, tag := range all {
		if !strings.Contains(strings.ToLower(tag), q) {
			continue
		}
		tagged, err := t.index.FindByTag(ctx, tag)
		if err != nil {
			return nil, fmt.Errorf("tags: find %q: %w", tag, err)
		}
		for _, id := range tagged {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	items := make([]query.Item, 0, t.limit)
	for _, id := range ids {
		if len(items) >= t.limit {
			break
		}
		node, err := t.store.Get(ctx, id)
		if err != nil {
			continue // stale index entry; skip, not fatal
		}
		if node.IsFolder() {
			continue
		}
		tags, err := t.index.TagsFor(ctx, id)
		if err != nil {
			tags = nil
		}
		item := bookmarkItem(node, tags)
		item.ID = fmt.Sprintf("tag-%s", node.ID)
		items = append(items, item)
	}

	cacheSet(t.cache, cacheKey, items)
	return items, nil
}
