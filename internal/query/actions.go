package query

import (
	"context"
	"strings"
)

const actionIcon = "→"

// buildActions assembles the Actions category: the two always-available
// commands, the close/favorite pair for the current tab, and a web search
// for term-like queries. Add-favorite and remove-favorite are mutually
// exclusive; exactly one appears whenever a current tab is known.
func (a *Aggregator) buildActions(ctx context.Context, q string, qctx Context) []Item {
	items := []Item{
		actionItem(VerbNewTab, "New tab", "Open an empty tab", Metadata{Action: VerbNewTab}),
		actionItem(VerbNewWindow, "New window", "Open an empty window", Metadata{Action: VerbNewWindow}),
	}

	if tab := qctx.Tab; tab != nil {
		items = append(items, actionItem(VerbCloseTab, "Close tab",
			"Close "+tab.Title,
			Metadata{Action: VerbCloseTab, TabID: tab.ID, WindowID: tab.WindowID}))

		if a.isBookmarked(ctx, tab.URL) {
			items = append(items, actionItem(VerbRemoveFavorite, "Remove favorite",
				"Remove the bookmark for this page",
				Metadata{Action: VerbRemoveFavorite, URL: tab.URL}))
		} else {
			items = append(items, actionItem(VerbAddFavorite, "Add favorite",
				"Bookmark this page",
				Metadata{Action: VerbAddFavorite, URL: tab.URL, Title: tab.Title}))
		}
	}

	// Whitespace-free queries look like a URL or a single search term;
	// offer to hand them to the web search engine.
	if q != "" && !strings.ContainsAny(q, " \t") {
		items = append(items, actionItem(VerbWebSearch, "Search the web for \""+q+"\"",
			"Open web search results",
			Metadata{Action: VerbWebSearch, Query: q}))
	}

	return items
}

// isBookmarked reports whether url already has a bookmark. Lookup errors
// count as "not bookmarked", so the fallback action is add-favorite.
func (a *Aggregator) isBookmarked(ctx context.Context, url string) bool {
	if a.bookmarks == nil || url == "" {
		return false
	}
	nodes, err := a.bookmarks.FindByURL(ctx, url)
	if err != nil {
		a.logger.Debug("bookmark lookup failed", "url", url, "error", err)
		return false
	}
	return len(nodes) > 0
}

func actionItem(verb Verb, title, description string, md Metadata) Item {
	return Item{
		ID:          "action-" + string(verb),
		Type:        TypeAction,
		Title:       title,
		Description: description,
		Icon:        actionIcon,
		Metadata:    md,
	}
}
