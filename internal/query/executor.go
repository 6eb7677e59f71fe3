package query

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/runger/omnibar/internal/browser"
)

// DefaultSearchURLTemplate is the web-search target used when none is
// configured. %s is replaced with the escaped query.
const DefaultSearchURLTemplate = "https://duckduckgo.com/?q=%s"

// Executor performs the effect behind a selected result item. It never
// returns an error and never panics: an effect either happened (true) or
// silently did not (false), and the caller decides whether to surface
// feedback.
type Executor struct {
	sink      browser.ActionSink
	bookmarks browser.BookmarkStore
	searchURL string
	logger    *slog.Logger
}

// NewExecutor creates an Executor. searchURL must contain a %s placeholder
// for the query; empty uses DefaultSearchURLTemplate.
func NewExecutor(sink browser.ActionSink, bookmarks browser.BookmarkStore, searchURL string, logger *slog.Logger) *Executor {
	if searchURL == "" || !strings.Contains(searchURL, "%s") {
		searchURL = DefaultSearchURLTemplate
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		sink:      sink,
		bookmarks: bookmarks,
		searchURL: searchURL,
		logger:    logger,
	}
}

// Execute dispatches on the metadata's verb. Every branch guards its own
// required metadata and reports false rather than raising; unknown verbs
// are a no-op.
func (e *Executor) Execute(ctx context.Context, md Metadata) bool {
	if e.sink == nil {
		return false
	}
	switch md.Action {
	case VerbNewTab:
		return e.report(md.Action, e.sink.NewTab(ctx))

	case VerbNewWindow:
		return e.report(md.Action, e.sink.NewWindow(ctx))

	case VerbCloseTab:
		if md.TabID <= 0 {
			return false
		}
		return e.report(md.Action, e.sink.CloseTab(ctx, md.TabID))

	case VerbFocusTab:
		if md.TabID <= 0 {
			return false
		}
		return e.report(md.Action, e.sink.FocusTab(ctx, md.TabID, md.WindowID))

	case VerbOpenURL:
		if md.URL == "" {
			return false
		}
		return e.report(md.Action, e.sink.OpenURL(ctx, md.URL))

	case VerbWebSearch:
		if md.Query == "" {
			return false
		}
		target := strings.Replace(e.searchURL, "%s", url.QueryEscape(md.Query), 1)
		return e.report(md.Action, e.sink.OpenURL(ctx, target))

	case VerbAddFavorite:
		if md.URL == "" {
			return false
		}
		title := md.Title
		if title == "" {
			title = md.URL
		}
		return e.report(md.Action, e.sink.CreateBookmark(ctx, title, md.URL))

	case VerbRemoveFavorite:
		return e.removeFavorite(ctx, md)

	case VerbCopy:
		if md.Value == "" {
			return false
		}
		return e.report(md.Action, e.sink.CopyText(ctx, md.Value))

	case VerbNone:
		return false
	}
	return false
}

// removeFavorite removes the first bookmark matching the URL; no matches
// is a no-op.
func (e *Executor) removeFavorite(ctx context.Context, md Metadata) bool {
	if md.URL == "" || e.bookmarks == nil {
		return false
	}
	nodes, err := e.bookmarks.FindByURL(ctx, md.URL)
	if err != nil {
		e.logger.Warn("action failed", "verb", VerbRemoveFavorite, "error", err)
		return false
	}
	if len(nodes) == 0 {
		return false
	}
	return e.report(VerbRemoveFavorite, e.sink.RemoveBookmark(ctx, nodes[0].ID))
}

func (e *Executor) report(verb Verb, err error) bool {
	if err != nil {
		e.logger.Warn("action failed", "verb", verb, "error", err)
		return false
	}
	return true
}
