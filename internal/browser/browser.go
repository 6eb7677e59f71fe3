// Package browser defines the collaborator interfaces the query engine
// depends on: read-only views over a browser profile (bookmarks, history,
// tabs, downloads, extensions, tags) and the side-effecting ActionSink.
// Implementations live elsewhere (internal/storage, internal/sink); the
// engine never talks to a browser directly.
package browser

import (
	"context"
	"time"
)

// BookmarkNode is a single node in the bookmark tree. A node with an empty
// URL is a folder.
type BookmarkNode struct {
	ID       string
	ParentID string
	Title    string
	URL      string
}

// IsFolder reports whether the node is a folder rather than a leaf bookmark.
func (n BookmarkNode) IsFolder() bool {
	return n.URL == ""
}

// HistoryEntry is one visited URL from browsing history.
type HistoryEntry struct {
	URL           string
	Title         string
	LastVisitTime time.Time
	VisitCount    int
}

// Tab is an open browser tab.
type Tab struct {
	ID       int
	WindowID int
	Title    string
	URL      string
	Active   bool
}

// Download is one entry from download history.
type Download struct {
	ID       int
	Filename string
	URL      string
	FileSize int64
}

// Extension is an installed browser extension.
type Extension struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Type        string
}

// HistoryQuery bounds a history search.
type HistoryQuery struct {
	Text       string
	Start      time.Time
	MaxResults int
}

// BookmarkStore provides read access to the bookmark tree.
type BookmarkStore interface {
	// Search returns nodes whose title or URL contains the substring,
	// folders included. Callers filter folders out where needed.
	Search(ctx context.Context, substring string) ([]BookmarkNode, error)

	// Get returns the node with the given id, or an error if it does
	// not exist.
	Get(ctx context.Context, id string) (BookmarkNode, error)

	// FindByURL returns all leaf bookmarks pointing at exactly url.
	FindByURL(ctx context.Context, url string) ([]BookmarkNode, error)
}

// HistoryProvider provides read access to browsing history.
type HistoryProvider interface {
	Search(ctx context.Context, q HistoryQuery) ([]HistoryEntry, error)
}

// TabProvider enumerates open tabs.
type TabProvider interface {
	QueryAll(ctx context.Context) ([]Tab, error)
}

// DownloadProvider searches download history.
type DownloadProvider interface {
	Search(ctx context.Context, substring string) ([]Download, error)
}

// ExtensionProvider enumerates installed extensions.
type ExtensionProvider interface {
	ListAll(ctx context.Context) ([]Extension, error)
}

// TagIndex is the bookmark-tag cross index. Tags are assigned out of band;
// the index only answers lookups.
type TagIndex interface {
	AllTags(ctx context.Context) ([]string, error)
	FindByTag(ctx context.Context, tag string) ([]string, error)
	TagsFor(ctx context.Context, bookmarkID string) ([]string, error)
}

// ActionSink performs the side effects the action executor dispatches to.
// Every method is best-effort: an error means the effect did not happen.
type ActionSink interface {
	OpenURL(ctx context.Context, url string) error
	NewTab(ctx context.Context) error
	NewWindow(ctx context.Context) error
	CloseTab(ctx context.Context, tabID int) error
	FocusTab(ctx context.Context, tabID, windowID int) error
	CreateBookmark(ctx context.Context, title, url string) error
	RemoveBookmark(ctx context.Context, bookmarkID string) error
	CopyText(ctx context.Context, text string) error
}
