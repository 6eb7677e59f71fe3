package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/omnibar/internal/browser"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "snapshot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "snapshot.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestBookmarkCRUD(t *testing.T) {
	ctx := context.Background()
	bookmarks := openTestStore(t).Bookmarks()

	id, err := bookmarks.Create(ctx, "Go Blog", "https://go.dev/blog")
	require.NoError(t, err)

	node, err := bookmarks.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Go Blog", node.Title)
	assert.Equal(t, "https://go.dev/blog", node.URL)
	assert.False(t, node.IsFolder())

	found, err := bookmarks.FindByURL(ctx, "https://go.dev/blog")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, id, found[0].ID)

	require.NoError(t, bookmarks.Remove(ctx, id))
	_, err = bookmarks.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookmarkSearchIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	bookmarks := openTestStore(t).Bookmarks()

	_, err := bookmarks.Create(ctx, "GitHub Dashboard", "https://github.com")
	require.NoError(t, err)
	_, err = bookmarks.Create(ctx, "News", "https://news.ycombinator.com")
	require.NoError(t, err)

	nodes, err := bookmarks.Search(ctx, "github")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "GitHub Dashboard", nodes[0].Title)
}

func TestBookmarkSearchEscapesWildcards(t *testing.T) {
	ctx := context.Background()
	bookmarks := openTestStore(t).Bookmarks()

	_, err := bookmarks.Create(ctx, "100% coverage", "https://example.com/report")
	require.NoError(t, err)
	_, err = bookmarks.Create(ctx, "100x speedup", "https://example.com/perf")
	require.NoError(t, err)

	nodes, err := bookmarks.Search(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "100% coverage", nodes[0].Title)
}

func TestBookmarkFolders(t *testing.T) {
	ctx := context.Background()
	bookmarks := openTestStore(t).Bookmarks()

	id, err := bookmarks.CreateFolder(ctx, "Reading List")
	require.NoError(t, err)

	node, err := bookmarks.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, node.IsFolder())
}

func TestTags(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	bookmarks := store.Bookmarks()
	tags := store.Tags()

	first, err := bookmarks.Create(ctx, "Go Blog", "https://go.dev/blog")
	require.NoError(t, err)
	second, err := bookmarks.Create(ctx, "Rust Blog", "https://blog.rust-lang.org")
	require.NoError(t, err)

	require.NoError(t, tags.Tag(ctx, first, "golang"))
	require.NoError(t, tags.Tag(ctx, first, "reading"))
	require.NoError(t, tags.Tag(ctx, second, "reading"))
	// tagging twice is a no-op
	require.NoError(t, tags.Tag(ctx, first, "golang"))

	all, err := tags.AllTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"golang", "reading"}, all)

	ids, err := tags.FindByTag(ctx, "reading")
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, ids)

	got, err := tags.TagsFor(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, []string{"golang", "reading"}, got)
}

func TestBookmarkRemoveDropsTags(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	bookmarks := store.Bookmarks()
	tags := store.Tags()

	id, err := bookmarks.Create(ctx, "Go Blog", "https://go.dev/blog")
	require.NoError(t, err)
	require.NoError(t, tags.Tag(ctx, id, "golang"))
	require.NoError(t, bookmarks.Remove(ctx, id))

	all, err := tags.AllTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestHistorySearch(t *testing.T) {
	ctx := context.Background()
	history := openTestStore(t).History()
	now := time.Now()

	require.NoError(t, history.RecordVisit(ctx, "https://go.dev", "The Go Programming Language", now.Add(-time.Hour)))
	require.NoError(t, history.RecordVisit(ctx, "https://github.com", "GitHub", now.Add(-48*time.Hour)))
	require.NoError(t, history.RecordVisit(ctx, "https://go.dev/blog", "The Go Blog", now.Add(-time.Minute)))

	entries, err := history.Search(ctx, browser.HistoryQuery{Text: "go"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// most recent first
	assert.Equal(t, "https://go.dev/blog", entries[0].URL)
	assert.Equal(t, "https://go.dev", entries[1].URL)
}

func TestHistorySearchHonorsStartAndLimit(t *testing.T) {
	ctx := context.Background()
	history := openTestStore(t).History()
	now := time.Now()

	require.NoError(t, history.RecordVisit(ctx, "https://old.example.com", "Old", now.Add(-72*time.Hour)))
	require.NoError(t, history.RecordVisit(ctx, "https://a.example.com", "A", now.Add(-2*time.Hour)))
	require.NoError(t, history.RecordVisit(ctx, "https://b.example.com", "B", now.Add(-time.Hour)))

	entries, err := history.Search(ctx, browser.HistoryQuery{
		Text:       "example",
		Start:      now.Add(-24 * time.Hour),
		MaxResults: 1,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "https://b.example.com", entries[0].URL)
}

func TestHistoryRecordVisitBumpsCount(t *testing.T) {
	ctx := context.Background()
	history := openTestStore(t).History()
	now := time.Now()

	require.NoError(t, history.RecordVisit(ctx, "https://go.dev", "Go", now.Add(-time.Hour)))
	require.NoError(t, history.RecordVisit(ctx, "https://go.dev", "The Go Programming Language", now))

	entries, err := history.Search(ctx, browser.HistoryQuery{Text: "go.dev"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].VisitCount)
	assert.Equal(t, "The Go Programming Language", entries[0].Title)
}

func TestTabs(t *testing.T) {
	ctx := context.Background()
	tabs := openTestStore(t).Tabs()

	require.NoError(t, tabs.Add(ctx, browser.Tab{ID: 1, WindowID: 1, Title: "Inbox", URL: "https://mail.example.com", Active: true}))
	require.NoError(t, tabs.Add(ctx, browser.Tab{ID: 2, WindowID: 1, Title: "Docs", URL: "https://docs.example.com"}))

	all, err := tabs.QueryAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Inbox", all[0].Title)
	assert.True(t, all[0].Active)

	require.NoError(t, tabs.Activate(ctx, 2, 1))
	all, err = tabs.QueryAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Docs", all[0].Title)
	assert.True(t, all[0].Active)
	assert.False(t, all[1].Active)

	require.NoError(t, tabs.Remove(ctx, 1))
	all, err = tabs.QueryAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 2, all[0].ID)
}

func TestDownloads(t *testing.T) {
	ctx := context.Background()
	downloads := openTestStore(t).Downloads()

	require.NoError(t, downloads.Add(ctx, "report.pdf", "https://example.com/report.pdf", 2048))
	require.NoError(t, downloads.Add(ctx, "photo.jpg", "https://example.com/photo.jpg", 4096))

	got, err := downloads.Search(ctx, "report")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "report.pdf", got[0].Filename)
	assert.Equal(t, int64(2048), got[0].FileSize)
}

func TestExtensions(t *testing.T) {
	ctx := context.Background()
	extensions := openTestStore(t).Extensions()

	require.NoError(t, extensions.Add(ctx, browser.Extension{ID: "abc", Name: "uBlock Origin", Enabled: true, Type: "extension"}))
	require.NoError(t, extensions.Add(ctx, browser.Extension{ID: "def", Name: "Dark Reader", Enabled: false, Type: "extension"}))

	all, err := extensions.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// sorted by name
	assert.Equal(t, "Dark Reader", all[0].Name)
	assert.False(t, all[0].Enabled)
	assert.Equal(t, "uBlock Origin", all[1].Name)
	assert.True(t, all[1].Enabled)
}
