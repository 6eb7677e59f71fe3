// Package query implements the unified quick-search engine: it fans a
// query out to every data source, ranks and groups the normalized results,
// and executes the effect behind a selected result.
package query

import (
	"context"
	"time"
)

// Type identifies which kind of entity a result item represents.
type Type string

const (
	TypeBookmark   Type = "bookmark"
	TypeFolder     Type = "folder"
	TypeHistory    Type = "history"
	TypeTab        Type = "tab"
	TypeDownload   Type = "download"
	TypeExtension  Type = "extension"
	TypeSetting    Type = "setting"
	TypeCalculator Type = "calculator"
	TypeAction     Type = "action"
)

// Verb names an executable effect. The set is closed: the executor
// dispatches exhaustively over these and treats anything else as a no-op.
type Verb string

const (
	VerbNone           Verb = ""
	VerbOpenURL        Verb = "open-url"
	VerbFocusTab       Verb = "focus-tab"
	VerbNewTab         Verb = "new-tab"
	VerbNewWindow      Verb = "new-window"
	VerbCloseTab       Verb = "close-tab"
	VerbWebSearch      Verb = "web-search"
	VerbAddFavorite    Verb = "add-favorite"
	VerbRemoveFavorite Verb = "remove-favorite"
	VerbCopy           Verb = "copy"
)

// Metadata carries the source-specific fields the executor needs to
// perform an item's effect. Unused fields stay zero.
type Metadata struct {
	Action     Verb
	TabID      int
	WindowID   int
	BookmarkID string
	URL        string
	Title      string
	Query      string
	Value      string
}

// Item is the normalized record every source adapter produces.
type Item struct {
	// ID is unique within a single aggregation pass and encodes
	// source plus source-native id, e.g. "bookmark-42".
	ID          string
	Type        Type
	Title       string
	Description string
	Icon        string
	URL         string
	Metadata    Metadata

	// LastVisited is the most recent visit time when the source tracks
	// one; zero otherwise. The ranker reads it for the recency bonus.
	LastVisited time.Time

	// Rank is populated by the ranker, in [0,1]. Zero before ranking.
	Rank float64

	// Tags holds user-assigned bookmark labels, bookmark items only.
	Tags []string
}

// Category names a bucket of items shown together.
type Category string

const (
	CategoryCalculator Category = "Calculator"
	CategoryBookmarks  Category = "Bookmarks"
	CategoryTags       Category = "Tags"
	CategoryHistory    Category = "History"
	CategoryRecent     Category = "Recent"
	CategoryTabs       Category = "Tabs"
	CategoryDownloads  Category = "Downloads"
	CategorySettings   Category = "Settings"
	CategoryExtensions Category = "Extensions"
	CategoryActions    Category = "Actions"
)

// Group is one non-empty category with its items.
type Group struct {
	Category Category
	Items    []Item
}

// ResultSet is the ordered, category-grouped output of one aggregation
// pass. Only non-empty categories appear, in the order the aggregator
// populated them.
type ResultSet struct {
	// PassID identifies one aggregation pass in logs. Item IDs are only
	// unique within the pass it names.
	PassID string
	Groups []Group
}

// Lookup returns the items for a category, or nil if it is absent.
func (r *ResultSet) Lookup(cat Category) []Item {
	for _, g := range r.Groups {
		if g.Category == cat {
			return g.Items
		}
	}
	return nil
}

// Categories returns the category names in output order.
func (r *ResultSet) Categories() []Category {
	cats := make([]Category, len(r.Groups))
	for i, g := range r.Groups {
		cats[i] = g.Category
	}
	return cats
}

// Len returns the total number of items across all groups.
func (r *ResultSet) Len() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Items)
	}
	return n
}

// Source is one data source adapter. Search returns the source's matches
// for a non-empty, lower-cased query; a failing collaborator surfaces as
// an error, which the aggregator contains.
type Source interface {
	Category() Category
	Search(ctx context.Context, q string) ([]Item, error)
}

// DefaultView supplies a source's items for the empty-query state.
type DefaultView interface {
	Default(ctx context.Context) ([]Item, error)
}

// Ranker orders items by relevance to a query, populating Item.Rank.
type Ranker interface {
	Rank(items []Item, q string) []Item
}

// Evaluator recognizes and evaluates calculator input. The second return
// is false when the string is not a well-formed expression.
type Evaluator interface {
	Evaluate(expr string) (string, bool)
}
