package query

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/runger/omnibar/internal/browser"
)

// Context carries the browsing context an aggregation runs against.
type Context struct {
	// Tab is the currently focused tab, nil when unknown.
	Tab *browser.Tab

	// ExtensionPage reports whether the caller is itself one of our
	// surfaces rather than a regular page.
	ExtensionPage bool
}

// AggregatorConfig wires an Aggregator. Sources are queried in slice
// order, which also fixes the category order of the output.
type AggregatorConfig struct {
	Evaluator Evaluator
	Ranker    Ranker
	Sources   []Source

	// TabDefault and RecentDefault supply the empty-query view: all open
	// tabs and the most-visited recent history.
	TabDefault    DefaultView
	RecentDefault DefaultView

	// Bookmarks decides whether the current tab is already a favorite.
	Bookmarks browser.BookmarkStore

	Logger *slog.Logger
}

// Aggregator runs one aggregation pass: calculator, concurrent source
// fan-out, per-category ranking, and the contextual action list.
type Aggregator struct {
	evaluator Evaluator
	ranker    Ranker
	sources   []Source
	tabDef    DefaultView
	recentDef DefaultView
	bookmarks browser.BookmarkStore
	logger    *slog.Logger
}

// NewAggregator creates an Aggregator from cfg.
func NewAggregator(cfg AggregatorConfig) *Aggregator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		evaluator: cfg.Evaluator,
		ranker:    cfg.Ranker,
		sources:   cfg.Sources,
		tabDef:    cfg.TabDefault,
		recentDef: cfg.RecentDefault,
		bookmarks: cfg.Bookmarks,
		logger:    logger,
	}
}

// Aggregate runs one pass for rawQuery under qctx. It never fails: a
// source that errors contributes an empty list, and the worst case is a
// smaller result set. Callers racing passes against each other discard
// stale ones by PassID or their own request counter.
func (a *Aggregator) Aggregate(ctx context.Context, rawQuery string, qctx Context) *ResultSet {
	passID := uuid.NewString()
	q := strings.ToLower(strings.TrimSpace(rawQuery))

	if q == "" {
		return a.defaultPass(ctx, qctx, passID)
	}
	return a.searchPass(ctx, q, qctx, passID)
}

// defaultPass assembles the empty-query view: contextual actions, all open
// tabs, and recently visited pages.
func (a *Aggregator) defaultPass(ctx context.Context, qctx Context, passID string) *ResultSet {
	tabs := a.defaultItems(ctx, a.tabDef, CategoryTabs, passID)
	recent := a.defaultItems(ctx, a.recentDef, CategoryRecent, passID)

	groups := make([]Group, 0, 3)
	groups = appendGroup(groups, CategoryActions, a.buildActions(ctx, "", qctx))
	groups = appendGroup(groups, CategoryTabs, tabs)
	groups = appendGroup(groups, CategoryRecent, recent)
	return &ResultSet{PassID: passID, Groups: groups}
}

// searchPass evaluates the calculator, fans the query out to every source
// concurrently, ranks each category independently, and appends the action
// list last.
func (a *Aggregator) searchPass(ctx context.Context, q string, qctx Context, passID string) *ResultSet {
	var calcItems []Item
	if a.evaluator != nil {
		if value, ok := a.evaluator.Evaluate(q); ok {
			calcItems = []Item{calculatorItem(q, value)}
		}
	}

	// Fan out. One slow or failing source must not delay or abort the
	// others; each goroutine writes only its own slot.
	ranked := make([][]Item, len(a.sources))
	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			items, err := src.Search(ctx, q)
			if err != nil {
				a.logger.Warn("source failed",
					"pass", passID,
					"category", src.Category(),
					"error", err,
				)
				return
			}
			if a.ranker != nil {
				items = a.ranker.Rank(items, q)
			}
			ranked[i] = items
		}(i, src)
	}
	wg.Wait()

	groups := make([]Group, 0, len(a.sources)+2)
	groups = appendGroup(groups, CategoryCalculator, calcItems)
	for i, src := range a.sources {
		groups = appendGroup(groups, src.Category(), ranked[i])
	}
	groups = appendGroup(groups, CategoryActions, a.buildActions(ctx, q, qctx))
	return &ResultSet{PassID: passID, Groups: groups}
}

func (a *Aggregator) defaultItems(ctx context.Context, view DefaultView, cat Category, passID string) []Item {
	if view == nil {
		return nil
	}
	items, err := view.Default(ctx)
	if err != nil {
		a.logger.Warn("default view failed", "pass", passID, "category", cat, "error", err)
		return nil
	}
	return items
}

// appendGroup adds a category only when it has items: empty categories are
// omitted entirely, never emitted as empty lists.
func appendGroup(groups []Group, cat Category, items []Item) []Group {
	if len(items) == 0 {
		return groups
	}
	return append(groups, Group{Category: cat, Items: items})
}

func calculatorItem(expr, value string) Item {
	return Item{
		ID:          "calculator-result",
		Type:        TypeCalculator,
		Title:       expr + " = " + value,
		Description: "Copy result",
		Icon:        "=",
		Metadata: Metadata{
			Action: VerbCopy,
			Value:  value,
		},
	}
}
