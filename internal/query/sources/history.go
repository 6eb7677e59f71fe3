package sources

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/runger/omnibar/internal/browser"
	"github.com/runger/omnibar/internal/query"
)

const historyIcon = "○"

// History adapts browsing history: substring search within a bounded
// lookback window, deduplicated by URL. Its default view is the
// most-visited pages of the last day.
type History struct {
	provider    browser.HistoryProvider
	limit       int
	recentLimit int
	searchAge   time.Duration
	recentAge   time.Duration
	now         func() time.Time
}

// NewHistory creates the history adapter from the given limits.
func NewHistory(provider browser.HistoryProvider, limits Limits) *History {
	return &History{
		provider:    provider,
		limit:       orDefault(limits.History, defaultHistoryLimit),
		recentLimit: orDefault(limits.Recent, defaultRecentLimit),
		searchAge:   orDefaultAge(limits.HistoryAge, defaultHistoryLookback),
		recentAge:   orDefaultAge(limits.RecentAge, defaultRecentLookback),
		now:         time.Now,
	}
}

// Category implements query.Source.
func (h *History) Category() query.Category {
	return query.CategoryHistory
}

// Search implements query.Source.
func (h *History) Search(ctx context.Context, q string) ([]query.Item, error) {
	entries, err := h.provider.Search(ctx, browser.HistoryQuery{
		Text:       q,
		Start:      h.now().Add(-h.searchAge),
		MaxResults: historyFetchSize,
	})
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return h.toItems(dedupeByURL(entries), h.limit), nil
}

// Default implements query.DefaultView: the most visited pages within the
// recent window, top entries first.
func (h *History) Default(ctx context.Context) ([]query.Item, error) {
	entries, err := h.provider.Search(ctx, browser.HistoryQuery{
		Start:      h.now().Add(-h.recentAge),
		MaxResults: historyFetchSize,
	})
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}

	entries = dedupeByURL(entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].VisitCount > entries[j].VisitCount
	})
	return h.toItems(entries, h.recentLimit), nil
}

func (h *History) toItems(entries []browser.HistoryEntry, limit int) []query.Item {
	if len(entries) > limit {
		entries = entries[:limit]
	}
	items := make([]query.Item, 0, len(entries))
	for i, e := range entries {
		items = append(items, query.Item{
			ID:          fmt.Sprintf("history-%d", i),
			Type:        query.TypeHistory,
			Title:       titleOrFallback(e.Title, e.URL),
			Description: e.URL,
			Icon:        historyIcon,
			URL:         e.URL,
			LastVisited: e.LastVisitTime,
			Metadata: query.Metadata{
				Action: query.VerbOpenURL,
				URL:    e.URL,
			},
		})
	}
	return items
}

func dedupeByURL(entries []browser.HistoryEntry) []browser.HistoryEntry {
	seen := make(map[string]bool, len(entries))
	out := entries[:0:0]
	for _, e := range entries {
		if seen[e.URL] {
			continue
		}
		seen[e.URL] = true
		out = append(out, e)
	}
	return out
}
