package sources

import (
	"context"
	"fmt"

	"github.com/runger/omnibar/internal/browser"
	"github.com/runger/omnibar/internal/query"
)

const tabIcon = "▢"

// Tabs adapts the open-tab enumeration. Its default view lists every open
// tab; searching filters them by title/URL substring.
type Tabs struct {
	provider browser.TabProvider
	limit    int
}

// NewTabs creates the tabs adapter. limit <= 0 uses the default cap.
func NewTabs(provider browser.TabProvider, limit int) *Tabs {
	return &Tabs{provider: provider, limit: orDefault(limit, defaultTabLimit)}
}

// Category implements query.Source.
func (t *Tabs) Category() query.Category {
	return query.CategoryTabs
}

// Search implements query.Source.
func (t *Tabs) Search(ctx context.Context, q string) ([]query.Item, error) {
	tabs, err := t.provider.QueryAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("tabs: %w", err)
	}

	items := make([]query.Item, 0, t.limit)
	for _, tab := range tabs {
		if !matches(q, tab.Title, tab.URL) {
			continue
		}
		items = append(items, tabItem(tab))
		if len(items) >= t.limit {
			break
		}
	}
	return items, nil
}

// Default implements query.DefaultView: all open tabs, uncapped, in the
// provider's window/tab order.
func (t *Tabs) Default(ctx context.Context) ([]query.Item, error) {
	tabs, err := t.provider.QueryAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("tabs: %w", err)
	}

	items := make([]query.Item, 0, len(tabs))
	for _, tab := range tabs {
		items = append(items, tabItem(tab))
	}
	return items, nil
}

func tabItem(tab browser.Tab) query.Item {
	return query.Item{
		ID:          fmt.Sprintf("tab-%d", tab.ID),
		Type:        query.TypeTab,
		Title:       titleOrFallback(tab.Title, tab.URL),
		Description: tab.URL,
		Icon:        tabIcon,
		URL:         tab.URL,
		Metadata: query.Metadata{
			Action:   query.VerbFocusTab,
			TabID:    tab.ID,
			WindowID: tab.WindowID,
			URL:      tab.URL,
		},
	}
}
