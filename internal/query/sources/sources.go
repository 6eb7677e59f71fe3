// Package sources holds the per-source adapters of the quick-search
// engine. Each adapter queries one collaborator and maps its raw entries
// into query.Item; the aggregator runs them concurrently and contains
// their failures.
package sources

import (
	"strings"
	"time"
)

// Per-source result caps and lookback windows. Zero values fall back to
// these defaults at construction time.
const (
	defaultBookmarkLimit  = 10
	defaultTagLimit       = 10
	defaultHistoryLimit   = 10
	defaultTabLimit       = 5
	defaultDownloadLimit  = 5
	defaultExtensionLimit = 5
	defaultRecentLimit    = 5

	defaultHistoryLookback = 30 * 24 * time.Hour
	defaultRecentLookback  = 24 * time.Hour

	// historyFetchSize is how many raw entries to pull before URL
	// deduplication trims the list down to the cap.
	historyFetchSize = 100
)

// Limits configures adapter caps and lookback windows. The zero value
// means "use defaults" for every field.
type Limits struct {
	Bookmarks  int           `yaml:"bookmarks"`
	Tags       int           `yaml:"tags"`
	History    int           `yaml:"history"`
	Tabs       int           `yaml:"tabs"`
	Downloads  int           `yaml:"downloads"`
	Extensions int           `yaml:"extensions"`
	Recent     int           `yaml:"recent"`
	HistoryAge time.Duration `yaml:"history_age"`
	RecentAge  time.Duration `yaml:"recent_age"`
}

// DefaultLimits returns the standard caps and windows.
func DefaultLimits() Limits {
	return Limits{
		Bookmarks:  defaultBookmarkLimit,
		Tags:       defaultTagLimit,
		History:    defaultHistoryLimit,
		Tabs:       defaultTabLimit,
		Downloads:  defaultDownloadLimit,
		Extensions: defaultExtensionLimit,
		Recent:     defaultRecentLimit,
		HistoryAge: defaultHistoryLookback,
		RecentAge:  defaultRecentLookback,
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func orDefaultAge(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

// matches reports whether any of the fields contains the lower-cased
// query as a substring.
func matches(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// titleOrFallback returns title, or fallback when title is blank, or a
// generic label when both are. Items never render with an empty title.
func titleOrFallback(title, fallback string) string {
	if strings.TrimSpace(title) != "" {
		return title
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return "Untitled"
}
