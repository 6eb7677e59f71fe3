// Package rank scores result items against a query and orders them by
// relevance. Weights come from configuration; DefaultWeights holds the
// standard tuning.
package rank

import (
	"sort"
	"strings"
	"time"

	"github.com/runger/omnibar/internal/query"
)

// Weights holds the additive scoring weights. Title and description tiers
// are mutually exclusive within their group (the highest applicable tier
// fires); recency buckets are mutually exclusive with most-recent winning;
// type bonuses stack on top.
type Weights struct {
	TitleExact    float64 `yaml:"title_exact"`
	TitlePrefix   float64 `yaml:"title_prefix"`
	TitleContains float64 `yaml:"title_contains"`

	DescriptionPrefix   float64 `yaml:"description_prefix"`
	DescriptionContains float64 `yaml:"description_contains"`

	RecencyHour float64 `yaml:"recency_hour"`
	RecencyDay  float64 `yaml:"recency_day"`
	RecencyWeek float64 `yaml:"recency_week"`

	TabBonus      float64 `yaml:"tab_bonus"`
	BookmarkBonus float64 `yaml:"bookmark_bonus"`
}

// DefaultWeights returns the standard weight set.
func DefaultWeights() Weights {
	return Weights{
		TitleExact:          1.0,
		TitlePrefix:         0.8,
		TitleContains:       0.5,
		DescriptionPrefix:   0.4,
		DescriptionContains: 0.2,
		RecencyHour:         0.15,
		RecencyDay:          0.10,
		RecencyWeek:         0.05,
		TabBonus:            0.15,
		BookmarkBonus:       0.10,
	}
}

// Ranker scores and sorts items. Safe for concurrent use.
type Ranker struct {
	weights Weights
	now     func() time.Time
}

// New creates a Ranker with the given weights.
func New(w Weights) *Ranker {
	return &Ranker{weights: w, now: time.Now}
}

// NewAt creates a Ranker with a fixed clock, for tests.
func NewAt(w Weights, now func() time.Time) *Ranker {
	return &Ranker{weights: w, now: now}
}

// Rank returns the items sorted descending by score, each item's Rank
// populated in [0,1]. An empty query is a no-op: the tiers are undefined
// without one, so items come back unchanged and unsorted.
func (r *Ranker) Rank(items []query.Item, q string) []query.Item {
	if q == "" || len(items) == 0 {
		return items
	}

	q = strings.ToLower(q)
	now := r.now()

	out := make([]query.Item, len(items))
	copy(out, items)
	for i := range out {
		out[i].Rank = r.score(out[i], q, now)
	}

	// Stable so equal scores keep source order, making repeated passes
	// over identical inputs deterministic.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rank > out[j].Rank
	})
	return out
}

func (r *Ranker) score(item query.Item, q string, now time.Time) float64 {
	w := r.weights
	score := r.titleTier(item.Title, q) + r.descriptionTier(item, q)

	if !item.LastVisited.IsZero() {
		score += r.recencyBonus(now.Sub(item.LastVisited))
	}

	switch item.Type {
	case query.TypeTab:
		score += w.TabBonus
	case query.TypeBookmark:
		score += w.BookmarkBonus
	}

	return clamp01(score)
}

// titleTier returns the single highest applicable title weight.
func (r *Ranker) titleTier(title, q string) float64 {
	title = strings.ToLower(title)
	switch {
	case title == q:
		return r.weights.TitleExact
	case strings.HasPrefix(title, q):
		return r.weights.TitlePrefix
	case strings.Contains(title, q):
		return r.weights.TitleContains
	}
	return 0
}

// descriptionTier returns the single highest applicable weight across the
// item's description and URL.
func (r *Ranker) descriptionTier(item query.Item, q string) float64 {
	desc := strings.ToLower(item.Description)
	url := strings.ToLower(item.URL)
	switch {
	case strings.HasPrefix(desc, q), strings.HasPrefix(url, q):
		return r.weights.DescriptionPrefix
	case strings.Contains(desc, q), strings.Contains(url, q):
		return r.weights.DescriptionContains
	}
	return 0
}

// recencyBonus buckets the age of the last visit; the most recent
// applicable bucket wins.
func (r *Ranker) recencyBonus(age time.Duration) float64 {
	switch {
	case age < 0:
		return 0
	case age <= time.Hour:
		return r.weights.RecencyHour
	case age <= 24*time.Hour:
		return r.weights.RecencyDay
	case age <= 7*24*time.Hour:
		return r.weights.RecencyWeek
	}
	return 0
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
