package rank

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/omnibar/internal/query"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestRanker() *Ranker {
	return NewAt(DefaultWeights(), func() time.Time { return testNow })
}

func TestRank_TitleTiers(t *testing.T) {
	t.Parallel()

	r := newTestRanker()
	items := []query.Item{
		{ID: "a", Type: query.TypeHistory, Title: "somewhere git appears"},
		{ID: "b", Type: query.TypeHistory, Title: "git"},
		{ID: "c", Type: query.TypeHistory, Title: "github"},
	}

	ranked := r.Rank(items, "git")
	require.Len(t, ranked, 3)

	assert.Equal(t, "b", ranked[0].ID, "exact title match ranks first")
	assert.Equal(t, "c", ranked[1].ID, "prefix match ranks second")
	assert.Equal(t, "a", ranked[2].ID, "substring match ranks last")

	assert.InDelta(t, 1.0, ranked[0].Rank, 1e-9)
	assert.InDelta(t, 0.8, ranked[1].Rank, 1e-9)
	assert.InDelta(t, 0.5, ranked[2].Rank, 1e-9)
}

func TestRank_OnlyHighestTitleTierFires(t *testing.T) {
	t.Parallel()

	// An exact match is also a prefix and a substring; only the exact
	// tier may contribute.
	r := NewAt(Weights{TitleExact: 1.0, TitlePrefix: 0.8, TitleContains: 0.5}, func() time.Time { return testNow })
	ranked := r.Rank([]query.Item{{Title: "Git", Type: query.TypeHistory}}, "git")
	assert.InDelta(t, 1.0, ranked[0].Rank, 1e-9)
}

func TestRank_DescriptionAndURLTiers(t *testing.T) {
	t.Parallel()

	r := newTestRanker()
	items := []query.Item{
		{ID: "contains", Type: query.TypeHistory, Title: "x", Description: "docs at github.com"},
		{ID: "prefix", Type: query.TypeHistory, Title: "x", URL: "github.com/runger"},
	}

	ranked := r.Rank(items, "github")
	require.Len(t, ranked, 2)
	assert.Equal(t, "prefix", ranked[0].ID)
	assert.InDelta(t, 0.4, ranked[0].Rank, 1e-9)
	assert.InDelta(t, 0.2, ranked[1].Rank, 1e-9)
}

func TestRank_RecencyBuckets(t *testing.T) {
	t.Parallel()

	r := newTestRanker()
	items := []query.Item{
		{ID: "hour", Type: query.TypeHistory, Title: "x git", LastVisited: testNow.Add(-30 * time.Minute)},
		{ID: "day", Type: query.TypeHistory, Title: "x git", LastVisited: testNow.Add(-5 * time.Hour)},
		{ID: "week", Type: query.TypeHistory, Title: "x git", LastVisited: testNow.Add(-3 * 24 * time.Hour)},
		{ID: "stale", Type: query.TypeHistory, Title: "x git", LastVisited: testNow.Add(-30 * 24 * time.Hour)},
		{ID: "never", Type: query.TypeHistory, Title: "x git"},
	}

	ranked := r.Rank(items, "git")
	require.Len(t, ranked, 5)

	byID := map[string]float64{}
	for _, it := range ranked {
		byID[it.ID] = it.Rank
	}

	base := 0.5 // title contains only
	assert.InDelta(t, base+0.15, byID["hour"], 1e-9)
	assert.InDelta(t, base+0.10, byID["day"], 1e-9)
	assert.InDelta(t, base+0.05, byID["week"], 1e-9)
	assert.InDelta(t, base, byID["stale"], 1e-9)
	assert.InDelta(t, base, byID["never"], 1e-9)
}

func TestRank_TypeBonuses(t *testing.T) {
	t.Parallel()

	r := newTestRanker()
	items := []query.Item{
		{ID: "tab", Type: query.TypeTab, Title: "x git"},
		{ID: "bookmark", Type: query.TypeBookmark, Title: "x git"},
		{ID: "history", Type: query.TypeHistory, Title: "x git"},
	}

	ranked := r.Rank(items, "git")
	assert.Equal(t, "tab", ranked[0].ID)
	assert.Equal(t, "bookmark", ranked[1].ID)
	assert.Equal(t, "history", ranked[2].ID)
	assert.InDelta(t, 0.65, ranked[0].Rank, 1e-9)
	assert.InDelta(t, 0.60, ranked[1].Rank, 1e-9)
}

func TestRank_ClampedToOne(t *testing.T) {
	t.Parallel()

	r := newTestRanker()
	// Exact title + URL prefix + recency + tab bonus would exceed 1.0.
	items := []query.Item{{
		Type:        query.TypeTab,
		Title:       "git",
		URL:         "git.example.com",
		LastVisited: testNow.Add(-time.Minute),
	}}

	ranked := r.Rank(items, "git")
	assert.InDelta(t, 1.0, ranked[0].Rank, 1e-9)
}

func TestRank_OrderNonIncreasing(t *testing.T) {
	t.Parallel()

	r := newTestRanker()
	items := []query.Item{
		{Type: query.TypeHistory, Title: "unrelated", Description: "has git inside"},
		{Type: query.TypeTab, Title: "git status page", LastVisited: testNow.Add(-time.Minute)},
		{Type: query.TypeBookmark, Title: "GitHub", URL: "github.com"},
		{Type: query.TypeHistory, Title: "git"},
		{Type: query.TypeDownload, Title: "something else"},
	}

	ranked := r.Rank(items, "git")
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Rank, ranked[i].Rank)
	}
	for _, it := range ranked {
		assert.GreaterOrEqual(t, it.Rank, 0.0)
		assert.LessOrEqual(t, it.Rank, 1.0)
	}
}

func TestRank_EmptyQueryIsNoOp(t *testing.T) {
	t.Parallel()

	r := newTestRanker()
	items := []query.Item{
		{ID: "b", Title: "beta"},
		{ID: "a", Title: "alpha"},
	}

	ranked := r.Rank(items, "")
	require.Len(t, ranked, 2)
	assert.Equal(t, "b", ranked[0].ID, "order unchanged without a query")
	assert.Equal(t, "a", ranked[1].ID)
	assert.Zero(t, ranked[0].Rank)
}

func TestRank_CaseInsensitive(t *testing.T) {
	t.Parallel()

	r := newTestRanker()
	ranked := r.Rank([]query.Item{{Type: query.TypeHistory, Title: "GitHub"}}, "github")
	assert.InDelta(t, 1.0, ranked[0].Rank, 1e-9)
}

// Scenario from long-standing behavior: a bookmark titled "GitHub" queried
// with "git" lands in the prefix tier plus the bookmark bonus, above an
// item that only matches in its description.
func TestRank_PrefixBeatsDescriptionSubstring(t *testing.T) {
	t.Parallel()

	r := newTestRanker()
	items := []query.Item{
		{ID: "desc-only", Type: query.TypeHistory, Title: "news", Description: "story about git workflows"},
		{ID: "github", Type: query.TypeBookmark, Title: "GitHub", URL: "github.com"},
	}

	ranked := r.Rank(items, "git")
	require.Equal(t, "github", ranked[0].ID)
	// title prefix 0.8 + url prefix 0.4 + bookmark bonus 0.1, clamped
	assert.InDelta(t, 1.0, ranked[0].Rank, 1e-9)
	assert.InDelta(t, 0.2, ranked[1].Rank, 1e-9)
}
