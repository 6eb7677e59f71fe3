package picker

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/omnibar/internal/query"
)

// --- Fakes ---

type fakeAggregator struct {
	results *query.ResultSet
	queries []string
}

func (f *fakeAggregator) Aggregate(_ context.Context, rawQuery string, _ query.Context) *query.ResultSet {
	f.queries = append(f.queries, rawQuery)
	return f.results
}

type fakeExecutor struct {
	executed []query.Metadata
	ok       bool
}

func (f *fakeExecutor) Execute(_ context.Context, md query.Metadata) bool {
	f.executed = append(f.executed, md)
	return f.ok
}

func twoGroupResults() *query.ResultSet {
	return &query.ResultSet{
		PassID: "pass-1",
		Groups: []query.Group{
			{
				Category: query.CategoryBookmarks,
				Items: []query.Item{
					{ID: "bookmark-1", Title: "Go Blog", Metadata: query.Metadata{Action: query.VerbOpenURL, URL: "https://go.dev/blog"}},
					{ID: "bookmark-2", Title: "GitHub", Metadata: query.Metadata{Action: query.VerbOpenURL, URL: "https://github.com"}},
				},
			},
			{
				Category: query.CategoryTabs,
				Items: []query.Item{
					{ID: "tab-7", Title: "Inbox", Metadata: query.Metadata{Action: query.VerbFocusTab, TabID: 7, WindowID: 1}},
				},
			},
		},
	}
}

func newTestModel(agg aggregator, exec executor) Model {
	m := NewModel(agg, exec, query.Context{})
	m.width = 80
	m.height = 24
	return m
}

// runCmd executes a tea.Cmd synchronously and returns the resulting message.
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// drainBatch runs a batch cmd and feeds all resulting messages into the
// model, returning the final model state and any remaining cmd.
func drainBatch(t *testing.T, m Model, batchCmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	msg := runCmd(batchCmd)
	if msg == nil {
		return m, nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var lastCmd tea.Cmd
		for _, cmd := range batch {
			sub := runCmd(cmd)
			if sub == nil {
				continue
			}
			var result tea.Model
			result, lastCmd = m.Update(sub)
			m = result.(Model)
		}
		return m, lastCmd
	}
	result, cmd := m.Update(msg)
	return result.(Model), cmd
}

// initAndLoad runs the full Init -> pass cycle, returning the model in its
// post-pass state.
func initAndLoad(t *testing.T, m Model) Model {
	t.Helper()
	m, passCmd := drainBatch(t, m, m.Init())
	require.Equal(t, stateLoading, m.state)

	doneMsg := runCmd(passCmd)
	require.NotNil(t, doneMsg)

	result, _ := m.Update(doneMsg)
	return result.(Model)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// --- Tests ---

func TestInitRunsFirstPass(t *testing.T) {
	agg := &fakeAggregator{results: twoGroupResults()}
	m := initAndLoad(t, newTestModel(agg, &fakeExecutor{ok: true}))

	assert.Equal(t, stateLoaded, m.state)
	assert.Equal(t, []string{""}, agg.queries)
	// header, two bookmarks, header, one tab
	require.Len(t, m.rows, 5)
	assert.True(t, m.rows[0].header)
	assert.Equal(t, 1, m.selection)
}

func TestEmptyResultsShowEmptyState(t *testing.T) {
	agg := &fakeAggregator{results: &query.ResultSet{PassID: "p"}}
	m := initAndLoad(t, newTestModel(agg, &fakeExecutor{ok: true}))

	assert.Equal(t, stateEmpty, m.state)
	assert.Equal(t, -1, m.selection)
	assert.Contains(t, m.View(), "Type to search")
}

func TestStalePassIsDiscarded(t *testing.T) {
	agg := &fakeAggregator{results: twoGroupResults()}
	m := initAndLoad(t, newTestModel(agg, &fakeExecutor{ok: true}))

	result, _ := m.Update(passDoneMsg{requestID: m.requestID - 1, results: &query.ResultSet{}})
	m = result.(Model)

	assert.Equal(t, stateLoaded, m.state)
	assert.Len(t, m.rows, 5)
}

func TestSelectionSkipsHeaders(t *testing.T) {
	agg := &fakeAggregator{results: twoGroupResults()}
	m := initAndLoad(t, newTestModel(agg, &fakeExecutor{ok: true}))

	// rows: [header, bm1, bm2, header, tab]
	require.Equal(t, 1, m.selection)

	result, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = result.(Model)
	assert.Equal(t, 2, m.selection)

	// next down jumps over the Tabs header
	result, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = result.(Model)
	assert.Equal(t, 4, m.selection)

	// at the end, stays put
	result, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = result.(Model)
	assert.Equal(t, 4, m.selection)

	// back up over the header
	result, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = result.(Model)
	assert.Equal(t, 2, m.selection)
}

func TestEnterExecutesSelection(t *testing.T) {
	agg := &fakeAggregator{results: twoGroupResults()}
	exec := &fakeExecutor{ok: true}
	m := initAndLoad(t, newTestModel(agg, exec))

	result, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = result.(Model)

	require.Len(t, exec.executed, 1)
	assert.Equal(t, query.VerbOpenURL, exec.executed[0].Action)
	assert.Equal(t, "https://go.dev/blog", exec.executed[0].URL)

	selected, executed := m.Result()
	assert.Equal(t, "bookmark-1", selected.ID)
	assert.True(t, executed)

	assert.IsType(t, tea.QuitMsg{}, runCmd(cmd))
}

func TestEscapeCancels(t *testing.T) {
	agg := &fakeAggregator{results: twoGroupResults()}
	exec := &fakeExecutor{ok: true}
	m := initAndLoad(t, newTestModel(agg, exec))

	result, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = result.(Model)

	assert.Equal(t, stateCancelled, m.state)
	assert.Empty(t, exec.executed)
	selected, executed := m.Result()
	assert.Empty(t, selected.ID)
	assert.False(t, executed)
	assert.IsType(t, tea.QuitMsg{}, runCmd(cmd))
}

func TestTypingDebouncesThenSearches(t *testing.T) {
	agg := &fakeAggregator{results: twoGroupResults()}
	m := initAndLoad(t, newTestModel(agg, &fakeExecutor{ok: true}))

	result, _ := m.Update(keyRunes("g"))
	m = result.(Model)
	result, _ = m.Update(keyRunes("o"))
	m = result.(Model)
	assert.Equal(t, "go", m.input.Value())

	// Only the latest debounce timer fires a pass.
	result, cmd := m.Update(debounceMsg{id: m.debounceID - 1})
	m = result.(Model)
	assert.Nil(t, cmd)

	result, passCmd := m.Update(debounceMsg{id: m.debounceID})
	m = result.(Model)
	require.NotNil(t, passCmd)

	doneMsg := runCmd(passCmd)
	result, _ = m.Update(doneMsg)
	m = result.(Model)

	assert.Equal(t, []string{"", "go"}, agg.queries)
	assert.Equal(t, stateLoaded, m.state)
}

func TestLoadedListSurvivesWhileNextPassRuns(t *testing.T) {
	agg := &fakeAggregator{results: twoGroupResults()}
	m := initAndLoad(t, newTestModel(agg, &fakeExecutor{ok: true}))

	result, _ := m.Update(keyRunes("g"))
	m = result.(Model)
	result, _ = m.Update(debounceMsg{id: m.debounceID})
	m = result.(Model)

	// the old list stays on screen instead of flashing "Loading"
	assert.Equal(t, stateLoaded, m.state)
	assert.Len(t, m.rows, 5)
}

func TestViewRendersHeadersAndMarker(t *testing.T) {
	agg := &fakeAggregator{results: twoGroupResults()}
	m := initAndLoad(t, newTestModel(agg, &fakeExecutor{ok: true}))

	view := m.View()
	assert.Contains(t, view, "Bookmarks")
	assert.Contains(t, view, "Tabs")
	assert.Contains(t, view, "> Go Blog")
	assert.Contains(t, view, "  GitHub")
}

func TestViewWindowFollowsSelection(t *testing.T) {
	items := make([]query.Item, 30)
	for i := range items {
		items[i] = query.Item{ID: "bookmark-" + strings.Repeat("x", i+1), Title: "Item"}
	}
	agg := &fakeAggregator{results: &query.ResultSet{
		PassID: "p",
		Groups: []query.Group{{Category: query.CategoryBookmarks, Items: items}},
	}}
	m := initAndLoad(t, newTestModel(agg, &fakeExecutor{ok: true}))
	m.height = 10

	for range 20 {
		result, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = result.(Model)
	}

	window := m.visibleWindow()
	assert.Len(t, window, m.listHeight())
	// selection is rendered within the window
	offset := m.selectionOffset()
	assert.Equal(t, m.rows[m.selection], window[offset])
}
