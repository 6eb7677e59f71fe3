// Package picker is the terminal quick-search surface: a single input
// line over the grouped, ranked results of the query engine. Selecting a
// result executes its effect and quits.
package picker

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runger/omnibar/internal/query"
)

// debounceInterval is the delay after the last keystroke before a new
// aggregation pass runs.
const debounceInterval = 100 * time.Millisecond

// pickerState represents the current state of the picker's state machine.
type pickerState int

const (
	stateIdle      pickerState = iota // Initial state before first pass
	stateLoading                      // Pass in progress
	stateLoaded                       // Results present
	stateEmpty                        // Pass returned nothing
	stateCancelled                    // User cancelled (Esc / Ctrl+C)
)

// aggregator runs one search pass. Satisfied by *query.Aggregator.
type aggregator interface {
	Aggregate(ctx context.Context, rawQuery string, qctx query.Context) *query.ResultSet
}

// executor performs a selected item's effect. Satisfied by *query.Executor.
type executor interface {
	Execute(ctx context.Context, md query.Metadata) bool
}

// passDoneMsg is sent when an async aggregation pass completes.
type passDoneMsg struct {
	requestID uint64
	results   *query.ResultSet
}

// debounceMsg fires after the debounce timer expires.
type debounceMsg struct {
	id uint64 // Must match current debounceID to be accepted
}

// initMsg is sent by Init() to trigger the first pass via Update(),
// ensuring state mutations are visible to the Bubble Tea runtime.
type initMsg struct{}

// row is one rendered line: either a category header or a selectable item.
type row struct {
	header   bool
	category query.Category
	item     query.Item
}

// Model is the Bubble Tea model for the quick-search picker.
type Model struct {
	state     pickerState
	input     textinput.Model
	rows      []row
	selection int // Index into rows; always an item row, -1 when none

	requestID  uint64 // Monotonic counter for stale detection
	debounceID uint64

	agg  aggregator
	exec executor
	qctx query.Context

	width  int
	height int

	// selected holds the chosen item after Enter; executed reports
	// whether its effect ran.
	selected query.Item
	executed bool

	// cancelPass cancels the in-flight aggregation context.
	cancelPass context.CancelFunc
}

// NewModel creates a picker over the given engine.
func NewModel(agg aggregator, exec executor, qctx query.Context) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Search bookmarks, tabs, history…"
	input.Focus()

	return Model{
		state:     stateIdle,
		input:     input,
		selection: -1,
		agg:       agg,
		exec:      exec,
		qctx:      qctx,
	}
}

// Result returns the item the user selected and whether its effect ran.
// Both are zero after a cancel.
func (m Model) Result() (query.Item, bool) {
	return m.selected, m.executed
}

// Init implements tea.Model. It sends an initMsg so that the first pass
// is triggered through Update, where state mutations are properly captured.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return initMsg{} })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		return m, nil

	case passDoneMsg:
		return m.handlePassDone(msg)

	case debounceMsg:
		return m.handleDebounce(msg)

	case initMsg:
		return m, m.startPass()
	}

	// Everything else (cursor blink ticks and the like) belongs to the
	// text input.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input. Navigation keys are handled here;
// everything else goes to the text input, and an edit restarts the
// debounce timer.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.state = stateCancelled
		m.cancelInflight()
		return m, tea.Quit

	case tea.KeyEnter:
		if m.selection >= 0 && m.selection < len(m.rows) {
			m.selected = m.rows[m.selection].item
			m.executed = m.exec.Execute(context.Background(), m.selected.Metadata)
		}
		m.cancelInflight()
		return m, tea.Quit

	case tea.KeyUp, tea.KeyCtrlP:
		m.moveSelection(-1)
		return m, nil

	case tea.KeyDown, tea.KeyCtrlN:
		m.moveSelection(1)
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		return m, tea.Batch(cmd, m.startDebounce())
	}
	return m, cmd
}

// handlePassDone installs the results of an aggregation pass.
func (m Model) handlePassDone(msg passDoneMsg) (tea.Model, tea.Cmd) {
	// Discard stale responses.
	if msg.requestID != m.requestID {
		return m, nil
	}

	m.rows = buildRows(msg.results)
	if len(m.rows) == 0 {
		m.state = stateEmpty
		m.selection = -1
		return m, nil
	}

	m.state = stateLoaded
	m.selection = firstItemRow(m.rows)
	return m, nil
}

// handleDebounce fires the pass if the debounce timer is still current.
func (m Model) handleDebounce(msg debounceMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.debounceID {
		return m, nil // Stale debounce timer; ignore.
	}
	return m, m.startPass()
}

// startDebounce increments the debounce counter and returns a tea.Tick
// command that fires after debounceInterval.
func (m *Model) startDebounce() tea.Cmd {
	m.debounceID++
	id := m.debounceID
	return tea.Tick(debounceInterval, func(time.Time) tea.Msg {
		return debounceMsg{id: id}
	})
}

// startPass cancels any in-flight pass, increments requestID, and returns
// a tea.Cmd that runs the aggregator.
func (m *Model) startPass() tea.Cmd {
	m.cancelInflight()
	m.requestID++
	if m.state != stateLoaded {
		m.state = stateLoading
	}

	reqID := m.requestID
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelPass = cancel

	agg := m.agg
	qctx := m.qctx
	rawQuery := m.input.Value()
	return func() tea.Msg {
		results := agg.Aggregate(ctx, rawQuery, qctx)
		return passDoneMsg{requestID: reqID, results: results}
	}
}

// cancelInflight cancels any in-progress aggregation context.
func (m *Model) cancelInflight() {
	if m.cancelPass != nil {
		m.cancelPass()
		m.cancelPass = nil
	}
}

// moveSelection steps the selection over item rows, skipping headers.
func (m *Model) moveSelection(dir int) {
	if m.selection < 0 {
		return
	}
	for i := m.selection + dir; i >= 0 && i < len(m.rows); i += dir {
		if !m.rows[i].header {
			m.selection = i
			return
		}
	}
}

// buildRows flattens a result set into header and item rows.
func buildRows(rs *query.ResultSet) []row {
	if rs == nil {
		return nil
	}
	var rows []row
	for _, g := range rs.Groups {
		rows = append(rows, row{header: true, category: g.Category})
		for _, item := range g.Items {
			rows = append(rows, row{category: g.Category, item: item})
		}
	}
	return rows
}

// firstItemRow returns the index of the first non-header row, or -1.
func firstItemRow(rows []row) int {
	for i, r := range rows {
		if !r.header {
			return i
		}
	}
	return -1
}

// listHeight returns the number of visible list rows (terminal height
// minus the input line and status line).
func (m Model) listHeight() int {
	const chrome = 2
	h := m.height - chrome
	if h < 1 {
		h = 20 // Sensible default before first WindowSizeMsg
	}
	return h
}

// visibleWindow returns the slice of rows to render so the selection
// stays on screen.
func (m Model) visibleWindow() []row {
	max := m.listHeight()
	if len(m.rows) <= max {
		return m.rows
	}
	start := 0
	if m.selection >= max {
		start = m.selection - max + 1
	}
	end := start + max
	if end > len(m.rows) {
		end = len(m.rows)
	}
	return m.rows[start:end]
}

func (m Model) selectionOffset() int {
	max := m.listHeight()
	if m.selection < max {
		return m.selection
	}
	return max - 1
}

func queryIsEmpty(raw string) bool {
	return strings.TrimSpace(raw) == ""
}
