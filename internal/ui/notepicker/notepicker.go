// Package notepicker provides a search-as-you-type popup for choosing a note.
package notepicker

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/notes"
	"github.com/llehouerou/notedeck/internal/ui"
	"github.com/llehouerou/notedeck/internal/ui/list"
	"github.com/llehouerou/notedeck/internal/ui/popup"
)

var _ popup.Popup = (*Model)(nil)

// DefaultDebounce is the pause after the last keystroke before searching.
const DefaultDebounce = 150 * time.Millisecond

// title, blank, input, separator, blank, hint
const overhead = 6

// Func searches notes. It runs off the UI goroutine.
type Func func(ctx context.Context, query string) ([]notes.SearchResult, error)

type debounceMsg struct {
	seq int
}

type resultsMsg struct {
	seq     int
	query   string
	results []notes.SearchResult
	err     error
}

// Model is the note picker popup.
type Model struct {
	ui.Base
	title    string
	input    textinput.Model
	search   Func
	pinned   []notes.SearchResult
	results  []notes.SearchResult
	list     list.Model[notes.SearchResult]
	seq      int
	loading  bool
	err      error
	context  any
	debounce time.Duration
}

// New creates a picker. pinned results are offered while the query is empty.
func New(title string, search Func, pinned []notes.SearchResult, context any) *Model {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "search notes"
	in.Cursor.SetMode(cursor.CursorStatic)
	in.Focus()

	m := &Model{
		title:    title,
		input:    in,
		search:   search,
		pinned:   pinned,
		list:     list.New[notes.SearchResult](ui.ScrollMargin, overhead),
		context:  context,
		debounce: DefaultDebounce,
	}
	m.list.SetItems(pinned)
	return m
}

// SetDebounce changes the search delay. Zero searches on every keystroke.
func (m *Model) SetDebounce(d time.Duration) {
	m.debounce = d
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.list.SetSize(width, height)
	m.input.Width = max(width-8, 10)
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Query returns the current search text.
func (m *Model) Query() string {
	return m.input.Value()
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m, m.runSearch()

	case resultsMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.setResults(msg.query, msg.results)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (popup.Popup, tea.Cmd) {
	switch msg.String() {
	case "esc":
		ctx := m.context
		return m, func() tea.Msg {
			return ActionMsg(Result{Context: ctx, Canceled: true})
		}
	case "enter":
		sel, ok := m.list.Selected()
		if !ok {
			return m, nil
		}
		ctx := m.context
		return m, func() tea.Msg {
			return ActionMsg(Result{Note: sel, Context: ctx})
		}
	case "up", "ctrl+p":
		m.list.Update(tea.KeyMsg{Type: tea.KeyUp})
		return m, nil
	case "down", "ctrl+n":
		m.list.Update(tea.KeyMsg{Type: tea.KeyDown})
		return m, nil
	case "pgup":
		m.list.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
		return m, nil
	case "pgdown":
		m.list.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.queryChanged())
}

func (m *Model) queryChanged() tea.Cmd {
	m.seq++
	if strings.TrimSpace(m.input.Value()) == "" {
		m.loading = false
		m.err = nil
		m.results = nil
		m.list.SetItems(m.pinned)
		return nil
	}
	m.loading = true
	if m.debounce <= 0 {
		return m.runSearch()
	}
	seq := m.seq
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

func (m *Model) runSearch() tea.Cmd {
	seq, query, search := m.seq, m.input.Value(), m.search
	return func() tea.Msg {
		results, err := search(context.Background(), query)
		return resultsMsg{seq: seq, query: query, results: results, err: err}
	}
}

func (m *Model) setResults(query string, results []notes.SearchResult) {
	matches := NewMatcher(results).Rank(query)
	ranked := make([]notes.SearchResult, 0, len(matches))
	for _, mt := range matches {
		ranked = append(ranked, results[mt.Index])
	}
	m.results = ranked
	m.list.SetItems(ranked)
	m.list.Select(0)
}
