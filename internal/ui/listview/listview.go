// Package listview provides a popup listing rows the user can pick from.
package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/ui"
	"github.com/llehouerou/notedeck/internal/ui/list"
	"github.com/llehouerou/notedeck/internal/ui/popup"
	"github.com/llehouerou/notedeck/internal/ui/render"
	"github.com/llehouerou/notedeck/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// title, blank, blank, hint
const overhead = 4

// Item is one row. Detail is right-aligned. Value is left to the caller.
type Item struct {
	Title  string
	Detail string
	Value  any
}

// Model is a scrollable list popup. Items with a nil Value are shown but
// enter on them does nothing.
type Model struct {
	ui.Base
	title   string
	empty   string
	list    list.Model[Item]
	context any
}

// New creates a list popup.
func New(title string, items []Item, context any) *Model {
	m := &Model{
		title:   title,
		empty:   "Nothing to show",
		list:    list.New[Item](ui.ScrollMargin, overhead),
		context: context,
	}
	m.list.SetItems(items)
	return m
}

// SetEmptyText sets the line shown when there are no items.
func (m *Model) SetEmptyText(s string) {
	m.empty = s
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.list.SetSize(width, height)
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "q":
		ctx := m.context
		return m, func() tea.Msg {
			return ActionMsg(Result{Index: -1, Context: ctx, Canceled: true})
		}
	}

	r := m.list.Update(keyMsg)
	if r.Action != list.ActionEnter {
		return m, nil
	}
	item := m.list.Items()[r.Index]
	if item.Value == nil {
		return m, nil
	}
	ctx := m.context
	return m, func() tea.Msg {
		return ActionMsg(Result{Index: r.Index, Item: item, Context: ctx})
	}
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	s := styles.T().S()
	width := max(m.Width()-6, 10)

	var sb strings.Builder
	sb.WriteString(s.Title.Render(m.title))
	sb.WriteString("\n\n")

	if m.list.Len() == 0 {
		sb.WriteString(s.Muted.Render(m.empty))
	}

	items := m.list.Items()
	start, end := m.list.VisibleRange()
	for i := start; i < end; i++ {
		it := items[i]
		detailWidth := min(len([]rune(it.Detail)), width/2)
		titleWidth := width - detailWidth - 1
		row := render.Row(render.TruncateAndPad(it.Title, titleWidth), s.Muted.Render(render.Truncate(it.Detail, detailWidth)), width)
		if i == m.list.SelectedIndex() {
			row = s.Cursor.Render(row)
		}
		sb.WriteString(row)
		if i < end-1 {
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n\n")
	sb.WriteString(s.Subtle.Render("↑↓ navigate · enter open · esc close"))
	return sb.String()
}
