// internal/app/panes.go
package app

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/notedeck/internal/dialog"
	"github.com/llehouerou/notedeck/internal/events"
	"github.com/llehouerou/notedeck/internal/keybind"
	"github.com/llehouerou/notedeck/internal/keyboard"
	"github.com/llehouerou/notedeck/internal/notes"
	"github.com/llehouerou/notedeck/internal/ui"
	"github.com/llehouerou/notedeck/internal/ui/notetree"
	"github.com/llehouerou/notedeck/internal/ui/popup"
	"github.com/llehouerou/notedeck/internal/ui/render"
	"github.com/llehouerou/notedeck/internal/ui/styles"
	"github.com/llehouerou/notedeck/internal/ui/textinput"
)

var (
	_ keyboard.CommandTrigger = (*treePane)(nil)
	_ keyboard.CommandTrigger = (*detailPane)(nil)
)

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// treePane is the note tree element. Its table holds the note-tree shortcuts.
type treePane struct {
	notetree.Model
	table *keybind.Table
	bus   *events.Bus
}

func newTreePane(bus *events.Bus) *treePane {
	return &treePane{
		Model: notetree.New(),
		table: keybind.NewTable(),
		bus:   bus,
	}
}

// TriggerCommand runs a note-tree action on the UI goroutine.
func (p *treePane) TriggerCommand(name string) tea.Cmd {
	switch name {
	case actionCreateNoteInto:
		parent := p.ActivePath()
		if parent == "" {
			parent = notes.RootID
		}
		return openNewNoteInput(parent, "New child note")
	case actionAddNoteAboveToSelection:
		p.ExtendSelection(-1)
	case actionAddNoteBelowToSelection:
		p.ExtendSelection(1)
	case actionClearSelection:
		p.ClearSelection()
	case actionCollapseTree:
		p.CollapseAll()
	case actionCloneNotesTo:
		ids := p.SelectedNoteIDs()
		if len(ids) == 0 {
			return nil
		}
		return p.bus.Trigger(dialog.CloneNoteIDsTo.String(), dialog.Params{NoteIDs: ids}.Event())
	case actionMoveNotesTo:
		ids := p.SelectedBranchIDs()
		if len(ids) == 0 {
			return nil
		}
		return p.bus.Trigger(dialog.MoveBranchIDsTo.String(), dialog.Params{BranchIDs: ids}.Event())
	}
	return nil
}

// openNewNoteInput asks for the title of a note created under parentPath.
func openNewNoteInput(parentPath, title string) tea.Cmd {
	return func() tea.Msg {
		ti := textinput.New()
		ti.Start(title, "", newNoteRequest{parentPath: parentPath}, 0, 0)
		ti.SetPlaceholder("title")
		return popup.OpenMsg{Popup: &ti, Size: popup.SizeAuto}
	}
}

// detailPane shows the active note. Its table holds the text-detail shortcuts.
type detailPane struct {
	ui.Base
	viewport viewport.Model
	path     string
	note     notes.Note
	content  string
	loading  bool
	err      error
	table    *keybind.Table
	bus      *events.Bus
}

func newDetailPane(bus *events.Bus) *detailPane {
	return &detailPane{
		viewport: viewport.New(0, 0),
		table:    keybind.NewTable(),
		bus:      bus,
	}
}

// SetSize sets the pane dimensions, border included.
func (p *detailPane) SetSize(width, height int) {
	p.Base.SetSize(width, height)
	p.viewport.Width = max(width-2, 1)
	p.viewport.Height = max(height-ui.PanelOverhead, 1)
}

// SetLoading clears the pane while path loads.
func (p *detailPane) SetLoading(path string) {
	p.path = path
	p.note = notes.Note{}
	p.content = ""
	p.err = nil
	p.loading = path != ""
	p.viewport.SetContent("")
	p.viewport.GotoTop()
}

// SetNote shows a loaded note. Results for another path are ignored.
func (p *detailPane) SetNote(msg NoteLoadedMsg) bool {
	if msg.Path != p.path {
		return false
	}
	p.loading = false
	p.err = msg.Err
	p.note = msg.Note
	p.content = msg.Content
	p.viewport.SetContent(strings.Join(render.Lines(msg.Content), "\n"))
	return true
}

// Path returns the note path the pane shows.
func (p *detailPane) Path() string {
	return p.path
}

// Content returns the raw content of the shown note.
func (p *detailPane) Content() string {
	return p.content
}

// TriggerCommand runs a text-detail action on the UI goroutine.
func (p *detailPane) TriggerCommand(name string) tea.Cmd {
	switch name {
	case actionScrollToTop:
		p.viewport.GotoTop()
	case actionScrollToBottom:
		p.viewport.GotoBottom()
	case actionCopyNoteContent:
		return p.copyContent()
	case actionPasteMarkdownIntoText:
		return p.bus.Trigger(dialog.PasteMarkdownIntoText.String(), nil)
	}
	return nil
}

func (p *detailPane) copyContent() tea.Cmd {
	if p.path == "" || p.loading {
		return nil
	}
	text := p.content
	return func() tea.Msg {
		return ContentCopiedMsg{Err: writeClipboard(text)}
	}
}

// Update scrolls the viewport.
func (p *detailPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// View renders the pane inside a bordered panel.
func (p *detailPane) View() string {
	width, height := p.Size()
	if width < 4 || height < 3 {
		return ""
	}
	s := styles.T().S()
	inner := width - 2

	var title, meta, body string
	switch {
	case p.path == "":
		title = "No note"
		body = s.Muted.Render("Select a note in the tree")
	case p.loading:
		title = "Loading..."
	case p.err != nil:
		title = "Error"
		body = s.Error.Render(p.err.Error())
	default:
		title = p.note.Title
		meta = p.note.Type + " · modified " + humanize.Time(p.note.Modified)
		body = p.viewport.View()
	}

	title = render.Truncate(title, max(inner-lipgloss.Width(meta)-1, 1))
	header := render.Row(s.Header.Render(title), s.Subtle.Render(meta), inner)
	content := header + "\n" + s.Subtle.Render(render.Separator(inner)) + "\n" + body

	return styles.PanelStyle(p.IsFocused()).
		Width(inner).
		Height(height - ui.BorderHeight).
		Render(content)
}
