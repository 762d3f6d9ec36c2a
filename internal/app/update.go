// internal/app/update.go
package app

import (
	"context"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/app/popupctl"
	"github.com/llehouerou/notedeck/internal/dialog"
	"github.com/llehouerou/notedeck/internal/dialogs"
	"github.com/llehouerou/notedeck/internal/errmsg"
	"github.com/llehouerou/notedeck/internal/events"
	"github.com/llehouerou/notedeck/internal/notes"
	"github.com/llehouerou/notedeck/internal/ui/action"
	"github.com/llehouerou/notedeck/internal/ui/helpbindings"
	"github.com/llehouerou/notedeck/internal/ui/listview"
	"github.com/llehouerou/notedeck/internal/ui/mdpaste"
	"github.com/llehouerou/notedeck/internal/ui/notepicker"
	"github.com/llehouerou/notedeck/internal/ui/popup"
	"github.com/llehouerou/notedeck/internal/ui/textinput"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ResizeComponents()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)

	case events.TriggeredMsg:
		return m, m.bus.Deliver(msg)

	case triggeredActionMsg:
		cmd := m.dispatchAction(triggeredAction(msg))
		return m, tea.Batch(cmd, m.syncActive(), m.waitForTriggered())

	case BindingsReadyMsg:
		return m, m.handleBindingsReady(msg)

	case SessionRestoredMsg:
		return m, m.handleSessionRestored(msg)

	case ChildrenLoadedMsg:
		return m, m.handleChildrenLoaded(msg)

	case NoteLoadedMsg:
		if m.Detail.SetNote(msg) && msg.Err != nil {
			m.logger.Warn("note load failed", "path", msg.Path, "error", msg.Err)
		}
		return m, nil

	case NavigateMsg:
		if msg.Err != nil {
			m.Popups.ShowError(errmsg.Format(errmsg.OpNoteLoad, msg.Err))
			return m, nil
		}
		return m, m.navigate(msg.Path)

	case NoteCreatedMsg:
		if msg.Err != nil {
			m.Popups.ShowError(errmsg.Format(errmsg.OpNoteCreate, msg.Err))
			return m, nil
		}
		return m, tea.Batch(m.refreshTree(msg.Path), m.setStatus("Note created"))

	case reloadTreeMsg:
		return m, tea.Batch(m.refreshTree(""), m.setStatus("Tree reloaded"))

	case HelpReadyMsg:
		return m, m.handleHelpReady(msg)

	case ActionFailedMsg:
		m.Popups.ShowError(errmsg.FormatWith(errmsg.OpActionRun, msg.Name, msg.Err))
		return m, nil

	case ContentCopiedMsg:
		if msg.Err != nil {
			m.Popups.ShowError(errmsg.Format(errmsg.OpNoteCopy, msg.Err))
			return m, nil
		}
		return m, m.setStatus("Note content copied")

	case StatusExpiredMsg:
		if msg.Seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case dialog.FailedMsg:
		m.logger.Error("dialog command failed", "command", msg.Command.String(), "error", msg.Err)
		m.Popups.ShowError(errmsg.Format(errmsg.ForCommand(msg.Command), msg.Err))
		return m, nil

	case popup.OpenMsg:
		return m, m.Popups.Show(popupctl.Dialog, msg.Popup, msg.Size)

	case popup.CloseMsg:
		m.Popups.Hide(popupctl.Dialog)
		return m, nil

	case action.Msg:
		return m, m.handleAction(msg)
	}

	return m, m.Popups.Update(msg)
}

// handleAction routes results reported by popups and dialog modules.
func (m *Model) handleAction(msg action.Msg) tea.Cmd {
	switch a := msg.Action.(type) {
	case helpbindings.Close:
		m.Popups.Hide(popupctl.Help)
		return nil

	case helpbindings.Trigger:
		m.Popups.Hide(popupctl.Help)
		return m.triggerActionCmd(a.Name)

	case dialogs.Navigate:
		if a.Path == "" {
			return m.resolvePathCmd(a.NoteID)
		}
		return m.navigate(a.Path)

	case dialogs.Changed:
		return m.handleChanged(a)

	case notepicker.Result, listview.Result, mdpaste.Result:
		m.Popups.Hide(popupctl.Dialog)

	case textinput.Result:
		m.Popups.Hide(popupctl.Dialog)
		if req, ok := a.Context.(newNoteRequest); ok {
			title := strings.TrimSpace(a.Text)
			if a.Canceled || title == "" {
				return nil
			}
			return m.createNoteCmd(req.parentPath, title)
		}
	}

	if cmd, ok := dialogs.Resume(msg); ok {
		return cmd
	}
	m.logger.Debug("unhandled action", "source", msg.Source, "type", msg.Action.ActionType())
	return nil
}

// handleChanged reloads what a completed dialog modified.
func (m *Model) handleChanged(a dialogs.Changed) tea.Cmd {
	cmds := []tea.Cmd{
		m.refreshTree(""),
		m.setStatus(a.Message),
		m.reportCmd(a.Message),
	}
	if a.NoteID != "" && a.NoteID == notes.NoteIDFromPath(m.Detail.Path()) {
		path := m.Detail.Path()
		m.Detail.SetLoading(path)
		cmds = append(cmds, m.loadNoteCmd(path))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleBindingsReady(msg BindingsReadyMsg) tea.Cmd {
	if msg.Err != nil {
		m.logger.Error("keyboard bindings incomplete", "error", msg.Err)
		m.Popups.ShowError(errmsg.Format(errmsg.OpShortcutsLoad, msg.Err))
	}
	// The catalog is loaded once bindings ran, so this never blocks.
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err := m.registry.UpdateDisplayedShortcuts(ctx, m.Header); err != nil {
		m.logger.Debug("header shortcuts not updated", "error", err)
	}
	m.logger.Debug("keyboard bindings ready",
		"global", m.global.Len(), "tree", m.Tree.table.Len(), "detail", m.Detail.table.Len())
	return nil
}

func (m *Model) handleHelpReady(msg HelpReadyMsg) tea.Cmd {
	if msg.Err != nil {
		m.Popups.ShowError(errmsg.Format(errmsg.OpShortcutsLoad, msg.Err))
		return nil
	}
	if m.Popups.IsVisible(popupctl.Help) {
		m.Popups.Hide(popupctl.Help)
		return nil
	}

	help := helpbindings.New()
	help.SetActions(msg.Actions)
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err := m.registry.UpdateDisplayedShortcuts(ctx, &help); err != nil {
		m.logger.Debug("help shortcuts not updated", "error", err)
	}
	return m.Popups.Show(popupctl.Help, &help, popup.SizeAuto)
}

func (m *Model) handleChildrenLoaded(msg ChildrenLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		m.logger.Error("children load failed", "note", msg.ParentID, "error", msg.Err)
		m.Popups.ShowError(errmsg.FormatWith(errmsg.OpTreeLoad, msg.ParentID, msg.Err))
		return nil
	}
	next := m.Tree.SetChildren(msg.ParentID, msg.Items)
	return tea.Batch(m.loadChildrenCmd(next...), m.syncActive())
}

// navigate reveals path in the tree; the note loads once it is selected.
func (m *Model) navigate(path string) tea.Cmd {
	load := m.Tree.Reveal(path)
	return tea.Batch(m.loadChildrenCmd(load...), m.syncActive())
}

// refreshTree refetches every expanded node, then reveals path when set.
func (m *Model) refreshTree(path string) tea.Cmd {
	load := m.Tree.Invalidate()
	if path != "" {
		load = appendMissing(load, m.Tree.Reveal(path)...)
	}
	return m.loadChildrenCmd(load...)
}

// syncActive follows the tree cursor: the note under it becomes the active
// note, is shown in the detail pane and saved.
func (m *Model) syncActive() tea.Cmd {
	path := m.Tree.ActivePath()
	if path == m.session.ActiveNotePath() {
		return nil
	}
	m.session.setActiveNotePath(path)
	m.Detail.SetLoading(path)
	m.SaveNavigationState()
	return m.loadNoteCmd(path)
}

// setStatus shows text in the status line until it expires.
func (m *Model) setStatus(text string) tea.Cmd {
	if text == "" {
		return nil
	}
	m.statusSeq++
	m.status = text
	return statusExpiryCmd(m.statusSeq)
}

func appendMissing(ids []string, more ...string) []string {
	for _, id := range more {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}
