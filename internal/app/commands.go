// internal/app/commands.go
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/keyboard"
	"github.com/llehouerou/notedeck/internal/notes"
)

// statusTTL is how long a status message stays on screen.
const statusTTL = 4 * time.Second

// requestTimeout bounds each backend call started by the window.
const requestTimeout = 15 * time.Second

// waitForChannel creates a command that waits for a value from a channel.
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// waitForTriggered listens for actions queued by global handlers.
func (m Model) waitForTriggered() tea.Cmd {
	return waitForChannel(m.triggered, func(a triggeredAction, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return triggeredActionMsg(a)
	})
}

// enqueue returns the global handler of an action: it hands the action to
// Update, which owns the panes and the bus.
func (m Model) enqueue(a triggeredAction) keyboard.Handler {
	return func(ctx context.Context) error {
		select {
		case m.triggered <- a:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// triggerActionCmd runs the global handler of name.
func (m Model) triggerActionCmd(name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := m.registry.TriggerAction(ctx, name); err != nil {
			return ActionFailedMsg{Name: name, Err: err}
		}
		return nil
	}
}

// fetchHelpCmd fetches the action catalog for the help popup.
func (m Model) fetchHelpCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		actions, err := m.registry.Actions(ctx)
		return HelpReadyMsg{Actions: actions, Err: err}
	}
}

// restoreSessionCmd reads the navigation state saved by the previous run.
func (m Model) restoreSessionCmd() tea.Cmd {
	if m.StateMgr == nil {
		return func() tea.Msg { return SessionRestoredMsg{} }
	}
	mgr := m.StateMgr
	return func() tea.Msg {
		st, err := mgr.GetNavigation()
		return SessionRestoredMsg{State: st, Err: err}
	}
}

// loadChildrenCmd fetches the children of every id concurrently.
func (m Model) loadChildrenCmd(ids ...string) tea.Cmd {
	if len(ids) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(ids))
	for _, id := range ids {
		cmds = append(cmds, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			items, err := m.backend.Children(ctx, id)
			return ChildrenLoadedMsg{ParentID: id, Items: items, Err: err}
		})
	}
	return tea.Batch(cmds...)
}

// loadNoteCmd fetches the note at the end of path and its content.
func (m Model) loadNoteCmd(path string) tea.Cmd {
	id := notes.NoteIDFromPath(path)
	if id == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		n, err := m.backend.Note(ctx, id)
		if err != nil {
			return NoteLoadedMsg{Path: path, Err: err}
		}
		content, err := m.backend.Content(ctx, id)
		return NoteLoadedMsg{Path: path, Note: n, Content: content, Err: err}
	}
}

// createNoteCmd creates a note titled title under the note parentPath ends on.
func (m Model) createNoteCmd(parentPath, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		parentID := notes.NoteIDFromPath(parentPath)
		n, _, err := m.backend.CreateNote(ctx, parentID, title)
		if err != nil {
			return NoteCreatedMsg{Err: err}
		}
		return NoteCreatedMsg{Path: parentPath + notes.PathSeparator + n.ID}
	}
}

// resolvePathCmd asks the backend for the canonical path of noteID.
func (m Model) resolvePathCmd(noteID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		path, err := m.backend.NotePath(ctx, noteID)
		return NavigateMsg{Path: path, Err: err}
	}
}

// reportCmd mirrors a status message as a desktop notification.
func (m Model) reportCmd(text string) tea.Cmd {
	if m.reporter == nil {
		return nil
	}
	r, logger := m.reporter, m.logger
	return func() tea.Msg {
		if err := r.Report("notedeck", text); err != nil {
			logger.Debug("notification failed", "error", err)
		}
		return nil
	}
}

// statusExpiryCmd clears status message seq after statusTTL.
func statusExpiryCmd(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return StatusExpiredMsg{Seq: seq}
	})
}

// noteNavigator opens notes bound to keyboard shortcuts.
type noteNavigator struct {
	m Model
}

// SetNote implements keyboard.NoteNavigator.
func (n noteNavigator) SetNote(noteID string) tea.Cmd {
	return n.m.resolvePathCmd(noteID)
}
