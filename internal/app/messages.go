// internal/app/messages.go
package app

import (
	"github.com/llehouerou/notedeck/internal/keyboard"
	"github.com/llehouerou/notedeck/internal/notes"
	"github.com/llehouerou/notedeck/internal/state"
)

// Window actions handled by the app itself rather than a dialog module.
const (
	actionShowHelp            = "showHelp"
	actionReloadTree          = "reloadTree"
	actionCreateNoteIntoInbox = "createNoteIntoInbox"
)

// Note tree actions.
const (
	actionCreateNoteInto          = "createNoteInto"
	actionAddNoteAboveToSelection = "addNoteAboveToSelection"
	actionAddNoteBelowToSelection = "addNoteBelowToSelection"
	actionClearSelection          = "clearSelection"
	actionCollapseTree            = "collapseTree"
	actionCloneNotesTo            = "cloneNotesTo"
	actionMoveNotesTo             = "moveNotesTo"
)

// Note text actions.
const (
	actionPasteMarkdownIntoText = "pasteMarkdownIntoText"
	actionScrollToTop           = "scrollToTop"
	actionScrollToBottom        = "scrollToBottom"
	actionCopyNoteContent       = "copyNoteContent"
)

// BindingsReadyMsg reports that shortcuts were bound to the window and panes.
type BindingsReadyMsg struct {
	Err error
}

// SessionRestoredMsg carries the navigation state saved by the previous run.
type SessionRestoredMsg struct {
	State *state.NavigationState
	Err   error
}

// ChildrenLoadedMsg carries the children of a tree node.
type ChildrenLoadedMsg struct {
	ParentID string
	Items    []notes.TreeItem
	Err      error
}

// NoteLoadedMsg carries the note shown in the detail pane.
type NoteLoadedMsg struct {
	Path    string
	Note    notes.Note
	Content string
	Err     error
}

// NavigateMsg asks the window to reveal and show a note path.
type NavigateMsg struct {
	Path string
	Err  error
}

// NoteCreatedMsg reports a note created from the new note input.
type NoteCreatedMsg struct {
	Path string
	Err  error
}

// HelpReadyMsg carries the action catalog for the help popup.
type HelpReadyMsg struct {
	Actions []keyboard.Action
	Err     error
}

// ActionFailedMsg reports a failed TriggerAction run.
type ActionFailedMsg struct {
	Name string
	Err  error
}

// ContentCopiedMsg reports the copy of the active note content.
type ContentCopiedMsg struct {
	Err error
}

// StatusExpiredMsg clears the status line unless a newer message replaced it.
type StatusExpiredMsg struct {
	Seq int
}

// triggeredAction is an action queued by a global handler.
type triggeredAction struct {
	name  string
	scope string
}

// triggeredActionMsg delivers a queued action to Update.
type triggeredActionMsg triggeredAction

type reloadTreeMsg struct{}

// newNoteRequest is the textinput context of the new note popup.
type newNoteRequest struct {
	parentPath string
}
