// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"fmt"

	"github.com/llehouerou/notedeck/internal/dialog"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Tree and note operations
	OpTreeLoad   Op = "load note tree"
	OpNoteLoad   Op = "load note"
	OpNoteCreate Op = "create note"
	OpNoteCopy   Op = "copy note content"

	// Keyboard
	OpShortcutsLoad Op = "load keyboard shortcuts"
	OpActionRun     Op = "run action"

	// Dialogs
	OpJumpToNote     Op = "jump to note"
	OpRecentChanges  Op = "show recent changes"
	OpAttributes     Op = "show attributes"
	OpNoteInfo       Op = "show note info"
	OpNoteRevisions  Op = "show note revisions"
	OpNoteSource     Op = "show note source"
	OpLinkMap        Op = "show link map"
	OpMarkdownImport Op = "import markdown"
	OpBranchPrefix   Op = "edit branch prefix"
	OpCloneNotes     Op = "clone notes"
	OpMoveNotes      Op = "move notes"

	// Session
	OpSessionRestore Op = "restore session"

	// Initialization
	OpInitialize Op = "initialize application"
)

var commandOps = map[dialog.Command]Op{
	dialog.JumpToNote:            OpJumpToNote,
	dialog.ShowRecentChanges:     OpRecentChanges,
	dialog.ShowAttributes:        OpAttributes,
	dialog.ShowNoteInfo:          OpNoteInfo,
	dialog.ShowNoteRevisions:     OpNoteRevisions,
	dialog.ShowNoteSource:        OpNoteSource,
	dialog.ShowLinkMap:           OpLinkMap,
	dialog.PasteMarkdownIntoText: OpMarkdownImport,
	dialog.EditBranchPrefix:      OpBranchPrefix,
	dialog.CloneNoteIDsTo:        OpCloneNotes,
	dialog.MoveBranchIDsTo:       OpMoveNotes,
}

// ForCommand returns the operation a dialog command performs.
func ForCommand(cmd dialog.Command) Op {
	if op, ok := commandOps[cmd]; ok {
		return op
	}
	return Op("run " + cmd.String())
}

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
