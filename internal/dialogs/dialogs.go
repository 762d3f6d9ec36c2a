// Package dialogs implements the dialog modules the command executor loads.
// Each module fetches what it needs from the API, then opens a popup; the
// popup result is resumed through Resume.
package dialogs

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/dialog"
	"github.com/llehouerou/notedeck/internal/notes"
	"github.com/llehouerou/notedeck/internal/ui/action"
	"github.com/llehouerou/notedeck/internal/ui/listview"
	"github.com/llehouerou/notedeck/internal/ui/mdpaste"
	"github.com/llehouerou/notedeck/internal/ui/notepicker"
	"github.com/llehouerou/notedeck/internal/ui/textinput"
)

// Source is the action.Msg source of dialog outcomes.
const Source = "dialogs"

var (
	// ErrNoActiveNote is returned by dialogs that act on the active note when there is none.
	ErrNoActiveNote = errors.New("no active note")
	// ErrNotTextNote is returned when importing markdown into a non-text note.
	ErrNotTextNote = errors.New("active note is not a text note")
	// ErrRootBranch is returned when editing the prefix of the root note.
	ErrRootBranch = errors.New("the root note has no branch")
)

// API is the backend surface used by the dialogs. *client.Client implements it.
type API interface {
	Note(ctx context.Context, noteID string) (notes.Note, error)
	Content(ctx context.Context, noteID string) (string, error)
	AppendMarkdown(ctx context.Context, noteID, markdown string) error
	NotePath(ctx context.Context, noteID string) (string, error)
	Attributes(ctx context.Context, noteID string) ([]notes.Attribute, error)
	Revisions(ctx context.Context, noteID string) ([]notes.Revision, error)
	Revision(ctx context.Context, revisionID string) (notes.Revision, error)
	LinkMap(ctx context.Context, noteID string) (notes.LinkMap, error)
	RecentChanges(ctx context.Context, limit int) ([]notes.RecentChange, error)
	Search(ctx context.Context, query string) ([]notes.SearchResult, error)
	Branch(ctx context.Context, branchID string) (notes.Branch, error)
	SetBranchPrefix(ctx context.Context, branchID, prefix string) error
	CloneNotes(ctx context.Context, noteIDs []string, parentID string) ([]notes.Branch, error)
	MoveBranches(ctx context.Context, branchIDs []string, parentID string) ([]notes.Branch, error)
}

// Navigate asks the app to show a note. Path may be empty; the app resolves it.
type Navigate struct {
	NoteID string
	Path   string
}

// ActionType implements action.Action.
func (Navigate) ActionType() string { return "dialogs.navigate" }

// Changed reports a completed modification. The app reloads the tree and
// shows Message.
type Changed struct {
	Message string
	NoteID  string
}

// ActionType implements action.Action.
func (Changed) ActionType() string { return "dialogs.changed" }

// ActionMsg wraps a dialog outcome.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: Source, Action: a}
}

// followup continues a dialog once its popup reports a result.
type followup struct {
	command dialog.Command
	run     func(ctx context.Context, result action.Action) (tea.Msg, error)
}

// Resume continues the dialog that opened the popup reporting msg.
// ok is false when msg is not a dialog popup result. Canceled popups
// resume with a nil command.
func Resume(msg action.Msg) (cmd tea.Cmd, ok bool) {
	var (
		passed   any
		canceled bool
	)
	switch r := msg.Action.(type) {
	case notepicker.Result:
		passed, canceled = r.Context, r.Canceled
	case listview.Result:
		passed, canceled = r.Context, r.Canceled
	case textinput.Result:
		passed, canceled = r.Context, r.Canceled
	case mdpaste.Result:
		passed, canceled = r.Context, r.Canceled
	default:
		return nil, false
	}

	f, isDialog := passed.(*followup)
	if !isDialog {
		return nil, false
	}
	if canceled {
		return nil, true
	}

	result := msg.Action
	return func() tea.Msg {
		out, err := f.run(context.Background(), result)
		if err != nil {
			return dialog.FailedMsg{Command: f.command, Err: err}
		}
		return out
	}, true
}

func activeNoteID(env dialog.Env) (string, error) {
	id := notes.NoteIDFromPath(env.ActiveNotePath())
	if id == "" {
		return "", ErrNoActiveNote
	}
	return id, nil
}

func navigateTo(noteID, path string) tea.Msg {
	return ActionMsg(Navigate{NoteID: noteID, Path: path})
}
