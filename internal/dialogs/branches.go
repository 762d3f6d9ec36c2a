package dialogs

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/dialog"
	"github.com/llehouerou/notedeck/internal/notes"
	"github.com/llehouerou/notedeck/internal/ui/action"
	"github.com/llehouerou/notedeck/internal/ui/notepicker"
	"github.com/llehouerou/notedeck/internal/ui/popup"
	"github.com/llehouerou/notedeck/internal/ui/textinput"
)

// BranchPrefix edits the prefix of the branch a note path ends on.
type BranchPrefix struct {
	api API
}

// ShowDialog implements dialog.Shower. args[0] is the note path.
func (d *BranchPrefix) ShowDialog(ctx context.Context, args []string) (tea.Msg, error) {
	if len(args) == 0 {
		return nil, ErrNoActiveNote
	}
	branchID := notes.BranchIDFromPath(args[0])
	if branchID == "" {
		return nil, ErrRootBranch
	}
	b, err := d.api.Branch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	n, err := d.api.Note(ctx, b.NoteID)
	if err != nil {
		return nil, err
	}

	f := &followup{command: dialog.EditBranchPrefix, run: func(ctx context.Context, a action.Action) (tea.Msg, error) {
		if err := d.api.SetBranchPrefix(ctx, branchID, a.(textinput.Result).Text); err != nil {
			return nil, err
		}
		return ActionMsg(Changed{Message: "Branch prefix saved", NoteID: b.NoteID}), nil
	}}

	ti := textinput.New()
	ti.Start("Branch prefix of "+n.Title, b.Prefix, f, 0, 0)
	ti.SetPlaceholder("no prefix")
	return popup.OpenMsg{Popup: &ti, Size: popup.SizeAuto}, nil
}

// CloneTo clones notes under a picked parent.
type CloneTo struct {
	api API
	env dialog.Env
}

// ShowDialog implements dialog.Shower. args are note ids; none means the active note.
func (d *CloneTo) ShowDialog(ctx context.Context, args []string) (tea.Msg, error) {
	noteIDs := args
	if len(noteIDs) == 0 {
		id, err := activeNoteID(d.env)
		if err != nil {
			return nil, err
		}
		noteIDs = []string{id}
	}

	pinned, err := targetResults(ctx, d.api)
	if err != nil {
		return nil, err
	}

	f := &followup{command: dialog.CloneNoteIDsTo, run: func(ctx context.Context, a action.Action) (tea.Msg, error) {
		parent := a.(notepicker.Result).Note
		created, err := d.api.CloneNotes(ctx, noteIDs, parent.NoteID)
		if err != nil {
			return nil, err
		}
		return ActionMsg(Changed{
			Message: fmt.Sprintf("Cloned %d of %d notes to %s", len(created), len(noteIDs), parent.Title),
			NoteID:  parent.NoteID,
		}), nil
	}}

	title := fmt.Sprintf("Clone %s to", plural(len(noteIDs), "note"))
	return popup.OpenMsg{
		Popup: notepicker.New(title, d.api.Search, pinned, f),
		Size:  popup.SizeMedium,
	}, nil
}

// MoveTo moves branches under a picked parent.
type MoveTo struct {
	api API
	env dialog.Env
}

// ShowDialog implements dialog.Shower. args are branch ids; none means the active branch.
func (d *MoveTo) ShowDialog(ctx context.Context, args []string) (tea.Msg, error) {
	branchIDs := args
	if len(branchIDs) == 0 {
		id := notes.BranchIDFromPath(d.env.ActiveNotePath())
		if id == "" {
			return nil, ErrNoActiveNote
		}
		branchIDs = []string{id}
	}

	pinned, err := targetResults(ctx, d.api)
	if err != nil {
		return nil, err
	}

	f := &followup{command: dialog.MoveBranchIDsTo, run: func(ctx context.Context, a action.Action) (tea.Msg, error) {
		parent := a.(notepicker.Result).Note
		moved, err := d.api.MoveBranches(ctx, branchIDs, parent.NoteID)
		if err != nil {
			return nil, err
		}
		return ActionMsg(Changed{
			Message: fmt.Sprintf("Moved %s to %s", plural(len(moved), "note"), parent.Title),
			NoteID:  parent.NoteID,
		}), nil
	}}

	title := fmt.Sprintf("Move %s to", plural(len(branchIDs), "note"))
	return popup.OpenMsg{
		Popup: notepicker.New(title, d.api.Search, pinned, f),
		Size:  popup.SizeMedium,
	}, nil
}

// targetResults offers the root and recent notes as parents.
func targetResults(ctx context.Context, api API) ([]notes.SearchResult, error) {
	recent, err := recentResults(ctx, api)
	if err != nil {
		return nil, err
	}
	root := notes.SearchResult{NoteID: notes.RootID, Title: "(root)", Path: notes.RootID}
	return append([]notes.SearchResult{root}, recent...), nil
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
