package dialogs

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/dialog"
	"github.com/llehouerou/notedeck/internal/notes"
	"github.com/llehouerou/notedeck/internal/ui/action"
	"github.com/llehouerou/notedeck/internal/ui/notepicker"
	"github.com/llehouerou/notedeck/internal/ui/popup"
)

// recentPinned is how many recent notes the pickers offer before typing.
const recentPinned = 10

// JumpToNote opens a note picker and navigates to the chosen note.
type JumpToNote struct {
	api API
}

// ShowDialog implements dialog.Shower.
func (j *JumpToNote) ShowDialog(ctx context.Context, _ []string) (tea.Msg, error) {
	pinned, err := recentResults(ctx, j.api)
	if err != nil {
		return nil, err
	}

	f := &followup{command: dialog.JumpToNote, run: func(ctx context.Context, a action.Action) (tea.Msg, error) {
		r := a.(notepicker.Result)
		path := r.Note.Path
		if path == "" {
			p, err := j.api.NotePath(ctx, r.Note.NoteID)
			if err != nil {
				return nil, err
			}
			path = p
		}
		return navigateTo(r.Note.NoteID, path), nil
	}}

	return popup.OpenMsg{
		Popup: notepicker.New("Jump to note", j.api.Search, pinned, f),
		Size:  popup.SizeMedium,
	}, nil
}

// recentResults turns the latest changes into picker entries, one per note.
func recentResults(ctx context.Context, api API) ([]notes.SearchResult, error) {
	changes, err := api.RecentChanges(ctx, recentPinned*2)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []notes.SearchResult
	for _, c := range changes {
		if seen[c.NoteID] {
			continue
		}
		seen[c.NoteID] = true
		out = append(out, notes.SearchResult{NoteID: c.NoteID, Title: c.Title})
		if len(out) == recentPinned {
			break
		}
	}
	return out, nil
}
