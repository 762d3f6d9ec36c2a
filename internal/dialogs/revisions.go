package dialogs

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/notedeck/internal/dialog"
	"github.com/llehouerou/notedeck/internal/ui/action"
	"github.com/llehouerou/notedeck/internal/ui/listview"
	"github.com/llehouerou/notedeck/internal/ui/popup"
	"github.com/llehouerou/notedeck/internal/ui/textview"
)

// NoteRevisions lists the saved revisions of the active note; picking one
// shows its content.
type NoteRevisions struct {
	api API
	env dialog.Env
}

// ShowCurrentNoteRevisions implements dialog.RevisionsShower.
func (d *NoteRevisions) ShowCurrentNoteRevisions(ctx context.Context) (tea.Msg, error) {
	noteID, err := activeNoteID(d.env)
	if err != nil {
		return nil, err
	}
	revs, err := d.api.Revisions(ctx, noteID)
	if err != nil {
		return nil, err
	}

	items := make([]listview.Item, len(revs))
	for i, r := range revs {
		items[i] = listview.Item{
			Title:  r.Title,
			Detail: r.Created.Local().Format("2006-01-02 15:04") + " · " + humanize.Time(r.Created),
			Value:  r.ID,
		}
	}

	f := &followup{command: dialog.ShowNoteRevisions, run: func(ctx context.Context, a action.Action) (tea.Msg, error) {
		revID, _ := a.(listview.Result).Item.Value.(string)
		rev, err := d.api.Revision(ctx, revID)
		if err != nil {
			return nil, err
		}
		title := "Revision of " + rev.Title + " (" + humanize.Time(rev.Created) + ")"
		return popup.OpenMsg{Popup: textview.New(title, rev.Content), Size: popup.SizeLarge}, nil
	}}

	lv := listview.New("Note revisions", items, f)
	lv.SetEmptyText("No revisions yet")
	return popup.OpenMsg{Popup: lv, Size: popup.SizeMedium}, nil
}
