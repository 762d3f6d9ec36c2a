package dialogs

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/notedeck/internal/dialog"
	"github.com/llehouerou/notedeck/internal/ui/action"
	"github.com/llehouerou/notedeck/internal/ui/listview"
	"github.com/llehouerou/notedeck/internal/ui/popup"
)

// recentLimit bounds the recent changes list.
const recentLimit = 100

// RecentChanges lists recently created and modified notes.
type RecentChanges struct {
	api API
}

// ShowDialog implements dialog.Shower.
func (r *RecentChanges) ShowDialog(ctx context.Context, _ []string) (tea.Msg, error) {
	changes, err := r.api.RecentChanges(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	items := make([]listview.Item, len(changes))
	for i, c := range changes {
		items[i] = listview.Item{
			Title:  c.Title,
			Detail: c.Kind + " " + humanize.Time(c.Date),
			Value:  c.NoteID,
		}
	}

	f := &followup{command: dialog.ShowRecentChanges, run: navigateToItem(r.api)}
	lv := listview.New("Recent changes", items, f)
	lv.SetEmptyText("No changes yet")
	return popup.OpenMsg{Popup: lv, Size: popup.SizeMedium}, nil
}

// navigateToItem resolves the note id stored in a list item and navigates to it.
func navigateToItem(api API) func(context.Context, action.Action) (tea.Msg, error) {
	return func(ctx context.Context, a action.Action) (tea.Msg, error) {
		noteID, _ := a.(listview.Result).Item.Value.(string)
		path, err := api.NotePath(ctx, noteID)
		if err != nil {
			return nil, err
		}
		return navigateTo(noteID, path), nil
	}
}
