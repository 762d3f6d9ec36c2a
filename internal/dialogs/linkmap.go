package dialogs

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/dialog"
	"github.com/llehouerou/notedeck/internal/ui/listview"
	"github.com/llehouerou/notedeck/internal/ui/popup"
)

// LinkMap lists the relations into and out of the active note.
type LinkMap struct {
	api API
	env dialog.Env
}

// ShowDialog implements dialog.Shower.
func (d *LinkMap) ShowDialog(ctx context.Context, _ []string) (tea.Msg, error) {
	noteID, err := activeNoteID(d.env)
	if err != nil {
		return nil, err
	}
	lm, err := d.api.LinkMap(ctx, noteID)
	if err != nil {
		return nil, err
	}

	title := func(id string) string {
		if t, ok := lm.Titles[id]; ok {
			return t
		}
		return id
	}

	items := make([]listview.Item, 0, len(lm.Links))
	for _, l := range lm.Links {
		if l.Source == noteID {
			items = append(items, listview.Item{Title: "→ " + title(l.Target), Detail: l.Name, Value: l.Target})
		} else {
			items = append(items, listview.Item{Title: "← " + title(l.Source), Detail: l.Name, Value: l.Source})
		}
	}

	f := &followup{command: dialog.ShowLinkMap, run: navigateToItem(d.api)}
	lv := listview.New("Link map of "+title(noteID), items, f)
	lv.SetEmptyText("No links")
	return popup.OpenMsg{Popup: lv, Size: popup.SizeMedium}, nil
}
