package dialogs

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/dialog"
	"github.com/llehouerou/notedeck/internal/notes"
	"github.com/llehouerou/notedeck/internal/ui/listview"
	"github.com/llehouerou/notedeck/internal/ui/popup"
)

// Attributes lists the labels and relations of the active note.
// Picking a relation navigates to its target.
type Attributes struct {
	api API
	env dialog.Env
}

// ShowDialog implements dialog.Shower.
func (d *Attributes) ShowDialog(ctx context.Context, _ []string) (tea.Msg, error) {
	noteID, err := activeNoteID(d.env)
	if err != nil {
		return nil, err
	}
	attrs, err := d.api.Attributes(ctx, noteID)
	if err != nil {
		return nil, err
	}

	items := make([]listview.Item, 0, len(attrs))
	for _, a := range attrs {
		switch a.Type {
		case notes.AttrRelation:
			target := a.Value
			if n, err := d.api.Note(ctx, a.Value); err == nil {
				target = n.Title
			}
			items = append(items, listview.Item{Title: "~" + a.Name, Detail: "→ " + target, Value: a.Value})
		default:
			title := "#" + a.Name
			if a.Value != "" {
				title += "=" + a.Value
			}
			items = append(items, listview.Item{Title: title, Detail: "label"})
		}
	}

	f := &followup{command: dialog.ShowAttributes, run: navigateToItem(d.api)}
	lv := listview.New("Attributes", items, f)
	lv.SetEmptyText("This note has no attributes")
	return popup.OpenMsg{Popup: lv, Size: popup.SizeMedium}, nil
}
