package dialogs

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/notedeck/internal/dialog"
	"github.com/llehouerou/notedeck/internal/ui/popup"
	"github.com/llehouerou/notedeck/internal/ui/textview"
)

// NoteInfo shows metadata of the active note.
type NoteInfo struct {
	api API
	env dialog.Env
}

// ShowDialog implements dialog.Shower.
func (d *NoteInfo) ShowDialog(ctx context.Context, _ []string) (tea.Msg, error) {
	noteID, err := activeNoteID(d.env)
	if err != nil {
		return nil, err
	}
	n, err := d.api.Note(ctx, noteID)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	row := func(k, v string) { fmt.Fprintf(&sb, "%-10s %s\n", k, v) }
	row("Note ID", n.ID)
	row("Title", n.Title)
	row("Type", n.Type)
	row("Path", d.env.ActiveNotePath())
	row("Created", fmt.Sprintf("%s (%s)", n.Created.Local().Format("2006-01-02 15:04"), humanize.Time(n.Created)))
	row("Modified", fmt.Sprintf("%s (%s)", n.Modified.Local().Format("2006-01-02 15:04"), humanize.Time(n.Modified)))
	row("Size", humanize.Bytes(uint64(max(n.ContentSize, 0))))
	row("Hash", n.ContentHash)

	return popup.OpenMsg{
		Popup: textview.New("Note info", strings.TrimSuffix(sb.String(), "\n")),
		Size:  popup.SizeMedium,
	}, nil
}

// NoteSource shows the raw content of the active note.
type NoteSource struct {
	api API
	env dialog.Env
}

// ShowDialog implements dialog.Shower.
func (d *NoteSource) ShowDialog(ctx context.Context, _ []string) (tea.Msg, error) {
	noteID, err := activeNoteID(d.env)
	if err != nil {
		return nil, err
	}
	n, err := d.api.Note(ctx, noteID)
	if err != nil {
		return nil, err
	}
	content, err := d.api.Content(ctx, noteID)
	if err != nil {
		return nil, err
	}
	return popup.OpenMsg{
		Popup: textview.New("Source of "+n.Title, content),
		Size:  popup.SizeLarge,
	}, nil
}
