package dialogs

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/dialog"
	"github.com/llehouerou/notedeck/internal/notes"
	"github.com/llehouerou/notedeck/internal/ui/action"
	"github.com/llehouerou/notedeck/internal/ui/mdpaste"
	"github.com/llehouerou/notedeck/internal/ui/popup"
)

// readClipboard is swapped in tests.
var readClipboard = clipboard.ReadAll

// MarkdownImport appends markdown to the active text note. Clipboard text is
// inserted directly; with an empty or unavailable clipboard an editor opens.
type MarkdownImport struct {
	api API
	env dialog.Env
}

// ImportMarkdownInline implements dialog.MarkdownImporter.
func (d *MarkdownImport) ImportMarkdownInline(ctx context.Context) (tea.Msg, error) {
	noteID, err := activeNoteID(d.env)
	if err != nil {
		return nil, err
	}
	n, err := d.api.Note(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if n.Type != notes.TypeText {
		return nil, ErrNotTextNote
	}

	if text, err := readClipboard(); err == nil && strings.TrimSpace(text) != "" {
		return d.appendMarkdown(ctx, noteID, text)
	}

	f := &followup{command: dialog.PasteMarkdownIntoText, run: func(ctx context.Context, a action.Action) (tea.Msg, error) {
		return d.appendMarkdown(ctx, noteID, a.(mdpaste.Result).Text)
	}}
	return popup.OpenMsg{
		Popup: mdpaste.New("Paste markdown into "+n.Title, "", f),
		Size:  popup.SizeLarge,
	}, nil
}

func (d *MarkdownImport) appendMarkdown(ctx context.Context, noteID, text string) (tea.Msg, error) {
	if err := d.api.AppendMarkdown(ctx, noteID, strings.TrimSpace(text)); err != nil {
		return nil, err
	}
	return ActionMsg(Changed{Message: "Markdown inserted", NoteID: noteID}), nil
}
