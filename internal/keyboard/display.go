package keyboard

import (
	"context"
	"strings"
)

// DisplayKind selects how an element shows its action's shortcuts.
type DisplayKind int

const (
	// DisplayText replaces the element text with the shortcut list (kbd elements).
	DisplayText DisplayKind = iota
	// DisplayTitle appends the shortcut list to the element title (buttons, icons).
	DisplayTitle
)

// ShortcutDisplay is an element tagged with the action whose shortcuts it shows.
type ShortcutDisplay interface {
	KbAction() string
	DisplayKind() DisplayKind
	SetText(text string)
	Title() string
	SetTitle(title string)
}

// Container exposes the tagged elements beneath it.
type Container interface {
	ShortcutDisplays() []ShortcutDisplay
}

// UpdateDisplayedShortcuts writes the current shortcuts into every tagged element
// of container. Unknown actions are skipped since the text is only cosmetic.
func (r *Registry) UpdateDisplayedShortcuts(ctx context.Context, container Container) error {
	if err := r.Wait(ctx); err != nil {
		return err
	}

	for _, el := range container.ShortcutDisplays() {
		a, ok, err := r.LookupAction(ctx, el.KbAction())
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		shortcuts := a.ShortcutText()
		switch el.DisplayKind() {
		case DisplayText:
			el.SetText(shortcuts)
		case DisplayTitle:
			el.SetTitle(titleWithShortcuts(el.Title(), shortcuts))
		}
	}
	return nil
}

func titleWithShortcuts(title, shortcuts string) string {
	if strings.TrimSpace(title) == "" {
		return shortcuts
	}
	return title + " (" + shortcuts + ")"
}
