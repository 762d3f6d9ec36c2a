// Package kbd provides widgets that display the shortcuts of a keyboard action.
package kbd

import (
	"github.com/llehouerou/notedeck/internal/keyboard"
	"github.com/llehouerou/notedeck/internal/ui/styles"
)

var (
	_ keyboard.ShortcutDisplay = (*Label)(nil)
	_ keyboard.ShortcutDisplay = (*Button)(nil)
)

// Label shows the shortcut text of an action in place of its own text.
type Label struct {
	action string
	text   string
	title  string
}

// NewLabel creates a label tagged with action.
func NewLabel(action string) *Label {
	return &Label{action: action}
}

// KbAction implements keyboard.ShortcutDisplay.
func (l *Label) KbAction() string { return l.action }

// DisplayKind implements keyboard.ShortcutDisplay.
func (l *Label) DisplayKind() keyboard.DisplayKind { return keyboard.DisplayText }

// SetText implements keyboard.ShortcutDisplay.
func (l *Label) SetText(text string) { l.text = text }

// Text returns the displayed shortcut text.
func (l *Label) Text() string { return l.text }

// Title implements keyboard.ShortcutDisplay.
func (l *Label) Title() string { return l.title }

// SetTitle implements keyboard.ShortcutDisplay.
func (l *Label) SetTitle(title string) { l.title = title }

// View renders the label, or nothing when the action has no shortcut.
func (l *Label) View() string {
	if l.text == "" {
		return ""
	}
	return styles.T().S().Key.Render(l.text)
}

// Button is a clickable-looking element whose title gets the shortcuts appended.
type Button struct {
	action string
	label  string
	title  string
	active bool
}

// NewButton creates a button tagged with action. The title starts as the label.
func NewButton(action, label string) *Button {
	return &Button{action: action, label: label, title: label}
}

// KbAction implements keyboard.ShortcutDisplay.
func (b *Button) KbAction() string { return b.action }

// DisplayKind implements keyboard.ShortcutDisplay.
func (b *Button) DisplayKind() keyboard.DisplayKind { return keyboard.DisplayTitle }

// SetText implements keyboard.ShortcutDisplay. Buttons keep their label.
func (b *Button) SetText(string) {}

// Title implements keyboard.ShortcutDisplay.
func (b *Button) Title() string { return b.title }

// SetTitle implements keyboard.ShortcutDisplay.
func (b *Button) SetTitle(title string) { b.title = title }

// Reset restores the title to the plain label, so repeated updates don't stack.
func (b *Button) Reset() { b.title = b.label }

// SetActive highlights the button.
func (b *Button) SetActive(active bool) { b.active = active }

// View renders the button title.
func (b *Button) View() string {
	s := styles.T().S()
	if b.active {
		return s.Active.Render(b.title)
	}
	return s.Muted.Render(b.title)
}

// Group is a keyboard.Container over a fixed set of elements.
type Group []keyboard.ShortcutDisplay

// ShortcutDisplays implements keyboard.Container.
func (g Group) ShortcutDisplays() []keyboard.ShortcutDisplay {
	return g
}
