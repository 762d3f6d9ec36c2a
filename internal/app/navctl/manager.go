// internal/app/navctl/manager.go
package navctl

// Focusable is a pane that renders differently when focused.
type Focusable interface {
	SetFocused(focused bool)
}

// Manager owns the focus state of the panes.
type Manager struct {
	focus FocusTarget
	panes map[FocusTarget]Focusable
}

// New creates a Manager with the tree focused.
func New() *Manager {
	return &Manager{
		focus: FocusTree,
		panes: make(map[FocusTarget]Focusable),
	}
}

// Register attaches a pane to target and applies the current focus to it.
func (n *Manager) Register(target FocusTarget, pane Focusable) {
	n.panes[target] = pane
	pane.SetFocused(n.focus == target)
}

// Focus returns the focused target.
func (n *Manager) Focus() FocusTarget {
	return n.focus
}

// IsFocused reports whether target has focus.
func (n *Manager) IsFocused(target FocusTarget) bool {
	return n.focus == target
}

// SetFocus moves focus to target.
func (n *Manager) SetFocus(target FocusTarget) {
	n.focus = target
	for t, p := range n.panes {
		p.SetFocused(t == target)
	}
}

// Toggle switches focus between the tree and the detail pane.
func (n *Manager) Toggle() {
	if n.focus == FocusTree {
		n.SetFocus(FocusDetail)
		return
	}
	n.SetFocus(FocusTree)
}
