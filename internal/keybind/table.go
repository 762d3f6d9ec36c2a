package keybind

import (
	"slices"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Callback runs when a bound shortcut is pressed.
type Callback func() tea.Cmd

// Table maps normalized shortcuts to callbacks.
// Bindings are added from background commands while the UI goroutine reads them,
// so all access goes through the mutex.
type Table struct {
	mu       sync.RWMutex
	bindings map[string][]Callback
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{bindings: make(map[string][]Callback)}
}

// BindShortcut adds cb for shortcut. Empty shortcuts are ignored.
// Binding the same shortcut twice keeps both callbacks.
func (t *Table) BindShortcut(shortcut string, cb Callback) {
	key := Normalize(shortcut)
	if key == "" || cb == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.bindings[key] = append(t.bindings[key], cb)
}

// Handle runs every callback bound to the pressed key.
// Returns (handled, cmd) where handled is true if at least one callback was bound.
func (t *Table) Handle(msg tea.KeyMsg) (bool, tea.Cmd) {
	t.mu.RLock()
	cbs := slices.Clone(t.bindings[msg.String()])
	t.mu.RUnlock()

	if len(cbs) == 0 {
		return false, nil
	}

	cmds := make([]tea.Cmd, 0, len(cbs))
	for _, cb := range cbs {
		cmds = append(cmds, cb())
	}
	return true, tea.Batch(cmds...)
}

// Bound reports whether a shortcut has at least one callback.
func (t *Table) Bound(shortcut string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.bindings[Normalize(shortcut)]) > 0
}

// Shortcuts returns the bound keys in sorted order.
func (t *Table) Shortcuts() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]string, 0, len(t.bindings))
	for k := range t.bindings {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Len returns the total number of bindings.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, cbs := range t.bindings {
		n += len(cbs)
	}
	return n
}
