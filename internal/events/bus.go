// Package events provides the application-wide named event dispatch used by
// keyboard shortcuts and UI components to reach command listeners.
package events

import (
	"slices"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Params carries event arguments. Listeners always receive a non-nil map.
type Params map[string]any

// Strings returns the string slice stored under key, or nil.
func (p Params) Strings(key string) []string {
	v, ok := p[key].([]string)
	if !ok {
		return nil
	}
	return v
}

// Listener handles a triggered event on the UI goroutine.
type Listener func(Params) tea.Cmd

// TriggeredMsg is emitted when an event has been triggered.
// The root model hands it back to Deliver.
type TriggeredMsg struct {
	Name   string
	Params Params
}

// Bus is an in-process pub/sub keyed by event name.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string]map[int]Listener
	nextID    int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[string]map[int]Listener)}
}

// Subscribe registers l for name. The returned func removes it.
func (b *Bus) Subscribe(name string, l Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	if b.listeners[name] == nil {
		b.listeners[name] = make(map[int]Listener)
	}
	b.listeners[name][id] = l

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners[name], id)
		if len(b.listeners[name]) == 0 {
			delete(b.listeners, name)
		}
	}
}

// HasListeners reports whether anything is subscribed to name.
func (b *Bus) HasListeners(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[name]) > 0
}

// Trigger returns a command that emits TriggeredMsg for name.
// Safe to call from any goroutine; listeners run when the message is delivered.
func (b *Bus) Trigger(name string, params Params) tea.Cmd {
	if params == nil {
		params = Params{}
	}
	return func() tea.Msg {
		return TriggeredMsg{Name: name, Params: params}
	}
}

// Deliver runs the listeners subscribed to msg.Name and batches their commands.
func (b *Bus) Deliver(msg TriggeredMsg) tea.Cmd {
	b.mu.RLock()
	subs := b.listeners[msg.Name]
	ids := make([]int, 0, len(subs))
	for id := range subs {
		ids = append(ids, id)
	}
	listeners := make([]Listener, 0, len(subs))
	slices.Sort(ids)
	for _, id := range ids {
		listeners = append(listeners, subs[id])
	}
	b.mu.RUnlock()

	params := msg.Params
	if params == nil {
		params = Params{}
	}

	cmds := make([]tea.Cmd, 0, len(listeners))
	for _, l := range listeners {
		cmds = append(cmds, l(params))
	}
	return tea.Batch(cmds...)
}
