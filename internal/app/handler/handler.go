// Package handler provides a result type and chain function for key handlers.
package handler

import tea "github.com/charmbracelet/bubbletea"

// Result represents the outcome of a key handler.
type Result struct {
	Handled bool
	Cmd     tea.Cmd
}

// NotHandled is returned when a handler doesn't handle the key.
var NotHandled = Result{}

// Handled creates a Result indicating the key was handled with a command.
func Handled(cmd tea.Cmd) Result {
	return Result{Handled: true, Cmd: cmd}
}

// HandledNoCmd is a convenience for handlers that handle but return no command.
var HandledNoCmd = Result{Handled: true}

// Handler attempts to handle a key.
type Handler func(msg tea.KeyMsg) Result

// Table adapts a (handled, cmd) key function such as keybind.Table.Handle.
// A nil function never handles.
func Table(handle func(tea.KeyMsg) (bool, tea.Cmd)) Handler {
	return func(msg tea.KeyMsg) Result {
		if handle == nil {
			return NotHandled
		}
		if ok, cmd := handle(msg); ok {
			return Handled(cmd)
		}
		return NotHandled
	}
}

// Chain runs handlers in order until one handles msg.
func Chain(msg tea.KeyMsg, handlers ...Handler) (bool, tea.Cmd) {
	for _, h := range handlers {
		if r := h(msg); r.Handled {
			return true, r.Cmd
		}
	}
	return false, nil
}
