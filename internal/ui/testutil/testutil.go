// Package testutil provides common testing utilities for UI components.
package testutil

import (
	"reflect"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes from a string for easier testing.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// ContainsLine checks if any line in the output contains the given substring.
func ContainsLine(output, substr string) bool {
	return FindLine(output, substr) != ""
}

// FindLine returns the first line containing the given substring, or empty string.
func FindLine(output, substr string) string {
	for line := range strings.SplitSeq(output, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}

// CountLines returns the number of non-empty lines in the output.
func CountLines(output string) int {
	count := 0
	for line := range strings.SplitSeq(output, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

// ExecuteCmd runs a command and returns the resulting message.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// CollectMsgs runs cmd and every command nested in batches and sequences,
// returning the leaf messages in order. Blink and other textinput ticks are
// skipped by passing a filter.
func CollectMsgs(cmd tea.Cmd, keep func(tea.Msg) bool) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	var out []tea.Msg
	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, c := range m {
			out = append(out, CollectMsgs(c, keep)...)
		}
	case nil:
	default:
		if isSequence(msg) {
			for _, c := range sequenceCmds(msg) {
				out = append(out, CollectMsgs(c, keep)...)
			}
			break
		}
		if keep == nil || keep(msg) {
			out = append(out, msg)
		}
	}
	return out
}

// bubbletea keeps sequenceMsg unexported; it is a []tea.Cmd underneath.
func isSequence(msg tea.Msg) bool {
	v := reflect.ValueOf(msg)
	return v.Kind() == reflect.Slice && v.Type().Elem() == reflect.TypeOf(tea.Cmd(nil))
}

func sequenceCmds(msg tea.Msg) []tea.Cmd {
	v := reflect.ValueOf(msg)
	cmds := make([]tea.Cmd, v.Len())
	for i := range cmds {
		cmds[i], _ = v.Index(i).Interface().(tea.Cmd)
	}
	return cmds
}

// FindMsg returns the first collected message of type T.
func FindMsg[T any](cmd tea.Cmd) (T, bool) {
	for _, msg := range CollectMsgs(cmd, nil) {
		if m, ok := msg.(T); ok {
			return m, true
		}
	}
	var zero T
	return zero, false
}
