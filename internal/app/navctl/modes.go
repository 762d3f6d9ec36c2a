// Package navctl tracks which pane of the main window has focus.
package navctl

// FocusTarget represents which pane has focus.
type FocusTarget int

const (
	// FocusTree indicates the note tree has focus.
	FocusTree FocusTarget = iota
	// FocusDetail indicates the note detail pane has focus.
	FocusDetail
)

// String returns the persisted name of the target.
func (f FocusTarget) String() string {
	if f == FocusDetail {
		return "detail"
	}
	return "tree"
}

// ParseFocus maps a persisted name back to a target. Unknown names focus the tree.
func ParseFocus(name string) FocusTarget {
	if name == "detail" {
		return FocusDetail
	}
	return FocusTree
}
