// internal/app/popupctl/types.go
package popupctl

// Type identifies which popup is currently active.
type Type int

const (
	None Type = iota
	// Dialog is the popup opened by a dialog command or the new note input.
	Dialog
	Help
	Error
)

// Priority defines which popup takes precedence (highest priority first).
var Priority = []Type{
	Error,
	Help,
	Dialog,
}

// RenderOrder defines the order popups are rendered (bottom to top).
var RenderOrder = []Type{
	Dialog,
	Help,
	Error,
}

// String names the popup type in logs.
func (t Type) String() string {
	switch t {
	case Dialog:
		return "dialog"
	case Help:
		return "help"
	case Error:
		return "error"
	case None:
	}
	return "none"
}
