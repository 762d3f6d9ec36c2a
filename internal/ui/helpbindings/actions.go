package helpbindings

import (
	"github.com/llehouerou/notedeck/internal/ui/action"
)

// Close signals the help popup should close.
type Close struct{}

// ActionType implements action.Action.
func (a Close) ActionType() string { return "helpbindings.close" }

// Trigger asks the app to run the named keyboard action.
type Trigger struct {
	Name string
}

// ActionType implements action.Action.
func (a Trigger) ActionType() string { return "helpbindings.trigger" }

// ActionMsg creates an action.Msg for a helpbindings action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "helpbindings", Action: a}
}
