package mdpaste

import "github.com/llehouerou/notedeck/internal/ui/action"

// Result carries the markdown typed or pasted by the user.
type Result struct {
	Text     string
	Context  any
	Canceled bool
}

// ActionType implements action.Action.
func (a Result) ActionType() string { return "mdpaste.result" }

// ActionMsg creates an action.Msg for an mdpaste action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "mdpaste", Action: a}
}
