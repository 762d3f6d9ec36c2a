package listview

import "github.com/llehouerou/notedeck/internal/ui/action"

// Result reports the chosen row, or a cancel.
type Result struct {
	Index    int
	Item     Item
	Context  any
	Canceled bool
}

// ActionType implements action.Action.
func (a Result) ActionType() string { return "listview.result" }

// ActionMsg creates an action.Msg for a listview action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "listview", Action: a}
}
