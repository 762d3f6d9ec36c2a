package notepicker

import (
	"github.com/llehouerou/notedeck/internal/notes"
	"github.com/llehouerou/notedeck/internal/ui/action"
)

// Result contains the picked note, or a cancel.
type Result struct {
	Note     notes.SearchResult
	Context  any
	Canceled bool
}

// ActionType implements action.Action.
func (a Result) ActionType() string { return "notepicker.result" }

// ActionMsg creates an action.Msg for a notepicker action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "notepicker", Action: a}
}
