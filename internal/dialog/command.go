// Package dialog runs named UI commands by loading the dialog module behind
// each one on first use and calling its entry point.
package dialog

import (
	"github.com/llehouerou/notedeck/internal/events"
)

// Command identifies a dialog command.
type Command int

const (
	JumpToNote Command = iota
	ShowRecentChanges
	ShowAttributes
	ShowNoteInfo
	ShowNoteRevisions
	ShowNoteSource
	ShowLinkMap
	PasteMarkdownIntoText
	EditBranchPrefix
	CloneNoteIDsTo
	MoveBranchIDsTo
)

var commandNames = [...]string{
	JumpToNote:            "jumpToNote",
	ShowRecentChanges:     "showRecentChanges",
	ShowAttributes:        "showAttributes",
	ShowNoteInfo:          "showNoteInfo",
	ShowNoteRevisions:     "showNoteRevisions",
	ShowNoteSource:        "showNoteSource",
	ShowLinkMap:           "showLinkMap",
	PasteMarkdownIntoText: "pasteMarkdownIntoText",
	EditBranchPrefix:      "editBranchPrefix",
	CloneNoteIDsTo:        "cloneNoteIdsTo",
	MoveBranchIDsTo:       "moveBranchIdsTo",
}

// String returns the command name used for events and keyboard actions.
func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// Commands lists every command in declaration order.
func Commands() []Command {
	cmds := make([]Command, len(commandNames))
	for i := range commandNames {
		cmds[i] = Command(i)
	}
	return cmds
}

// ParseCommand maps a command name back to its Command.
func ParseCommand(name string) (Command, bool) {
	for i, n := range commandNames {
		if n == name {
			return Command(i), true
		}
	}
	return 0, false
}

// Params are the optional command arguments.
type Params struct {
	NoteIDs   []string
	BranchIDs []string
}

// Event parameter keys.
const (
	ParamNoteIDs   = "noteIds"
	ParamBranchIDs = "branchIds"
)

// ParamsFromEvent reads command arguments from event params.
func ParamsFromEvent(p events.Params) Params {
	return Params{
		NoteIDs:   p.Strings(ParamNoteIDs),
		BranchIDs: p.Strings(ParamBranchIDs),
	}
}

// Event converts p into event params.
func (p Params) Event() events.Params {
	ep := events.Params{}
	if p.NoteIDs != nil {
		ep[ParamNoteIDs] = p.NoteIDs
	}
	if p.BranchIDs != nil {
		ep[ParamBranchIDs] = p.BranchIDs
	}
	return ep
}
