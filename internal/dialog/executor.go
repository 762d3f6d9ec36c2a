package dialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/events"
)

// Entry points exposed by dialog modules.
type (
	// Shower presents a dialog, optionally for the given ids or note path.
	Shower interface {
		ShowDialog(ctx context.Context, args []string) (tea.Msg, error)
	}
	// RevisionsShower presents the revisions of the active note.
	RevisionsShower interface {
		ShowCurrentNoteRevisions(ctx context.Context) (tea.Msg, error)
	}
	// MarkdownImporter inserts markdown into the active text note.
	MarkdownImporter interface {
		ImportMarkdownInline(ctx context.Context) (tea.Msg, error)
	}
)

var (
	// ErrUnknownCommand is returned for a Command outside the table.
	ErrUnknownCommand = errors.New("unknown dialog command")
	// ErrMissingEntryPoint is returned when a module lacks the expected entry point.
	ErrMissingEntryPoint = errors.New("dialog module lacks entry point")
)

// Env exposes the application state commands depend on.
type Env interface {
	ActiveNotePath() string
}

// FailedMsg reports a command whose module failed to load or run.
type FailedMsg struct {
	Command Command
	Err     error
}

func (m FailedMsg) Error() string {
	return fmt.Sprintf("%s: %v", m.Command, m.Err)
}

type entryPoint int

const (
	entryShowDialog entryPoint = iota
	entryShowCurrentNoteRevisions
	entryImportMarkdownInline
)

func (ep entryPoint) String() string {
	switch ep {
	case entryShowDialog:
		return "ShowDialog"
	case entryShowCurrentNoteRevisions:
		return "ShowCurrentNoteRevisions"
	case entryImportMarkdownInline:
		return "ImportMarkdownInline"
	}
	return "unknown"
}

func (ep entryPoint) invoke(ctx context.Context, m Module, args []string) (tea.Msg, error) {
	switch ep {
	case entryShowDialog:
		if s, ok := m.(Shower); ok {
			return s.ShowDialog(ctx, args)
		}
	case entryShowCurrentNoteRevisions:
		if s, ok := m.(RevisionsShower); ok {
			return s.ShowCurrentNoteRevisions(ctx)
		}
	case entryImportMarkdownInline:
		if s, ok := m.(MarkdownImporter); ok {
			return s.ImportMarkdownInline(ctx)
		}
	}
	return nil, fmt.Errorf("%w %s (%T)", ErrMissingEntryPoint, ep, m)
}

// argsFunc extracts the entry point arguments. ok=false cancels the command silently.
type argsFunc func(env Env, p Params) (args []string, ok bool)

type entry struct {
	module string
	entry  entryPoint
	args   argsFunc
}

func noArgs(Env, Params) ([]string, bool) { return nil, true }

var commandTable = map[Command]entry{
	JumpToNote:            {ModuleJumpToNote, entryShowDialog, noArgs},
	ShowRecentChanges:     {ModuleRecentChanges, entryShowDialog, noArgs},
	ShowAttributes:        {ModuleAttributes, entryShowDialog, noArgs},
	ShowNoteInfo:          {ModuleNoteInfo, entryShowDialog, noArgs},
	ShowNoteRevisions:     {ModuleNoteRevisions, entryShowCurrentNoteRevisions, noArgs},
	ShowNoteSource:        {ModuleNoteSource, entryShowDialog, noArgs},
	ShowLinkMap:           {ModuleLinkMap, entryShowDialog, noArgs},
	PasteMarkdownIntoText: {ModuleMarkdownImport, entryImportMarkdownInline, noArgs},
	EditBranchPrefix: {ModuleBranchPrefix, entryShowDialog, func(env Env, _ Params) ([]string, bool) {
		path := env.ActiveNotePath()
		if path == "" {
			return nil, false
		}
		return []string{path}, true
	}},
	CloneNoteIDsTo: {ModuleCloneTo, entryShowDialog, func(_ Env, p Params) ([]string, bool) {
		return p.NoteIDs, true
	}},
	MoveBranchIDsTo: {ModuleMoveTo, entryShowDialog, func(_ Env, p Params) ([]string, bool) {
		return p.BranchIDs, true
	}},
}

// ModuleFor returns the module name behind cmd.
func ModuleFor(cmd Command) (string, bool) {
	e, ok := commandTable[cmd]
	return e.module, ok
}

// Executor maps commands to dialog modules.
type Executor struct {
	loader Loader
	env    Env
	logger *slog.Logger
}

// NewExecutor creates an executor loading modules from loader.
func NewExecutor(loader Loader, env Env, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{loader: loader, env: env, logger: logger}
}

// Execute returns a command that loads the module behind cmd and calls its entry point.
// Returns nil when the command does not apply (no active note for editBranchPrefix).
// Load and entry point failures surface as FailedMsg; nothing is retried.
func (e *Executor) Execute(cmd Command, p Params) tea.Cmd {
	ent, ok := commandTable[cmd]
	if !ok {
		return func() tea.Msg {
			return FailedMsg{Command: cmd, Err: fmt.Errorf("%w: %d", ErrUnknownCommand, int(cmd))}
		}
	}

	args, proceed := ent.args(e.env, p)
	if !proceed {
		e.logger.Debug("dialog command skipped", "command", cmd.String())
		return nil
	}

	return func() tea.Msg {
		ctx := context.Background()

		m, err := e.loader.Load(ctx, ent.module)
		if err != nil {
			e.logger.Error("dialog module load failed", "command", cmd.String(), "module", ent.module, "error", err)
			return FailedMsg{Command: cmd, Err: err}
		}

		msg, err := ent.entry.invoke(ctx, m, args)
		if err != nil {
			e.logger.Error("dialog command failed", "command", cmd.String(), "error", err)
			return FailedMsg{Command: cmd, Err: err}
		}
		return msg
	}
}

// Subscribe makes every command reachable as an event of the same name.
// The returned func removes all subscriptions.
func (e *Executor) Subscribe(bus *events.Bus) func() {
	cmds := Commands()
	cancels := make([]func(), 0, len(cmds))
	for _, cmd := range cmds {
		cancels = append(cancels, bus.Subscribe(cmd.String(), func(p events.Params) tea.Cmd {
			return e.Execute(cmd, ParamsFromEvent(p))
		}))
	}
	return func() {
		for _, c := range cancels {
			c()
		}
	}
}
