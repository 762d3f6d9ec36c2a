// internal/app/app.go
package app

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/app/navctl"
	"github.com/llehouerou/notedeck/internal/app/popupctl"
	"github.com/llehouerou/notedeck/internal/dialog"
	"github.com/llehouerou/notedeck/internal/dialogs"
	"github.com/llehouerou/notedeck/internal/events"
	"github.com/llehouerou/notedeck/internal/keybind"
	"github.com/llehouerou/notedeck/internal/keyboard"
	"github.com/llehouerou/notedeck/internal/notes"
	"github.com/llehouerou/notedeck/internal/notify"
	"github.com/llehouerou/notedeck/internal/state"
	"github.com/llehouerou/notedeck/internal/ui/headerbar"
)

// triggerBuffer bounds actions queued by global handlers before Update drains them.
const triggerBuffer = 16

// Backend is everything the client needs from the notes server.
// *client.Client implements it.
type Backend interface {
	keyboard.Source
	dialogs.API
	Children(ctx context.Context, noteID string) ([]notes.TreeItem, error)
	CreateNote(ctx context.Context, parentID, title string) (notes.Note, notes.Branch, error)
}

// Options configures New.
type Options struct {
	Backend Backend
	State   state.Interface
	// Reporter mirrors completed changes as desktop notifications. Optional.
	Reporter *notify.Reporter
	Logger   *slog.Logger
}

// Model is the root application model.
type Model struct {
	backend  Backend
	registry *keyboard.Registry
	bus      *events.Bus
	executor *dialog.Executor
	global   *keybind.Table
	session  *session

	Header *headerbar.Model
	Tree   *treePane
	Detail *detailPane
	Popups *popupctl.Manager
	Focus  *navctl.Manager

	// triggered carries action names queued by global handlers.
	triggered chan triggeredAction

	StateMgr state.Interface
	reporter *notify.Reporter
	logger   *slog.Logger

	status    string
	statusSeq int
	width     int
	height    int
}

// New wires the registry, event bus and dialog executor around backend.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	bus := events.NewBus()
	sess := &session{}
	catalog := dialog.NewCatalog()
	dialogs.Register(catalog, opts.Backend, sess)

	m := Model{
		backend:   opts.Backend,
		registry:  keyboard.NewRegistry(opts.Backend, logger.With("component", "keyboard")),
		bus:       bus,
		executor:  dialog.NewExecutor(catalog, sess, logger.With("component", "dialog")),
		global:    keybind.NewTable(),
		session:   sess,
		Header:    headerbar.New(),
		Tree:      newTreePane(bus),
		Detail:    newDetailPane(bus),
		Popups:    popupctl.New(),
		Focus:     navctl.New(),
		triggered: make(chan triggeredAction, triggerBuffer),
		StateMgr:  opts.State,
		reporter:  opts.Reporter,
		logger:    logger,
	}
	m.Focus.Register(navctl.FocusTree, m.Tree)
	m.Focus.Register(navctl.FocusDetail, m.Detail)

	m.executor.Subscribe(bus)
	m.subscribeWindowEvents()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	m.registry.Load()
	return tea.Batch(
		m.setupBindingsCmd(),
		m.restoreSessionCmd(),
		m.waitForTriggered(),
	)
}

// subscribeWindowEvents handles the window actions that are not dialog commands.
func (m Model) subscribeWindowEvents() {
	m.bus.Subscribe(actionShowHelp, func(events.Params) tea.Cmd {
		return m.fetchHelpCmd()
	})
	m.bus.Subscribe(actionReloadTree, func(events.Params) tea.Cmd {
		return func() tea.Msg { return reloadTreeMsg{} }
	})
	m.bus.Subscribe(actionCreateNoteIntoInbox, func(events.Params) tea.Cmd {
		return openNewNoteInput(notes.RootID, "New note")
	})
}

// ActiveNotePath returns the note path the window shows.
func (m Model) ActiveNotePath() string {
	return m.session.ActiveNotePath()
}

// Status returns the last status line message.
func (m Model) Status() string {
	return m.status
}
