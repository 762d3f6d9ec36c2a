package dialog

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/notedeck/internal/events"
)

type shownMsg struct {
	module string
	args   []string
}

type fakeShower struct{ name string }

func (f *fakeShower) ShowDialog(_ context.Context, args []string) (tea.Msg, error) {
	return shownMsg{module: f.name, args: args}, nil
}

type fakeRevisions struct{}

func (fakeRevisions) ShowCurrentNoteRevisions(context.Context) (tea.Msg, error) {
	return shownMsg{module: ModuleNoteRevisions}, nil
}

type fakeImporter struct{}

func (fakeImporter) ImportMarkdownInline(context.Context) (tea.Msg, error) {
	return shownMsg{module: ModuleMarkdownImport}, nil
}

type fakeEnv struct{ path string }

func (e fakeEnv) ActiveNotePath() string { return e.path }

func fullCatalog(builds map[string]int) *Catalog {
	c := NewCatalog()
	for _, cmd := range Commands() {
		name, _ := ModuleFor(cmd)
		c.Register(name, func(context.Context) (Module, error) {
			builds[name]++
			switch name {
			case ModuleNoteRevisions:
				return fakeRevisions{}, nil
			case ModuleMarkdownImport:
				return fakeImporter{}, nil
			}
			return &fakeShower{name: name}, nil
		})
	}
	return c
}

func TestCommandNames(t *testing.T) {
	require.Len(t, Commands(), 11)
	for _, cmd := range Commands() {
		parsed, ok := ParseCommand(cmd.String())
		require.True(t, ok, cmd.String())
		assert.Equal(t, cmd, parsed)
	}
	_, ok := ParseCommand("nope")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Command(99).String())
}

func TestExecute_EveryCommandReachesItsModule(t *testing.T) {
	builds := map[string]int{}
	exec := NewExecutor(fullCatalog(builds), fakeEnv{path: "root/abc"}, nil)

	for _, cmd := range Commands() {
		t.Run(cmd.String(), func(t *testing.T) {
			c := exec.Execute(cmd, Params{})
			require.NotNil(t, c)
			msg, ok := c().(shownMsg)
			require.True(t, ok)
			want, _ := ModuleFor(cmd)
			assert.Equal(t, want, msg.module)
		})
	}
	assert.Len(t, builds, 11)
}

func TestExecute_ModulesAreLoadedOnce(t *testing.T) {
	builds := map[string]int{}
	exec := NewExecutor(fullCatalog(builds), fakeEnv{}, nil)

	exec.Execute(ShowNoteInfo, Params{})()
	exec.Execute(ShowNoteInfo, Params{})()

	assert.Equal(t, 1, builds[ModuleNoteInfo])
	assert.Zero(t, builds[ModuleLinkMap], "modules load on demand only")
}

func TestExecute_EditBranchPrefixNeedsActiveNote(t *testing.T) {
	builds := map[string]int{}
	exec := NewExecutor(fullCatalog(builds), fakeEnv{}, nil)

	assert.Nil(t, exec.Execute(EditBranchPrefix, Params{}))
	assert.Zero(t, builds[ModuleBranchPrefix])

	exec = NewExecutor(fullCatalog(builds), fakeEnv{path: "root/a/b"}, nil)
	msg := exec.Execute(EditBranchPrefix, Params{})().(shownMsg)
	assert.Equal(t, []string{"root/a/b"}, msg.args)
}

func TestExecute_ForwardsParams(t *testing.T) {
	exec := NewExecutor(fullCatalog(map[string]int{}), fakeEnv{}, nil)

	msg := exec.Execute(CloneNoteIDsTo, Params{NoteIDs: []string{"n1", "n2"}})().(shownMsg)
	assert.Equal(t, []string{"n1", "n2"}, msg.args)

	msg = exec.Execute(MoveBranchIDsTo, Params{BranchIDs: []string{"b1"}})().(shownMsg)
	assert.Equal(t, []string{"b1"}, msg.args)
}

func TestExecute_LoadFailureIsNotRetried(t *testing.T) {
	attempts := 0
	c := NewCatalog()
	c.Register(ModuleLinkMap, func(context.Context) (Module, error) {
		attempts++
		return nil, errors.New("broken module")
	})
	exec := NewExecutor(c, fakeEnv{}, nil)

	msg := exec.Execute(ShowLinkMap, Params{})()
	failed, ok := msg.(FailedMsg)
	require.True(t, ok)
	assert.Equal(t, ShowLinkMap, failed.Command)
	assert.Contains(t, failed.Error(), "broken module")
	assert.Equal(t, 1, attempts)
	assert.False(t, c.Loaded(ModuleLinkMap))

	// A later invocation tries again.
	exec.Execute(ShowLinkMap, Params{})()
	assert.Equal(t, 2, attempts)
}

func TestExecute_UnregisteredModule(t *testing.T) {
	exec := NewExecutor(NewCatalog(), fakeEnv{}, nil)

	failed, ok := exec.Execute(JumpToNote, Params{})().(FailedMsg)
	require.True(t, ok)
	assert.ErrorIs(t, failed.Err, ErrUnknownModule)
}

func TestExecute_MissingEntryPoint(t *testing.T) {
	c := NewCatalog()
	c.Register(ModuleNoteRevisions, func(context.Context) (Module, error) {
		return &fakeShower{name: "wrong"}, nil
	})
	exec := NewExecutor(c, fakeEnv{}, nil)

	failed, ok := exec.Execute(ShowNoteRevisions, Params{})().(FailedMsg)
	require.True(t, ok)
	assert.ErrorIs(t, failed.Err, ErrMissingEntryPoint)
}

func TestExecute_UnknownCommand(t *testing.T) {
	exec := NewExecutor(NewCatalog(), fakeEnv{}, nil)
	failed, ok := exec.Execute(Command(42), Params{})().(FailedMsg)
	require.True(t, ok)
	assert.ErrorIs(t, failed.Err, ErrUnknownCommand)
}

func TestCatalog_RegisterTwicePanics(t *testing.T) {
	c := NewCatalog()
	c.Register("x", func(context.Context) (Module, error) { return nil, nil })
	assert.Panics(t, func() {
		c.Register("x", func(context.Context) (Module, error) { return nil, nil })
	})
}

func TestCatalog_SlowBuildDoesNotBlockOtherModules(t *testing.T) {
	c := NewCatalog()
	release := make(chan struct{})
	c.Register("slow", func(context.Context) (Module, error) {
		<-release
		return &fakeShower{name: "slow"}, nil
	})
	c.Register("fast", func(context.Context) (Module, error) {
		return &fakeShower{name: "fast"}, nil
	})

	slowDone := make(chan error, 1)
	go func() {
		_, err := c.Load(context.Background(), "slow")
		slowDone <- err
	}()

	fastDone := make(chan error, 1)
	go func() {
		_, err := c.Load(context.Background(), "fast")
		fastDone <- err
	}()

	select {
	case err := <-fastDone:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("fast module load blocked by slow build")
	}
	assert.False(t, c.Loaded("slow"))

	close(release)
	require.NoError(t, <-slowDone)
	assert.True(t, c.Loaded("slow"))
}

func TestSubscribe_EventsReachExecutor(t *testing.T) {
	bus := events.NewBus()
	exec := NewExecutor(fullCatalog(map[string]int{}), fakeEnv{}, nil)
	cancel := exec.Subscribe(bus)

	cmd := bus.Deliver(events.TriggeredMsg{
		Name:   CloneNoteIDsTo.String(),
		Params: Params{NoteIDs: []string{"n1"}}.Event(),
	})
	require.NotNil(t, cmd)
	msg := cmd().(shownMsg)
	assert.Equal(t, ModuleCloneTo, msg.module)
	assert.Equal(t, []string{"n1"}, msg.args)

	cancel()
	assert.False(t, bus.HasListeners(CloneNoteIDsTo.String()))
}

func TestParamsFromEvent(t *testing.T) {
	p := ParamsFromEvent(events.Params{})
	assert.Nil(t, p.NoteIDs)
	assert.Nil(t, p.BranchIDs)

	p = ParamsFromEvent(Params{BranchIDs: []string{"b"}}.Event())
	assert.Equal(t, []string{"b"}, p.BranchIDs)
}
