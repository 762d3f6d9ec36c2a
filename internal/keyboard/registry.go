package keyboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/keybind"
)

// Registry holds the action catalog fetched once per process.
// Every accessor waits for that single fetch; callers never see a partial catalog.
type Registry struct {
	src    Source
	logger *slog.Logger

	once sync.Once
	done chan struct{}

	// Written once by load before done is closed, read-only afterwards.
	actions []*Action
	byName  map[string]*Action
	err     error

	// handlerMu guards Action.handler, the only field mutated after load.
	handlerMu sync.RWMutex
}

// NewRegistry creates a registry backed by src. Nothing is fetched until first use.
func NewRegistry(src Source, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		src:    src,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Load starts the one-time fetch without waiting for it.
func (r *Registry) Load() {
	r.once.Do(func() {
		go r.load()
	})
}

func (r *Registry) load() {
	defer close(r.done)

	if r.src == nil {
		r.err = ErrNoSource
		r.logger.Error("keyboard actions load failed", "error", r.err)
		return
	}

	fetched, err := r.src.KeyboardActions(context.Background())
	if err != nil {
		r.err = fmt.Errorf("load keyboard actions: %w", err)
		r.logger.Error("keyboard actions load failed", "error", err)
		return
	}

	r.byName = make(map[string]*Action, len(fetched))
	r.actions = make([]*Action, 0, len(fetched))
	for i := range fetched {
		if fetched[i].IsSeparator() {
			continue
		}
		a := fetched[i]
		a.Name = NormalizeName(a.Name)
		a.Shortcuts, a.GlobalShortcuts = splitShortcuts(a.Shortcuts)
		a.handler = nil

		r.actions = append(r.actions, &a)
		r.byName[a.Name] = &a
	}

	r.logger.Debug("keyboard actions loaded", "count", len(r.actions))
}

// Wait blocks until the catalog is loaded (starting the fetch if needed).
// ctx only bounds the wait; the fetch itself keeps running for other callers.
func (r *Registry) Wait(ctx context.Context) error {
	r.Load()
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ActionsForScope returns the actions whose scope equals scope, in catalog order.
func (r *Registry) ActionsForScope(ctx context.Context, scope string) ([]Action, error) {
	if err := r.Wait(ctx); err != nil {
		return nil, err
	}

	r.handlerMu.RLock()
	defer r.handlerMu.RUnlock()

	var result []Action
	for _, a := range r.actions {
		if a.Scope == scope {
			result = append(result, a.clone())
		}
	}
	return result, nil
}

// Actions returns the whole catalog in order.
func (r *Registry) Actions(ctx context.Context) ([]Action, error) {
	if err := r.Wait(ctx); err != nil {
		return nil, err
	}

	r.handlerMu.RLock()
	defer r.handlerMu.RUnlock()

	result := make([]Action, 0, len(r.actions))
	for _, a := range r.actions {
		result = append(result, a.clone())
	}
	return result, nil
}

// Action looks up name and fails with ErrUnknownAction when it is missing.
// Action names are a fixed set, so a miss means a caller used a wrong name.
func (r *Registry) Action(ctx context.Context, name string) (Action, error) {
	if err := r.Wait(ctx); err != nil {
		return Action{}, err
	}

	r.handlerMu.RLock()
	defer r.handlerMu.RUnlock()

	a, ok := r.byName[name]
	if !ok {
		return Action{}, fmt.Errorf("%w '%s'", ErrUnknownAction, name)
	}
	return a.clone(), nil
}

// LookupAction looks up name without failing: a miss is logged and reported as false.
// The error is only set when the catalog itself could not be loaded.
func (r *Registry) LookupAction(ctx context.Context, name string) (Action, bool, error) {
	if err := r.Wait(ctx); err != nil {
		return Action{}, false, err
	}

	r.handlerMu.RLock()
	a, ok := r.byName[name]
	var c Action
	if ok {
		c = a.clone()
	}
	r.handlerMu.RUnlock()

	if !ok {
		r.logger.Info("Cannot find action", "action", name)
		return Action{}, false, nil
	}
	return c, true, nil
}

// SetupActionsForElement binds every shortcut of the actions in scope to el,
// triggering the action by name on component. Each call adds independent bindings.
func (r *Registry) SetupActionsForElement(ctx context.Context, scope string, el Binder, component CommandTrigger) error {
	actions, err := r.ActionsForScope(ctx, scope)
	if err != nil {
		return err
	}

	for _, a := range actions {
		name := a.Name
		for _, shortcut := range a.Shortcuts {
			if shortcut == "" {
				continue
			}
			el.BindShortcut(shortcut, func() tea.Cmd {
				return component.TriggerCommand(name)
			})
		}
	}
	return nil
}

// SetElementActionHandler binds the shortcuts of one action to cb on el only.
// The action's global handler is left untouched.
func (r *Registry) SetElementActionHandler(ctx context.Context, el Binder, name string, cb keybind.Callback) error {
	a, err := r.Action(ctx, name)
	if err != nil {
		return err
	}

	for _, shortcut := range a.Shortcuts {
		if shortcut != "" {
			el.BindShortcut(shortcut, cb)
		}
	}
	return nil
}

// SetGlobalActionHandler registers the handler TriggerAction runs for name.
func (r *Registry) SetGlobalActionHandler(ctx context.Context, name string, h Handler) error {
	if err := r.Wait(ctx); err != nil {
		return err
	}

	r.handlerMu.Lock()
	defer r.handlerMu.Unlock()

	a, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("%w '%s'", ErrUnknownAction, name)
	}
	a.handler = h
	return nil
}

// TriggerAction runs the global handler of name and returns its error.
func (r *Registry) TriggerAction(ctx context.Context, name string) error {
	if err := r.Wait(ctx); err != nil {
		return err
	}

	r.handlerMu.RLock()
	a, ok := r.byName[name]
	var h Handler
	if ok {
		h = a.handler
	}
	r.handlerMu.RUnlock()

	if !ok {
		return fmt.Errorf("%w '%s'", ErrUnknownAction, name)
	}
	if h == nil {
		return fmt.Errorf("%w: %s", ErrNoHandler, name)
	}
	return h(ctx)
}
