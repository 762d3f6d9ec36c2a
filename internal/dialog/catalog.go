package dialog

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Module names, one per dialog implementation.
const (
	ModuleJumpToNote     = "jump_to_note"
	ModuleRecentChanges  = "recent_changes"
	ModuleAttributes     = "attributes"
	ModuleNoteInfo       = "note_info"
	ModuleNoteRevisions  = "note_revisions"
	ModuleNoteSource     = "note_source"
	ModuleLinkMap        = "link_map"
	ModuleMarkdownImport = "markdown_import"
	ModuleBranchPrefix   = "branch_prefix"
	ModuleCloneTo        = "clone_to"
	ModuleMoveTo         = "move_to"
)

// ErrUnknownModule is returned when loading a module nothing registered.
var ErrUnknownModule = errors.New("unknown dialog module")

// Module is a loaded dialog implementation. It exposes one of the entry point
// interfaces (Shower, RevisionsShower, MarkdownImporter).
type Module any

// Factory builds a module.
type Factory func(ctx context.Context) (Module, error)

// Loader loads modules by name.
type Loader interface {
	Load(ctx context.Context, name string) (Module, error)
}

// Catalog builds modules on first use and keeps them for later calls.
// A failed build is not cached: the next call builds again.
type Catalog struct {
	mu        sync.Mutex
	factories map[string]Factory
	loaded    map[string]Module
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		factories: make(map[string]Factory),
		loaded:    make(map[string]Module),
	}
}

// Register sets the factory for name. It panics if name already exists.
func (c *Catalog) Register(name string, f Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.factories[name]; exists {
		panic(fmt.Sprintf("dialog module %s already registered", name))
	}
	c.factories[name] = f
}

// Load returns the module registered under name, building it if needed.
// Builds run outside the lock; when two callers race, the first stored module wins.
func (c *Catalog) Load(ctx context.Context, name string) (Module, error) {
	c.mu.Lock()
	if m, ok := c.loaded[name]; ok {
		c.mu.Unlock()
		return m, nil
	}
	f, ok := c.factories[name]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModule, name)
	}

	m, err := f(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dialog module %s: %w", name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.loaded[name]; ok {
		return existing, nil
	}
	c.loaded[name] = m
	return m, nil
}

// Loaded reports whether name has been built.
func (c *Catalog) Loaded(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.loaded[name]
	return ok
}
