// Package catalog serves the keyboard action catalog: built-in defaults plus
// per-action shortcut overrides stored as options.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/llehouerou/notedeck/internal/store"
)

//go:embed default_actions.yaml
var defaultActionsYAML []byte

// ErrUnknownAction is returned when overriding an action the catalog does not define.
var ErrUnknownAction = errors.New("unknown keyboard action")

// Entry is an action or a separator as served to clients.
type Entry struct {
	Name               string   `yaml:"actionName" json:"actionName,omitempty"`
	DefaultShortcuts   []string `yaml:"defaultShortcuts" json:"defaultShortcuts,omitempty"`
	EffectiveShortcuts []string `yaml:"-" json:"effectiveShortcuts,omitempty"`
	Scope              string   `yaml:"scope" json:"scope,omitempty"`
	Description        string   `yaml:"description" json:"description,omitempty"`
	Separator          string   `yaml:"separator" json:"separator,omitempty"`
}

// OptionStore persists shortcut overrides.
type OptionStore interface {
	Option(ctx context.Context, name string) (string, error)
	SetOption(ctx context.Context, name, value string) error
	DeleteOption(ctx context.Context, name string) error
}

// Catalog combines the default actions with stored overrides.
type Catalog struct {
	entries []Entry
	names   map[string]bool
	options OptionStore
	logger  *slog.Logger
}

// ParseDefaults decodes an action list and checks it is well formed.
func ParseDefaults(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse keyboard actions: %w", err)
	}

	seen := make(map[string]bool)
	for i, e := range entries {
		if e.Name == "" {
			if e.Separator == "" {
				return nil, fmt.Errorf("keyboard action %d: needs actionName or separator", i)
			}
			continue
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("keyboard action %s: defined twice", e.Name)
		}
		seen[e.Name] = true
		if e.Scope == "" {
			return nil, fmt.Errorf("keyboard action %s: missing scope", e.Name)
		}
	}
	return entries, nil
}

// New builds a catalog from the embedded defaults.
func New(options OptionStore, logger *slog.Logger) (*Catalog, error) {
	entries, err := ParseDefaults(defaultActionsYAML)
	if err != nil {
		return nil, err
	}
	return NewWithEntries(entries, options, logger), nil
}

// NewWithEntries builds a catalog from explicit defaults.
func NewWithEntries(entries []Entry, options OptionStore, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Name != "" {
			names[e.Name] = true
		}
	}
	return &Catalog{entries: entries, names: names, options: options, logger: logger}
}

// OptionName returns the option holding the shortcut override of an action.
func OptionName(actionName string) string {
	r, size := utf8.DecodeRuneInString(actionName)
	if r == utf8.RuneError {
		return "keyboardShortcuts"
	}
	return "keyboardShortcuts" + string(unicode.ToUpper(r)) + actionName[size:]
}

// Actions returns every entry in catalog order with effective shortcuts resolved.
func (c *Catalog) Actions(ctx context.Context) ([]Entry, error) {
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		e.DefaultShortcuts = slices.Clone(e.DefaultShortcuts)
		if e.Name != "" {
			effective, err := c.effective(ctx, e)
			if err != nil {
				return nil, err
			}
			e.EffectiveShortcuts = effective
		}
		out[i] = e
	}
	return out, nil
}

func (c *Catalog) effective(ctx context.Context, e Entry) ([]string, error) {
	raw, err := c.options.Option(ctx, OptionName(e.Name))
	if errors.Is(err, store.ErrNotFound) {
		return slices.Clone(e.DefaultShortcuts), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read shortcuts of %s: %w", e.Name, err)
	}

	var shortcuts []string
	if err := json.Unmarshal([]byte(raw), &shortcuts); err != nil {
		c.logger.Warn("ignoring malformed shortcut override", "action", e.Name, "error", err)
		return slices.Clone(e.DefaultShortcuts), nil
	}
	return shortcuts, nil
}

// SetShortcuts overrides the effective shortcuts of an action.
// An empty list unbinds the action.
func (c *Catalog) SetShortcuts(ctx context.Context, name string, shortcuts []string) error {
	if !c.names[name] {
		return fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	if shortcuts == nil {
		shortcuts = []string{}
	}
	data, err := json.Marshal(shortcuts)
	if err != nil {
		return err
	}
	return c.options.SetOption(ctx, OptionName(name), string(data))
}

// ResetShortcuts drops the override of an action.
func (c *Catalog) ResetShortcuts(ctx context.Context, name string) error {
	if !c.names[name] {
		return fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	return c.options.DeleteOption(ctx, OptionName(name))
}
