package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/notedeck/internal/store"
)

func newTestCatalog(t *testing.T) (*Catalog, *store.Store) {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	c, err := New(s, nil)
	require.NoError(t, err)
	return c, s
}

func find(entries []Entry, name string) (Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

func TestDefaults_AreWellFormed(t *testing.T) {
	entries, err := ParseDefaults(defaultActionsYAML)
	require.NoError(t, err)

	scopes := map[string]bool{"window": true, "note-tree": true, "text-detail": true}
	separators := 0
	for _, e := range entries {
		if e.Name == "" {
			separators++
			continue
		}
		assert.True(t, scopes[e.Scope], "%s has scope %q", e.Name, e.Scope)
		assert.NotEmpty(t, e.Description, e.Name)
	}
	assert.Positive(t, separators)

	for _, name := range []string{
		"jumpToNote", "showRecentChanges", "showAttributes", "showNoteInfo",
		"showNoteRevisions", "showNoteSource", "showLinkMap", "pasteMarkdownIntoText",
		"editBranchPrefix",
	} {
		_, ok := find(entries, name)
		assert.True(t, ok, name)
	}
}

func TestParseDefaults_Rejects(t *testing.T) {
	tests := map[string]string{
		"duplicate":  "- {actionName: a, scope: window}\n- {actionName: a, scope: window}\n",
		"no scope":   "- {actionName: a}\n",
		"empty":      "- {description: x}\n",
		"not a list": "actionName: a\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDefaults([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestActions_DefaultsAreEffective(t *testing.T) {
	c, _ := newTestCatalog(t)

	entries, err := c.Actions(context.Background())
	require.NoError(t, err)

	jump, ok := find(entries, "jumpToNote")
	require.True(t, ok)
	assert.Equal(t, []string{"CommandOrControl+J"}, jump.EffectiveShortcuts)
	assert.Equal(t, jump.DefaultShortcuts, jump.EffectiveShortcuts)

	inbox, ok := find(entries, "createNoteIntoInbox")
	require.True(t, ok)
	assert.Contains(t, inbox.EffectiveShortcuts, "global:CommandOrControl+Alt+P")

	assert.Empty(t, entries[0].Name, "catalog starts with a separator")
	assert.Nil(t, entries[0].EffectiveShortcuts)
}

func TestSetShortcuts(t *testing.T) {
	c, s := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, c.SetShortcuts(ctx, "jumpToNote", []string{"ctrl+g", "F3"}))

	raw, err := s.Option(ctx, "keyboardShortcutsJumpToNote")
	require.NoError(t, err)
	assert.JSONEq(t, `["ctrl+g","F3"]`, raw)

	entries, err := c.Actions(ctx)
	require.NoError(t, err)
	jump, _ := find(entries, "jumpToNote")
	assert.Equal(t, []string{"ctrl+g", "F3"}, jump.EffectiveShortcuts)
	assert.Equal(t, []string{"CommandOrControl+J"}, jump.DefaultShortcuts)

	require.NoError(t, c.SetShortcuts(ctx, "jumpToNote", nil))
	entries, err = c.Actions(ctx)
	require.NoError(t, err)
	jump, _ = find(entries, "jumpToNote")
	assert.Empty(t, jump.EffectiveShortcuts)

	require.NoError(t, c.ResetShortcuts(ctx, "jumpToNote"))
	entries, err = c.Actions(ctx)
	require.NoError(t, err)
	jump, _ = find(entries, "jumpToNote")
	assert.Equal(t, []string{"CommandOrControl+J"}, jump.EffectiveShortcuts)

	assert.ErrorIs(t, c.SetShortcuts(ctx, "nope", nil), ErrUnknownAction)
	assert.ErrorIs(t, c.ResetShortcuts(ctx, "nope"), ErrUnknownAction)
}

func TestActions_MalformedOverrideFallsBack(t *testing.T) {
	c, s := newTestCatalog(t)
	ctx := context.Background()
	require.NoError(t, s.SetOption(ctx, OptionName("showHelp"), "not json"))

	entries, err := c.Actions(ctx)
	require.NoError(t, err)
	help, _ := find(entries, "showHelp")
	assert.Equal(t, []string{"F1"}, help.EffectiveShortcuts)
}

func TestOptionName(t *testing.T) {
	assert.Equal(t, "keyboardShortcutsJumpToNote", OptionName("jumpToNote"))
	assert.Equal(t, "keyboardShortcuts", OptionName(""))
}
