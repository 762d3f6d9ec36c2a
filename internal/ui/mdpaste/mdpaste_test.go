package mdpaste

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/notedeck/internal/ui/action"
	"github.com/llehouerou/notedeck/internal/ui/testutil"
)

func result(t *testing.T, cmd tea.Cmd) Result {
	t.Helper()
	msg, ok := testutil.FindMsg[action.Msg](cmd)
	require.True(t, ok)
	r, ok := msg.Action.(Result)
	require.True(t, ok)
	return r
}

func TestMdPaste_SubmitMultiline(t *testing.T) {
	h := testutil.NewPopupHarness(New("Paste markdown", "", "note-1"))

	h.Type("# Title")
	h.SendEnter()
	h.Type("body")
	cmd := h.SendMsg(tea.KeyMsg{Type: tea.KeyCtrlS})

	r := result(t, cmd)
	assert.Equal(t, "# Title\nbody", r.Text)
	assert.Equal(t, "note-1", r.Context)
	assert.False(t, r.Canceled)
}

func TestMdPaste_InitialText(t *testing.T) {
	h := testutil.NewPopupHarness(New("Paste markdown", "  - item  ", nil))

	r := result(t, h.SendMsg(tea.KeyMsg{Type: tea.KeyCtrlS}))
	assert.Equal(t, "- item", r.Text)
}

func TestMdPaste_EmptySubmitIgnored(t *testing.T) {
	h := testutil.NewPopupHarness(New("Paste markdown", "", nil))

	assert.Nil(t, h.SendMsg(tea.KeyMsg{Type: tea.KeyCtrlS}))
}

func TestMdPaste_EscapeCancels(t *testing.T) {
	h := testutil.NewPopupHarness(New("Paste markdown", "text", "ctx"))

	r := result(t, h.SendEscape())
	assert.True(t, r.Canceled)
	assert.Equal(t, "ctx", r.Context)
}

func TestMdPaste_View(t *testing.T) {
	h := testutil.NewPopupHarness(New("Paste markdown", "", nil))

	assert.True(t, h.ViewContains("Paste markdown"))
	assert.True(t, h.ViewContains("ctrl+s: insert"))
}
