package textview

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/notedeck/internal/ui/popup"
	"github.com/llehouerou/notedeck/internal/ui/testutil"
)

func longText(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %03d", i)
	}
	return strings.Join(lines, "\n")
}

func TestTextView_ShowsTitleAndText(t *testing.T) {
	h := testutil.NewPopupHarness(New("Note source", "# Heading\nbody"))

	assert.True(t, h.ViewContains("Note source"))
	assert.True(t, h.ViewContains("# Heading"))
	assert.True(t, h.ViewContains("body"))
}

func TestTextView_ScrollsToBottomAndTop(t *testing.T) {
	h := testutil.NewPopupHarness(New("Long", longText(200)))
	require.True(t, h.ViewContains("line 000"))

	h.SendKey("G")
	assert.True(t, h.ViewContains("line 199"))
	assert.False(t, h.ViewContains("line 000"))

	h.SendKey("g")
	assert.True(t, h.ViewContains("line 000"))
}

func TestTextView_EscapeCloses(t *testing.T) {
	h := testutil.NewPopupHarness(New("Info", "x"))

	cmd := h.SendEscape()

	_, ok := testutil.FindMsg[popup.CloseMsg](cmd)
	assert.True(t, ok)
}

func TestTextView_CopyWritesClipboard(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	h := testutil.NewPopupHarness(New("Info", "content"))

	_, cmd := h.ExecuteAndSend(h.SendKey("y"))
	assert.Nil(t, cmd)
	assert.Equal(t, "content", copied)
	assert.True(t, h.ViewContains("Copied to clipboard"))
}

func TestTextView_CopyFailureShown(t *testing.T) {
	h := testutil.NewPopupHarness(New("Info", "content"))

	h.SendMsg(CopiedMsg{Err: errors.New("no clipboard utility")})

	assert.True(t, h.ViewContains("Copy failed: no clipboard utility"))
}
