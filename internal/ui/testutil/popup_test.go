package testutil

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/notedeck/internal/ui/popup"
)

type mockPopup struct {
	content    string
	width      int
	height     int
	keyHistory []string
}

var _ popup.Popup = (*mockPopup)(nil)

func (m *mockPopup) Init() tea.Cmd {
	return func() tea.Msg { return "init" }
}

func (m *mockPopup) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		m.keyHistory = append(m.keyHistory, key.String())
		if key.Type == tea.KeyEnter {
			return m, tea.Batch(
				func() tea.Msg { return "enter-pressed" },
				tea.Sequence(func() tea.Msg { return 1 }, func() tea.Msg { return 2 }),
			)
		}
	}
	return m, nil
}

func (m *mockPopup) View() string {
	return "\x1b[1m" + m.content + "\x1b[0m"
}

func (m *mockPopup) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func TestPopupHarness(t *testing.T) {
	mock := &mockPopup{content: "hello world"}
	h := NewPopupHarness(mock)

	assert.Equal(t, 100, mock.width)
	require.Len(t, h.Commands(), 1)
	assert.Equal(t, "init", ExecuteCmd(h.Commands()[0]))

	h.Type("ab")
	h.SendEscape()
	h.SendUp()
	h.SendDown()
	assert.Equal(t, []string{"a", "b", "esc", "up", "down"}, mock.keyHistory)

	assert.Equal(t, "hello world", h.View())
	assert.True(t, h.ViewContains("world"))

	h.ClearCommands()
	assert.Empty(t, h.Commands())
}

func TestCollectMsgs(t *testing.T) {
	h := NewPopupHarness(&mockPopup{})
	cmd := h.SendEnter()

	assert.Equal(t, []tea.Msg{"enter-pressed", 1, 2}, CollectMsgs(cmd, nil))

	onlyInts := CollectMsgs(cmd, func(m tea.Msg) bool {
		_, ok := m.(int)
		return ok
	})
	assert.Equal(t, []tea.Msg{1, 2}, onlyInts)

	s, ok := FindMsg[string](cmd)
	require.True(t, ok)
	assert.Equal(t, "enter-pressed", s)

	_, ok = FindMsg[float64](cmd)
	assert.False(t, ok)
	assert.Nil(t, CollectMsgs(nil, nil))
}

func TestExecuteAndSend(t *testing.T) {
	mock := &mockPopup{}
	h := NewPopupHarness(mock)

	msg, cmd := h.ExecuteAndSend(func() tea.Msg { return tea.KeyMsg{Type: tea.KeyEnter} })
	assert.Equal(t, tea.KeyMsg{Type: tea.KeyEnter}, msg)
	assert.NotNil(t, cmd)

	msg, cmd = h.ExecuteAndSend(nil)
	assert.Nil(t, msg)
	assert.Nil(t, cmd)
}
