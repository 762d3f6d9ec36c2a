// internal/app/layout.go
package app

import (
	"github.com/llehouerou/notedeck/internal/ui"
	"github.com/llehouerou/notedeck/internal/ui/headerbar"
)

// statusHeight is the single status line under the panes.
const statusHeight = 1

// paneHeight is the height shared by the tree and detail panes.
func (m Model) paneHeight() int {
	return max(m.height-headerbar.Height-statusHeight, 0)
}

// treeWidth gives the tree a third of the screen, at least ui.MinTreeWidth.
func (m Model) treeWidth() int {
	w := max(m.width/ui.TreeWidthDivisor, ui.MinTreeWidth)
	return min(w, m.width)
}

// ResizeComponents sizes every component after a window resize.
func (m *Model) ResizeComponents() {
	h := m.paneHeight()
	tw := m.treeWidth()
	m.Tree.SetSize(tw, h)
	m.Detail.SetSize(m.width-tw, h)
	m.Popups.SetSize(m.width, m.height)
}
