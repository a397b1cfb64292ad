package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/spanviz/pkg/trace/tree"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TreeModel - Interactive fork-join tree browser
// =============================================================================

// treeRow is one visible line of the tree browser.
type treeRow struct {
	node  *tree.Node
	depth int
}

// TreeModel is the bubbletea model for browsing a composition tree.
// Groups fold and unfold; leaves show their interval and thread.
type TreeModel struct {
	Root *tree.Node

	Cursor int
	Offset int
	Height int

	collapsed map[*tree.Node]bool
	rows      []treeRow
}

// NewTreeModel creates a tree browser rooted at root.
func NewTreeModel(root *tree.Node) TreeModel {
	m := TreeModel{
		Root:      root,
		Height:    15,
		collapsed: make(map[*tree.Node]bool),
	}
	m.rebuild()
	return m
}

// rebuild flattens the visible tree into rows, skipping collapsed
// subtrees, and clamps the cursor to the new row count.
func (m *TreeModel) rebuild() {
	m.rows = m.rows[:0]
	m.appendRows(m.Root, 0)
	if m.Cursor >= len(m.rows) {
		m.Cursor = len(m.rows) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m *TreeModel) appendRows(n *tree.Node, depth int) {
	m.rows = append(m.rows, treeRow{node: n, depth: depth})
	if m.collapsed[n] {
		return
	}
	for _, c := range n.Children {
		m.appendRows(c, depth+1)
	}
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			n := m.rows[m.Cursor].node
			if !n.Leaf() {
				m.collapsed[n] = !m.collapsed[n]
				m.rebuild()
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m TreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Trace Tree"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ fold/unfold  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.Offset; i < end; i++ {
		r := m.rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := cursor + strings.Repeat("  ", r.depth) + treeLabel(r.node, m.collapsed[r.node])

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case r.node.Gap:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))

	return b.String()
}

// =============================================================================
// Labels
// =============================================================================

// treeLabel formats one row of the browser. Collapsed groups get a
// closed fold marker.
func treeLabel(n *tree.Node, collapsed bool) string {
	if n.Leaf() {
		return leafLabel(n)
	}
	marker := "▾"
	if collapsed {
		marker = "▸"
	}
	return fmt.Sprintf("%s %s (%d children)", marker, n.Kind, len(n.Children))
}

// leafLabel formats a task or gap leaf for display.
func leafLabel(n *tree.Node) string {
	if n.Gap {
		return fmt.Sprintf("idle %g..%g", n.Start, n.End)
	}
	return fmt.Sprintf("%g..%g @ thread %d", n.Start, n.End, n.Thread)
}
