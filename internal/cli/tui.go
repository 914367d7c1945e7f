package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mlindgren/wirecut/pkg/graphio"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NodeListModel - Interactive graph node browser
// =============================================================================

// NodeListModel is the bubbletea model for browsing graph nodes.
// Nodes are shown in topological order (the snapshot is sorted by order);
// the detail pane lists the wire edges touching the selected node.
type NodeListModel struct {
	Graph  graphio.Graph
	Cursor int
	Height int
	Offset int
}

// NewNodeListModel creates a new node list model.
func NewNodeListModel(g graphio.Graph) NodeListModel {
	return NodeListModel{
		Graph:  g,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Graph.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g":
			m.Cursor = 0
			m.Offset = 0
		case "G":
			m.Cursor = len(m.Graph.Nodes) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	title := "Graph Nodes"
	if m.Graph.Name != "" {
		title = m.Graph.Name
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Graph.Nodes) {
		end = len(m.Graph.Nodes)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Graph.Nodes[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		label := n.Label
		if label == "" {
			label = "—"
		}

		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", n.Order),
			n.Kind,
			label,
			strings.Join(n.Wires, ", "),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Order", "Kind", "Label", "Wires").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Graph.Nodes) {
				return lipgloss.NewStyle()
			}
			n := m.Graph.Nodes[actualIdx]

			base := lipgloss.NewStyle()
			if actualIdx == m.Cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			switch n.Kind {
			case graphio.KindCut:
				return base.Foreground(colorRed)
			case graphio.KindSink, graphio.KindSource:
				return base.Foreground(colorGray)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	b.WriteString(m.renderEdges())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Graph.Nodes))))

	return b.String()
}

// renderEdges shows the wire edges touching the selected node.
func (m NodeListModel) renderEdges() string {
	if m.Cursor >= len(m.Graph.Nodes) {
		return ""
	}
	selected := m.Graph.Nodes[m.Cursor]

	var b strings.Builder
	for _, e := range m.Graph.Edges {
		switch selected.ID {
		case e.To:
			b.WriteString(listDimStyle.Render(fmt.Sprintf("  ← %s on wire %s", m.nodeLabel(e.From), e.Wire)))
			b.WriteString("\n")
		case e.From:
			b.WriteString(listDimStyle.Render(fmt.Sprintf("  → %s on wire %s", m.nodeLabel(e.To), e.Wire)))
			b.WriteString("\n")
		}
	}
	if b.Len() == 0 {
		return listDimStyle.Render("  (no edges)") + "\n"
	}
	return b.String()
}

// nodeLabel returns a display label for the node with the given ID.
func (m NodeListModel) nodeLabel(id string) string {
	for _, n := range m.Graph.Nodes {
		if n.ID == id {
			if n.Label != "" {
				return n.Label
			}
			return n.Kind
		}
	}
	return id
}
