package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/shadergraph"
	"github.com/r-kez/k-tools-texture-map-loader/pkg/wiring"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NodePickerModel - Interactive group node selection
// =============================================================================

// NodePickerModel is the bubbletea model for choosing the group nodes to
// wire. Nodes are toggled with space and confirmed with enter.
type NodePickerModel struct {
	Nodes     []*shadergraph.Node
	Cursor    int
	Marked    map[int]bool
	Confirmed bool
	Height    int
	Offset    int
}

// NewNodePickerModel creates a picker over the group nodes of tree. Nodes
// that are already selected start marked.
func NewNodePickerModel(tree *shadergraph.Tree) NodePickerModel {
	m := NodePickerModel{Marked: map[int]bool{}, Height: 15}
	for _, n := range tree.Nodes() {
		if !n.IsGroup() {
			continue
		}
		if n.Selected {
			m.Marked[len(m.Nodes)] = true
		}
		m.Nodes = append(m.Nodes, n)
	}
	return m
}

// Selection returns the names of the marked nodes in list order.
func (m NodePickerModel) Selection() []string {
	var names []string
	for i, n := range m.Nodes {
		if m.Marked[i] {
			names = append(names, n.Name)
		}
	}
	return names
}

func (m NodePickerModel) marked() int {
	n := 0
	for _, on := range m.Marked {
		if on {
			n++
		}
	}
	return n
}

func (m NodePickerModel) Init() tea.Cmd {
	return nil
}

func (m NodePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if len(m.Nodes) == 0 {
				return m, nil
			}
			if m.Marked[m.Cursor] {
				delete(m.Marked, m.Cursor)
			} else if m.marked() < wiring.MaxSelection {
				m.Marked[m.Cursor] = true
			}
		case "enter":
			if m.marked() < wiring.MinSelection {
				return m, nil
			}
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodePickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Group Nodes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ␣ toggle  ⏎ connect  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Nodes))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := " "
		if m.Marked[i] {
			mark = "✓"
		}
		rows = append(rows, []string{cursor, mark, n.DisplayName(), wiring.RoleOf(n.Group).String(), n.Group})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Node", "Role", "Template").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Nodes) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if wiring.RoleOf(m.Nodes[idx].Group) == wiring.RoleUnrecognized {
				base = base.Foreground(colorDim)
			} else if m.Marked[idx] {
				base = base.Foreground(colorGreen)
			}
			if idx == m.Cursor {
				base = base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d selected, %d-%d required]",
		m.marked(), wiring.MinSelection, wiring.MaxSelection)))

	return b.String()
}
