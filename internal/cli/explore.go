package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/exprflow/pkg/depgraph"
	"github.com/matzehuels/exprflow/pkg/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailLabelStyle  = lipgloss.NewStyle().Foreground(colorGray).Width(10)
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		expr     string
		language string
	)

	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Browse a dependency graph interactively",
		Long: `Browse a dependency graph interactively. Rows are listed in layout order;
the panel below shows what the selected computation reads and what reads it.

Keys: ↑/↓ or j/k move, d jumps to the first dependency, u to the first
dependent, g/G to the top/bottom, q quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if expr == "" && len(args) == 0 {
				return fmt.Errorf("requires a file or --expr")
			}
			sources, err := readSources(args, expr)
			if err != nil {
				return err
			}
			g, err := c.buildGraph(cmd.Context(), sources[0], language)
			if err != nil {
				return err
			}
			if g.Table.Len() == 0 {
				printInfo(c.Out, "%s has no computations", sources[0].name)
				return nil
			}
			p := tea.NewProgram(NewExploreModel(sources[0].name, g), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&expr, "expr", "e", "", "inline source to explore")
	cmd.Flags().StringVarP(&language, "lang", "l", "", "source language: go, hcl (default: from file extension)")

	return cmd
}

// ExploreModel is the bubbletea model for browsing a graph.
type ExploreModel struct {
	Title  string
	Graph  *depgraph.Graph
	Keys   []string
	Cursor int
	Offset int
	Height int
}

// NewExploreModel creates a model positioned on the first row.
func NewExploreModel(title string, g *depgraph.Graph) ExploreModel {
	return ExploreModel{
		Title:  title,
		Graph:  g,
		Keys:   g.Table.Keys(),
		Height: 15,
	}
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m = m.moveTo(m.Cursor - 1)
		case "down", "j":
			m = m.moveTo(m.Cursor + 1)
		case "home", "g":
			m = m.moveTo(0)
		case "end", "G":
			m = m.moveTo(len(m.Keys) - 1)
		case "d":
			if deps := m.deps(); len(deps) > 0 {
				m = m.jump(deps[0])
			}
		case "u":
			if users := m.Graph.Dependents(m.Selected()); len(users) > 0 {
				m = m.jump(users[0])
			}
		}
	case tea.WindowSizeMsg:
		// Title, help, blank line and the detail panel take 10 lines.
		m.Height = max(msg.Height-10, 3)
		m = m.moveTo(m.Cursor)
	}
	return m, nil
}

// moveTo places the cursor on row i, clamped, and scrolls it into view.
func (m ExploreModel) moveTo(i int) ExploreModel {
	m.Cursor = min(max(i, 0), len(m.Keys)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m ExploreModel) jump(key string) ExploreModel {
	if i := slices.Index(m.Keys, key); i >= 0 {
		return m.moveTo(i)
	}
	return m
}

// Selected returns the key under the cursor.
func (m ExploreModel) Selected() string {
	if len(m.Keys) == 0 {
		return ""
	}
	return m.Keys[m.Cursor]
}

func (m ExploreModel) deps() []string {
	c, _ := m.Graph.Table.Get(m.Selected())
	return c.Deps
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  d dependency  u dependent  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Keys))
	for i := m.Offset; i < end; i++ {
		key := m.Keys[i]
		role := layout.Classify(m.Graph, key)
		line := fmt.Sprintf("%3d  %s", i, key)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString("  " + roleStyle(role).Render(line))
		}
		b.WriteString("\n")
	}

	key := m.Selected()
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")
	b.WriteString(detailLabelStyle.Render("key") + StyleValue.Render(key) + "\n")
	b.WriteString(detailLabelStyle.Render("role") + layout.Classify(m.Graph, key).String() + "\n")
	b.WriteString(detailLabelStyle.Render("reads") + joinKeys(m.deps()) + "\n")
	b.WriteString(detailLabelStyle.Render("read by") + joinKeys(m.Graph.Dependents(key)) + "\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("[%d/%d]", m.Cursor+1, len(m.Keys))))

	return b.String()
}
