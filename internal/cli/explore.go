package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/crossflow/pkg/crossflow"
	cfio "github.com/matzehuels/crossflow/pkg/io"
)

// exploreCommand creates the explore command, an interactive view of where
// the traffic of each approach goes.
func (c *CLI) exploreCommand() *cobra.Command {
	var style styleFlags

	cmd := &cobra.Command{
		Use:   "explore [counts-file]",
		Short: "Interactively step through the approaches of an intersection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.loadInput(args[0], string(cfio.FormatJSON), &style)
			if err != nil {
				return err
			}
			model := newExploreModel(in.counts, in.style.Resolve().MaxWidth)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	style.register(cmd)

	return cmd
}

// =============================================================================
// exploreModel - Interactive approach browser
// =============================================================================

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreModel is the bubbletea model of the explore command. The cursor
// selects an approach; outbound switches between the traffic arriving from
// it and the traffic leaving through it.
type exploreModel struct {
	counts   crossflow.Crossroad
	totals   crossflow.Totals
	cursor   int
	outbound bool
}

func newExploreModel(c crossflow.Crossroad, maxWidth float64) exploreModel {
	return exploreModel{counts: c, totals: crossflow.ComputeTotals(c, maxWidth)}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(crossflow.Directions)-1 {
				m.cursor++
			}
		case "tab", "i", "o":
			m.outbound = !m.outbound
		}
	}
	return m, nil
}

func (m exploreModel) selected() crossflow.Direction {
	return crossflow.Directions[m.cursor]
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore Intersection"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ approach  tab inbound/outbound  q quit"))
	b.WriteString("\n\n")

	for i, d := range crossflow.Directions {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-6s in %-6s out %s", cursor, d.Name(),
			crossflow.FormatCount(m.totals.In[d]), crossflow.FormatCount(m.totals.Out[d]))
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	d := m.selected()
	if m.outbound {
		b.WriteString(StyleTitle.Render("Leaving through " + d.Name()))
	} else {
		b.WriteString(StyleTitle.Render("Arriving from " + d.Name()))
	}
	b.WriteString("\n")
	b.WriteString(m.movementTable())
	b.WriteString("\n")

	return b.String()
}

// movementTable lists the four movements of the selected approach: where
// each goes (or comes from), its count, its share of the approach total and
// the width of its link.
func (m exploreModel) movementTable() string {
	d := m.selected()
	movements := []crossflow.Movement{crossflow.Left, crossflow.Front, crossflow.Right, crossflow.Turn}

	peer := "To"
	total := m.totals.In[d]
	if m.outbound {
		peer = "From"
		total = m.totals.Out[d]
	}

	rows := make([][]string, 0, len(movements))
	for _, mv := range movements {
		from, to := d, crossflow.Target(d, mv)
		other := to
		if m.outbound {
			from = crossflow.Feeder(d, mv)
			other = from
		}
		count := m.counts.Count(from, mv)
		rows = append(rows, []string{
			mv.String(),
			other.Name(),
			crossflow.FormatCount(count),
			formatShare(count, total),
			formatWidth(m.linkWidth(from, mv)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Movement", peer, "Count", "Share", "Width").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col >= 2 {
				return cell.Align(lipgloss.Right)
			}
			return cell
		}).
		Render()
}

// linkWidth is the drawn width of movement mv from d, matching the chart.
func (m exploreModel) linkWidth(d crossflow.Direction, mv crossflow.Movement) float64 {
	in := m.totals.In[d]
	if in == 0 {
		return 0
	}
	return m.counts.Count(d, mv) / in * m.totals.InWidth[d]
}

func formatShare(part, whole float64) string {
	if whole == 0 {
		return "-"
	}
	return strconv.FormatFloat(part/whole*100, 'f', 1, 64) + "%"
}
