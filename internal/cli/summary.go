package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/crossflow/pkg/crossflow"
	"github.com/matzehuels/crossflow/pkg/errors"
	cfio "github.com/matzehuels/crossflow/pkg/io"
)

// summaryCommand creates the summary command, which tabulates the
// per-approach totals the diagram is scaled from.
func (c *CLI) summaryCommand() *cobra.Command {
	var (
		stdinFormat string
		asJSON      bool
		strict      bool
		style       styleFlags
	)

	cmd := &cobra.Command{
		Use:   "summary [counts-file]",
		Short: "Show per-approach totals and flow widths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.loadInput(args[0], stdinFormat, &style)
			if err != nil {
				return err
			}
			if err := validateSummary(in, strict); err != nil {
				return err
			}
			totals := crossflow.ComputeTotals(in.counts, in.style.Resolve().MaxWidth)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(totals.Flows())
			}
			fmt.Fprintln(cmd.OutOrStdout(), StyleTitle.Render("Intersection "+inputName(args[0])))
			fmt.Fprintln(cmd.OutOrStdout(), summaryTable(in.counts, totals))
			return nil
		},
	}

	cmd.Flags().StringVar(&stdinFormat, "stdin-format", string(cfio.FormatJSON), "format of counts read from stdin: json, toml")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the totals as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject negative and non-finite counts")
	style.register(cmd)

	return cmd
}

// validateSummary applies the checks the pipeline runs before a build.
func validateSummary(in input, strict bool) error {
	if err := errors.ValidateConfig(in.style); err != nil {
		return err
	}
	if strict {
		return errors.ValidateCounts(in.counts)
	}
	return nil
}

// summaryHeaders label the columns of [summaryTable].
var summaryHeaders = []string{"Approach", "Left", "Front", "Right", "Turn", "In", "Out", "In px", "Out px"}

// summaryTable renders one row per approach: the raw movement counts, the
// inbound and outbound totals, and the resulting line widths.
func summaryTable(c crossflow.Crossroad, totals crossflow.Totals) string {
	rows := make([][]string, 0, len(crossflow.Directions))
	for _, d := range crossflow.Directions {
		m := c.Approach(d)
		rows = append(rows, []string{
			d.Name(),
			crossflow.FormatCount(m.Left),
			crossflow.FormatCount(m.Front),
			crossflow.FormatCount(m.Right),
			crossflow.FormatCount(m.Turn),
			crossflow.FormatCount(totals.In[d]),
			crossflow.FormatCount(totals.Out[d]),
			formatWidth(totals.InWidth[d]),
			formatWidth(totals.OutWidth[d]),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(summaryHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return cell.Foreground(colorWhite)
			case col >= 7:
				return cell.Foreground(colorCyan).Align(lipgloss.Right)
			}
			return cell.Align(lipgloss.Right)
		})

	return t.Render()
}

func formatWidth(w float64) string {
	return strconv.FormatFloat(w, 'f', 2, 64)
}
