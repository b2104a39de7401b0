package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/crossflow/pkg/pipeline"
)

// exportCommand creates the export command for writing one or more formats.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		opts       optionOpts
		formatsStr string
		dotLabels  bool
	)

	cmd := &cobra.Command{
		Use:   "export [counts-file]",
		Short: "Export the diagram as JSON and/or Graphviz DOT",
		Long: `Export the diagram of a counts file in one or more formats:

  json  the graph-chart option
  dot   a Graphviz digraph with every node pinned at its chart position

With a single format, --output is the file to write. With several, it is the
base path and each format gets its extension.`,
		Example: `  crossflow export counts.json -f dot -o crossing.dot
  crossflow export counts.json -f json,dot -o out/crossing`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}

			spinner := newSpinnerWithContext(cmd.Context(), "Exporting "+strings.Join(formats, ", ")+"...")
			spinner.Start()
			result, err := c.buildResult(cmd.Context(), args[0], &opts, formats, dotLabels)
			if err != nil {
				spinner.StopWithError("Export failed")
				return err
			}
			spinner.Stop()

			paths, err := writeArtifacts(result.Artifacts, formats, args[0], opts.output)
			if err != nil {
				return err
			}

			printSuccess("Exported %d format(s)", len(formats))
			printStats(result.Stats.NodeCount, result.Stats.LinkCount, result.CacheInfo.BuildHit && result.CacheInfo.ExportHit)
			for _, p := range paths {
				printFile(p)
			}
			if i := slices.Index(formats, pipeline.FormatDOT); i >= 0 {
				printNextStep("Render with Graphviz", fmt.Sprintf("neato -n2 -Tsvg %s", paths[i]))
			}
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot (comma-separated)")
	cmd.Flags().BoolVar(&dotLabels, "dot-labels", false, "show count labels on DOT nodes")

	return cmd
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	formats := strings.Split(s, ",")
	for i := range formats {
		formats[i] = strings.TrimSpace(formats[i])
	}
	return formats
}

// writeArtifacts writes each format and returns the written paths in
// format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	paths := make([]string, len(formats))
	for i, format := range formats {
		paths[i] = outputPath(input, output, format, len(formats) > 1)
		if dir := filepath.Dir(paths[i]); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(paths[i], artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", paths[i], err)
		}
	}
	return paths, nil
}

// outputPath derives the file for one format. Without --output the input
// name is reused ("counts.json" -> "counts.dot"); stdin becomes "crossflow".
func outputPath(input, output, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := output
	if base == "" {
		base = appName
		if input != stdinPath {
			base = strings.TrimSuffix(input, filepath.Ext(input))
		}
	}
	base = strings.TrimSuffix(base, "."+format)
	if output == "" && base+"."+format == input {
		base += ".option"
	}
	return base + "." + format
}
