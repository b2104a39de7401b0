package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	cfio "github.com/matzehuels/crossflow/pkg/io"
	"github.com/matzehuels/crossflow/pkg/pipeline"
)

// optionOpts holds the flags shared by commands that build an option.
type optionOpts struct {
	output      string
	stdinFormat string
	strict      bool
	noCache     bool
	refresh     bool
	style       styleFlags
}

func (o *optionOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&o.stdinFormat, "stdin-format", string(cfio.FormatJSON), "format of counts read from stdin: json, toml")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "reject negative and non-finite counts")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "rebuild even when cached")
	o.style.register(cmd)
}

// optionCommand creates the option command, which prints the chart option.
func (c *CLI) optionCommand() *cobra.Command {
	var opts optionOpts

	cmd := &cobra.Command{
		Use:   "option [counts-file]",
		Short: "Build the chart option for a counts file",
		Long: `Build the graph-chart option for a counts file (.json or .toml, "-" for stdin)
and print it as JSON, or write it to --output.`,
		Example: `  crossflow option counts.json
  crossflow option counts.toml -o option.json --max-width 14
  cat counts.json | crossflow option -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOption(cmd, args[0], &opts)
		},
	}
	opts.register(cmd)

	return cmd
}

func (c *CLI) runOption(cmd *cobra.Command, path string, opts *optionOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	in, err := c.loadInput(path, opts.stdinFormat, &opts.style)
	if err != nil {
		return err
	}

	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	prog := newProgress(logger)
	pipeOpts := pipeline.Options{
		Counts:  in.counts,
		Config:  in.style,
		Strict:  opts.strict,
		Refresh: opts.refresh,
		Logger:  logger,
	}
	opt, cached, err := runner.BuildWithCacheInfo(ctx, pipeOpts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built option for %s", inputName(path)))

	if opts.output == "" {
		return cfio.WriteOption(cmd.OutOrStdout(), opt)
	}
	if err := cfio.ExportOption(opts.output, opt); err != nil {
		return err
	}

	g := opt.Graph()
	printSuccess("Option written")
	printStats(len(g.Data), len(g.Links), cached)
	printFile(opts.output)
	return nil
}

// buildResult runs the full pipeline for the export-style commands.
func (c *CLI) buildResult(ctx context.Context, path string, opts *optionOpts, formats []string, dotLabels bool) (*pipeline.Result, error) {
	in, err := c.loadInput(path, opts.stdinFormat, &opts.style)
	if err != nil {
		return nil, err
	}

	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	return runner.Execute(ctx, pipeline.Options{
		Counts:    in.counts,
		Config:    in.style,
		Strict:    opts.strict,
		Refresh:   opts.refresh,
		Formats:   formats,
		DOTLabels: dotLabels,
		Logger:    loggerFromContext(ctx),
	})
}
