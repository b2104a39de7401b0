// Package cli implements the crossflow command-line interface.
//
// Commands turn a counts file (JSON or TOML) into the chart option of a
// four-way intersection diagram, export it, summarize it, explore it in the
// terminal, or serve the same pipeline over HTTP.
//
// # Commands
//
//   - template: write an example counts file
//   - option: print or write the chart option JSON
//   - export: write one or more formats (json, dot)
//   - summary: per-approach totals and widths as a table
//   - explore: interactive view of where each movement goes
//   - serve: run the HTTP API
//   - cache, config, completion: housekeeping
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs pipeline and cache events. The logger is carried through the command
// context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/crossflow/pkg/buildinfo"
	"github.com/matzehuels/crossflow/pkg/cache"
	"github.com/matzehuels/crossflow/pkg/config"
	"github.com/matzehuels/crossflow/pkg/observability"
	"github.com/matzehuels/crossflow/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "crossflow"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	config     *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:     newLogger(w, level),
		configPath: config.DefaultPath,
		config:     config.DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Crossflow draws traffic flows through a four-way intersection",
		Long: `Crossflow turns per-approach movement counts (left, straight, right and
U-turn) at a four-way intersection into a graph-chart option that draws each
flow as a line whose width is proportional to its count.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", c.configPath, "application config file")

	root.AddCommand(c.templateCommand())
	root.AddCommand(c.optionCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.summaryCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the application config and configures logging before any
// subcommand runs.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.config = cfg

	level := LogInfo
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		level = lvl
	}
	if c.verbose {
		level = LogDebug
		observability.NewLogHooks(c.Logger).Install()
	}
	c.SetLogLevel(level)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(ctx, noCache), nil, c.Logger)
}

// newCache opens the configured cache backend. An unavailable backend
// degrades to no caching rather than failing the command.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	store, err := c.config.Cache.Open(ctx)
	if err != nil {
		printWarning("Cache disabled: %v", err)
		return cache.NewNullCache()
	}
	return store
}
