package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/crossflow/pkg/crossflow"
	"github.com/matzehuels/crossflow/pkg/errors"
	cfio "github.com/matzehuels/crossflow/pkg/io"
)

// stdinPath reads the counts document from standard input.
const stdinPath = "-"

// =============================================================================
// Style Flags
// =============================================================================

// styleFlags override the diagram style on the command line. Only flags
// given explicitly override the underlying style, so --gap 0 is honoured.
type styleFlags struct {
	cmd             *cobra.Command
	boxSize         float64
	gap             float64
	maxWidth        float64
	height          float64
	palette         string // comma-separated, north,west,east,south
	fontColor       string
	textBorderColor string
}

func (f *styleFlags) register(cmd *cobra.Command) {
	f.cmd = cmd
	fl := cmd.Flags()
	fl.Float64Var(&f.boxSize, "box-size", 0, "side of the intersection square (default 100)")
	fl.Float64Var(&f.gap, "gap", 0, "distance between an approach's inbound and outbound tracks (default 40)")
	fl.Float64Var(&f.maxWidth, "max-width", 0, "pixel width of the busiest flow (default 10)")
	fl.Float64Var(&f.height, "marker-height", 0, "thickness of the aggregate markers (default 20)")
	fl.StringVar(&f.palette, "palette", "", "approach colors north,west,east,south (empty entries keep the default)")
	fl.StringVar(&f.fontColor, "font-color", "", "label text color")
	fl.StringVar(&f.textBorderColor, "text-border-color", "", "label outline color")
}

// config returns the flags as a partial style.
func (f *styleFlags) config() (crossflow.Config, error) {
	cfg := crossflow.Config{
		BoxSize:         f.geometry("box-size", f.boxSize),
		Gap:             f.geometry("gap", f.gap),
		MaxWidth:        f.geometry("max-width", f.maxWidth),
		Height:          f.geometry("marker-height", f.height),
		FontColor:       f.fontColor,
		TextBorderColor: f.textBorderColor,
	}
	if f.palette != "" {
		colors := strings.Split(f.palette, ",")
		if len(colors) > len(cfg.Palette) {
			return crossflow.Config{}, errors.New(errors.ErrCodeInvalidColor, "palette has %d colors, at most %d allowed", len(colors), len(cfg.Palette))
		}
		for i, color := range colors {
			cfg.Palette[i] = strings.TrimSpace(color)
		}
	}
	return cfg, nil
}

// geometry returns v when the named flag was set. Without a registered
// command any non-zero value counts as set.
func (f *styleFlags) geometry(name string, v float64) *float64 {
	if f.cmd != nil {
		if !f.cmd.Flags().Changed(name) {
			return nil
		}
		return crossflow.Float(v)
	}
	if v == 0 {
		return nil
	}
	return crossflow.Float(v)
}

// =============================================================================
// Input Loading
// =============================================================================

// input is a loaded counts document with its effective style.
type input struct {
	counts crossflow.Crossroad
	style  crossflow.Config
}

// loadInput reads the counts document at path ("-" for stdin) and layers
// the style: application config, then the document's config table, then
// flags.
func (c *CLI) loadInput(path, stdinFormat string, flags *styleFlags) (input, error) {
	var (
		doc cfio.Document
		err error
	)
	if path == stdinPath {
		doc, err = cfio.ReadDocument(os.Stdin, cfio.Format(stdinFormat))
	} else {
		doc, err = cfio.ImportDocument(path)
	}
	if err != nil {
		return input{}, err
	}

	style := c.config.Style
	if doc.Config != nil {
		style = style.Merge(*doc.Config)
	}
	override, err := flags.config()
	if err != nil {
		return input{}, err
	}
	return input{counts: doc.Crossroad(), style: style.Merge(override)}, nil
}

// inputName is how an input path is shown in messages.
func inputName(path string) string {
	if path == stdinPath {
		return "stdin"
	}
	return path
}
