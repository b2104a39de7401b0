package dot

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/crossflow/pkg/crossflow"
)

// Options configures DOT export.
type Options struct {
	// Scale converts chart pixels to Graphviz points. Zero means 1.
	Scale float64

	// Labels shows aggregate totals as node labels. Arrows and anchors never
	// carry labels.
	Labels bool
}

// pointsPerInch converts Graphviz node sizes, which are given in inches.
const pointsPerInch = 72.0

// ToDOT converts an option into a pinned-position DOT digraph.
// An option without a graph series yields an empty digraph.
func ToDOT(opt crossflow.Option, opts Options) string {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	var buf bytes.Buffer
	buf.WriteString("digraph crossflow {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [fixedsize=true, fontsize=10, penwidth=0];\n")
	buf.WriteString("  edge [arrowhead=none];\n")

	g := opt.Graph()
	if g == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	buf.WriteString("\n")
	for _, n := range g.Data {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Name, strings.Join(nodeAttrs(n, scale, opts.Labels), ", "))
	}

	buf.WriteString("\n")
	for _, l := range g.Links {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", l.Source, l.Target, strings.Join(linkAttrs(l, scale), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n crossflow.Node, scale float64, labels bool) []string {
	attrs := []string{fmt.Sprintf("pos=\"%s,%s!\"", num(n.X*scale), num(-n.Y*scale))}

	switch {
	case n.IsAnchor():
		return append(attrs, "shape=point", "width=0", "height=0", `label=""`)
	case n.Symbol == crossflow.SymbolTriangle:
		attrs = append(attrs, "shape=triangle", `label=""`)
		// The chart rotates counterclockwise, Graphviz clockwise.
		if n.SymbolRotate != 0 {
			attrs = append(attrs, "orientation="+num(math.Mod(360-n.SymbolRotate, 360)))
		}
	default:
		attrs = append(attrs, "shape=box")
		label := ""
		if labels && n.Label != nil && n.Label.Show {
			label = n.Label.Formatter
			if n.Label.Color != "" {
				attrs = append(attrs, fmt.Sprintf("fontcolor=%q", n.Label.Color))
			}
		}
		attrs = append(attrs, fmt.Sprintf("label=%q", label))
	}

	attrs = append(attrs,
		"width="+num(n.SymbolSize[0]*scale/pointsPerInch),
		"height="+num(n.SymbolSize[1]*scale/pointsPerInch),
	)
	if n.ItemStyle != nil && n.ItemStyle.Color != "" {
		attrs = append(attrs, `style=filled`, fmt.Sprintf("fillcolor=%q", n.ItemStyle.Color))
	}
	return attrs
}

func linkAttrs(l crossflow.Link, scale float64) []string {
	ls := l.LineStyle
	if ls.Width == 0 {
		return []string{"style=invis"}
	}
	attrs := []string{"penwidth=" + num(ls.Width*scale)}
	if ls.Color != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", ls.Color))
	}
	if ls.Type == crossflow.LineTypeDotted {
		attrs = append(attrs, "style=dotted")
	}
	return attrs
}

// num formats a coordinate without exponent or trailing zeros.
func num(v float64) string {
	if v == 0 {
		return "0" // avoids "-0" for negated zero coordinates
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Validate parses dot with Graphviz and reports syntax errors. It returns
// the context's error without parsing when ctx is already done.
func Validate(ctx context.Context, dot string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	return g.Close()
}
