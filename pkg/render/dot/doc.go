// Package dot exports a crossflow option as Graphviz DOT.
//
// # Overview
//
// The chart library lays out and draws the option itself; the DOT export is a
// text description of the same topology for tools that speak Graphviz. Every
// node is pinned at the position the builder computed (pos="x,-y!", y flipped
// because Graphviz grows upwards), so the neato engine reproduces the layout
// instead of computing a new one:
//
//	dot := dot.ToDOT(opt, dot.Options{})
//	err := dot.Validate(ctx, dot)
//
// # Mapping
//
//   - aggregate rects become filled boxes sized in points, labelled with the total
//   - arrows become triangles rotated like the chart's symbolRotate
//   - anchors become zero-size points
//   - turning links become edges with penwidth = link width; U-turns are dotted
//   - zero-width links are emitted invisible so the topology stays complete
//
// # Dependencies
//
// [Validate] parses the output with [github.com/goccy/go-graphviz], the same
// in-process Graphviz build used elsewhere in the module.
package dot
