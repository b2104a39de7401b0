package crossflow

import "strconv"

// =============================================================================
// Constants
// =============================================================================

// Sizes of the generated topology.
const (
	AggregateCount = 8  // one rect per approach and sense
	ArrowCount     = 4  // one triangle per outbound flow
	AnchorCount    = 24 // left/front/right per aggregate flow
	NodeCount      = AggregateCount + ArrowCount + AnchorCount

	TurningLinkCount = 12 // left/front/right per approach
	UTurnLinkCount   = 4  // one dotted link per approach
	LinkCount        = TurningLinkCount + UTurnLinkCount
)

// Node symbols.
const (
	SymbolRect     = "rect"
	SymbolTriangle = "triangle"
)

// LineTypeDotted marks U-turn links.
const LineTypeDotted = "dotted"

var curveness = [3]float64{Left: -0.5, Front: 0, Right: 0.5}

// =============================================================================
// Option - Chart Option Schema
// =============================================================================

// Option is a graph-chart option document. It serializes to the JSON shape
// an ECharts instance accepts in setOption.
type Option struct {
	AnimationDurationUpdate int      `json:"animationDurationUpdate"`
	AnimationEasingUpdate   string   `json:"animationEasingUpdate"`
	Series                  []Series `json:"series"`
}

// Series is a fixed-layout graph series.
type Series struct {
	Type      string           `json:"type"`
	Layout    string           `json:"layout"`
	Top       float64          `json:"top"`
	Left      float64          `json:"left"`
	Bottom    float64          `json:"bottom"`
	Right     float64          `json:"right"`
	Data      []Node           `json:"data"`
	Links     []Link           `json:"links"`
	LineStyle *SeriesLineStyle `json:"lineStyle,omitempty"`
}

// SeriesLineStyle holds defaults shared by every link of a series.
type SeriesLineStyle struct {
	Opacity float64 `json:"opacity"`
}

// Node is a positioned graph node. Anchors are rects of size zero.
type Node struct {
	Name         string      `json:"name"`
	X            float64     `json:"x"`
	Y            float64     `json:"y"`
	Symbol       string      `json:"symbol"`
	SymbolSize   [2]float64  `json:"symbolSize"`
	SymbolOffset *[2]float64 `json:"symbolOffset,omitempty"`
	SymbolRotate float64     `json:"symbolRotate,omitempty"`
	Label        *Label      `json:"label,omitempty"`
	ItemStyle    *ItemStyle  `json:"itemStyle,omitempty"`
}

// IsAnchor reports whether n is a zero-size link endpoint.
func (n *Node) IsAnchor() bool {
	return n.Symbol == SymbolRect && n.SymbolSize == [2]float64{}
}

// Label configures a node or link label.
type Label struct {
	Show            bool    `json:"show"`
	Color           string  `json:"color,omitempty"`
	TextBorderColor string  `json:"textBorderColor,omitempty"`
	TextBorderWidth float64 `json:"textBorderWidth,omitempty"`
	FontSize        float64 `json:"fontSize,omitempty"`
	Formatter       string  `json:"formatter,omitempty"`
}

// ItemStyle holds the fill of a node.
type ItemStyle struct {
	Color string `json:"color"`
}

// Link connects two nodes by name. Width is always emitted: a zero-width
// link must not fall back to the chart's default width.
type Link struct {
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Label     *Label    `json:"label,omitempty"`
	LineStyle LineStyle `json:"lineStyle"`
}

// LineStyle configures a single link.
type LineStyle struct {
	Width     float64 `json:"width"`
	Type      string  `json:"type,omitempty"`
	Curveness float64 `json:"curveness"`
	Color     string  `json:"color,omitempty"`
}

// Graph returns the single graph series of the option.
func (o *Option) Graph() *Series {
	if len(o.Series) == 0 {
		return nil
	}
	return &o.Series[0]
}

// Node looks up a node by name.
func (o *Option) Node(name string) (*Node, bool) {
	g := o.Graph()
	if g == nil {
		return nil, false
	}
	for i := range g.Data {
		if g.Data[i].Name == name {
			return &g.Data[i], true
		}
	}
	return nil, false
}

// Link looks up a link by its endpoints.
func (o *Option) Link(source, target string) (*Link, bool) {
	g := o.Graph()
	if g == nil {
		return nil, false
	}
	for i := range g.Links {
		if g.Links[i].Source == source && g.Links[i].Target == target {
			return &g.Links[i], true
		}
	}
	return nil, false
}

// =============================================================================
// Build
// =============================================================================

// Build lays out the flow diagram of c.
//
// It never fails and never mutates c: every call returns a fresh option with
// 36 nodes and 16 links. Non-negative input never produces NaN; the only
// divisions by zero (empty intersection, empty approach, band of U-turns
// only) are guarded and yield zero sizes.
func Build(c Crossroad, cfg Config) Option {
	style := cfg.Resolve()
	t := ComputeTotals(c, style.MaxWidth)

	b := builder{c: c, cfg: style, totals: t}
	nodes := make([]Node, 0, NodeCount)
	links := make([]Link, 0, LinkCount)

	for _, d := range Directions {
		nodes = append(nodes, b.aggregate(newTrack(d, true, style)), b.aggregate(newTrack(d, false, style)))
	}
	for _, d := range Directions {
		nodes = append(nodes, b.arrow(newTrack(d, false, style)))
	}
	for _, d := range Directions {
		nodes = append(nodes, b.anchors(newTrack(d, true, style))...)
		nodes = append(nodes, b.anchors(newTrack(d, false, style))...)
	}

	for _, d := range Directions {
		links = append(links, b.turningLinks(d)...)
	}
	for _, d := range Directions {
		links = append(links, b.uturnLink(d))
	}

	return Option{
		AnimationDurationUpdate: 1500,
		AnimationEasingUpdate:   "quinticInOut",
		Series: []Series{{
			Type:      "graph",
			Layout:    "none",
			Top:       style.Height,
			Left:      style.Height,
			Bottom:    style.Height,
			Right:     style.Height,
			Data:      nodes,
			Links:     links,
			LineStyle: &SeriesLineStyle{Opacity: 0.9},
		}},
	}
}

type builder struct {
	c      Crossroad
	cfg    Style
	totals Totals
}

func (b *builder) aggregate(tr track) Node {
	width := b.totals.Width(tr.dir, tr.inbound)
	size := [2]float64{width, b.cfg.Height}
	if sides[tr.dir].vertical {
		size = [2]float64{b.cfg.Height, width}
	}
	return Node{
		Name:       tr.name(),
		X:          tr.x,
		Y:          tr.y,
		Symbol:     SymbolRect,
		SymbolSize: size,
		Label: &Label{
			Show:            true,
			Color:           b.cfg.FontColor,
			TextBorderColor: b.cfg.TextBorderColor,
			TextBorderWidth: 2,
			FontSize:        10,
			Formatter:       FormatCount(b.totals.Total(tr.dir, tr.inbound)),
		},
		ItemStyle: &ItemStyle{Color: b.cfg.Color(tr.dir)},
	}
}

// arrow is the triangle pointing out of the square on an outbound track.
func (b *builder) arrow(tr track) Node {
	s := sides[tr.dir]
	shift := -s.inward * b.cfg.Height / 1.6
	offset := [2]float64{0, shift}
	if s.vertical {
		offset = [2]float64{shift, 0}
	}
	return Node{
		Name:         tr.name() + "Arrow",
		X:            tr.x,
		Y:            tr.y,
		Symbol:       SymbolTriangle,
		SymbolSize:   [2]float64{b.totals.OutWidth[tr.dir] * 1.6, b.cfg.Height * 0.4},
		SymbolOffset: &offset,
		SymbolRotate: s.rotate,
		Label:        &Label{Show: false},
		ItemStyle:    &ItemStyle{Color: b.cfg.Color(tr.dir)},
	}
}

// anchors places the three lane endpoints of a track. Inbound lanes are the
// approach's own movements; outbound lanes are the movements feeding it.
func (b *builder) anchors(tr track) []Node {
	lanes := b.c.Approach(tr.dir)
	if !tr.inbound {
		lanes = Feeding(b.c, tr.dir)
	}
	width := b.totals.Width(tr.dir, tr.inbound)
	off := CalcOffsets(lanes, b.totals.Total(tr.dir, tr.inbound), lanes.Turn, width)

	nodes := make([]Node, 0, len(Lanes))
	for _, m := range Lanes {
		x, y := tr.anchor(width, off.Get(m))
		nodes = append(nodes, Node{
			Name:   tr.name() + m.String(),
			X:      x,
			Y:      y,
			Symbol: SymbolRect,
			Label:  &Label{Show: false},
		})
	}
	return nodes
}

func (b *builder) turningLinks(d Direction) []Link {
	color := b.cfg.Color(d)
	links := make([]Link, 0, len(Lanes))
	for _, m := range Lanes {
		links = append(links, Link{
			Source: d.String() + "i" + m.String(),
			Target: Target(d, m).String() + "o" + m.String(),
			Label:  &Label{Show: false},
			LineStyle: LineStyle{
				Width:     b.share(d, m),
				Curveness: curveness[m],
				Color:     color,
			},
		})
	}
	return links
}

func (b *builder) uturnLink(d Direction) Link {
	return Link{
		Source: d.String() + "i",
		Target: d.String() + "o",
		Label:  &Label{Show: false},
		LineStyle: LineStyle{
			Width: b.share(d, Turn),
			Type:  LineTypeDotted,
			Color: b.cfg.Color(d),
		},
	}
}

// share is the part of d's inbound width taken by movement m, or 0 for an
// approach without traffic.
func (b *builder) share(d Direction, m Movement) float64 {
	return fraction(b.c.Count(d, m), b.totals.In[d]) * b.totals.InWidth[d]
}

// FormatCount renders a raw count the way node labels show it: integers
// without a decimal point, fractions in their shortest form.
func FormatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
