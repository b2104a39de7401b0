package crossflow

import "math"

// Totals are the eight aggregate flows of a crossroad and their widths
// normalized against the busiest one.
type Totals struct {
	In       [4]float64 `json:"in"`
	Out      [4]float64 `json:"out"`
	InWidth  [4]float64 `json:"in_width"`
	OutWidth [4]float64 `json:"out_width"`

	// Max is the largest of the eight totals, or the max width itself when
	// every total is zero. Widths are 0 when Max is still 0.
	Max float64 `json:"max"`
}

// ComputeTotals sums the inbound and outbound flows of every approach and
// scales them so the busiest flow is exactly maxWidth wide.
func ComputeTotals(c Crossroad, maxWidth float64) Totals {
	t := Totals{Max: math.Inf(-1)}
	for _, d := range Directions {
		t.In[d] = Inbound(c, d)
		t.Out[d] = Outbound(c, d)
		t.Max = max(t.Max, t.In[d], t.Out[d])
	}
	if t.Max == 0 {
		t.Max = maxWidth
	}
	for _, d := range Directions {
		t.InWidth[d] = fraction(t.In[d], t.Max) * maxWidth
		t.OutWidth[d] = fraction(t.Out[d], t.Max) * maxWidth
	}
	return t
}

// Total returns the inbound or outbound total of d.
func (t Totals) Total(d Direction, inbound bool) float64 {
	if inbound {
		return t.In[d]
	}
	return t.Out[d]
}

// Width returns the normalized inbound or outbound width of d.
func (t Totals) Width(d Direction, inbound bool) float64 {
	if inbound {
		return t.InWidth[d]
	}
	return t.OutWidth[d]
}

// Flow is one approach's row of a totals report.
type Flow struct {
	Direction string  `json:"direction"`
	In        float64 `json:"in"`
	Out       float64 `json:"out"`
	InWidth   float64 `json:"in_width"`
	OutWidth  float64 `json:"out_width"`
}

// Flows lists the totals per approach in [Directions] order.
func (t Totals) Flows() []Flow {
	flows := make([]Flow, 0, len(Directions))
	for _, d := range Directions {
		flows = append(flows, Flow{
			Direction: d.Name(),
			In:        t.In[d],
			Out:       t.Out[d],
			InWidth:   t.InWidth[d],
			OutWidth:  t.OutWidth[d],
		})
	}
	return flows
}
