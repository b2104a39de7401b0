// Package crossflow lays out turning-movement diagrams of four-way
// intersections.
//
// # Overview
//
// Traffic counts for the four approaches of an intersection go in, a
// graph-chart option comes out. The option places eight aggregate markers
// around a square (one per approach and sense, sized by normalized flow and
// labeled with the raw count), four arrows on the outbound markers,
// twenty-four zero-size lane anchors and sixteen weighted links: twelve
// turning links from each inbound lane to the outbound lane it feeds, and
// four dotted U-turn links.
//
//	c := crossflow.Crossroad{
//	    North: crossflow.Movements{Left: 1, Front: 2, Right: 1},
//	    South: crossflow.Movements{Front: 3, Turn: 1},
//	}
//	opt := crossflow.Build(c, crossflow.Config{})
//	data, _ := json.Marshal(opt)
//
// # Geometry
//
// The busiest of the eight aggregate flows is drawn [Config.MaxWidth] wide
// and every other flow proportionally. Inside a band, lanes are laid out
// left, front, right from the band's leading edge, as seen facing into the
// intersection; [CalcOffsets] returns the midpoint of each lane.
//
// # Failure Semantics
//
// Nothing is validated here. Negative or fractional counts flow through the
// arithmetic; divisions by zero are guarded so that non-negative input never
// yields NaN. Input validation lives in pkg/errors and is opt-in.
package crossflow
