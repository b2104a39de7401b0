package crossflow

// =============================================================================
// Turning Map
// =============================================================================

// turning maps (approach, lane) to the approach the traffic leaves through,
// for right-hand traffic. Getting a row wrong produces crossed flows, not a
// crash, so the table is covered row by row in tests.
var turning = [4][3]Direction{
	North: {Left: East, Front: South, Right: West},
	South: {Left: West, Front: North, Right: East},
	West:  {Left: North, Front: East, Right: South},
	East:  {Left: South, Front: West, Right: North},
}

// Target returns the approach that movement m from d exits through.
// A U-turn exits through d itself.
func Target(d Direction, m Movement) Direction {
	if m == Turn {
		return d
	}
	return turning[d][m]
}

// Feeder returns the approach whose movement m exits through out.
// It is the inverse of [Target].
func Feeder(out Direction, m Movement) Direction {
	if m == Turn {
		return out
	}
	for _, d := range Directions {
		if turning[d][m] == out {
			return d
		}
	}
	return out
}

// Feeding returns the three lane counts that exit through out, each taken
// from the approach that feeds it. Turn is set to out's own U-turn count.
func Feeding(c Crossroad, out Direction) Movements {
	return Movements{
		Left:  c.Count(Feeder(out, Left), Left),
		Front: c.Count(Feeder(out, Front), Front),
		Right: c.Count(Feeder(out, Right), Right),
		Turn:  c.Count(out, Turn),
	}
}

// Inbound is the total of traffic arriving from d.
func Inbound(c Crossroad, d Direction) float64 {
	return c.Approach(d).Total()
}

// Outbound is the total of traffic leaving through d: the three lanes that
// feed it plus its own U-turns.
func Outbound(c Crossroad, d Direction) float64 {
	return Feeding(c, d).Total()
}

// =============================================================================
// Geometry
// =============================================================================

// side describes where an approach sits on the square of side BoxSize.
type side struct {
	// vertical is true for W/E, whose tracks run along the y axis.
	vertical bool
	// edge is the perpendicular coordinate of the aggregate nodes, as a
	// multiple of BoxSize (0 or 1).
	edge float64
	// inward is the sign pointing from the edge into the square.
	inward float64
	// inSign orients lane offsets on the inbound track; the outbound track
	// uses the opposite sign. A positive sign also puts the track at base+gap.
	inSign float64
	// rotate is the arrow rotation in degrees for the outbound marker.
	rotate float64
	// color indexes Style.Palette.
	color int
}

var sides = [4]side{
	North: {vertical: false, edge: 0, inward: 1, inSign: -1, rotate: 0, color: 0},
	South: {vertical: false, edge: 1, inward: -1, inSign: 1, rotate: 180, color: 3},
	West:  {vertical: true, edge: 0, inward: 1, inSign: 1, rotate: 90, color: 1},
	East:  {vertical: true, edge: 1, inward: -1, inSign: -1, rotate: 270, color: 2},
}

// track is one aggregate flow (an approach in one sense) placed on the square.
type track struct {
	dir     Direction
	inbound bool
	x, y    float64 // aggregate node position
	sign    float64 // orientation of lane offsets along the track
	inset   float64 // perpendicular coordinate of the lane anchors
}

func newTrack(d Direction, inbound bool, cfg Style) track {
	s := sides[d]
	sign := s.inSign
	if !inbound {
		sign = -sign
	}

	along := (cfg.BoxSize - cfg.Gap) / 2
	if sign > 0 {
		along += cfg.Gap
	}
	edge := s.edge * cfg.BoxSize
	t := track{
		dir:     d,
		inbound: inbound,
		sign:    sign,
		inset:   edge + s.inward*cfg.Height/2,
	}
	if s.vertical {
		t.x, t.y = edge, along
	} else {
		t.x, t.y = along, edge
	}
	return t
}

// name is the aggregate node name, e.g. "ni" or "so".
func (t track) name() string {
	if t.inbound {
		return t.dir.String() + "i"
	}
	return t.dir.String() + "o"
}

// anchor returns the position of a lane anchor lying offset pixels into a
// band of the given width, counted from the track's leading edge.
func (t track) anchor(width, offset float64) (x, y float64) {
	if sides[t.dir].vertical {
		return t.inset, t.y - t.sign*width/2 + t.sign*offset
	}
	return t.x - t.sign*width/2 + t.sign*offset, t.inset
}
