package crossflow

// Offsets are the pixel positions of the left, front and right lane
// midpoints inside a band, measured from the band's leading edge.
type Offsets struct {
	Left  float64 `json:"left"`
	Front float64 `json:"front"`
	Right float64 `json:"right"`
}

// Get returns the offset for a lane movement. Turn has no lane and yields 0.
func (o Offsets) Get(m Movement) float64 {
	switch m {
	case Left:
		return o.Left
	case Front:
		return o.Front
	case Right:
		return o.Right
	default:
		return 0
	}
}

// CalcOffsets partitions a band of the given width between the left, front
// and right counts of m, laid out in that order, and returns the midpoint of
// each segment.
//
// The turn count is excluded from the partition: U-turns are drawn as their
// own link and never occupy a lane. m.Turn is ignored; turn is passed
// separately because outbound bands take their U-turns from a different
// approach than their lanes.
//
// A zero total yields all-zero offsets. A band carrying only U-turns
// (total == turn) yields zero fractions instead of dividing by zero.
func CalcOffsets(m Movements, total, turn, width float64) Offsets {
	if total == 0 {
		return Offsets{}
	}

	rest := total - turn
	left := fraction(m.Left, rest)
	front := fraction(m.Front, rest)
	right := fraction(m.Right, rest)

	return Offsets{
		Left:  left / 2 * width,
		Front: (front/2 + left) * width,
		Right: (front + left + right/2) * width,
	}
}

// fraction returns part/whole, or 0 when whole is 0.
func fraction(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole
}
