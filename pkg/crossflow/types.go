package crossflow

// =============================================================================
// Directions
// =============================================================================

// Direction is a compass approach of a four-way intersection.
type Direction int

// Compass approaches.
const (
	North Direction = iota
	South
	West
	East
)

// Directions is the fixed iteration order used for every generated table.
var Directions = [4]Direction{North, South, West, East}

var directionShort = [4]string{"n", "s", "w", "e"}
var directionNames = [4]string{"north", "south", "west", "east"}

// String returns the one-letter name used in node names and input keys.
func (d Direction) String() string { return directionShort[d] }

// Name returns the full lowercase name ("north", "south", ...).
func (d Direction) Name() string { return directionNames[d] }

// ParseDirection accepts either the short ("n") or full ("north") name.
func ParseDirection(s string) (Direction, bool) {
	for i := range directionShort {
		if s == directionShort[i] || s == directionNames[i] {
			return Direction(i), true
		}
	}
	return 0, false
}

// =============================================================================
// Movements
// =============================================================================

// Movement is a maneuver made by traffic arriving from one approach.
type Movement int

// Maneuvers. Turn is a U-turn back out of the same approach.
const (
	Left Movement = iota
	Front
	Right
	Turn
)

// Lanes are the three movements that get a lane-level anchor. U-turns are
// drawn as a separate dotted link between the aggregate nodes.
var Lanes = [3]Movement{Left, Front, Right}

var movementNames = [4]string{"Left", "Front", "Right", "Turn"}

// String returns the capitalized name used as the anchor node suffix.
func (m Movement) String() string { return movementNames[m] }

// Movements holds the counts of each maneuver originating from one approach.
// No invariant is enforced on the values; zero traffic yields zero-width
// elements and malformed values flow through arithmetically.
type Movements struct {
	Left  float64 `json:"left" toml:"left"`
	Front float64 `json:"front" toml:"front"`
	Right float64 `json:"right" toml:"right"`
	Turn  float64 `json:"turn" toml:"turn"`
}

// Get returns the count for m.
func (v Movements) Get(m Movement) float64 {
	switch m {
	case Left:
		return v.Left
	case Front:
		return v.Front
	case Right:
		return v.Right
	default:
		return v.Turn
	}
}

// Total is the inbound total of the approach: all four counts.
func (v Movements) Total() float64 {
	return v.Left + v.Front + v.Right + v.Turn
}

// Crossroad is one snapshot of an intersection's turning-movement counts.
type Crossroad struct {
	North Movements `json:"n" toml:"n"`
	South Movements `json:"s" toml:"s"`
	West  Movements `json:"w" toml:"w"`
	East  Movements `json:"e" toml:"e"`
}

// Approach returns the counts of traffic arriving from d.
func (c Crossroad) Approach(d Direction) Movements {
	switch d {
	case North:
		return c.North
	case South:
		return c.South
	case West:
		return c.West
	default:
		return c.East
	}
}

// Count returns the count of movement m arriving from d.
func (c Crossroad) Count(d Direction, m Movement) float64 {
	return c.Approach(d).Get(m)
}
