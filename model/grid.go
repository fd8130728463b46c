package model

// Position is a tile coordinate. The harness uses the same shape for
// direction vectors, so a Position is also what SPORE_MOVE carries.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Less orders positions lexicographically by (X, Y).
func (p Position) Less(o Position) bool {
	if p.X != o.X {
		return p.X < o.X
	}
	return p.Y < o.Y
}

func (p Position) Add(d Position) Position { return Position{X: p.X + d.X, Y: p.Y + d.Y} }
func (p Position) Sub(o Position) Position { return Position{X: p.X - o.X, Y: p.Y - o.Y} }

// Canonical single-step move vectors. Y grows downward.
var (
	Up    = Position{X: 0, Y: -1}
	Down  = Position{X: 0, Y: 1}
	Left  = Position{X: -1, Y: 0}
	Right = Position{X: 1, Y: 0}
)

// Directions is the neighbor order used everywhere a tie must be broken.
var Directions = [4]Position{Up, Down, Left, Right}

// IsDirection reports whether d is one of the four canonical vectors.
func IsDirection(d Position) bool {
	for _, c := range Directions {
		if c == d {
			return true
		}
	}
	return false
}

// Neighbor pairs an adjacent tile with the move that reaches it.
type Neighbor struct {
	Tile      Position
	Direction Position
}

// Neighbors returns the four adjacent tiles of p, unfiltered by bounds.
func Neighbors(p Position) [4]Neighbor {
	var out [4]Neighbor
	for i, d := range Directions {
		out[i] = Neighbor{Tile: p.Add(d), Direction: d}
	}
	return out
}

func Manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// InBounds reports whether p lies on the board.
func (m Map) InBounds(p Position) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// Nutrient returns the nutrient value at p. Returns 0 for out-of-bounds
// coordinates or a short grid row.
func (m Map) Nutrient(p Position) int {
	if !m.InBounds(p) || p.Y >= len(m.NutrientGrid) {
		return 0
	}
	row := m.NutrientGrid[p.Y]
	if p.X >= len(row) {
		return 0
	}
	return row[p.X]
}
