package rules

import "github.com/nstehr/myco/myco-core/model"

// Exploration scoring weights: a unit of nutrient is worth three tiles of
// travel.
const (
	NutrientWeight = 3
	DistanceWeight = 1
)

// Rand is the random source used for fallback sampling. *math/rand.Rand
// satisfies it; tests inject a scripted sequence.
type Rand interface {
	Intn(n int) int
}

// ScoreTile rates an exploration candidate seen from start.
func ScoreTile(m model.Map, start, tile model.Position) int {
	return NutrientWeight*m.Nutrient(tile) - DistanceWeight*model.Manhattan(start, tile)
}

// ExploreParams bundles what PickExplorationTarget reads besides the start tile.
type ExploreParams struct {
	Map     model.Map
	Visited *model.VisitedSet
	Blocked TileSet
	Window  int
	Samples int
	Rand    Rand
}

func (p ExploreParams) candidate(start, tile model.Position) bool {
	return tile != start && !p.Visited.Contains(tile) && !p.Blocked.Has(tile)
}

// PickExplorationTarget scans a (2·Window+1)² square around start for the
// best-scoring unvisited, unblocked tile. If the window holds none it falls
// back to Samples random probes across the map. Ties go to the first tile
// found: row-major in the window, probe order when sampling.
func PickExplorationTarget(start model.Position, p ExploreParams) (model.Position, bool) {
	m := p.Map
	var best model.Position
	bestScore, found := 0, false

	x0, x1 := max(0, start.X-p.Window), min(m.Width-1, start.X+p.Window)
	y0, y1 := max(0, start.Y-p.Window), min(m.Height-1, start.Y+p.Window)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			tile := model.Position{X: x, Y: y}
			if !p.candidate(start, tile) {
				continue
			}
			if s := ScoreTile(m, start, tile); !found || s > bestScore {
				best, bestScore, found = tile, s, true
			}
		}
	}
	if found {
		return best, true
	}

	if p.Rand == nil || m.Width <= 0 || m.Height <= 0 {
		return model.Position{}, false
	}
	for i := 0; i < p.Samples; i++ {
		tile := model.Position{X: p.Rand.Intn(m.Width), Y: p.Rand.Intn(m.Height)}
		if !p.candidate(start, tile) {
			continue
		}
		if s := ScoreTile(m, start, tile); !found || s > bestScore {
			best, bestScore, found = tile, s, true
		}
	}
	return best, found
}

// NearestWithin returns the tile in tiles closest to start, if any lies within
// radius. Ties resolve to the lexicographically smallest tile so the result
// does not depend on map iteration order.
func NearestWithin(start model.Position, tiles TileSet, radius int) (model.Position, bool) {
	var best model.Position
	bestDist, found := 0, false
	for t := range tiles {
		d := model.Manhattan(start, t)
		if d > radius {
			continue
		}
		if !found || d < bestDist || (d == bestDist && t.Less(best)) {
			best, bestDist, found = t, d, true
		}
	}
	return best, found
}

// RandomTile picks a uniformly random in-bounds tile.
func RandomTile(m model.Map, rng Rand) model.Position {
	if m.Width <= 0 || m.Height <= 0 {
		return model.Position{}
	}
	return model.Position{X: rng.Intn(m.Width), Y: rng.Intn(m.Height)}
}

// TargetKind records which tier of the selector produced a target.
type TargetKind string

const (
	TargetAttack  TargetKind = "attack"
	TargetExplore TargetKind = "explore"
	TargetClear   TargetKind = "clear"
	TargetRandom  TargetKind = "random"
)

// Target is a chosen destination. AllowBlocked marks goals the spore is meant
// to walk onto even though they are occupied.
type Target struct {
	Pos          model.Position
	Kind         TargetKind
	AllowBlocked bool
}
