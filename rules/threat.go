package rules

import "github.com/nstehr/myco/myco-core/model"

// EnemyNearby reports whether any hostile tile is within radius (Manhattan)
// of any of our spores.
func EnemyNearby(spores []model.Spore, hostile TileSet, radius int) bool {
	if len(hostile) == 0 {
		return false
	}
	for _, sp := range spores {
		for h := range hostile {
			if model.Manhattan(sp.Position, h) <= radius {
				return true
			}
		}
	}
	return false
}

// SafestSpore picks the spore whose nearest hostile is farthest away, ties
// going to the lexicographically greatest position. With no hostiles it
// returns the greatest-positioned spore, a stable stand-in for "far corner".
func SafestSpore(spores []model.Spore, hostile TileSet) (model.Spore, bool) {
	if len(spores) == 0 {
		return model.Spore{}, false
	}

	best := spores[0]
	bestDist := minDistance(best.Position, hostile)
	for _, sp := range spores[1:] {
		d := minDistance(sp.Position, hostile)
		if d > bestDist || (d == bestDist && best.Position.Less(sp.Position)) {
			best, bestDist = sp, d
		}
	}
	return best, true
}

// minDistance is 0 when hostile is empty so that position alone decides.
func minDistance(p model.Position, hostile TileSet) int {
	first := true
	nearest := 0
	for h := range hostile {
		d := model.Manhattan(p, h)
		if first || d < nearest {
			nearest, first = d, false
		}
	}
	return nearest
}
