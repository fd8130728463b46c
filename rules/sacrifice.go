package rules

import (
	"math"

	"github.com/nstehr/myco/myco-core/model"
)

// Sacrifice is a committed ram: Spore steps in Direction onto a neutral.
type Sacrifice struct {
	Spore     model.Spore
	Tile      model.Position
	Direction model.Position
}

// neutralNeighbors returns the in-bounds neighbors of p that hold a neutral,
// in canonical direction order.
func neutralNeighbors(m model.Map, p model.Position, neutral TileSet) []model.Neighbor {
	var out []model.Neighbor
	for _, n := range model.Neighbors(p) {
		if m.InBounds(n.Tile) && neutral.Has(n.Tile) {
			out = append(out, n)
		}
	}
	return out
}

// ChooseSacrifice picks the cheapest spore hemmed in by at least threshold
// neutrals and aims it at its cheapest neutral neighbor. Neutrals with no
// recorded biomass rank last. The caller decides when sacrifice is warranted;
// this only answers who and where.
func ChooseSacrifice(m model.Map, spores []model.Spore, c Classification, threshold int) (Sacrifice, bool) {
	var best Sacrifice
	found := false

	for _, sp := range spores {
		adj := neutralNeighbors(m, sp.Position, c.Neutral)
		if len(adj) < threshold || len(adj) == 0 {
			continue
		}

		target := adj[0]
		cost := neutralCost(c, target.Tile)
		for _, n := range adj[1:] {
			if nc := neutralCost(c, n.Tile); nc < cost {
				target, cost = n, nc
			}
		}

		if !found || sp.Biomass < best.Spore.Biomass {
			best = Sacrifice{Spore: sp, Tile: target.Tile, Direction: target.Direction}
			found = true
		}
	}
	return best, found
}

func neutralCost(c Classification, p model.Position) int {
	if b, ok := c.NeutralBiomass[p]; ok {
		return b
	}
	return math.MaxInt
}
