package rules

import (
	"testing"

	"github.com/nstehr/myco/myco-core/model"
)

// withNeutrals builds a classification with the given neutral biomass.
func withNeutrals(biomass map[model.Position]int) Classification {
	c := Classification{
		Neutral:        make(TileSet),
		NeutralBiomass: biomass,
		Blocked:        make(TileSet),
	}
	for p := range biomass {
		c.Neutral.Add(p)
		c.Blocked.Add(p)
	}
	return c
}

func TestChooseSacrificeRequiresThreshold(t *testing.T) {
	m := flatMap(10, 10)
	// Spore at (5,5) has only two neutral neighbors.
	c := withNeutrals(map[model.Position]int{pos(5, 4): 1, pos(5, 6): 1})
	spores := []model.Spore{{ID: "a", Position: pos(5, 5), Biomass: 1}}

	if s, ok := ChooseSacrifice(m, spores, c, 3); ok {
		t.Errorf("sacrificed %q with only 2 neutral neighbors", s.Spore.ID)
	}
}

func TestChooseSacrificePicksCheapestSpore(t *testing.T) {
	m := flatMap(20, 20)
	c := withNeutrals(map[model.Position]int{
		// around (2,2)
		pos(2, 1): 4, pos(2, 3): 4, pos(1, 2): 4,
		// around (10,10)
		pos(10, 9): 4, pos(10, 11): 4, pos(9, 10): 4, pos(11, 10): 4,
	})
	spores := []model.Spore{
		{ID: "heavy", Position: pos(10, 10), Biomass: 8},
		{ID: "light", Position: pos(2, 2), Biomass: 5},
		{ID: "free", Position: pos(15, 15), Biomass: 1},
	}

	s, ok := ChooseSacrifice(m, spores, c, 3)
	if !ok {
		t.Fatal("expected a sacrifice")
	}
	if s.Spore.ID != "light" {
		t.Errorf("sacrificed %q, want light (biomass 5)", s.Spore.ID)
	}
}

func TestChooseSacrificeTargetsCheapestNeutral(t *testing.T) {
	m := flatMap(10, 10)
	c := withNeutrals(map[model.Position]int{
		pos(5, 4): 9, // up
		pos(5, 6): 3, // down
		pos(4, 5): 7, // left
		pos(6, 5): 3, // right, ties with down
	})
	spores := []model.Spore{{ID: "a", Position: pos(5, 5), Biomass: 2}}

	s, ok := ChooseSacrifice(m, spores, c, 3)
	if !ok {
		t.Fatal("expected a sacrifice")
	}
	if s.Tile != pos(5, 6) || s.Direction != model.Down {
		t.Errorf("target %v dir %v, want (5,6) down (first cheapest in neighbor order)", s.Tile, s.Direction)
	}
}

func TestChooseSacrificeIgnoresOffBoardNeighbors(t *testing.T) {
	m := flatMap(3, 3)
	// Corner spore: only two in-bounds neighbors exist.
	c := withNeutrals(map[model.Position]int{pos(1, 0): 1, pos(0, 1): 1})
	spores := []model.Spore{{ID: "corner", Position: pos(0, 0), Biomass: 1}}

	if _, ok := ChooseSacrifice(m, spores, c, 3); ok {
		t.Error("corner spore with two neutral neighbors is not surrounded")
	}
	if _, ok := ChooseSacrifice(m, spores, c, 2); !ok {
		t.Error("threshold 2 should accept the corner spore")
	}
}

func TestChooseSacrificeUnknownBiomassRanksLast(t *testing.T) {
	m := flatMap(10, 10)
	c := withNeutrals(map[model.Position]int{pos(5, 6): 50, pos(4, 5): 60})
	// Neutral at (5,4) with no biomass record.
	c.Neutral.Add(pos(5, 4))

	s, ok := ChooseSacrifice(m, []model.Spore{{ID: "a", Position: pos(5, 5)}}, c, 3)
	if !ok {
		t.Fatal("expected a sacrifice")
	}
	if s.Tile != pos(5, 6) {
		t.Errorf("target %v, want (5,6)", s.Tile)
	}
}
