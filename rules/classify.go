package rules

import "github.com/nstehr/myco/myco-core/model"

// TileSet is a set of board positions.
type TileSet map[model.Position]struct{}

func (s TileSet) Add(p model.Position) { s[p] = struct{}{} }

func (s TileSet) Has(p model.Position) bool {
	_, ok := s[p]
	return ok
}

// Classification is the per-tick view of who occupies which tile. It is
// recomputed every tick because everything on the board moves.
type Classification struct {
	Neutral         TileSet
	NeutralBiomass  map[model.Position]int
	HostileSpores   TileSet
	HostileSpawners TileSet
	// Blocked is the union of the three occupied sets, minus our own tiles.
	// Path interiors must avoid it; a goal may be exempted.
	Blocked TileSet
}

// Classify derives occupancy sets from a snapshot. Anything not ours and not
// neutral is hostile.
func Classify(gs model.TeamGameState) Classification {
	me := gs.YourTeamID
	neutral := gs.Constants.NeutralTeamID

	c := Classification{
		Neutral:         make(TileSet),
		NeutralBiomass:  make(map[model.Position]int),
		HostileSpores:   make(TileSet),
		HostileSpawners: make(TileSet),
		Blocked:         make(TileSet),
	}

	for _, sp := range gs.World.Spores {
		switch sp.TeamID {
		case me:
		case neutral:
			c.Neutral.Add(sp.Position)
			c.NeutralBiomass[sp.Position] = sp.Biomass
			c.Blocked.Add(sp.Position)
		default:
			c.HostileSpores.Add(sp.Position)
			c.Blocked.Add(sp.Position)
		}
	}
	for _, spw := range gs.World.Spawners {
		if spw.TeamID == me || spw.TeamID == neutral {
			continue
		}
		c.HostileSpawners.Add(spw.Position)
		c.Blocked.Add(spw.Position)
	}

	for _, sp := range gs.MyTeam().Spores {
		delete(c.Blocked, sp.Position)
	}
	return c
}
