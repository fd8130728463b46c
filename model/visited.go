package model

// VisitedSet remembers every tile an owned spore has stood on. It only grows;
// it is the engine's single piece of long-term map memory.
type VisitedSet struct {
	tiles map[Position]struct{}
}

func NewVisitedSet() *VisitedSet {
	return &VisitedSet{tiles: make(map[Position]struct{})}
}

// Observe records the in-bounds positions of the given spores.
func (v *VisitedSet) Observe(m Map, spores []Spore) {
	for _, sp := range spores {
		if m.InBounds(sp.Position) {
			v.tiles[sp.Position] = struct{}{}
		}
	}
}

func (v *VisitedSet) Contains(p Position) bool {
	_, ok := v.tiles[p]
	return ok
}

func (v *VisitedSet) Len() int { return len(v.tiles) }
