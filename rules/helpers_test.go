package rules

import (
	"math/rand"
	"testing"

	"github.com/nstehr/myco/myco-core/config"
	"github.com/nstehr/myco/myco-core/ipc"
	"github.com/nstehr/myco/myco-core/model"
)

const (
	us      = "us"
	them    = "them"
	neutral = "neutral"
)

// scriptedRand replays a fixed sequence, reduced modulo n.
type scriptedRand struct {
	vals []int
	i    int
}

func (r *scriptedRand) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

func pos(x, y int) model.Position { return model.Position{X: x, Y: y} }

func tiles(ps ...model.Position) TileSet {
	s := make(TileSet, len(ps))
	for _, p := range ps {
		s.Add(p)
	}
	return s
}

func flatMap(w, h int) model.Map {
	grid := make([][]int, h)
	for y := range grid {
		grid[y] = make([]int, w)
	}
	return model.Map{Width: w, Height: h, NutrientGrid: grid}
}

// snapshot builds a game state where our team owns spores and spawners and
// others holds every non-owned piece on the board.
func snapshot(tick int, m model.Map, mine []model.Spore, spawners []model.Spawner, nutrients int, others ...model.Spore) model.TeamGameState {
	for i := range mine {
		mine[i].TeamID = us
	}
	for i := range spawners {
		spawners[i].TeamID = us
	}
	all := append(append([]model.Spore{}, mine...), others...)
	return model.TeamGameState{
		Tick:       tick,
		YourTeamID: us,
		Constants:  model.GameConstants{NeutralTeamID: neutral},
		World: model.World{
			Map:      m,
			Spores:   all,
			Spawners: append([]model.Spawner{}, spawners...),
			TeamInfos: map[string]model.TeamInfo{
				us: {TeamID: us, Nutrients: nutrients, Spores: mine, Spawners: spawners},
			},
		},
		TeamIDs: []string{us, them},
	}
}

func newTestEngine(t *testing.T, cfg *config.Config) *Engine {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	e, err := NewEngine(cfg, DefaultRules(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func countByType(actions []ipc.Action) map[string]int {
	out := make(map[string]int)
	for _, a := range actions {
		out[a.ActionType()]++
	}
	return out
}
