package rules

import (
	"container/heap"

	"github.com/nstehr/myco/myco-core/model"
)

// PathQuery is a single A* request.
type PathQuery struct {
	Map   model.Map
	Start model.Position
	Goal  model.Position
	// Blocked tiles are impassable for every node except Goal when
	// AllowGoalBlocked is set.
	Blocked          TileSet
	AllowGoalBlocked bool
	MaxExpansions    int
}

// PathResult reports the first step of a path. Found is false when the
// search gave up or no path exists; that is a normal outcome.
type PathResult struct {
	Step       model.Position
	Found      bool
	Expansions int
}

type openNode struct {
	f, g int
	seq  int
	pos  model.Position
}

// openHeap orders by f, then g, then insertion order.
type openHeap []openNode

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	if h[i].g != h[j].g {
		return h[i].g < h[j].g
	}
	return h[i].seq < h[j].seq
}
func (h openHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *openHeap) Push(x any)   { *h = append(*h, x.(openNode)) }
func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// NextStep runs a bounded A* from Start to Goal on the 4-connected grid and
// returns the direction of the first move. The Manhattan heuristic is
// consistent here, so a found path is shortest unless the cap cut it off.
func NextStep(q PathQuery) PathResult {
	start, goal := q.Start, q.Goal
	if start == goal || !q.Map.InBounds(goal) {
		return PathResult{}
	}
	if q.Blocked.Has(goal) && !q.AllowGoalBlocked {
		return PathResult{}
	}

	passable := func(p model.Position) bool {
		if !q.Map.InBounds(p) {
			return false
		}
		if q.Blocked.Has(p) {
			return q.AllowGoalBlocked && p == goal
		}
		return true
	}

	open := &openHeap{{f: model.Manhattan(start, goal), g: 0, pos: start}}
	cameFrom := make(map[model.Position]model.Position)
	gScore := map[model.Position]int{start: 0}
	seq := 1
	expansions := 0

	for open.Len() > 0 && expansions < q.MaxExpansions {
		cur := heap.Pop(open).(openNode)
		if cur.g > gScore[cur.pos] {
			continue // stale entry superseded by a cheaper push
		}

		if cur.pos == goal {
			step := goal
			for prev := cameFrom[step]; prev != start; prev = cameFrom[step] {
				step = prev
			}
			return PathResult{Step: step.Sub(start), Found: true, Expansions: expansions}
		}

		expansions++

		for _, n := range model.Neighbors(cur.pos) {
			if !passable(n.Tile) {
				continue
			}
			g := cur.g + 1
			if old, seen := gScore[n.Tile]; seen && g >= old {
				continue
			}
			cameFrom[n.Tile] = cur.pos
			gScore[n.Tile] = g
			heap.Push(open, openNode{f: g + model.Manhattan(n.Tile, goal), g: g, seq: seq, pos: n.Tile})
			seq++
		}
	}
	return PathResult{Expansions: expansions}
}
