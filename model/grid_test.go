package model

import "testing"

func TestMapInBounds(t *testing.T) {
	m := Map{Width: 4, Height: 3}

	tests := []struct {
		p    Position
		want bool
	}{
		{Position{0, 0}, true},
		{Position{3, 2}, true},
		{Position{4, 0}, false},
		{Position{0, 3}, false},
		{Position{-1, 1}, false},
		{Position{1, -1}, false},
	}
	for _, tc := range tests {
		if got := m.InBounds(tc.p); got != tc.want {
			t.Errorf("InBounds(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestMapNutrient(t *testing.T) {
	m := Map{
		Width:  3,
		Height: 2,
		NutrientGrid: [][]int{
			{1, 2, 3},
			{4, 5}, // short row
		},
	}

	tests := []struct {
		p    Position
		want int
	}{
		{Position{0, 0}, 1},
		{Position{2, 0}, 3},
		{Position{1, 1}, 5},
		{Position{2, 1}, 0},  // past short row
		{Position{5, 5}, 0},  // out of bounds
		{Position{-1, 0}, 0}, // out of bounds
	}
	for _, tc := range tests {
		if got := m.Nutrient(tc.p); got != tc.want {
			t.Errorf("Nutrient(%v) = %d, want %d", tc.p, got, tc.want)
		}
	}
}

func TestNeighborsOrderAndDirections(t *testing.T) {
	got := Neighbors(Position{5, 5})
	want := [4]Neighbor{
		{Tile: Position{5, 4}, Direction: Up},
		{Tile: Position{5, 6}, Direction: Down},
		{Tile: Position{4, 5}, Direction: Left},
		{Tile: Position{6, 5}, Direction: Right},
	}
	if got != want {
		t.Errorf("Neighbors = %v, want %v", got, want)
	}
	for _, n := range got {
		if !IsDirection(n.Direction) {
			t.Errorf("direction %v is not canonical", n.Direction)
		}
		if Manhattan(Position{5, 5}, n.Tile) != 1 {
			t.Errorf("neighbor %v is not adjacent", n.Tile)
		}
	}
}

func TestIsDirectionRejectsDiagonal(t *testing.T) {
	for _, d := range []Position{{1, 1}, {0, 0}, {0, 2}, {-1, -1}} {
		if IsDirection(d) {
			t.Errorf("IsDirection(%v) = true, want false", d)
		}
	}
}

func TestManhattan(t *testing.T) {
	if got := Manhattan(Position{1, 2}, Position{4, -2}); got != 7 {
		t.Errorf("Manhattan = %d, want 7", got)
	}
	if got := Manhattan(Position{3, 3}, Position{3, 3}); got != 0 {
		t.Errorf("Manhattan same tile = %d, want 0", got)
	}
}

func TestPositionLess(t *testing.T) {
	if !(Position{1, 9}).Less(Position{2, 0}) {
		t.Error("expected (1,9) < (2,0)")
	}
	if !(Position{2, 0}).Less(Position{2, 1}) {
		t.Error("expected (2,0) < (2,1)")
	}
	if (Position{2, 1}).Less(Position{2, 1}) {
		t.Error("position should not be less than itself")
	}
}

func TestVisitedSetOnlyRecordsObservedInBoundsTiles(t *testing.T) {
	m := Map{Width: 5, Height: 5}
	v := NewVisitedSet()

	v.Observe(m, []Spore{
		{ID: "a", Position: Position{1, 1}},
		{ID: "b", Position: Position{4, 4}},
		{ID: "c", Position: Position{9, 9}}, // off-board, ignored
	})

	if v.Len() != 2 {
		t.Fatalf("Len = %d, want 2", v.Len())
	}
	if !v.Contains(Position{1, 1}) || !v.Contains(Position{4, 4}) {
		t.Error("observed tiles missing from visited set")
	}
	if v.Contains(Position{9, 9}) {
		t.Error("out-of-bounds tile recorded")
	}
	if v.Contains(Position{2, 2}) {
		t.Error("never-occupied tile reported visited")
	}
}

func TestVisitedSetGrowsMonotonically(t *testing.T) {
	m := Map{Width: 5, Height: 5}
	v := NewVisitedSet()

	v.Observe(m, []Spore{{ID: "a", Position: Position{0, 0}}})
	v.Observe(m, []Spore{{ID: "a", Position: Position{0, 1}}})
	v.Observe(m, nil)

	if v.Len() != 2 {
		t.Errorf("Len = %d, want 2", v.Len())
	}
	if !v.Contains(Position{0, 0}) {
		t.Error("earlier tile forgotten after the spore moved")
	}
}

func TestMyTeamMissing(t *testing.T) {
	gs := TeamGameState{YourTeamID: "us"}
	ti := gs.MyTeam()
	if ti.TeamID != "us" || len(ti.Spores) != 0 || len(ti.Spawners) != 0 {
		t.Errorf("MyTeam on empty world = %+v", ti)
	}
}
