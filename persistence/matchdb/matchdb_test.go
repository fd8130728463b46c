package matchdb

import (
	"path/filepath"
	"testing"

	"github.com/nstehr/myco/myco-core/telemetry"
)

func TestDisabledWithoutPath(t *testing.T) {
	db, err := Open("")
	if err != nil || db != nil {
		t.Fatalf("Open(\"\") = %v, %v; want nil, nil", db, err)
	}
	id, err := db.StartMatch("team")
	if err != nil || id != 0 {
		t.Errorf("StartMatch on nil db = %d, %v", id, err)
	}
	if err := db.FinishMatch(id, telemetry.Summary{}); err != nil {
		t.Error(err)
	}
	if ms, err := db.Recent(5); err != nil || ms != nil {
		t.Errorf("Recent on nil db = %v, %v", ms, err)
	}
	if err := db.Close(); err != nil {
		t.Error(err)
	}
}

func TestStartFinishRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "matches.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	first, err := db.StartMatch("team-a")
	if err != nil {
		t.Fatalf("StartMatch: %v", err)
	}
	second, err := db.StartMatch("team-a")
	if err != nil {
		t.Fatalf("StartMatch: %v", err)
	}
	if second <= first {
		t.Fatalf("ids not increasing: %d then %d", first, second)
	}

	err = db.FinishMatch(first, telemetry.Summary{
		Ticks: 300, LastTick: 299, MaxSpores: 25, Sacrifices: 2,
		MeanDecisionMicros: 812.5, StddevDecisionMicros: 40,
	})
	if err != nil {
		t.Fatalf("FinishMatch: %v", err)
	}
	if err := db.FinishMatch(9999, telemetry.Summary{}); err == nil {
		t.Error("expected error finishing an unknown match")
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopen to check the rows were persisted.
	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	ms, err := db.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(ms) != 2 {
		t.Fatalf("got %d matches, want 2", len(ms))
	}
	if ms[0].ID != second || !ms[0].FinishedAt.IsZero() {
		t.Errorf("newest = %+v, want running match %d", ms[0], second)
	}
	got := ms[1]
	if got.ID != first || got.TeamID != "team-a" || got.LastTick != 299 || got.Ticks != 300 ||
		got.MaxSpores != 25 || got.Sacrifices != 2 || got.MeanDecisionMicros != 812.5 || got.StddevDecisionMicros != 40 {
		t.Errorf("finished match = %+v", got)
	}
	if got.StartedAt.IsZero() || got.FinishedAt.IsZero() {
		t.Errorf("timestamps not recorded: %+v", got)
	}

	if ms, _ := db.Recent(1); len(ms) != 1 || ms[0].ID != second {
		t.Errorf("Recent(1) = %+v", ms)
	}
}
