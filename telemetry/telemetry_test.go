package telemetry

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/nstehr/myco/myco-core/config"
	"github.com/nstehr/myco/myco-core/ipc"
	"github.com/nstehr/myco/myco-core/model"
)

func TestSummarize(t *testing.T) {
	rows := []TickStats{
		{Tick: 1, Spores: 1, Spawners: 1, Expansions: 10, DecisionMicros: 100},
		{Tick: 2, Spores: 3, Spawners: 1, Expansions: 20, DecisionMicros: 200, Sacrifice: "s1"},
		{Tick: 3, Spores: 2, Spawners: 2, Expansions: 30, DecisionMicros: 300},
	}
	s := Summarize(rows)

	if s.Ticks != 3 || s.LastTick != 3 {
		t.Errorf("ticks = %d last = %d, want 3/3", s.Ticks, s.LastTick)
	}
	if s.MaxSpores != 3 || s.MaxSpawners != 2 {
		t.Errorf("max spores/spawners = %d/%d, want 3/2", s.MaxSpores, s.MaxSpawners)
	}
	if s.Sacrifices != 1 {
		t.Errorf("sacrifices = %d, want 1", s.Sacrifices)
	}
	if math.Abs(s.MeanDecisionMicros-200) > 1e-9 {
		t.Errorf("mean latency = %v, want 200", s.MeanDecisionMicros)
	}
	// Sample stddev of 100, 200, 300.
	if math.Abs(s.StddevDecisionMicros-100) > 1e-9 {
		t.Errorf("stddev latency = %v, want 100", s.StddevDecisionMicros)
	}
	if math.Abs(s.MeanExpansions-20) > 1e-9 {
		t.Errorf("mean expansions = %v, want 20", s.MeanExpansions)
	}
	if s.P95DecisionMicros != 300 {
		t.Errorf("p95 latency = %v, want 300", s.P95DecisionMicros)
	}
}

func TestSummarizeEdgeCases(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero", s)
	}
	s := Summarize([]TickStats{{Tick: 9, DecisionMicros: 42}})
	if s.MeanDecisionMicros != 42 || s.StddevDecisionMicros != 0 {
		t.Errorf("single row: mean %v std %v, want 42/0", s.MeanDecisionMicros, s.StddevDecisionMicros)
	}
}

func TestNilOutputIsNoop(t *testing.T) {
	o, err := NewOutput("", "x")
	if err != nil || o != nil {
		t.Fatalf("NewOutput(\"\") = %v, %v; want nil, nil", o, err)
	}
	if err := o.WriteTick(TickStats{}); err != nil {
		t.Error(err)
	}
	if err := o.WriteDecision(DecisionRecord{}); err != nil {
		t.Error(err)
	}
	if err := o.WriteConfig(config.Default()); err != nil {
		t.Error(err)
	}
	if err := o.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputRoundTrip(t *testing.T) {
	dir := t.TempDir()
	o, err := NewOutput(dir, "7")
	if err != nil {
		t.Fatalf("NewOutput: %v", err)
	}

	ticks := []TickStats{
		{Tick: 1, Spores: 2, Actions: 2, Fired: "sacrifice-or-explore|move-spores", DecisionMicros: 55},
		{Tick: 2, Spores: 3, Actions: 4, Fired: "produce-spore|move-spores", Events: 1, DecisionMicros: 60},
	}
	for _, ts := range ticks {
		if err := o.WriteTick(ts); err != nil {
			t.Fatalf("WriteTick: %v", err)
		}
	}
	err = o.WriteDecision(DecisionRecord{
		Tick:    2,
		Fired:   []string{"produce-spore", "move-spores"},
		Events:  []string{"first_contact"},
		Actions: []ipc.Action{ipc.NewProduceSpore("sp", 4), ipc.NewSporeMove("s", model.Up)},
	})
	if err != nil {
		t.Fatalf("WriteDecision: %v", err)
	}
	if err := o.WriteDecision(DecisionRecord{Tick: 3}); err != nil {
		t.Fatalf("WriteDecision: %v", err)
	}
	if err := o.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := o.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rows, err := ReadTicks(filepath.Join(dir, "ticks-7.csv"))
	if err != nil {
		t.Fatalf("ReadTicks: %v", err)
	}
	if len(rows) != len(ticks) {
		t.Fatalf("read %d rows, want %d", len(rows), len(ticks))
	}
	for i := range ticks {
		if rows[i] != ticks[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], ticks[i])
		}
	}

	logged, err := ReadDecisionLog(filepath.Join(dir, "decisions-7.jsonl.zst"))
	if err != nil {
		t.Fatalf("ReadDecisionLog: %v", err)
	}
	if len(logged) != 2 {
		t.Fatalf("read %d decisions, want 2", len(logged))
	}
	if logged[0].Tick != 2 || len(logged[0].Actions) != 2 || logged[0].Events[0] != "first_contact" {
		t.Errorf("first decision = %+v", logged[0])
	}
	var mv struct {
		Type      string         `json:"type"`
		SporeID   string         `json:"sporeId"`
		Direction model.Position `json:"direction"`
	}
	if err := json.Unmarshal(logged[0].Actions[1], &mv); err != nil {
		t.Fatalf("unmarshal action: %v", err)
	}
	if mv.Type != ipc.TypeSporeMove || mv.SporeID != "s" || mv.Direction != model.Up {
		t.Errorf("logged move = %+v", mv)
	}
	if logged[1].Actions == nil || len(logged[1].Actions) != 0 {
		t.Errorf("empty tick should log an empty action list, got %v", logged[1].Actions)
	}

	if _, err := os.Stat(filepath.Join(dir, "config-7.yaml")); err != nil {
		t.Errorf("config not written: %v", err)
	}
}

func TestDecisionLogWriteAfterClose(t *testing.T) {
	l, err := OpenDecisionLog(filepath.Join(t.TempDir(), "d.jsonl.zst"))
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	if err := l.Write(DecisionRecord{Tick: 1}); err == nil {
		t.Error("expected error writing to a closed log")
	}
	if err := l.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
