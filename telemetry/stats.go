package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// TickStats is one row of per-tick telemetry.
type TickStats struct {
	Tick       int    `csv:"tick"`
	Spores     int    `csv:"spores"`
	Spawners   int    `csv:"spawners"`
	Nutrients  int    `csv:"nutrients"`
	Actions    int    `csv:"actions"`
	Visited    int    `csv:"visited"`
	Expansions int    `csv:"expansions"`
	Fired      string `csv:"fired"` // tier names joined with '|'
	Sacrifice  string `csv:"sacrifice"`
	Events     int    `csv:"events"`

	DecisionMicros int64 `csv:"decision_us"`
}

// Summary aggregates a match's tick rows.
type Summary struct {
	Ticks    int
	LastTick int

	MaxSpores   int
	MaxSpawners int
	Sacrifices  int

	MeanDecisionMicros   float64
	StddevDecisionMicros float64
	P95DecisionMicros    float64

	MeanExpansions   float64
	StddevExpansions float64
}

// Summarize computes latency and search-effort statistics over rows.
// Empty input yields a zero Summary.
func Summarize(rows []TickStats) Summary {
	var s Summary
	if len(rows) == 0 {
		return s
	}

	latency := make([]float64, len(rows))
	expansions := make([]float64, len(rows))
	for i, r := range rows {
		latency[i] = float64(r.DecisionMicros)
		expansions[i] = float64(r.Expansions)
		s.MaxSpores = max(s.MaxSpores, r.Spores)
		s.MaxSpawners = max(s.MaxSpawners, r.Spawners)
		s.LastTick = max(s.LastTick, r.Tick)
		if r.Sacrifice != "" {
			s.Sacrifices++
		}
	}
	s.Ticks = len(rows)

	s.MeanDecisionMicros, s.StddevDecisionMicros = meanStd(latency)
	s.MeanExpansions, s.StddevExpansions = meanStd(expansions)

	slices.Sort(latency)
	s.P95DecisionMicros = stat.Quantile(0.95, stat.Empirical, latency, nil)
	return s
}

// meanStd returns the mean and sample standard deviation. A single sample
// has zero spread.
func meanStd(x []float64) (mean, std float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}

// LogValue renders the summary for slog.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("ticks", s.Ticks),
		slog.Int("lastTick", s.LastTick),
		slog.Int("maxSpores", s.MaxSpores),
		slog.Int("maxSpawners", s.MaxSpawners),
		slog.Int("sacrifices", s.Sacrifices),
		slog.Float64("meanDecisionUs", s.MeanDecisionMicros),
		slog.Float64("p95DecisionUs", s.P95DecisionMicros),
		slog.Float64("meanExpansions", s.MeanExpansions),
	)
}
