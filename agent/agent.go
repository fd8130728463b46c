package agent

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nstehr/myco/myco-core/ipc"
	"github.com/nstehr/myco/myco-core/model"
	"github.com/nstehr/myco/myco-core/persistence/matchdb"
	"github.com/nstehr/myco/myco-core/rules"
	"github.com/nstehr/myco/myco-core/telemetry"
)

// Agent owns the decision-making for a single team session. It turns each
// snapshot into a COMMAND and keeps per-match telemetry and history.
type Agent struct {
	Engine    *rules.Engine
	History   *matchdb.DB // nil disables match history
	OutputDir string      // empty disables telemetry files

	mu    sync.Mutex
	match *matchRun
	prev  *colonySnapshot
}

// matchRun is the bookkeeping for the game currently being played.
type matchRun struct {
	id    int64
	label string
	team  string
	out   *telemetry.Output
	rows  []telemetry.TickStats
}

func New(engine *rules.Engine, history *matchdb.DB, outputDir string) *Agent {
	return &Agent{Engine: engine, History: history, OutputDir: outputDir}
}

// HandleGameState decodes a TEAM_GAME_STATE frame and replies with the tick's
// COMMAND.
func (a *Agent) HandleGameState(env ipc.Envelope) (any, error) {
	var gs model.TeamGameState
	if err := json.Unmarshal(env.Raw, &gs); err != nil {
		return nil, fmt.Errorf("unmarshal TeamGameState: %w", err)
	}
	return a.Step(gs), nil
}

// Step runs the engine on one snapshot. A tick lower than the previous one
// means the harness started a new game: the match record is rolled and the
// engine forgets what it learned.
func (a *Agent) Step(gs model.TeamGameState) ipc.CommandMessage {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, msg := range gs.LastTickErrors {
		slog.Warn("harness rejected action", "tick", gs.Tick, "error", msg)
	}

	events := detectEvents(gs, a.prev, a.Engine.Config.Population.MaxSpores)
	if hasEvent(events, EventNewGame) {
		slog.Info("new game detected", "tick", gs.Tick, "previousTick", a.prev.tick)
		a.finishMatch()
		a.Engine.Reset()
	}
	if a.match == nil {
		a.startMatch(gs.YourTeamID)
	}
	for _, e := range events {
		slog.Info("colony event", "kind", e.Kind, "tick", e.Tick, "detail", e.Detail)
	}
	snap := takeSnapshot(gs)
	a.prev = &snap

	start := time.Now()
	d := a.Engine.Evaluate(gs)
	elapsed := time.Since(start)

	team := gs.MyTeam()
	stats := telemetry.TickStats{
		Tick:           gs.Tick,
		Spores:         len(team.Spores),
		Spawners:       len(team.Spawners),
		Nutrients:      team.Nutrients,
		Actions:        len(d.Actions),
		Visited:        a.Engine.Memory.Visited.Len(),
		Expansions:     d.Expansions,
		Fired:          strings.Join(d.Fired, "|"),
		Sacrifice:      d.Sacrifice,
		Events:         len(events),
		DecisionMicros: elapsed.Microseconds(),
	}
	a.record(stats, d, events)

	slog.Info("tick decided",
		"tick", gs.Tick,
		"spores", stats.Spores,
		"spawners", stats.Spawners,
		"nutrients", stats.Nutrients,
		"actions", stats.Actions,
		"fired", d.Fired,
		"elapsed", elapsed,
	)

	return ipc.NewCommand(gs.Tick, d.Actions)
}

func (a *Agent) record(stats telemetry.TickStats, d rules.Decision, events []Event) {
	m := a.match
	m.rows = append(m.rows, stats)
	if err := m.out.WriteTick(stats); err != nil {
		slog.Warn("tick telemetry write failed", "match", m.label, "error", err)
	}
	err := m.out.WriteDecision(telemetry.DecisionRecord{
		Tick:      d.Tick,
		Fired:     d.Fired,
		Sacrifice: d.Sacrifice,
		Events:    eventKinds(events),
		Actions:   d.Actions,
	})
	if err != nil {
		slog.Warn("decision log write failed", "match", m.label, "error", err)
	}
}

func (a *Agent) startMatch(team string) {
	m := &matchRun{team: team}

	id, err := a.History.StartMatch(team)
	if err != nil {
		slog.Warn("match history unavailable", "error", err)
	}
	m.id = id
	if id > 0 {
		m.label = strconv.FormatInt(id, 10)
	} else {
		m.label = uuid.New().String()
	}

	out, err := telemetry.NewOutput(a.OutputDir, m.label)
	if err != nil {
		slog.Warn("telemetry disabled for match", "match", m.label, "error", err)
	}
	m.out = out
	if err := out.WriteConfig(a.Engine.Config); err != nil {
		slog.Warn("config snapshot failed", "match", m.label, "error", err)
	}

	slog.Info("match started", "match", m.label, "team", team)
	a.match = m
}

func (a *Agent) finishMatch() {
	m := a.match
	if m == nil {
		return
	}
	a.match = nil

	summary := telemetry.Summarize(m.rows)
	if m.id > 0 {
		if err := a.History.FinishMatch(m.id, summary); err != nil {
			slog.Warn("match history update failed", "match", m.label, "error", err)
		}
	}
	if err := m.out.Close(); err != nil {
		slog.Warn("telemetry close failed", "match", m.label, "error", err)
	}
	slog.Info("match finished", "match", m.label, "team", m.team, "summary", summary)
}

// Close finalizes the running match. The agent can keep playing afterwards;
// the next snapshot starts a new match.
func (a *Agent) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.finishMatch()
	a.prev = nil
}
