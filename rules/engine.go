package rules

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/myco/myco-core/config"
	"github.com/nstehr/myco/myco-core/ipc"
	"github.com/nstehr/myco/myco-core/model"
)

// Engine runs compiled rules against each tick's snapshot.
// Rules fire in priority order; the first terminal rule that fires ends the
// tick. Calls to Evaluate must be sequential; Memory is not guarded.
type Engine struct {
	mu     sync.RWMutex
	rules  []*Rule
	Config *config.Config
	Memory *Memory
	rng    Rand
}

// Decision is the engine's output for one tick.
type Decision struct {
	Tick       int
	Actions    []ipc.Action
	Fired      []string // rule names in firing order
	Expansions int      // A* nodes expanded across all spores
	Sacrifice  string   // sacrificed spore ID, if any
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
func NewEngine(cfg *config.Config, rules []*Rule, rng Rand) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{
		rules:  compiled,
		Config: cfg,
		Memory: NewMemory(),
		rng:    rng,
	}, nil
}

// Evaluate records our spores as visited, classifies the board, and runs the
// rule tiers. It never fails: rule errors are logged and the tick continues.
func (e *Engine) Evaluate(gs model.TeamGameState) Decision {
	e.mu.RLock()
	rules := e.rules
	e.mu.RUnlock()

	team := gs.MyTeam()
	e.Memory.Visited.Observe(gs.World.Map, team.Spores)

	env := RuleEnv{
		State:   gs,
		Team:    team,
		World:   Classify(gs),
		Config:  e.Config,
		Memory:  e.Memory,
		rng:     e.rng,
		scratch: &tickScratch{explore: make(map[string]exploreResult)},
	}

	var out Batch
	var fired []string
	for _, r := range rules {
		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}

		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		fired = append(fired, r.Name)
		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "tick", gs.Tick)

		if err := r.Action(env, &out); err != nil {
			slog.Error("rule action error", "rule", r.Name, "error", err)
		}

		if r.Terminal {
			break
		}
	}

	d := Decision{
		Tick:       gs.Tick,
		Actions:    out.Actions,
		Fired:      fired,
		Expansions: env.scratch.expansions,
	}
	if s := env.scratch.sacrifice; s != nil {
		d.Sacrifice = s.Spore.ID
	}
	return d
}

// Swap atomically replaces the rule set. Compiles first; if compilation fails
// the old rules remain active.
func (e *Engine) Swap(newRules []*Rule) error {
	compiled, err := compileRules(newRules)
	if err != nil {
		return err
	}
	names := make([]string, len(compiled))
	for i, r := range compiled {
		names[i] = r.Name
	}
	e.mu.Lock()
	e.rules = compiled
	e.mu.Unlock()
	slog.Info("rule set swapped", "count", len(compiled), "rules", names)
	return nil
}

// Reset forgets everything learned in the previous game.
func (e *Engine) Reset() {
	e.Memory = NewMemory()
}

// RuleNames lists the active rules in evaluation order.
func (e *Engine) RuleNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
