package rules

import (
	"github.com/nstehr/myco/myco-core/config"
	"github.com/nstehr/myco/myco-core/model"
)

// Memory is the state the engine carries from one tick to the next.
type Memory struct {
	Visited       *model.VisitedSet
	BurstDone     bool
	Panicked      bool
	LastPanicTick int
}

func NewMemory() *Memory {
	return &Memory{Visited: model.NewVisitedSet()}
}

// tickScratch is per-tick working state shared between tiers.
type tickScratch struct {
	explore    map[string]exploreResult // spore ID → memoized exploration target
	sacrifice  *Sacrifice
	expansions int
}

type exploreResult struct {
	pos   model.Position
	found bool
}

// RuleEnv wraps the snapshot and derived views and exposes helper methods
// callable from expr conditions.
type RuleEnv struct {
	State  model.TeamGameState
	Team   model.TeamInfo
	World  Classification
	Config *config.Config
	Memory *Memory

	rng     Rand
	scratch *tickScratch
}

func (e RuleEnv) Tick() int         { return e.State.Tick }
func (e RuleEnv) SporeCount() int   { return len(e.Team.Spores) }
func (e RuleEnv) SpawnerCount() int { return len(e.Team.Spawners) }
func (e RuleEnv) Nutrients() int    { return e.Team.Nutrients }
func (e RuleEnv) MaxSpores() int    { return e.Config.Population.MaxSpores }
func (e RuleEnv) BurstDone() bool   { return e.Memory.BurstDone }

func (e RuleEnv) MaxPanicSpawners() int { return e.Config.Panic.MaxSpawners }

// SpawnCost is the biomass a produced spore costs this tick.
func (e RuleEnv) SpawnCost() int {
	return SpawnCost(e.Config.Production, e.State.Tick)
}

// ProductionDue reports whether this tick falls on the production cadence.
func (e RuleEnv) ProductionDue() bool {
	return e.State.Tick%e.Config.Production.ProduceEvery == 0
}

// EnemyNearby reports a hostile spore within the threat radius of any of ours.
func (e RuleEnv) EnemyNearby() bool {
	return EnemyNearby(e.Team.Spores, e.World.HostileSpores, e.Config.Panic.ThreatRadius)
}

func (e RuleEnv) PanicCooldownElapsed() bool {
	if !e.Memory.Panicked {
		return true
	}
	return e.State.Tick-e.Memory.LastPanicTick >= e.Config.Panic.CooldownTicks
}

// SpawnCost returns base·2^(tick/step), capped. The doubling stops as soon as
// the cap is reached so late ticks cannot overflow.
func SpawnCost(p config.ProductionConfig, tick int) int {
	cost := p.BaseBiomass
	if tick < 0 || p.StepTicks <= 0 {
		return min(cost, p.BiomassCap)
	}
	for steps := tick / p.StepTicks; steps > 0 && cost < p.BiomassCap; steps-- {
		cost *= 2
	}
	return min(cost, p.BiomassCap)
}

func (e RuleEnv) exploreParams() ExploreParams {
	return ExploreParams{
		Map:     e.State.World.Map,
		Visited: e.Memory.Visited,
		Blocked: e.World.Blocked,
		Window:  e.Config.Exploration.WindowRadius,
		Samples: e.Config.Exploration.SampleAttempts,
		Rand:    e.rng,
	}
}

// explorationTarget returns the spore's exploration target, computing it at
// most once per tick.
func (e RuleEnv) explorationTarget(sp model.Spore) (model.Position, bool) {
	if r, ok := e.scratch.explore[sp.ID]; ok {
		return r.pos, r.found
	}
	pos, found := PickExplorationTarget(sp.Position, e.exploreParams())
	e.scratch.explore[sp.ID] = exploreResult{pos: pos, found: found}
	return pos, found
}

// AnyExplorationTarget reports whether at least one spore still has frontier.
func (e RuleEnv) AnyExplorationTarget() bool {
	for _, sp := range e.Team.Spores {
		if _, ok := e.explorationTarget(sp); ok {
			return true
		}
	}
	return false
}

// ChooseTarget runs the selector tiers for one spore: nearby hostile spawner,
// then exploration, then a nearby neutral to clear, then anywhere.
func (e RuleEnv) ChooseTarget(sp model.Spore) Target {
	if pos, ok := NearestWithin(sp.Position, e.World.HostileSpawners, e.Config.Attack.SpawnerRadius); ok {
		return Target{Pos: pos, Kind: TargetAttack, AllowBlocked: true}
	}
	if pos, ok := e.explorationTarget(sp); ok {
		return Target{Pos: pos, Kind: TargetExplore}
	}
	if pos, ok := NearestWithin(sp.Position, e.World.Neutral, e.Config.Neutrals.ClearRadius); ok {
		return Target{Pos: pos, Kind: TargetClear, AllowBlocked: true}
	}
	pos := RandomTile(e.State.World.Map, e.rng)
	return Target{Pos: pos, Kind: TargetRandom, AllowBlocked: e.World.Neutral.Has(pos)}
}
