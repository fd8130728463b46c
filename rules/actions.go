package rules

import (
	"log/slog"

	"github.com/nstehr/myco/myco-core/ipc"
)

// ActionInitialBurst turns every starting spore into a spawner. It runs once,
// on tick 0.
func ActionInitialBurst(env RuleEnv, out *Batch) error {
	env.Memory.BurstDone = true
	for _, sp := range env.Team.Spores {
		out.Add(ipc.NewCreateSpawner(sp.ID))
	}
	slog.Debug("initial spawner burst", "spawners", len(env.Team.Spores))
	return nil
}

// ActionPanicSpawner drops a spawner at the spore farthest from the threat.
func ActionPanicSpawner(env RuleEnv, out *Batch) error {
	sp, ok := SafestSpore(env.Team.Spores, env.World.HostileSpores)
	if !ok {
		return nil
	}
	env.Memory.Panicked = true
	env.Memory.LastPanicTick = env.State.Tick
	slog.Debug("panic spawner", "spore", sp.ID, "x", sp.Position.X, "y", sp.Position.Y)
	out.Add(ipc.NewCreateSpawner(sp.ID))
	return nil
}

// ActionBootstrapSpawner guarantees at least one spawner exists. Conditions
// can be overridden, so an empty colony is checked here too.
func ActionBootstrapSpawner(env RuleEnv, out *Batch) error {
	if len(env.Team.Spores) == 0 {
		return nil
	}
	sp := env.Team.Spores[0]
	slog.Debug("bootstrapping spawner", "spore", sp.ID)
	out.Add(ipc.NewCreateSpawner(sp.ID))
	return nil
}

func ActionProduceSpore(env RuleEnv, out *Batch) error {
	if len(env.Team.Spawners) == 0 {
		return nil
	}
	spw := env.Team.Spawners[0]
	cost := env.SpawnCost()
	slog.Debug("producing spore", "spawner", spw.ID, "biomass", cost)
	out.Add(ipc.NewProduceSpore(spw.ID, cost))
	return nil
}

// ActionSacrificeOrExplore decides whether one spore should be spent on a
// neutral. Sacrifice only happens when the whole colony is out of frontier;
// while any spore can still expand, nobody is thrown away.
func ActionSacrificeOrExplore(env RuleEnv, out *Batch) error {
	if env.AnyExplorationTarget() {
		return nil
	}
	s, ok := ChooseSacrifice(env.State.World.Map, env.Team.Spores, env.World, env.Config.Neutrals.SurroundedThreshold)
	if !ok {
		slog.Debug("frontier exhausted, no surrounded spore to sacrifice")
		return nil
	}
	slog.Debug("sacrificing spore",
		"spore", s.Spore.ID,
		"biomass", s.Spore.Biomass,
		"neutral", s.Tile,
		"neutralBiomass", env.World.NeutralBiomass[s.Tile],
	)
	env.scratch.sacrifice = &s
	return nil
}

// ActionMoveSpores emits exactly one movement action per spore.
func ActionMoveSpores(env RuleEnv, out *Batch) error {
	sacrifice := env.scratch.sacrifice
	for _, sp := range env.Team.Spores {
		if sacrifice != nil && sp.ID == sacrifice.Spore.ID {
			out.Add(ipc.NewSporeMove(sp.ID, sacrifice.Direction))
			continue
		}

		target := env.ChooseTarget(sp)
		res := NextStep(PathQuery{
			Map:              env.State.World.Map,
			Start:            sp.Position,
			Goal:             target.Pos,
			Blocked:          env.World.Blocked,
			AllowGoalBlocked: target.AllowBlocked,
			MaxExpansions:    env.Config.Pathfinding.MaxExpansions,
		})
		env.scratch.expansions += res.Expansions

		if res.Found {
			out.Add(ipc.NewSporeMove(sp.ID, res.Step))
		} else {
			out.Add(ipc.NewSporeMoveTo(sp.ID, target.Pos))
		}
	}
	return nil
}
