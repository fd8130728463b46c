package rules

// DefaultRules returns the tick's tiers in precedence order. Terminal tiers
// short-circuit the tick: the structure-only tiers return before any spore
// is moved.
func DefaultRules() []*Rule {
	return []*Rule{
		{
			Name:         "initial-burst",
			Priority:     1000,
			Terminal:     true,
			ConditionSrc: `Tick() == 0 && !BurstDone()`,
			Action:       ActionInitialBurst,
		},
		{
			Name:         "panic-defense",
			Priority:     900,
			Terminal:     true,
			ConditionSrc: `SporeCount() > 0 && EnemyNearby() && PanicCooldownElapsed() && SpawnerCount() < MaxPanicSpawners()`,
			Action:       ActionPanicSpawner,
		},
		{
			Name:         "bootstrap-spawner",
			Priority:     800,
			Terminal:     true,
			ConditionSrc: `SpawnerCount() == 0 && SporeCount() > 0`,
			Action:       ActionBootstrapSpawner,
		},
		{
			Name:         "produce-spore",
			Priority:     700,
			ConditionSrc: `SpawnerCount() > 0 && SporeCount() < MaxSpores() && ProductionDue() && Nutrients() >= SpawnCost()`,
			Action:       ActionProduceSpore,
		},
		{
			Name:         "sacrifice-or-explore",
			Priority:     600,
			ConditionSrc: `SporeCount() > 0`,
			Action:       ActionSacrificeOrExplore,
		},
		{
			Name:         "move-spores",
			Priority:     500,
			ConditionSrc: `SporeCount() > 0`,
			Action:       ActionMoveSpores,
		},
	}
}
