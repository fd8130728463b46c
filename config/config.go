// Package config loads the engine's tuning knobs.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every numeric knob the decision engine reads. None of these
// are contracts; they are starting points that can be recalibrated per map.
type Config struct {
	Population  PopulationConfig  `yaml:"population"`
	Production  ProductionConfig  `yaml:"production"`
	Neutrals    NeutralsConfig    `yaml:"neutrals"`
	Attack      AttackConfig      `yaml:"attack"`
	Panic       PanicConfig       `yaml:"panic"`
	Exploration ExplorationConfig `yaml:"exploration"`
	Pathfinding PathfindingConfig `yaml:"pathfinding"`
	Output      OutputConfig      `yaml:"output"`

	// Tiers adjusts the built-in rule tiers by name.
	Tiers []TierOverride `yaml:"tiers,omitempty"`
}

// TierOverride changes one rule tier. Zero fields keep the built-in value.
type TierOverride struct {
	Name      string `yaml:"name"`
	Priority  int    `yaml:"priority,omitempty"`
	Condition string `yaml:"condition,omitempty"`
	Disabled  bool   `yaml:"disabled,omitempty"`
}

type PopulationConfig struct {
	MaxSpores int `yaml:"max_spores"`
}

// ProductionConfig controls the scaled spore cost: BaseBiomass doubles every
// StepTicks ticks, never exceeding BiomassCap.
type ProductionConfig struct {
	BaseBiomass  int `yaml:"base_biomass"`
	StepTicks    int `yaml:"step_ticks"`
	BiomassCap   int `yaml:"biomass_cap"`
	ProduceEvery int `yaml:"produce_every"`
}

type NeutralsConfig struct {
	SurroundedThreshold int `yaml:"surrounded_threshold"`
	ClearRadius         int `yaml:"clear_radius"`
}

type AttackConfig struct {
	SpawnerRadius int `yaml:"spawner_radius"`
}

type PanicConfig struct {
	ThreatRadius  int `yaml:"threat_radius"`
	CooldownTicks int `yaml:"cooldown_ticks"`
	MaxSpawners   int `yaml:"max_spawners"`
}

type ExplorationConfig struct {
	WindowRadius   int `yaml:"window_radius"`
	SampleAttempts int `yaml:"sample_attempts"`
}

type PathfindingConfig struct {
	MaxExpansions int `yaml:"max_expansions"`
}

// OutputConfig points at optional telemetry sinks. Empty values disable them.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	DBPath string `yaml:"db_path"`
}

// Default returns the embedded defaults. It panics only if the embedded file
// is malformed, which is a build defect.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the embedded defaults and overlays the file at path, if any.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only keys present in the file overwrite defaults.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.Validate()
	return cfg, nil
}

// Validate clamps knobs into ranges the engine can run with.
func (c *Config) Validate() {
	c.Population.MaxSpores = clampInt(c.Population.MaxSpores, 1, 10000)
	c.Production.BaseBiomass = clampInt(c.Production.BaseBiomass, 1, 1<<20)
	c.Production.StepTicks = clampInt(c.Production.StepTicks, 1, 1<<30)
	c.Production.BiomassCap = clampInt(c.Production.BiomassCap, c.Production.BaseBiomass, 1<<20)
	c.Production.ProduceEvery = clampInt(c.Production.ProduceEvery, 1, 1<<20)
	c.Neutrals.SurroundedThreshold = clampInt(c.Neutrals.SurroundedThreshold, 1, 4)
	c.Neutrals.ClearRadius = clampInt(c.Neutrals.ClearRadius, 0, 1<<16)
	c.Attack.SpawnerRadius = clampInt(c.Attack.SpawnerRadius, 0, 1<<16)
	c.Panic.ThreatRadius = clampInt(c.Panic.ThreatRadius, 0, 1<<16)
	c.Panic.CooldownTicks = clampInt(c.Panic.CooldownTicks, 0, 1<<20)
	c.Panic.MaxSpawners = clampInt(c.Panic.MaxSpawners, 0, 1000)
	c.Exploration.WindowRadius = clampInt(c.Exploration.WindowRadius, 0, 1<<12)
	c.Exploration.SampleAttempts = clampInt(c.Exploration.SampleAttempts, 0, 1<<20)
	c.Pathfinding.MaxExpansions = clampInt(c.Pathfinding.MaxExpansions, 1, 1<<24)
}

// WriteYAML saves the effective configuration next to a run's output.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
