package rules

import (
	"fmt"

	"github.com/nstehr/myco/myco-core/config"
)

// CompileTiers builds the tick's rule set from the built-in tiers and the
// configured overrides. Overrides are matched by tier name; an override for
// an unknown tier is an error so typos do not silently change nothing.
// Conditions are compiled later by NewEngine or Swap.
func CompileTiers(overrides []config.TierOverride) ([]*Rule, error) {
	rules := DefaultRules()
	byName := make(map[string]*Rule, len(rules))
	for _, r := range rules {
		byName[r.Name] = r
	}

	disabled := make(map[string]bool)
	seen := make(map[string]bool, len(overrides))
	for _, o := range overrides {
		r, ok := byName[o.Name]
		if !ok {
			return nil, fmt.Errorf("tier override: unknown tier %q", o.Name)
		}
		if seen[o.Name] {
			return nil, fmt.Errorf("tier override: %q listed twice", o.Name)
		}
		seen[o.Name] = true

		if o.Disabled {
			disabled[o.Name] = true
			continue
		}
		if o.Priority != 0 {
			r.Priority = o.Priority
		}
		if o.Condition != "" {
			r.ConditionSrc = o.Condition
		}
	}

	out := rules[:0]
	for _, r := range rules {
		if !disabled[r.Name] {
			out = append(out, r)
		}
	}
	return out, nil
}
