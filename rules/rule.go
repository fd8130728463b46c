package rules

import (
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/myco/myco-core/ipc"
)

// ActionFunc appends intents to the tick's batch when a rule's condition is true.
type ActionFunc func(env RuleEnv, out *Batch) error

// Rule is one tier of the tick: a condition → action pair.
// The engine evaluates rules by priority; a Terminal rule that fires ends the
// tick, so everything below it is skipped.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Terminal     bool        // if true, no lower-priority rule runs this tick
	ConditionSrc string      // expr source (preserved for logging)
	program      *vm.Program // compiled bytecode
	Action       ActionFunc
}

// Batch collects the actions produced during one tick.
type Batch struct {
	Actions []ipc.Action
}

func (b *Batch) Add(a ipc.Action) { b.Actions = append(b.Actions, a) }

func (b *Batch) Len() int { return len(b.Actions) }
