package agent

import (
	"fmt"
	"strings"

	"github.com/nstehr/myco/myco-core/model"
)

// EventKind identifies a notable change between consecutive snapshots.
type EventKind string

const (
	EventNewGame           EventKind = "new_game"
	EventSpawnerLost       EventKind = "spawner_lost"
	EventColonyDevastated  EventKind = "colony_devastated"
	EventColonyWiped       EventKind = "colony_wiped"
	EventFirstContact      EventKind = "first_contact"
	EventPopulationCapped  EventKind = "population_capped"
	EventNutrientsCollapse EventKind = "nutrients_collapsed"
)

// Event is a significant change detected by diffing consecutive game states.
// Events are logged and written to the decision log; a new game also rolls
// the match record and resets engine memory.
type Event struct {
	Kind   EventKind
	Tick   int
	Detail string
}

// devastationFloor keeps early-game churn from counting as devastation.
const devastationFloor = 6

// colonySnapshot captures the diffable fields from one tick.
type colonySnapshot struct {
	tick        int
	sporeIDs    map[string]bool
	spawnerIDs  map[string]bool
	nutrients   int
	hostileSeen bool
}

func takeSnapshot(gs model.TeamGameState) colonySnapshot {
	team := gs.MyTeam()
	snap := colonySnapshot{
		tick:       gs.Tick,
		sporeIDs:   make(map[string]bool, len(team.Spores)),
		spawnerIDs: make(map[string]bool, len(team.Spawners)),
		nutrients:  team.Nutrients,
	}
	for _, sp := range team.Spores {
		snap.sporeIDs[sp.ID] = true
	}
	for _, spw := range team.Spawners {
		snap.spawnerIDs[spw.ID] = true
	}
	for _, sp := range gs.World.Spores {
		if sp.TeamID != gs.YourTeamID && sp.TeamID != gs.Constants.NeutralTeamID {
			snap.hostileSeen = true
			break
		}
	}
	return snap
}

// detectEvents compares the current state against the previous snapshot.
// Returns nil if prev is nil (first tick of the session). A tick that goes
// backwards is reported only as a new game; nothing else is diffed across
// the boundary.
func detectEvents(gs model.TeamGameState, prev *colonySnapshot, maxSpores int) []Event {
	if prev == nil {
		return nil
	}
	if gs.Tick < prev.tick {
		return []Event{{
			Kind:   EventNewGame,
			Tick:   gs.Tick,
			Detail: fmt.Sprintf("tick went from %d to %d", prev.tick, gs.Tick),
		}}
	}

	var events []Event
	cur := takeSnapshot(gs)

	if lost := missing(prev.spawnerIDs, cur.spawnerIDs); len(lost) > 0 {
		events = append(events, Event{
			Kind:   EventSpawnerLost,
			Tick:   gs.Tick,
			Detail: fmt.Sprintf("lost spawners: %s", strings.Join(lost, ", ")),
		})
	}

	prevUnits := len(prev.sporeIDs) + len(prev.spawnerIDs)
	curUnits := len(cur.sporeIDs) + len(cur.spawnerIDs)
	switch {
	case prevUnits > 0 && curUnits == 0:
		events = append(events, Event{
			Kind:   EventColonyWiped,
			Tick:   gs.Tick,
			Detail: "no spores or spawners left",
		})
	case len(prev.sporeIDs) >= devastationFloor:
		lost := len(missing(prev.sporeIDs, cur.sporeIDs))
		if 2*lost > len(prev.sporeIDs) {
			events = append(events, Event{
				Kind:   EventColonyDevastated,
				Tick:   gs.Tick,
				Detail: fmt.Sprintf("lost %d of %d spores", lost, len(prev.sporeIDs)),
			})
		}
	}

	if !prev.hostileSeen && cur.hostileSeen {
		events = append(events, Event{
			Kind:   EventFirstContact,
			Tick:   gs.Tick,
			Detail: "hostile spores visible",
		})
	}

	if maxSpores > 0 && len(prev.sporeIDs) < maxSpores && len(cur.sporeIDs) >= maxSpores {
		events = append(events, Event{
			Kind:   EventPopulationCapped,
			Tick:   gs.Tick,
			Detail: fmt.Sprintf("%d spores, cap %d", len(cur.sporeIDs), maxSpores),
		})
	}

	// A halving from a meaningful bank usually means a spawner fell.
	if prev.nutrients >= 64 && 2*cur.nutrients < prev.nutrients && len(cur.spawnerIDs) < len(prev.spawnerIDs) {
		events = append(events, Event{
			Kind:   EventNutrientsCollapse,
			Tick:   gs.Tick,
			Detail: fmt.Sprintf("nutrients %d → %d", prev.nutrients, cur.nutrients),
		})
	}

	return events
}

// missing returns the IDs in prev absent from cur, in no particular order.
func missing(prev, cur map[string]bool) []string {
	var out []string
	for id := range prev {
		if !cur[id] {
			out = append(out, id)
		}
	}
	return out
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func eventKinds(events []Event) []string {
	if len(events) == 0 {
		return nil
	}
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = string(e.Kind)
	}
	return out
}
