package ipc

import "github.com/nstehr/myco/myco-core/model"

// Action type constants. These must match the harness action parser.
const (
	TypeSporeMove          = "SPORE_MOVE"
	TypeSporeMoveTo        = "SPORE_MOVE_TO"
	TypeSporeCreateSpawner = "SPORE_CREATE_SPAWNER"
	TypeSpawnerProduce     = "SPAWNER_PRODUCE_SPORE"
)

// Action is one intent in a COMMAND batch.
type Action interface {
	ActionType() string
	// ActorID is the spore or spawner the action is addressed to.
	ActorID() string
}

// SporeMoveAction steps a spore by one canonical direction vector.
type SporeMoveAction struct {
	Type      string         `json:"type"`
	SporeID   string         `json:"sporeId"`
	Direction model.Position `json:"direction"`
}

// SporeMoveToAction hands the harness an absolute destination and lets it
// route. Used when no stepwise path is known.
type SporeMoveToAction struct {
	Type     string         `json:"type"`
	SporeID  string         `json:"sporeId"`
	Position model.Position `json:"position"`
}

// SporeCreateSpawnerAction converts a spore into a spawner on its tile.
type SporeCreateSpawnerAction struct {
	Type    string `json:"type"`
	SporeID string `json:"sporeId"`
}

type SpawnerProduceSporeAction struct {
	Type      string `json:"type"`
	SpawnerID string `json:"spawnerId"`
	Biomass   int    `json:"biomass"`
}

func (a SporeMoveAction) ActionType() string           { return a.Type }
func (a SporeMoveAction) ActorID() string              { return a.SporeID }
func (a SporeMoveToAction) ActionType() string         { return a.Type }
func (a SporeMoveToAction) ActorID() string            { return a.SporeID }
func (a SporeCreateSpawnerAction) ActionType() string  { return a.Type }
func (a SporeCreateSpawnerAction) ActorID() string     { return a.SporeID }
func (a SpawnerProduceSporeAction) ActionType() string { return a.Type }
func (a SpawnerProduceSporeAction) ActorID() string    { return a.SpawnerID }

func NewSporeMove(sporeID string, dir model.Position) SporeMoveAction {
	return SporeMoveAction{Type: TypeSporeMove, SporeID: sporeID, Direction: dir}
}

func NewSporeMoveTo(sporeID string, pos model.Position) SporeMoveToAction {
	return SporeMoveToAction{Type: TypeSporeMoveTo, SporeID: sporeID, Position: pos}
}

func NewCreateSpawner(sporeID string) SporeCreateSpawnerAction {
	return SporeCreateSpawnerAction{Type: TypeSporeCreateSpawner, SporeID: sporeID}
}

func NewProduceSpore(spawnerID string, biomass int) SpawnerProduceSporeAction {
	return SpawnerProduceSporeAction{Type: TypeSpawnerProduce, SpawnerID: spawnerID, Biomass: biomass}
}
