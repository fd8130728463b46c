package model

// TeamGameState is the per-tick snapshot the harness sends to each team.
type TeamGameState struct {
	Tick           int           `json:"tick"`
	YourTeamID     string        `json:"yourTeamId"`
	LastTickErrors []string      `json:"lastTickErrors"`
	Constants      GameConstants `json:"constants"`
	World          World         `json:"world"`
	TeamIDs        []string      `json:"teamIds"`
}

type GameConstants struct {
	NeutralTeamID string `json:"neutralTeamId"`
	MaxTicks      int    `json:"maxTicks"`
}

type World struct {
	Map       Map                 `json:"map"`
	Spores    []Spore             `json:"spores"`
	Spawners  []Spawner           `json:"spawners"`
	TeamInfos map[string]TeamInfo `json:"teamInfos"`
}

// Map holds board dimensions and the nutrient grid, indexed NutrientGrid[y][x].
type Map struct {
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	NutrientGrid [][]int `json:"nutrientGrid"`
}

type Spore struct {
	ID       string   `json:"id"`
	TeamID   string   `json:"teamId"`
	Position Position `json:"position"`
	Biomass  int      `json:"biomass"`
}

type Spawner struct {
	ID       string   `json:"id"`
	TeamID   string   `json:"teamId"`
	Position Position `json:"position"`
}

type TeamInfo struct {
	TeamID    string    `json:"teamId"`
	Nutrients int       `json:"nutrients"`
	Spores    []Spore   `json:"spores"`
	Spawners  []Spawner `json:"spawners"`
}

// MyTeam returns the calling team's view. A missing entry yields an empty
// TeamInfo so callers never index into nil slices.
func (gs TeamGameState) MyTeam() TeamInfo {
	if ti, ok := gs.World.TeamInfos[gs.YourTeamID]; ok {
		return ti
	}
	return TeamInfo{TeamID: gs.YourTeamID}
}
