package ipc

// Frame types exchanged with the game harness.
const (
	TypeRegister      = "REGISTER"
	TypeCommand       = "COMMAND"
	TypeTeamGameState = "TEAM_GAME_STATE"
)

// RegisterMessage is the first frame sent after dialing. The harness expects
// either a token (ranked play) or a team name (local play).
type RegisterMessage struct {
	Type     string `json:"type"`
	Token    string `json:"token,omitempty"`
	TeamName string `json:"teamName,omitempty"`
}

func NewRegister(token, teamName string) RegisterMessage {
	if token != "" {
		return RegisterMessage{Type: TypeRegister, Token: token}
	}
	return RegisterMessage{Type: TypeRegister, TeamName: teamName}
}

// CommandMessage is the per-tick reply carrying the action batch.
type CommandMessage struct {
	Type    string   `json:"type"`
	Tick    int      `json:"tick"`
	Actions []Action `json:"actions"`
}

func NewCommand(tick int, actions []Action) CommandMessage {
	if actions == nil {
		actions = []Action{}
	}
	return CommandMessage{Type: TypeCommand, Tick: tick, Actions: actions}
}
