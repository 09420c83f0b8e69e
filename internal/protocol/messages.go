package protocol

// Message types: Server → Client
const (
	MsgLobbyUpdate = "lobby_update"
	MsgGameState   = "game_state"   // public view, sent to table screens
	MsgPlayerState = "player_state" // private view for one seat
	MsgEvent       = "event"
	MsgGameOver    = "game_over"
	MsgError       = "error"
)

// Message types: Client → Server. In-game actions use the engine action
// kinds (select_role, build, produce, ...) as the envelope type.
const (
	MsgJoin      = "join"
	MsgReady     = "ready"
	MsgStartGame = "start_game"
	MsgAddBot    = "add_bot"
	MsgRemoveBot = "remove_bot"
	MsgUndo      = "undo"
)

// IsSetupMessage reports whether the type is a room setup command, which
// table screens may send as well as players.
func IsSetupMessage(typ string) bool {
	switch typ {
	case MsgAddBot, MsgRemoveBot, MsgStartGame:
		return true
	}
	return false
}

// LobbyUpdate is sent to all clients when lobby state changes.
type LobbyUpdate struct {
	GameID     string        `json:"game_id"`
	Players    []LobbyPlayer `json:"players"`
	Started    bool          `json:"started"`
	MinPlayers int           `json:"min_players"`
	MaxPlayers int           `json:"max_players"`
}

type LobbyPlayer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
	Bot   string `json:"bot,omitempty"` // policy name for computer seats
}

// JoinMsg is sent by a player to join the game.
type JoinMsg struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// ReadyMsg is sent by a player to toggle ready state.
type ReadyMsg struct {
	Ready bool `json:"ready"`
}

// AddBotMsg asks for a computer seat. Policy is "greedy" or "random".
type AddBotMsg struct {
	Policy string `json:"policy"`
}

type RemoveBotMsg struct {
	PlayerID string `json:"player_id"`
}

// ErrorMsg is sent to a client on error. Code is the engine reason code
// for rejected actions.
type ErrorMsg struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
