package protocol

import (
	"fmt"

	"governor/internal/engine"
)

// GameLog is everything needed to rebuild a room's game: the seating,
// rules, seed and every applied action in order.
type GameLog struct {
	GameID  string         `json:"game_id"`
	Seed    uint64         `json:"seed"`
	Rules   engine.Rules   `json:"rules"`
	Players []LogPlayer    `json:"players"`
	Actions []LoggedAction `json:"actions"`
}

type LogPlayer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Bot  string `json:"bot,omitempty"`
}

// NewGameLog captures the log of a game started with the given players.
func NewGameLog(gameID string, seed uint64, rules engine.Rules, players []LogPlayer, actions []engine.Action) GameLog {
	l := GameLog{GameID: gameID, Seed: seed, Rules: rules, Players: players}
	l.Actions = make([]LoggedAction, len(actions))
	for i, a := range actions {
		l.Actions[i] = EncodeAction(a)
	}
	return l
}

// Replay rebuilds the game state the log describes, using the base catalog.
func (l GameLog) Replay() (engine.State, error) {
	players := make([]engine.Player, len(l.Players))
	for i, p := range l.Players {
		players[i] = engine.NewPlayer(p.ID, p.Name)
	}
	actions := make([]engine.Action, len(l.Actions))
	for i, la := range l.Actions {
		a, err := la.Payload.Action(la.Kind, la.PlayerID)
		if err != nil {
			return engine.State{}, fmt.Errorf("action %d: %w", i, err)
		}
		actions[i] = a
	}
	cfg := engine.GameConfig{Catalog: engine.BaseCatalog(), Rules: l.Rules}
	return engine.Replay(players, cfg, l.Seed, actions)
}
