package server

import (
	"errors"
	"fmt"

	"governor/internal/bot"
	"governor/internal/engine"
	"governor/internal/protocol"
)

var ErrNothingToUndo = errors.New("nothing to undo")

// match is a started game: the current state plus everything needed to
// take actions back and to replay it.
type match struct {
	seed    uint64
	rules   engine.Rules
	players []protocol.LogPlayer
	bots    map[string]bot.Policy

	state   engine.State
	history []engine.State // history[i] is the state before actions[i]
	actions []engine.Action
}

func newMatch(seats []protocol.LogPlayer, rules engine.Rules, seed uint64) (*match, error) {
	players := make([]engine.Player, len(seats))
	bots := map[string]bot.Policy{}
	for i, p := range seats {
		players[i] = engine.NewPlayer(p.ID, p.Name)
		if p.Bot != "" {
			bots[p.ID] = bot.ByName(p.Bot, seed+uint64(i))
		}
	}
	s, err := engine.NewGame(players, engine.GameConfig{Catalog: engine.BaseCatalog(), Rules: rules}, seed)
	if err != nil {
		return nil, err
	}
	return &match{seed: seed, rules: rules, players: seats, bots: bots, state: s}, nil
}

func (m *match) apply(a engine.Action) ([]engine.Event, error) {
	next, events, err := m.state.Apply(a)
	if err != nil {
		return nil, err
	}
	m.history = append(m.history, m.state)
	m.actions = append(m.actions, a)
	m.state = next
	return events, nil
}

// undo takes back playerID's latest action and the bot and table actions
// that followed it. It fails once another human has acted since.
func (m *match) undo(playerID string) error {
	for i := len(m.actions) - 1; i >= 0; i-- {
		actor := m.actions[i].Actor()
		if actor == playerID {
			m.state = m.history[i]
			m.history = m.history[:i]
			m.actions = m.actions[:i]
			return nil
		}
		if _, isBot := m.bots[actor]; actor != "" && !isBot {
			return fmt.Errorf("%w: another player has moved since", ErrNothingToUndo)
		}
	}
	return ErrNothingToUndo
}

// nextBotAction is what the table does next without a human, or nil.
func (m *match) nextBotAction() engine.Action {
	return bot.Next(m.state, m.bots)
}

func (m *match) isBot(playerID string) bool {
	_, ok := m.bots[playerID]
	return ok
}

func (m *match) log(gameID string) protocol.GameLog {
	return protocol.NewGameLog(gameID, m.seed, m.rules, m.players, m.actions)
}
