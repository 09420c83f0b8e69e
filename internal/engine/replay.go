package engine

import "fmt"

// Replay rebuilds a game from its seed and action log.
func Replay(players []Player, cfg GameConfig, seed uint64, log []Action) (State, error) {
	s, err := NewGame(players, cfg, seed)
	if err != nil {
		return State{}, err
	}
	for i, a := range log {
		next, _, err := s.Apply(a)
		if err != nil {
			return s, fmt.Errorf("action %d (%s): %w", i, a.Kind(), err)
		}
		s = next
	}
	return s, nil
}
