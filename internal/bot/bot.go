// Package bot holds computer players for open seats.
package bot

import (
	"errors"
	"fmt"

	"governor/internal/engine"
)

// Policy decides the next action for a seat the game is waiting on.
type Policy interface {
	// Decide is called when playerID must act in s. It returns nil when
	// the seat has nothing to do.
	Decide(s engine.State, playerID string) engine.Action
	// Name returns a human-readable identifier.
	Name() string
}

// ErrStepLimit is returned by Run when the game did not finish in time.
var ErrStepLimit = errors.New("step limit reached")

// Run plays the game forward with the given seat policies until it ends,
// a human seat must act, or limit actions were applied. Round ends are
// applied automatically. It returns the final state and the applied actions.
func Run(s engine.State, seats map[string]Policy, limit int) (engine.State, []engine.Action, error) {
	var log []engine.Action
	for range limit {
		a := Next(s, seats)
		if a == nil {
			return s, log, nil
		}
		next, _, err := s.Apply(a)
		if err != nil {
			return s, log, fmt.Errorf("%s by %q: %w", a.Kind(), a.Actor(), err)
		}
		s = next
		log = append(log, a)
	}
	if s.Phase == engine.PhaseGameOver {
		return s, log, nil
	}
	return s, log, ErrStepLimit
}

// Next returns the action the table takes without a human, or nil when the
// game is over or waiting on a seat without a policy.
func Next(s engine.State, seats map[string]Policy) engine.Action {
	switch s.Phase {
	case engine.PhaseGameOver:
		return nil
	case engine.PhaseEndRound:
		return engine.EndRound{}
	}
	id := s.ActivePlayer()
	p, ok := seats[id]
	if !ok {
		return nil
	}
	return p.Decide(s, id)
}

// ByName returns a policy for a lobby bot seat. Unknown names play greedy.
func ByName(name string, seed uint64) Policy {
	if name == "random" {
		return NewRandom(seed)
	}
	return Greedy{}
}
