package bot

import (
	"math/rand/v2"
	"strconv"

	"governor/internal/engine"
)

// Random picks roles at random and skips steps now and then. It still only
// submits legal actions, so it is useful for shaking out rule bugs.
type Random struct {
	seed uint64
	rng  *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{seed: seed, rng: rand.New(rand.NewPCG(seed, 0))}
}

func (r *Random) Name() string { return "random-" + strconv.FormatUint(r.seed, 10) }

func (r *Random) Decide(s engine.State, playerID string) engine.Action {
	p, ok := s.GetPlayer(playerID)
	if !ok {
		return nil
	}
	switch s.Phase {
	case engine.PhaseRoleSelection:
		if r.rng.IntN(4) == 0 {
			if a := chapel(p); a != nil {
				return a
			}
		}
		var open []engine.Role
		for _, slot := range s.RoleSlots {
			if slot.Available {
				open = append(open, slot.Role)
			}
		}
		if len(open) == 0 || r.rng.IntN(8) == 0 {
			return engine.Pass{PlayerID: playerID}
		}
		return engine.SelectRole{PlayerID: playerID, Role: open[r.rng.IntN(len(open))]}
	case engine.PhaseAction:
		if r.rng.IntN(5) > 0 {
			if a := step(s, p); a != nil {
				return a
			}
		}
		return engine.Pass{PlayerID: playerID}
	case engine.PhaseCouncilKeep:
		if s.Council == nil {
			return nil
		}
		drawn := append([]string(nil), s.Council.DrawnIDs...)
		r.rng.Shuffle(len(drawn), func(i, j int) { drawn[i], drawn[j] = drawn[j], drawn[i] })
		return engine.CouncilKeep{PlayerID: playerID, DiscardIDs: drawn[s.Council.KeepCount:]}
	case engine.PhaseEndRound:
		return engine.EndRound{}
	}
	return nil
}
