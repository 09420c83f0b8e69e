package engine

import (
	"fmt"
	"slices"
)

// KeepCount is how many council cards the player keeps.
func (p Player) KeepCount() int {
	return 1 + p.EffectCount(EffectCouncilKeep)
}

func (s *State) applyCouncilDraw(a CouncilDraw) ([]Event, error) {
	p, idx, privileged, err := s.stepPlayer(a.PlayerID, RoleCouncilor)
	if err != nil {
		return nil, err
	}
	if s.Pool.Exhausted() {
		return nil, fmt.Errorf("%w: pool is empty", ErrInsufficientResources)
	}
	n := CouncilDrawOther
	if privileged {
		n = CouncilDrawPrivileged
	}
	drawn := s.Pool.Draw(n)
	p.Hand = append(p.Hand, drawn...)
	keep := min(p.KeepCount(), len(drawn))

	ids := make([]string, len(drawn))
	for i, c := range drawn {
		ids[i] = c.ID
	}
	events := []Event{{Type: EventCouncilRevealed, Player: p.ID, Data: map[string]any{
		"drawn": len(drawn), "keep": keep,
	}}}

	// Nothing to give back: the step is over.
	if keep == len(drawn) {
		return append(events, s.finishStep()...), nil
	}
	s.Council = &CouncilState{PlayerIndex: idx, DrawnIDs: ids, KeepCount: keep}
	s.Phase = PhaseCouncilKeep
	return append(events, phaseEvent(PhaseCouncilKeep)), nil
}

func (s *State) applyCouncilKeep(a CouncilKeep) ([]Event, error) {
	if s.Phase != PhaseCouncilKeep || s.Council == nil {
		return nil, ErrWrongPhase
	}
	idx := s.PlayerIndex(a.PlayerID)
	if idx < 0 {
		return nil, ErrPlayerNotFound
	}
	if idx != s.Council.PlayerIndex {
		return nil, ErrInvalidTurn
	}
	p := &s.Players[idx]
	c := s.Council
	fromHand := s.Rules.CouncilDiscardFromHand

	want := len(c.DrawnIDs) - c.KeepCount
	if len(a.DiscardIDs) != want {
		return nil, fmt.Errorf("%w: discard %d cards, got %d", ErrInvalidAction, want, len(a.DiscardIDs))
	}
	seen := map[string]bool{}
	for _, id := range a.DiscardIDs {
		if seen[id] || !p.InHand(id) {
			return nil, fmt.Errorf("%w: cannot discard %s", ErrInvalidAction, id)
		}
		if !fromHand && !slices.Contains(c.DrawnIDs, id) {
			return nil, fmt.Errorf("%w: %s was not drawn this step", ErrInvalidAction, id)
		}
		seen[id] = true
	}
	if len(a.KeepIDs) > 0 {
		if len(a.KeepIDs) != c.KeepCount {
			return nil, fmt.Errorf("%w: keep %d cards, got %d", ErrInvalidAction, c.KeepCount, len(a.KeepIDs))
		}
		for _, id := range a.KeepIDs {
			if seen[id] || !p.InHand(id) {
				return nil, fmt.Errorf("%w: cannot keep %s", ErrInvalidAction, id)
			}
			if !fromHand && !slices.Contains(c.DrawnIDs, id) {
				return nil, fmt.Errorf("%w: %s was not drawn this step", ErrInvalidAction, id)
			}
			seen[id] = true
		}
	}

	s.Pool.Discard(p.removeFromHand(a.DiscardIDs...)...)
	s.Council = nil
	s.Phase = PhaseAction

	events := []Event{{Type: EventCouncilKept, Player: p.ID, Data: map[string]any{
		"kept": c.KeepCount, "discarded": len(a.DiscardIDs),
	}}}
	return append(events, s.finishStep()...), nil
}
