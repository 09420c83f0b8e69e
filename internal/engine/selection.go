package engine

import "fmt"

// Role selection: seats take turns in order, starting from the governor,
// skipping anyone who has passed this round.

func (s *State) turnPlayer(playerID string) (*Player, int, error) {
	if s.Phase != PhaseRoleSelection {
		return nil, 0, ErrWrongPhase
	}
	idx := s.PlayerIndex(playerID)
	if idx < 0 {
		return nil, 0, ErrPlayerNotFound
	}
	if idx != s.CurrentTurnPlayerIndex {
		return nil, 0, ErrInvalidTurn
	}
	return &s.Players[idx], idx, nil
}

func (s *State) applySelectRole(a SelectRole) ([]Event, error) {
	if a.Role == RoleNone {
		return s.passRound(a.PlayerID)
	}
	p, idx, err := s.turnPlayer(a.PlayerID)
	if err != nil {
		return nil, err
	}
	si := s.slotIndex(a.Role)
	if si < 0 {
		return nil, fmt.Errorf("%w: %s is not in play", ErrInvalidRoleChoice, a.Role)
	}
	slot := &s.RoleSlots[si]
	if !slot.Available {
		return nil, fmt.Errorf("%w: %s was already chosen this round", ErrInvalidRoleChoice, a.Role)
	}

	bonus := slot.BonusCoins
	slot.Available = false
	slot.BonusCoins = 0
	p.Coins += bonus

	s.SelectedRole = a.Role
	s.CurrentRolePlayerIndex = idx
	s.ActingPlayerIndex = idx
	s.StepsTaken = 0
	s.Phase = PhaseAction

	if a.Role == RoleTrader {
		s.TradingTile = (s.TradingTile + 1) % len(s.Tiles)
	}

	return []Event{
		{Type: EventRoleSelected, Player: p.ID, Data: map[string]any{
			"role": a.Role.String(), "bonus_coins": bonus,
		}},
		phaseEvent(PhaseAction),
	}, nil
}

// passRound marks the player as out of role selection until the round ends.
func (s *State) passRound(playerID string) ([]Event, error) {
	p, idx, err := s.turnPlayer(playerID)
	if err != nil {
		return nil, err
	}
	p.HasPassed = true
	events := []Event{{Type: EventPassed, Player: p.ID, Data: map[string]any{"round": s.Round}}}

	if s.allPassed() {
		s.Phase = PhaseEndRound
		return append(events, phaseEvent(PhaseEndRound)), nil
	}
	s.CurrentTurnPlayerIndex = s.nextUnpassed(idx)
	return events, nil
}

func (s *State) applyPass(a Pass) ([]Event, error) {
	switch s.Phase {
	case PhaseRoleSelection:
		return s.passRound(a.PlayerID)
	case PhaseAction:
		p, _, _, err := s.stepPlayer(a.PlayerID, s.SelectedRole)
		if err != nil {
			return nil, err
		}
		events := []Event{{Type: EventStepSkipped, Player: p.ID, Data: map[string]any{
			"role": s.SelectedRole.String(),
		}}}
		return append(events, s.finishStep()...), nil
	default:
		return nil, ErrWrongPhase
	}
}

func (s *State) applyChapel(a Chapel) ([]Event, error) {
	p, _, err := s.turnPlayer(a.PlayerID)
	if err != nil {
		return nil, err
	}
	if p.EffectCount(EffectChapel) == 0 {
		return nil, fmt.Errorf("%w: no chapel built", ErrInvalidAction)
	}
	if p.UsedChapel {
		return nil, fmt.Errorf("%w: chapel already used this round", ErrInvalidAction)
	}
	if !p.InHand(a.CardID) {
		return nil, fmt.Errorf("%w: card %s not in hand", ErrInsufficientResources, a.CardID)
	}
	s.Pool.Discard(p.removeFromHand(a.CardID)...)
	p.VictoryPoints++
	p.UsedChapel = true
	return []Event{
		{Type: EventChapel, Player: p.ID, Data: map[string]any{
			"card": a.CardID, "victory_points": p.VictoryPoints,
		}},
	}, nil
}
