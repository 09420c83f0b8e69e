package engine

func (s *State) applyEndRound() ([]Event, error) {
	if s.Phase != PhaseEndRound {
		return nil, ErrWrongPhase
	}
	return s.endRound(), nil
}

// endRound pays unchosen roles, resets the per-round flags, passes the
// governor token one seat to the left and either starts the next round
// or ends the game.
func (s *State) endRound() []Event {
	events := []Event{{Type: EventRoundEnd, Data: map[string]any{"round": s.Round}}}

	for i := range s.RoleSlots {
		if s.RoleSlots[i].Available {
			s.RoleSlots[i].BonusCoins++
		}
		s.RoleSlots[i].Available = true
	}

	gov := s.GovernorIndex()
	next := (gov + 1) % len(s.Players)
	for i := range s.Players {
		s.Players[i].HasPassed = false
		s.Players[i].UsedChapel = false
		s.Players[i].IsGovernor = i == next
	}
	events = append(events, Event{Type: EventGovernorPassed, Player: s.Players[next].ID})

	s.CurrentTurnPlayerIndex = next
	s.SelectedRole = RoleNone
	s.CurrentRolePlayerIndex = -1
	s.ActingPlayerIndex = next
	s.StepsTaken = 0
	s.Council = nil
	s.TradedGoods = nil
	s.Round++

	if s.gameOverReached() {
		return s.endGame(events)
	}
	s.Phase = PhaseRoleSelection
	return append(events, phaseEvent(PhaseRoleSelection))
}

// gameOverReached checks the end-of-game trigger: a full tableau or a dry pool.
func (s State) gameOverReached() bool {
	for _, p := range s.Players {
		if len(p.Buildings) >= s.Rules.EndBuildingCount {
			return true
		}
	}
	return s.Pool.Exhausted()
}

func (s *State) endGame(events []Event) []Event {
	s.Phase = PhaseGameOver
	result := Score(*s)
	s.Scores = result.Scores
	s.Winners = result.Winners
	events = append(events, Event{
		Type: EventGameOver,
		Data: map[string]any{"scores": s.Scores, "winners": s.Winners},
	})
	return append(events, phaseEvent(PhaseGameOver))
}
