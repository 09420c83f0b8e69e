package engine

import "fmt"

// Resolve walks every seat through one step of the selected role,
// starting with the privileged actor and continuing in seat order.

// stepPlayer checks that playerID may take the current step of role.
// It returns the player, the seat and whether the seat is privileged.
func (s *State) stepPlayer(playerID string, role Role) (*Player, int, bool, error) {
	if s.Phase != PhaseAction {
		return nil, 0, false, ErrWrongPhase
	}
	if s.SelectedRole != role {
		return nil, 0, false, fmt.Errorf("%w: active role is %s", ErrInvalidAction, s.SelectedRole)
	}
	idx := s.PlayerIndex(playerID)
	if idx < 0 {
		return nil, 0, false, ErrPlayerNotFound
	}
	if idx != s.ActingPlayerIndex {
		return nil, 0, false, ErrInvalidTurn
	}
	return &s.Players[idx], idx, idx == s.CurrentRolePlayerIndex, nil
}

// finishStep hands the step to the next seat, or closes the role once
// every seat has acted.
func (s *State) finishStep() []Event {
	s.StepsTaken++
	if s.StepsTaken < len(s.Players) {
		s.ActingPlayerIndex = (s.ActingPlayerIndex + 1) % len(s.Players)
		return nil
	}
	return s.finishRole()
}

// finishRole returns to role selection with the next seat, or moves to the
// end of the round when no roles are left or everyone has passed.
func (s *State) finishRole() []Event {
	events := []Event{{Type: EventRoleDone, Data: map[string]any{"role": s.SelectedRole.String()}}}

	s.SelectedRole = RoleNone
	s.CurrentRolePlayerIndex = -1
	s.StepsTaken = 0
	s.Council = nil

	if !s.anyRoleAvailable() || s.allPassed() {
		s.Phase = PhaseEndRound
		return append(events, phaseEvent(PhaseEndRound))
	}
	s.CurrentTurnPlayerIndex = s.nextUnpassed(s.CurrentTurnPlayerIndex)
	s.Phase = PhaseRoleSelection
	return append(events, phaseEvent(PhaseRoleSelection))
}
