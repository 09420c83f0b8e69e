package engine

import "fmt"

// CardIDs lists every card id in play, zone by zone.
func (s State) CardIDs() []string {
	var ids []string
	for _, p := range s.Players {
		for _, c := range p.Hand {
			ids = append(ids, c.ID)
		}
		for _, b := range p.Buildings {
			ids = append(ids, b.Card.ID)
			if b.Good != nil {
				ids = append(ids, b.Good.ID)
			}
		}
	}
	for _, c := range s.Pool.DrawPile {
		ids = append(ids, c.ID)
	}
	for _, c := range s.Pool.DiscardPile {
		ids = append(ids, c.ID)
	}
	for _, c := range s.Market {
		ids = append(ids, c.ID)
	}
	return ids
}

// Validate checks the state's structural invariants: every card sits in
// exactly one zone, one governor, goods only on production buildings and
// indices in range.
func (s State) Validate() error {
	ids := s.CardIDs()
	if len(ids) != s.CardCount {
		return fmt.Errorf("card count %d, want %d", len(ids), s.CardCount)
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return fmt.Errorf("card %s is in two places", id)
		}
		seen[id] = true
	}

	governors := 0
	for _, p := range s.Players {
		if p.IsGovernor {
			governors++
		}
		for _, b := range p.Buildings {
			if b.Good != nil && !b.Card.IsProduction() {
				return fmt.Errorf("%s holds a good on non-production %s", p.ID, b.Card.Name)
			}
		}
	}
	if governors != 1 {
		return fmt.Errorf("%d governors", governors)
	}

	n := len(s.Players)
	if s.CurrentTurnPlayerIndex < 0 || s.CurrentTurnPlayerIndex >= n {
		return fmt.Errorf("turn index %d out of range", s.CurrentTurnPlayerIndex)
	}
	switch s.Phase {
	case PhaseAction, PhaseCouncilKeep:
		if s.SelectedRole == RoleNone {
			return fmt.Errorf("phase %s without a selected role", s.Phase)
		}
		if s.CurrentRolePlayerIndex < 0 || s.CurrentRolePlayerIndex >= n {
			return fmt.Errorf("role player index %d out of range", s.CurrentRolePlayerIndex)
		}
		if i := s.slotIndex(s.SelectedRole); i < 0 || s.RoleSlots[i].Available {
			return fmt.Errorf("selected role %s is still available", s.SelectedRole)
		}
	}
	if (s.Phase == PhaseCouncilKeep) != (s.Council != nil) {
		return fmt.Errorf("council state does not match phase %s", s.Phase)
	}
	return nil
}
