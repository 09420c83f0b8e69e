package engine

import "fmt"

// ProspectDraw is what the privileged prospector draws. Other seats draw nothing.
const ProspectDraw = 1

func (s *State) applyProspect(a Prospect) ([]Event, error) {
	p, _, privileged, err := s.stepPlayer(a.PlayerID, RoleProspector)
	if err != nil {
		return nil, err
	}
	if privileged && s.Pool.Exhausted() {
		return nil, fmt.Errorf("%w: pool is empty", ErrInsufficientResources)
	}
	drawn := 0
	if privileged {
		cards := s.Pool.Draw(ProspectDraw)
		p.Hand = append(p.Hand, cards...)
		drawn = len(cards)
	}
	events := []Event{{Type: EventProspected, Player: p.ID, Data: map[string]any{"drawn": drawn}}}
	return append(events, s.finishStep()...), nil
}
