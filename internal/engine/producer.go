package engine

import "fmt"

// ProductionLimit is how many goods the player may produce in one producer step.
func (s State) ProductionLimit(playerID string) int {
	p, ok := s.GetPlayer(playerID)
	if !ok {
		return 0
	}
	n := 1 + p.EffectCount(EffectExtraProduction)
	if s.IsPrivileged(playerID) {
		n++
	}
	return n
}

// EligibleBuildings returns the ids of the player's empty production buildings, in build order.
func (p Player) EligibleBuildings() []string {
	var ids []string
	for _, b := range p.Buildings {
		if b.Card.IsProduction() && !b.Occupied() {
			ids = append(ids, b.ID())
		}
	}
	return ids
}

func (s *State) applyProduce(a Produce) ([]Event, error) {
	p, idx, privileged, err := s.stepPlayer(a.PlayerID, RoleProducer)
	if err != nil {
		return nil, err
	}
	if s.Rules.ProduceForAllSeats {
		if !privileged {
			return nil, fmt.Errorf("%w: the producer fills every seat", ErrInvalidTurn)
		}
		return s.produceForAllSeats(idx), nil
	}

	limit := s.ProductionLimit(p.ID)
	if len(a.BuildingIDs) > limit {
		return nil, fmt.Errorf("%w: may produce %d goods, asked for %d", ErrInvalidAction, limit, len(a.BuildingIDs))
	}
	slots := make([]int, 0, len(a.BuildingIDs))
	seen := map[string]bool{}
	for _, id := range a.BuildingIDs {
		bi := p.buildingIndex(id)
		if bi < 0 || seen[id] {
			return nil, fmt.Errorf("%w: building %s", ErrInvalidAction, id)
		}
		seen[id] = true
		b := p.Buildings[bi]
		if !b.Card.IsProduction() {
			return nil, fmt.Errorf("%w: %s does not produce", ErrInvalidAction, b.Card.Name)
		}
		if b.Occupied() {
			return nil, fmt.Errorf("%w: %s already holds a good", ErrInvalidAction, b.Card.Name)
		}
		slots = append(slots, bi)
	}

	produced := s.fill(p, slots)
	events := []Event{{Type: EventProduced, Player: p.ID, Data: map[string]any{
		"buildings": produced, "count": len(produced),
	}}}
	return append(events, s.finishStep()...), nil
}

// fill draws one card onto each slot, stopping quietly when the pool is dry.
func (s *State) fill(p *Player, slots []int) []string {
	var produced []string
	for _, bi := range slots {
		drawn := s.Pool.Draw(1)
		if len(drawn) == 0 {
			break
		}
		good := drawn[0]
		p.Buildings[bi].Good = &good
		produced = append(produced, p.Buildings[bi].ID())
	}
	return produced
}

// produceForAllSeats fills up to one empty slot per seat (two for the producer)
// in seat order and closes the role.
func (s *State) produceForAllSeats(privilegedIdx int) []Event {
	var events []Event
	n := len(s.Players)
	for k := 0; k < n; k++ {
		i := (privilegedIdx + k) % n
		p := &s.Players[i]
		limit := 1
		if i == privilegedIdx {
			limit = 2
		}
		var slots []int
		for bi, b := range p.Buildings {
			if len(slots) == limit {
				break
			}
			if b.Card.IsProduction() && !b.Occupied() {
				slots = append(slots, bi)
			}
		}
		produced := s.fill(p, slots)
		events = append(events, Event{Type: EventProduced, Player: p.ID, Data: map[string]any{
			"buildings": produced, "count": len(produced),
		}})
	}
	return append(events, s.finishRole()...)
}
