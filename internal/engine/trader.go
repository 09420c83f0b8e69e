package engine

import (
	"fmt"
	"slices"
)

// Price returns what the player would get for a good right now.
func (s State) Price(playerID string, good GoodType) int {
	if s.TradingTile < 0 {
		return 0
	}
	p, ok := s.GetPlayer(playerID)
	if !ok {
		return 0
	}
	price := s.Tiles[s.TradingTile][good] + p.EffectCount(EffectTradePrice)
	if s.IsPrivileged(playerID) {
		price++
	}
	return price
}

// CanTrade reports whether the good type may still be sold this round.
func (s State) CanTrade(good GoodType) bool {
	return !s.Rules.OneTradePerGoodType || !slices.Contains(s.TradedGoods, good)
}

func (s *State) applyTrade(a Trade) ([]Event, error) {
	p, _, _, err := s.stepPlayer(a.PlayerID, RoleTrader)
	if err != nil {
		return nil, err
	}
	bi := p.buildingIndex(a.BuildingID)
	if bi < 0 || !p.Buildings[bi].Occupied() {
		return nil, fmt.Errorf("%w: no good stored on %s", ErrInsufficientResources, a.BuildingID)
	}
	good := p.Buildings[bi].Card.Produces
	if !s.CanTrade(good) {
		return nil, fmt.Errorf("%w: %s already sold this round", ErrInvalidAction, good)
	}
	price := s.Price(p.ID, good)

	token := *p.Buildings[bi].Good
	p.Buildings[bi].Good = nil
	s.Pool.Discard(token)
	drawn := s.Pool.Draw(price)
	p.Hand = append(p.Hand, drawn...)
	s.TradedGoods = append(s.TradedGoods, good)

	events := []Event{{Type: EventTraded, Player: p.ID, Data: map[string]any{
		"building": a.BuildingID, "good": good.String(), "price": price, "drawn": len(drawn),
	}}}
	return append(events, s.finishStep()...), nil
}
