package engine

import "fmt"

// EffectiveCost is what a build costs after the builder privilege and
// building discounts. It never drops below zero.
func EffectiveCost(c Card, privileged bool, discount int) int {
	cost := c.Cost - discount
	if privileged {
		cost--
	}
	return max(0, cost)
}

// BuildCost returns the cost the player would pay for the card right now,
// before any build-over credit.
func (s State) BuildCost(playerID string, c Card) int {
	p, ok := s.GetPlayer(playerID)
	if !ok {
		return c.Cost
	}
	return EffectiveCost(c, s.IsPrivileged(playerID), p.Discount(c))
}

func (s *State) applyBuild(a Build) ([]Event, error) {
	p, idx, privileged, err := s.stepPlayer(a.PlayerID, RoleBuilder)
	if err != nil {
		return nil, err
	}

	// Locate the card: hand first, then the market row for the privileged builder.
	var card Card
	fromMarket := -1
	if i := p.handIndex(a.CardID); i >= 0 {
		card = p.Hand[i]
	} else {
		for i, c := range s.Market {
			if c.ID == a.CardID {
				fromMarket = i
				card = c
				break
			}
		}
		if fromMarket < 0 {
			return nil, fmt.Errorf("%w: card %s not in hand", ErrInsufficientResources, a.CardID)
		}
		if !privileged {
			return nil, fmt.Errorf("%w: only the builder may build from the market", ErrInvalidTurn)
		}
	}

	replaceAt := -1
	if a.ReplaceID != "" {
		if p.EffectCount(EffectBuildOver) == 0 {
			return nil, fmt.Errorf("%w: building over needs a crane", ErrInvalidAction)
		}
		replaceAt = p.buildingIndex(a.ReplaceID)
		if replaceAt < 0 {
			return nil, fmt.Errorf("%w: no building %s to replace", ErrInvalidAction, a.ReplaceID)
		}
	}
	for i, b := range p.Buildings {
		if i != replaceAt && b.Card.DefID == card.DefID {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateConstruction, card.Name)
		}
	}

	cost := EffectiveCost(card, privileged, p.Discount(card))
	if replaceAt >= 0 {
		cost = max(0, cost-p.Buildings[replaceAt].Card.Cost)
	}

	if a.Coins < 0 || a.Coins > p.Coins {
		return nil, fmt.Errorf("%w: have %d coins", ErrInsufficientResources, p.Coins)
	}
	seen := map[string]bool{}
	for _, id := range a.PaymentIDs {
		if id == card.ID || seen[id] {
			return nil, fmt.Errorf("%w: payment card %s listed twice", ErrInvalidAction, id)
		}
		seen[id] = true
		if !p.InHand(id) {
			return nil, fmt.Errorf("%w: payment card %s not in hand", ErrInsufficientResources, id)
		}
	}
	paid := len(a.PaymentIDs) + a.Coins
	if paid < cost {
		return nil, fmt.Errorf("%w: cost %d, paid %d", ErrInsufficientResources, cost, paid)
	}
	if paid > cost {
		return nil, fmt.Errorf("%w: cost %d, paid %d", ErrInvalidAction, cost, paid)
	}

	// Validation done; mutate.
	if fromMarket >= 0 {
		s.Market = append(s.Market[:fromMarket:fromMarket], s.Market[fromMarket+1:]...)
		s.Market = append(s.Market, s.Pool.Draw(1)...)
	} else {
		p.removeFromHand(card.ID)
	}
	s.Pool.Discard(p.removeFromHand(a.PaymentIDs...)...)
	p.Coins -= a.Coins

	data := map[string]any{
		"card": card.ID, "name": card.Name, "cost": cost,
		"paid_cards": len(a.PaymentIDs), "paid_coins": a.Coins,
	}
	placed := Building{Card: card}
	if replaceAt >= 0 {
		old := p.Buildings[replaceAt]
		s.Pool.Discard(old.Card)
		if old.Good != nil {
			s.Pool.Discard(*old.Good)
		}
		p.Buildings[replaceAt] = placed
		data["replaced"] = old.ID()
	} else {
		p.Buildings = append(p.Buildings, placed)
	}
	if fromMarket >= 0 {
		data["from_market"] = true
	}

	events := []Event{{Type: EventBuilt, Player: s.Players[idx].ID, Data: data}}
	return append(events, s.finishStep()...), nil
}
