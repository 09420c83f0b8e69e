package engine

// Building is a card placed in a player's tableau.
// Only production buildings may hold a Good.
type Building struct {
	Card Card  `json:"card"`
	Good *Card `json:"good,omitempty"` // stored good token, a face-down card
}

// ID is the id of the placed card.
func (b Building) ID() string { return b.Card.ID }

// Occupied reports whether the production slot is filled.
func (b Building) Occupied() bool { return b.Good != nil }

// Player holds one player's state.
type Player struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Hand          []Card     `json:"hand"`
	Buildings     []Building `json:"buildings"` // build order
	Coins         int        `json:"coins"`
	IsGovernor    bool       `json:"is_governor"`
	HasPassed     bool       `json:"has_passed"`
	VictoryPoints int        `json:"victory_points"`

	UsedChapel bool `json:"used_chapel"` // reset each round
}

func NewPlayer(id, name string) Player {
	return Player{ID: id, Name: name}
}

func (p Player) clone() Player {
	c := p
	c.Hand = append([]Card(nil), p.Hand...)
	c.Buildings = make([]Building, len(p.Buildings))
	for i, b := range p.Buildings {
		c.Buildings[i] = b
		if b.Good != nil {
			g := *b.Good
			c.Buildings[i].Good = &g
		}
	}
	return c
}

// HasBuilt returns true if the player owns a building from the given catalog entry.
func (p Player) HasBuilt(defID string) bool {
	for _, b := range p.Buildings {
		if b.Card.DefID == defID {
			return true
		}
	}
	return false
}

// EffectCount counts owned buildings carrying the effect.
func (p Player) EffectCount(e Effect) int {
	n := 0
	for _, b := range p.Buildings {
		if b.Card.Effect == e {
			n++
		}
	}
	return n
}

// CategoryCount counts owned buildings of a category.
func (p Player) CategoryCount(c Category) int {
	n := 0
	for _, b := range p.Buildings {
		if b.Card.Category == c {
			n++
		}
	}
	return n
}

// Goods maps building ids to the good type stored there. Empty production slots are
// present with GoodNone.
func (p Player) Goods() map[string]GoodType {
	goods := make(map[string]GoodType)
	for _, b := range p.Buildings {
		if !b.Card.IsProduction() {
			continue
		}
		if b.Occupied() {
			goods[b.ID()] = b.Card.Produces
		} else {
			goods[b.ID()] = GoodNone
		}
	}
	return goods
}

// GoodCount counts stored goods.
func (p Player) GoodCount() int {
	n := 0
	for _, b := range p.Buildings {
		if b.Occupied() {
			n++
		}
	}
	return n
}

// Discount is the cost reduction the player's buildings give on the card.
func (p Player) Discount(c Card) int {
	if c.IsProduction() {
		return p.EffectCount(EffectProductionDiscount)
	}
	return p.EffectCount(EffectCityDiscount)
}

func (p Player) handIndex(cardID string) int {
	for i, c := range p.Hand {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}

func (p Player) buildingIndex(id string) int {
	for i, b := range p.Buildings {
		if b.ID() == id {
			return i
		}
	}
	return -1
}

// InHand reports whether the card is in the player's hand.
func (p Player) InHand(cardID string) bool {
	return p.handIndex(cardID) >= 0
}

// removeFromHand removes the cards with the given ids. All ids must be present.
func (p *Player) removeFromHand(ids ...string) []Card {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	var removed []Card
	kept := p.Hand[:0:0]
	for _, c := range p.Hand {
		if drop[c.ID] {
			removed = append(removed, c)
			continue
		}
		kept = append(kept, c)
	}
	p.Hand = kept
	return removed
}
