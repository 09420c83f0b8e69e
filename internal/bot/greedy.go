package bot

import (
	"slices"

	"governor/internal/engine"
)

// Greedy builds the best card it can afford, keeps its production running
// and sells whenever a good is worth something.
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

func (g Greedy) Decide(s engine.State, playerID string) engine.Action {
	p, ok := s.GetPlayer(playerID)
	if !ok {
		return nil
	}
	switch s.Phase {
	case engine.PhaseRoleSelection:
		if a := chapel(p); a != nil {
			return a
		}
		for _, r := range g.wants(s, p) {
			if roleAvailable(s, r) {
				return engine.SelectRole{PlayerID: playerID, Role: r}
			}
		}
		return engine.Pass{PlayerID: playerID}
	case engine.PhaseAction:
		if a := step(s, p); a != nil {
			return a
		}
		return engine.Pass{PlayerID: playerID}
	case engine.PhaseCouncilKeep:
		return keepCostliest(s, p)
	case engine.PhaseEndRound:
		return engine.EndRound{}
	}
	return nil
}

// wants ranks the roles the player would profit from, best first.
func (Greedy) wants(s engine.State, p engine.Player) []engine.Role {
	var roles []engine.Role
	if bestBuild(s, p, true) != nil {
		roles = append(roles, engine.RoleBuilder)
	}
	if tradable(s, p) != "" {
		roles = append(roles, engine.RoleTrader)
	}
	if len(p.EligibleBuildings()) > 0 {
		roles = append(roles, engine.RoleProducer)
	}
	return append(roles, engine.RoleCouncilor, engine.RoleProspector)
}

func roleAvailable(s engine.State, r engine.Role) bool {
	for _, slot := range s.RoleSlots {
		if slot.Role == r {
			return slot.Available
		}
	}
	return false
}

// chapel tucks the cheapest card once the hand is comfortable.
func chapel(p engine.Player) engine.Action {
	if p.EffectCount(engine.EffectChapel) == 0 || p.UsedChapel || len(p.Hand) < 3 {
		return nil
	}
	return engine.Chapel{PlayerID: p.ID, CardID: byCost(p.Hand)[0].ID}
}

// step is the role action for the current step, or nil to pass.
func step(s engine.State, p engine.Player) engine.Action {
	switch s.SelectedRole {
	case engine.RoleBuilder:
		if b := bestBuild(s, p, s.IsPrivileged(p.ID)); b != nil {
			return *b
		}
	case engine.RoleProducer:
		if s.Rules.ProduceForAllSeats {
			if s.IsPrivileged(p.ID) {
				return engine.Produce{PlayerID: p.ID}
			}
			return nil
		}
		ids := p.EligibleBuildings()
		if n := min(len(ids), s.ProductionLimit(p.ID)); n > 0 {
			return engine.Produce{PlayerID: p.ID, BuildingIDs: ids[:n]}
		}
	case engine.RoleTrader:
		if id := tradable(s, p); id != "" {
			return engine.Trade{PlayerID: p.ID, BuildingID: id}
		}
	case engine.RoleCouncilor:
		if !s.Pool.Exhausted() {
			return engine.CouncilDraw{PlayerID: p.ID}
		}
	case engine.RoleProspector:
		if !s.IsPrivileged(p.ID) || !s.Pool.Exhausted() {
			return engine.Prospect{PlayerID: p.ID}
		}
	}
	return nil
}

// bestBuild picks the affordable card worth the most points and pays for it
// with coins first, then the cheapest other cards.
func bestBuild(s engine.State, p engine.Player, privileged bool) *engine.Build {
	type option struct {
		card       engine.Card
		fromMarket bool
	}
	var options []option
	for _, c := range p.Hand {
		options = append(options, option{card: c})
	}
	if privileged {
		for _, c := range s.Market {
			options = append(options, option{card: c, fromMarket: true})
		}
	}

	var best *engine.Build
	bestPoints := -1
	for _, o := range options {
		if p.HasBuilt(o.card.DefID) {
			continue
		}
		cost := engine.EffectiveCost(o.card, privileged, p.Discount(o.card))
		coins := min(p.Coins, cost)
		need := cost - coins
		var pay []string
		for _, c := range byCost(p.Hand) {
			if len(pay) == need {
				break
			}
			if c.ID != o.card.ID {
				pay = append(pay, c.ID)
			}
		}
		if len(pay) < need {
			continue
		}
		if points := o.card.Points + o.card.Cost; points > bestPoints {
			bestPoints = points
			best = &engine.Build{PlayerID: p.ID, CardID: o.card.ID, PaymentIDs: pay, Coins: coins}
		}
	}
	return best
}

// tradable returns the building holding the best-priced good that may still be sold.
func tradable(s engine.State, p engine.Player) string {
	id, price := "", -1
	for _, b := range p.Buildings {
		if !b.Occupied() || !s.CanTrade(b.Card.Produces) {
			continue
		}
		if v := s.Price(p.ID, b.Card.Produces); v > price {
			id, price = b.ID(), v
		}
	}
	return id
}

// keepCostliest keeps the most expensive revealed cards.
func keepCostliest(s engine.State, p engine.Player) engine.Action {
	if s.Council == nil {
		return nil
	}
	var drawn []engine.Card
	for _, c := range p.Hand {
		if slices.Contains(s.Council.DrawnIDs, c.ID) {
			drawn = append(drawn, c)
		}
	}
	drawn = byCost(drawn)
	var discard []string
	for _, c := range drawn[:len(drawn)-s.Council.KeepCount] {
		discard = append(discard, c.ID)
	}
	return engine.CouncilKeep{PlayerID: p.ID, DiscardIDs: discard}
}

// byCost returns the cards sorted cheapest first, ties by id.
func byCost(cards []engine.Card) []engine.Card {
	out := slices.Clone(cards)
	slices.SortFunc(out, func(a, b engine.Card) int {
		if a.Cost != b.Cost {
			return a.Cost - b.Cost
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out
}
