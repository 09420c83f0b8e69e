package engine

// PublicViewData is the game state visible to the whole table.
type PublicViewData struct {
	Phase        string             `json:"phase"`
	Round        int                `json:"round"`
	Players      []PublicPlayerData `json:"players"`
	RoleSlots    []RoleSlotView     `json:"role_slots"`
	Market       []Card             `json:"market,omitempty"`
	SelectedRole string             `json:"selected_role,omitempty"`
	Privileged   string             `json:"privileged,omitempty"`
	CurrentTurn  string             `json:"current_turn,omitempty"`
	Waiting      string             `json:"waiting,omitempty"`
	TradingTile  map[string]int     `json:"trading_tile,omitempty"`
	TradedGoods  []string           `json:"traded_goods,omitempty"`
	DrawPileSize int                `json:"draw_pile_size"`
	DiscardSize  int                `json:"discard_size"`
	Scores       []ScoreEntry       `json:"scores,omitempty"`
	Winners      []string           `json:"winners,omitempty"`
}

type PublicPlayerData struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	HandSize      int        `json:"hand_size"`
	Buildings     []Building `json:"buildings"`
	Coins         int        `json:"coins"`
	VictoryPoints int        `json:"victory_points"`
	IsGovernor    bool       `json:"is_governor"`
	HasPassed     bool       `json:"has_passed"`
}

type RoleSlotView struct {
	Role       string `json:"role"`
	Available  bool   `json:"available"`
	BonusCoins int    `json:"bonus_coins"`
}

// PublicView hides hands and pile order. Stored goods are face down, so only
// occupancy is shown.
func (s State) PublicView() PublicViewData {
	pv := PublicViewData{
		Phase:        s.Phase.String(),
		Round:        s.Round,
		Market:       s.Market,
		DrawPileSize: s.Pool.Len(),
		DiscardSize:  len(s.Pool.DiscardPile),
		Scores:       s.Scores,
		Winners:      s.Winners,
	}
	if s.SelectedRole != RoleNone {
		pv.SelectedRole = s.SelectedRole.String()
		pv.Privileged = s.Players[s.CurrentRolePlayerIndex].ID
	}
	if s.Phase == PhaseRoleSelection {
		pv.CurrentTurn = s.Players[s.CurrentTurnPlayerIndex].ID
	}
	pv.Waiting = s.ActivePlayer()
	if s.TradingTile >= 0 {
		pv.TradingTile = map[string]int{}
		for g, price := range s.Tiles[s.TradingTile] {
			pv.TradingTile[g.String()] = price
		}
	}
	for _, g := range s.TradedGoods {
		pv.TradedGoods = append(pv.TradedGoods, g.String())
	}
	for _, slot := range s.RoleSlots {
		pv.RoleSlots = append(pv.RoleSlots, RoleSlotView{
			Role: slot.Role.String(), Available: slot.Available, BonusCoins: slot.BonusCoins,
		})
	}

	for _, p := range s.Players {
		ppd := PublicPlayerData{
			ID:            p.ID,
			Name:          p.Name,
			HandSize:      len(p.Hand),
			Coins:         p.Coins,
			VictoryPoints: p.VictoryPoints,
			IsGovernor:    p.IsGovernor,
			HasPassed:     p.HasPassed,
		}
		for _, b := range p.Buildings {
			shown := Building{Card: b.Card}
			if b.Good != nil {
				shown.Good = &Card{ID: "hidden"}
			}
			ppd.Buildings = append(ppd.Buildings, shown)
		}
		pv.Players = append(pv.Players, ppd)
	}
	return pv
}

// PlayerViewData is the game state visible to one player.
type PlayerViewData struct {
	PublicViewData
	Hand         []Card   `json:"hand"`
	IsMyTurn     bool     `json:"is_my_turn"`
	IsPrivileged bool     `json:"is_privileged"`
	Actions      []string `json:"actions,omitempty"`
	CouncilDrawn []string `json:"council_drawn,omitempty"`
	KeepCount    int      `json:"keep_count,omitempty"`
	ProduceLimit int      `json:"produce_limit,omitempty"`
}

func (s State) ViewFor(playerID string) PlayerViewData {
	pv := PlayerViewData{PublicViewData: s.PublicView()}

	p, ok := s.GetPlayer(playerID)
	if !ok {
		return pv
	}
	pv.Hand = p.Hand
	pv.IsMyTurn = s.ActivePlayer() == playerID
	pv.IsPrivileged = s.IsPrivileged(playerID)
	if pv.IsMyTurn {
		for _, k := range s.ActionKinds() {
			pv.Actions = append(pv.Actions, string(k))
		}
	}
	if s.Phase == PhaseCouncilKeep && s.Council != nil && s.Players[s.Council.PlayerIndex].ID == playerID {
		pv.CouncilDrawn = s.Council.DrawnIDs
		pv.KeepCount = s.Council.KeepCount
	}
	if s.Phase == PhaseAction && s.SelectedRole == RoleProducer {
		pv.ProduceLimit = s.ProductionLimit(playerID)
	}
	return pv
}

// ActionKinds lists the action kinds the active player may submit now.
func (s State) ActionKinds() []ActionKind {
	switch s.Phase {
	case PhaseRoleSelection:
		kinds := []ActionKind{ActionSelectRole, ActionPass}
		p := s.Players[s.CurrentTurnPlayerIndex]
		if p.EffectCount(EffectChapel) > 0 && !p.UsedChapel && len(p.Hand) > 0 {
			kinds = append(kinds, ActionChapel)
		}
		return kinds
	case PhaseAction:
		var kind ActionKind
		switch s.SelectedRole {
		case RoleBuilder:
			kind = ActionBuild
		case RoleProducer:
			kind = ActionProduce
		case RoleTrader:
			kind = ActionTrade
		case RoleCouncilor:
			kind = ActionCouncilDraw
		case RoleProspector:
			kind = ActionProspect
		}
		if s.drawBlocked() {
			return []ActionKind{ActionPass}
		}
		return []ActionKind{kind, ActionPass}
	case PhaseCouncilKeep:
		return []ActionKind{ActionCouncilKeep}
	case PhaseEndRound:
		return []ActionKind{ActionEndRound}
	}
	return nil
}

// drawBlocked reports whether the current step needs a draw from a dry pool.
func (s State) drawBlocked() bool {
	if !s.Pool.Exhausted() {
		return false
	}
	switch s.SelectedRole {
	case RoleCouncilor:
		return true
	case RoleProspector:
		return s.ActingPlayerIndex == s.CurrentRolePlayerIndex
	}
	return false
}
