package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTurn           = errors.New("not your turn")
	ErrInvalidRoleChoice     = errors.New("invalid role choice")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrDuplicateConstruction = errors.New("already built a building of that kind")
	ErrWrongPhase            = errors.New("wrong phase for this action")
	ErrInvalidAction         = errors.New("invalid action")
	ErrPlayerNotFound        = errors.New("player not found")
)

var reasonCodes = []struct {
	err  error
	code string
}{
	{ErrInvalidTurn, "invalid_turn"},
	{ErrInvalidRoleChoice, "invalid_role_choice"},
	{ErrInsufficientResources, "insufficient_resources"},
	{ErrDuplicateConstruction, "duplicate_construction"},
	{ErrWrongPhase, "wrong_phase"},
	{ErrInvalidAction, "invalid_action"},
	{ErrPlayerNotFound, "player_not_found"},
}

// ReasonCode maps an engine error to a stable code for clients.
func ReasonCode(err error) string {
	for _, rc := range reasonCodes {
		if errors.Is(err, rc.err) {
			return rc.code
		}
	}
	return "unknown"
}

// CouncilState holds the cards a councilor revealed and must now sort.
type CouncilState struct {
	PlayerIndex int      `json:"player_index"`
	DrawnIDs    []string `json:"drawn_ids"`
	KeepCount   int      `json:"keep_count"`
}

// State is the whole game. It is a value: Apply returns a new State and
// never modifies the receiver, so old states stay valid for undo and replay.
type State struct {
	Players   []Player   `json:"players"`
	Pool      Pool       `json:"pool"`
	Market    []Card     `json:"market"`
	RoleSlots []RoleSlot `json:"role_slots"`

	Phase                  Phase `json:"phase"`
	Round                  int   `json:"round"`
	CurrentTurnPlayerIndex int   `json:"current_turn_player_index"`

	// Set while a role is being resolved.
	SelectedRole           Role          `json:"selected_role"`
	CurrentRolePlayerIndex int           `json:"current_role_player_index"` // privileged actor, -1 when none
	ActingPlayerIndex      int           `json:"acting_player_index"`
	StepsTaken             int           `json:"steps_taken"`
	Council                *CouncilState `json:"council,omitempty"`

	TradingTile int           `json:"trading_tile"` // last revealed tile, -1 before the first trader
	TradedGoods []GoodType    `json:"traded_goods,omitempty"`
	Tiles       []TradingTile `json:"tiles"`

	Rules     Rules `json:"rules"`
	CardCount int   `json:"card_count"` // physical cards in the game

	Scores  []ScoreEntry `json:"scores,omitempty"`
	Winners []string     `json:"winners,omitempty"`
}

// NewGame shuffles the catalog deck, gives every player a starter building and a
// hand, lays out the market row and seeds the role slots. Player 0 is governor.
func NewGame(players []Player, cfg GameConfig, seed uint64) (State, error) {
	rules := cfg.Rules
	if err := rules.Validate(); err != nil {
		return State{}, err
	}
	if len(players) < rules.MinPlayers || len(players) > rules.MaxPlayers {
		return State{}, fmt.Errorf("need %d-%d players, got %d", rules.MinPlayers, rules.MaxPlayers, len(players))
	}
	seen := map[string]bool{}
	for _, p := range players {
		if p.ID == "" || seen[p.ID] {
			return State{}, fmt.Errorf("player ids must be unique and non-empty")
		}
		seen[p.ID] = true
	}
	if err := cfg.Catalog.Validate(); err != nil {
		return State{}, err
	}

	var deck, starters []Card
	for _, def := range cfg.Catalog.Cards {
		copies := def.Copies()
		n := min(def.Starters, len(copies))
		starters = append(starters, copies[:n]...)
		deck = append(deck, copies[n:]...)
	}
	if len(starters) < len(players) {
		return State{}, fmt.Errorf("catalog has %d starter buildings for %d players", len(starters), len(players))
	}
	deck = append(deck, starters[len(players):]...)

	s := State{
		Pool:                   NewPool(deck, seed),
		Phase:                  PhaseRoleSelection,
		Round:                  1,
		CurrentRolePlayerIndex: -1,
		TradingTile:            -1,
		Tiles:                  cfg.Catalog.TradingTiles,
		Rules:                  rules,
		CardCount:              len(deck) + len(players),
	}
	for i, p := range players {
		np := NewPlayer(p.ID, p.Name)
		np.Buildings = []Building{{Card: starters[i]}}
		np.Hand = s.Pool.Draw(rules.HandSize)
		s.Players = append(s.Players, np)
	}
	s.Players[0].IsGovernor = true
	s.Market = s.Pool.Draw(rules.MarketSize)
	for _, r := range cfg.Catalog.Roles {
		s.RoleSlots = append(s.RoleSlots, RoleSlot{Role: r, Available: true})
	}
	return s, nil
}

// Initialize starts a game for the named players with ids p1..pN.
func Initialize(names []string, cfg GameConfig, seed uint64) (State, error) {
	players := make([]Player, len(names))
	for i, name := range names {
		players[i] = NewPlayer(fmt.Sprintf("p%d", i+1), name)
	}
	return NewGame(players, cfg, seed)
}

// Clone returns a deep copy that shares no mutable memory with s.
// Catalog-derived data (Tiles) is read-only and shared.
func (s State) Clone() State {
	c := s
	c.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		c.Players[i] = p.clone()
	}
	c.Pool = s.Pool.clone()
	c.Market = append([]Card(nil), s.Market...)
	c.RoleSlots = append([]RoleSlot(nil), s.RoleSlots...)
	c.TradedGoods = append([]GoodType(nil), s.TradedGoods...)
	if s.Council != nil {
		council := *s.Council
		council.DrawnIDs = append([]string(nil), s.Council.DrawnIDs...)
		c.Council = &council
	}
	c.Scores = append([]ScoreEntry(nil), s.Scores...)
	c.Winners = append([]string(nil), s.Winners...)
	return c
}

// Apply is the single entry point for actions. On success it returns the next
// state and the events describing the change. On failure it returns s unchanged.
func (s State) Apply(action Action) (State, []Event, error) {
	if action == nil {
		panic("engine: nil action")
	}
	if s.Phase == PhaseGameOver {
		return s, nil, fmt.Errorf("%w: game is over", ErrWrongPhase)
	}

	next := s.Clone()
	var (
		events []Event
		err    error
	)
	switch a := action.(type) {
	case SelectRole:
		events, err = next.applySelectRole(a)
	case Build:
		events, err = next.applyBuild(a)
	case Produce:
		events, err = next.applyProduce(a)
	case Trade:
		events, err = next.applyTrade(a)
	case CouncilDraw:
		events, err = next.applyCouncilDraw(a)
	case CouncilKeep:
		events, err = next.applyCouncilKeep(a)
	case Prospect:
		events, err = next.applyProspect(a)
	case Pass:
		events, err = next.applyPass(a)
	case EndRound:
		events, err = next.applyEndRound()
	case Chapel:
		events, err = next.applyChapel(a)
	default:
		panic(fmt.Sprintf("engine: unhandled action type %T", action))
	}
	if err != nil {
		return s, nil, err
	}
	return next, events, nil
}

// PlayerIndex returns the seat of the player, or -1.
func (s State) PlayerIndex(id string) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// GetPlayer finds a player by ID.
func (s State) GetPlayer(id string) (Player, bool) {
	if i := s.PlayerIndex(id); i >= 0 {
		return s.Players[i], true
	}
	return Player{}, false
}

// GovernorIndex returns the seat holding the governor token.
func (s State) GovernorIndex() int {
	for i, p := range s.Players {
		if p.IsGovernor {
			return i
		}
	}
	return -1
}

// ActivePlayer returns the id of the player the game is waiting on.
// It is empty at round end and game over, when no seat has to act.
func (s State) ActivePlayer() string {
	switch s.Phase {
	case PhaseRoleSelection:
		return s.Players[s.CurrentTurnPlayerIndex].ID
	case PhaseAction:
		return s.Players[s.ActingPlayerIndex].ID
	case PhaseCouncilKeep:
		return s.Players[s.Council.PlayerIndex].ID
	}
	return ""
}

// IsPrivileged reports whether the player selected the role being resolved.
func (s State) IsPrivileged(playerID string) bool {
	i := s.PlayerIndex(playerID)
	return i >= 0 && i == s.CurrentRolePlayerIndex
}

func (s State) slotIndex(r Role) int {
	for i, slot := range s.RoleSlots {
		if slot.Role == r {
			return i
		}
	}
	return -1
}

func (s State) anyRoleAvailable() bool {
	for _, slot := range s.RoleSlots {
		if slot.Available {
			return true
		}
	}
	return false
}

func (s State) allPassed() bool {
	for _, p := range s.Players {
		if !p.HasPassed {
			return false
		}
	}
	return true
}

// nextUnpassed returns the first seat after from whose player has not passed.
func (s State) nextUnpassed(from int) int {
	n := len(s.Players)
	for i := 1; i <= n; i++ {
		j := (from + i) % n
		if !s.Players[j].HasPassed {
			return j
		}
	}
	return from
}

func phaseEvent(p Phase) Event {
	return Event{Type: EventPhaseChange, Data: map[string]any{"phase": p.String()}}
}
