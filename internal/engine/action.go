package engine

// ActionKind names an action on the wire and in the action log.
type ActionKind string

const (
	ActionSelectRole  ActionKind = "select_role"
	ActionBuild       ActionKind = "build"
	ActionProduce     ActionKind = "produce"
	ActionTrade       ActionKind = "trade"
	ActionCouncilDraw ActionKind = "council_draw"
	ActionCouncilKeep ActionKind = "council_keep"
	ActionProspect    ActionKind = "prospect"
	ActionPass        ActionKind = "pass"
	ActionEndRound    ActionKind = "end_round"
	ActionChapel      ActionKind = "chapel" // discard a hand card for 1 point
)

// Action is one of the concrete action types below. The set is closed:
// State.Apply handles every implementation and panics on anything else.
type Action interface {
	Kind() ActionKind
	// Actor is the id of the submitting player, empty for table actions.
	Actor() string
	isAction()
}

// SelectRole picks a role. Role == RoleNone passes for the rest of the round.
type SelectRole struct {
	PlayerID string `json:"player_id"`
	Role     Role   `json:"role"`
}

// Build places a card from hand (or the market row, privileged only).
// PaymentIDs are hand cards paid to the discard pile; Coins count as one card each.
// ReplaceID names an owned building to build over (needs a build-over building).
type Build struct {
	PlayerID   string   `json:"player_id"`
	CardID     string   `json:"card_id"`
	PaymentIDs []string `json:"payment_ids,omitempty"`
	Coins      int      `json:"coins,omitempty"`
	ReplaceID  string   `json:"replace_id,omitempty"`
}

// Produce fills empty production slots.
type Produce struct {
	PlayerID    string   `json:"player_id"`
	BuildingIDs []string `json:"building_ids,omitempty"`
}

// Trade sells the good stored on a building.
type Trade struct {
	PlayerID   string `json:"player_id"`
	BuildingID string `json:"building_id"`
}

// CouncilDraw reveals the councilor cards.
type CouncilDraw struct {
	PlayerID string `json:"player_id"`
}

// CouncilKeep commits which revealed cards are kept and which are discarded.
type CouncilKeep struct {
	PlayerID   string   `json:"player_id"`
	KeepIDs    []string `json:"keep_ids,omitempty"`
	DiscardIDs []string `json:"discard_ids"`
}

// Prospect takes the prospector step.
type Prospect struct {
	PlayerID string `json:"player_id"`
}

// Pass declines: during role selection it passes for the round,
// during an action step it skips the step.
type Pass struct {
	PlayerID string `json:"player_id"`
}

// EndRound runs the end-of-round transition.
type EndRound struct{}

// Chapel discards a hand card for one victory point.
type Chapel struct {
	PlayerID string `json:"player_id"`
	CardID   string `json:"card_id"`
}

func (SelectRole) Kind() ActionKind  { return ActionSelectRole }
func (Build) Kind() ActionKind       { return ActionBuild }
func (Produce) Kind() ActionKind     { return ActionProduce }
func (Trade) Kind() ActionKind       { return ActionTrade }
func (CouncilDraw) Kind() ActionKind { return ActionCouncilDraw }
func (CouncilKeep) Kind() ActionKind { return ActionCouncilKeep }
func (Prospect) Kind() ActionKind    { return ActionProspect }
func (Pass) Kind() ActionKind        { return ActionPass }
func (EndRound) Kind() ActionKind    { return ActionEndRound }
func (Chapel) Kind() ActionKind      { return ActionChapel }

func (a SelectRole) Actor() string  { return a.PlayerID }
func (a Build) Actor() string       { return a.PlayerID }
func (a Produce) Actor() string     { return a.PlayerID }
func (a Trade) Actor() string       { return a.PlayerID }
func (a CouncilDraw) Actor() string { return a.PlayerID }
func (a CouncilKeep) Actor() string { return a.PlayerID }
func (a Prospect) Actor() string    { return a.PlayerID }
func (a Pass) Actor() string        { return a.PlayerID }
func (EndRound) Actor() string      { return "" }
func (a Chapel) Actor() string      { return a.PlayerID }

func (SelectRole) isAction()  {}
func (Build) isAction()       {}
func (Produce) isAction()     {}
func (Trade) isAction()       {}
func (CouncilDraw) isAction() {}
func (CouncilKeep) isAction() {}
func (Prospect) isAction()    {}
func (Pass) isAction()        {}
func (EndRound) isAction()    {}
func (Chapel) isAction()      {}

// EventType identifies events emitted by the engine.
type EventType string

const (
	EventRoleSelected    EventType = "role_selected"
	EventPassed          EventType = "passed"
	EventBuilt           EventType = "built"
	EventProduced        EventType = "produced"
	EventTraded          EventType = "traded"
	EventCouncilRevealed EventType = "council_revealed"
	EventCouncilKept     EventType = "council_kept"
	EventProspected      EventType = "prospected"
	EventStepSkipped     EventType = "step_skipped"
	EventChapel          EventType = "chapel"
	EventRoleDone        EventType = "role_done"
	EventRoundEnd        EventType = "round_end"
	EventGovernorPassed  EventType = "governor_passed"
	EventGameOver        EventType = "game_over"
	EventPhaseChange     EventType = "phase_change"
)

// Event is emitted by the engine after state changes.
type Event struct {
	Type   EventType      `json:"type"`
	Player string         `json:"player,omitempty"`
	Data   map[string]any `json:"data,omitempty"`
}
