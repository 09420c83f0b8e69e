package engine

// Phase represents the current phase of the game state machine.
type Phase int

const (
	PhaseRoleSelection Phase = iota // current turn player picks a role or passes
	PhaseAction                     // every seat takes one step of the selected role
	PhaseCouncilKeep                // councilor revealed cards, waiting for keep/discard
	PhaseEndRound                   // waiting for the end-of-round transition
	PhaseGameOver                   // final scores are set
)

var phaseNames = map[Phase]string{
	PhaseRoleSelection: "role_selection",
	PhaseAction:        "action",
	PhaseCouncilKeep:   "awaiting_council_keep",
	PhaseEndRound:      "end_round",
	PhaseGameOver:      "game_over",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}
