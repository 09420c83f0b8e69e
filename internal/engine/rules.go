package engine

import "fmt"

// TieBreak decides how equal final totals are resolved.
type TieBreak string

const (
	TieBreakShared         TieBreak = "shared"          // every tied player wins
	TieBreakFewerBuildings TieBreak = "fewer_buildings" // then shared
	TieBreakMostCards      TieBreak = "most_cards"      // hand plus stored goods, then shared
)

// Rules holds the variant knobs for a game.
type Rules struct {
	HandSize         int `json:"hand_size"`
	EndBuildingCount int `json:"end_building_count"`
	MarketSize       int `json:"market_size"`
	MinPlayers       int `json:"min_players"`
	MaxPlayers       int `json:"max_players"`

	// CouncilDiscardFromHand lets the councilor discard old hand cards
	// instead of only the freshly drawn ones.
	CouncilDiscardFromHand bool `json:"council_discard_from_hand"`
	// ProduceForAllSeats makes the privileged producer fill every seat in one pass.
	ProduceForAllSeats bool `json:"produce_for_all_seats"`
	// OneTradePerGoodType allows each good type to be sold once per round.
	OneTradePerGoodType bool `json:"one_trade_per_good_type"`

	TieBreak TieBreak `json:"tie_break"`
}

// Councilor draw counts are fixed by rule.
const (
	CouncilDrawPrivileged = 5
	CouncilDrawOther      = 2
)

func DefaultRules() Rules {
	return Rules{
		HandSize:            4,
		EndBuildingCount:    12,
		MarketSize:          3,
		MinPlayers:          2,
		MaxPlayers:          4,
		OneTradePerGoodType: true,
		TieBreak:            TieBreakShared,
	}
}

// Validate checks the rules are playable.
func (r Rules) Validate() error {
	if r.HandSize < 0 || r.MarketSize < 0 {
		return fmt.Errorf("hand and market size must not be negative")
	}
	if r.EndBuildingCount < 1 {
		return fmt.Errorf("end building count must be positive")
	}
	if r.MinPlayers < 1 || r.MaxPlayers < r.MinPlayers {
		return fmt.Errorf("invalid player range %d..%d", r.MinPlayers, r.MaxPlayers)
	}
	switch r.TieBreak {
	case TieBreakShared, TieBreakFewerBuildings, TieBreakMostCards:
	default:
		return fmt.Errorf("unknown tie break %q", r.TieBreak)
	}
	return nil
}

// GameConfig holds configuration for creating a new game.
type GameConfig struct {
	Catalog Catalog
	Rules   Rules
}

func DefaultConfig() GameConfig {
	return GameConfig{
		Catalog: BaseCatalog(),
		Rules:   DefaultRules(),
	}
}
