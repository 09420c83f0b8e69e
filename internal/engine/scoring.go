package engine

// ScoreEntry holds scoring breakdown for one player.
type ScoreEntry struct {
	PlayerID       string `json:"player_id"`
	PlayerName     string `json:"player_name"`
	VictoryPoints  int    `json:"victory_points"`
	BuildingPoints int    `json:"building_points"`
	GuildHall      int    `json:"guild_hall"`
	Residence      int    `json:"residence"`
	Fortress       int    `json:"fortress"`
	CustomsHouse   int    `json:"customs_house"`
	CityHall       int    `json:"city_hall"`
	Total          int    `json:"total"`
}

// Result is the final standing.
type Result struct {
	Scores  []ScoreEntry `json:"scores"`
	Winners []string     `json:"winners"`
}

// residenceSteps is the residence bonus by building count, highest step first.
var residenceSteps = []struct{ minBuildings, bonus int }{
	{12, 7},
	{11, 6},
	{10, 5},
	{0, 4},
}

// ResidenceBonus looks up the residence bonus for a tableau size.
func ResidenceBonus(buildings int) int {
	for _, step := range residenceSteps {
		if buildings >= step.minBuildings {
			return step.bonus
		}
	}
	return 0
}

// ScorePlayer computes one player's final score. Each bonus building counts once.
func ScorePlayer(p Player) ScoreEntry {
	e := ScoreEntry{
		PlayerID:      p.ID,
		PlayerName:    p.Name,
		VictoryPoints: p.VictoryPoints,
	}
	for _, b := range p.Buildings {
		e.BuildingPoints += b.Card.Points
	}

	for _, b := range p.Buildings {
		switch b.Card.Effect {
		case EffectGuildHall:
			e.GuildHall += 2*p.CategoryCount(CategoryProduction) + p.CategoryCount(CategoryCity)
		case EffectResidence:
			e.Residence += ResidenceBonus(len(p.Buildings))
		case EffectFortress:
			// Cards left in hand are the unplaced workforce.
			e.Fortress += len(p.Hand) / 3
		case EffectCustomsHouse:
			e.CustomsHouse += p.VictoryPoints / 4
		case EffectCityHall:
			kinds := map[string]bool{}
			for _, other := range p.Buildings {
				kinds[other.Card.DefID] = true
			}
			e.CityHall += len(kinds)
		}
	}

	e.Total = e.VictoryPoints + e.BuildingPoints + e.GuildHall + e.Residence +
		e.Fortress + e.CustomsHouse + e.CityHall
	return e
}

// Score computes final scores for all players and picks the winners
// under the configured tie break.
func Score(s State) Result {
	entries := make([]ScoreEntry, len(s.Players))
	for i, p := range s.Players {
		entries[i] = ScorePlayer(p)
	}

	// Candidates start as everyone on the top total.
	best := 0
	for i, e := range entries {
		if i == 0 || e.Total > best {
			best = e.Total
		}
	}
	var tied []int
	for i, e := range entries {
		if e.Total == best {
			tied = append(tied, i)
		}
	}

	if len(tied) > 1 {
		switch s.Rules.TieBreak {
		case TieBreakFewerBuildings:
			tied = keepBest(tied, func(i int) int { return -len(s.Players[i].Buildings) })
		case TieBreakMostCards:
			tied = keepBest(tied, func(i int) int {
				p := s.Players[i]
				return len(p.Hand) + p.GoodCount()
			})
		}
	}

	winners := make([]string, len(tied))
	for i, idx := range tied {
		winners[i] = s.Players[idx].ID
	}
	return Result{Scores: entries, Winners: winners}
}

// keepBest filters seats down to those maximising key.
func keepBest(seats []int, key func(int) int) []int {
	best := key(seats[0])
	for _, i := range seats[1:] {
		best = max(best, key(i))
	}
	var out []int
	for _, i := range seats {
		if key(i) == best {
			out = append(out, i)
		}
	}
	return out
}
