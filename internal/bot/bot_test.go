package bot_test

import (
	"fmt"
	"governor/internal/bot"
	"governor/internal/engine"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seats(s engine.State, policy func(i int) bot.Policy) map[string]bot.Policy {
	m := map[string]bot.Policy{}
	for i, p := range s.Players {
		m[p.ID] = policy(i)
	}
	return m
}

// playChecked drives a bot game one action at a time and checks the state
// invariants after every transition.
func playChecked(t *testing.T, s engine.State, table map[string]bot.Policy, limit int) engine.State {
	t.Helper()
	total := s.CardCount
	for range limit {
		a := bot.Next(s, table)
		if a == nil {
			break
		}
		prevRound := s.Round
		next, events, err := s.Apply(a)
		require.NoError(t, err, "round %d: %s by %q", s.Round, a.Kind(), a.Actor())
		require.NotEmpty(t, events)
		require.NoError(t, next.Validate())
		require.Len(t, next.CardIDs(), total)
		require.GreaterOrEqual(t, next.Round, prevRound)
		for _, p := range next.Players {
			require.GreaterOrEqual(t, p.Coins, 0)
		}
		s = next
	}
	return s
}

func TestGreedyGamesKeepInvariants(t *testing.T) {
	for n := 2; n <= 4; n++ {
		for seed := uint64(1); seed <= 5; seed++ {
			t.Run(fmt.Sprintf("%dp-seed%d", n, seed), func(t *testing.T) {
				names := []string{"A", "B", "C", "D"}[:n]
				s, err := engine.Initialize(names, engine.DefaultConfig(), seed)
				require.NoError(t, err)

				s = playChecked(t, s, seats(s, func(int) bot.Policy { return bot.Greedy{} }), 3000)
				assert.Greater(t, s.Round, 1)
			})
		}
	}
}

func TestRandomGamesKeepInvariants(t *testing.T) {
	variants := map[string]func(*engine.Rules){
		"default":         func(*engine.Rules) {},
		"discard-hand":    func(r *engine.Rules) { r.CouncilDiscardFromHand = true },
		"produce-all":     func(r *engine.Rules) { r.ProduceForAllSeats = true },
		"unlimited-trade": func(r *engine.Rules) { r.OneTradePerGoodType = false },
		"short":           func(r *engine.Rules) { r.EndBuildingCount = 4 },
	}
	for name, tweak := range variants {
		t.Run(name, func(t *testing.T) {
			cfg := engine.DefaultConfig()
			tweak(&cfg.Rules)
			for seed := uint64(1); seed <= 4; seed++ {
				s, err := engine.Initialize([]string{"A", "B", "C"}, cfg, seed)
				require.NoError(t, err)
				table := seats(s, func(i int) bot.Policy { return bot.NewRandom(seed*10 + uint64(i)) })
				playChecked(t, s, table, 2000)
			}
		})
	}
}

func TestRunIsReplayable(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Rules.EndBuildingCount = 4
	players := []engine.Player{engine.NewPlayer("a", "Ann"), engine.NewPlayer("b", "Bo")}
	s, err := engine.NewGame(players, cfg, 11)
	require.NoError(t, err)

	table := map[string]bot.Policy{"a": bot.Greedy{}, "b": bot.NewRandom(3)}
	final, log, err := bot.Run(s, table, 5000)
	if err != nil {
		require.ErrorIs(t, err, bot.ErrStepLimit)
	}
	require.NotEmpty(t, log)

	replayed, err := engine.Replay(players, cfg, 11, log)
	require.NoError(t, err)
	assert.Equal(t, final, replayed)
}

func TestRunStopsAtHumanSeat(t *testing.T) {
	s, err := engine.Initialize([]string{"A", "B"}, engine.DefaultConfig(), 1)
	require.NoError(t, err)

	// p1 is human and acts first.
	final, log, err := bot.Run(s, map[string]bot.Policy{"p2": bot.Greedy{}}, 100)
	require.NoError(t, err)
	assert.Empty(t, log)
	assert.Equal(t, s, final)
}

func TestGreedyBuildsWhenItCan(t *testing.T) {
	s, err := engine.Initialize([]string{"A", "B"}, engine.DefaultConfig(), 1)
	require.NoError(t, err)

	a := bot.Greedy{}.Decide(s, "p1")
	require.NotNil(t, a)
	next, _, err := s.Apply(a)
	require.NoError(t, err)

	if sel, ok := a.(engine.SelectRole); ok && sel.Role == engine.RoleBuilder {
		b := bot.Greedy{}.Decide(next, "p1")
		assert.Equal(t, engine.ActionBuild, b.Kind())
	}
}

func TestGreedyKeepsCostliestCouncilCards(t *testing.T) {
	s, err := engine.Initialize([]string{"A", "B"}, engine.DefaultConfig(), 5)
	require.NoError(t, err)
	s, _, err = s.Apply(engine.SelectRole{PlayerID: "p1", Role: engine.RoleCouncilor})
	require.NoError(t, err)
	s, _, err = s.Apply(engine.CouncilDraw{PlayerID: "p1"})
	require.NoError(t, err)

	a := bot.Greedy{}.Decide(s, "p1")
	keep, ok := a.(engine.CouncilKeep)
	require.True(t, ok)
	require.Len(t, keep.DiscardIDs, 4)

	next, _, err := s.Apply(keep)
	require.NoError(t, err)
	kept := next.Players[0].Hand[len(next.Players[0].Hand)-1]
	for _, id := range keep.DiscardIDs {
		for _, c := range s.Players[0].Hand {
			if c.ID == id {
				assert.LessOrEqual(t, c.Cost, kept.Cost)
			}
		}
	}
}

func TestByName(t *testing.T) {
	assert.Equal(t, "greedy", bot.ByName("greedy", 1).Name())
	assert.Equal(t, "greedy", bot.ByName("", 1).Name())
	assert.Equal(t, "random-7", bot.ByName("random", 7).Name())
}
